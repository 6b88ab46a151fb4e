package schedule

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const sample = `
[[days]]
date = "2025-09-10"

  [[days.education]]
  language = "japanese"
  mode = "small-group"
  slots = [1, 3]

  [[days.education]]
  language = "korean-english"
  mode = "one-to-one"
  slots = [2]

  [[days.recording]]
  language = "chinese"
  slots = [5, 6]
`

func TestParse(t *testing.T) {
	days, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Contains(t, days, "2025-09-10")

	day := days["2025-09-10"]
	assert.True(t, day.IsEducationSlotOpen(domain.LanguageJapanese, domain.ModeSmallGroup, 3))
	assert.True(t, day.IsEducationSlotOpen(domain.LanguageKoreanEnglish, domain.ModeOneToOne, 2))
	assert.False(t, day.IsEducationSlotOpen(domain.LanguageChinese, domain.ModeOneToOne, 2))
	require.Len(t, day.Recording, 1)
	assert.Equal(t, []int{5, 6}, day.Recording[0].Slots)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad date":      "[[days]]\ndate = \"10.09.2025\"\n",
		"slot range":    "[[days]]\ndate = \"2025-09-10\"\n[[days.education]]\nlanguage = \"japanese\"\nmode = \"small-group\"\nslots = [9]\n",
		"bad mode":      "[[days]]\ndate = \"2025-09-10\"\n[[days.education]]\nlanguage = \"japanese\"\nmode = \"lecture\"\nslots = [1]\n",
		"duplicate day": "[[days]]\ndate = \"2025-09-10\"\n[[days]]\ndate = \"2025-09-10\"\n",
		"not toml":      "days = [",
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(input))
			assert.ErrorIs(t, err, ErrInvalidFeed)
		})
	}
}

func TestFileFeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schedule.toml")

	// Файла нет: пустой календарь
	feed, err := NewFileFeed(path, nopLogger{})
	require.NoError(t, err)
	day, err := feed.DaySchedule(context.Background(), "2025-09-10")
	require.NoError(t, err)
	assert.Nil(t, day)

	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	require.NoError(t, feed.Reload())

	day, err = feed.DaySchedule(context.Background(), "2025-09-10")
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.Equal(t, "2025-09-10", day.Date)
}
