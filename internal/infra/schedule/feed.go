package schedule

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
)

// ErrInvalidFeed возвращается, когда файл расписания не прошёл проверку
var ErrInvalidFeed = errors.New("schedule.feed: invalid feed")

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type fileFormat struct {
	Days []dayEntry `toml:"days"`
}

type dayEntry struct {
	Date      string                     `toml:"date"`
	Education []domain.EducationOffering `toml:"education"`
	Recording []domain.RecordingOffering `toml:"recording"`
}

// FileFeed календарь слотов, загружаемый из TOML-файла.
// Только чтение; обновляется вызовом Reload.
type FileFeed struct {
	path   string
	logger Logger

	mu   sync.RWMutex
	days map[string]domain.DaySchedule
}

// NewFileFeed создает календарь и сразу загружает файл.
// Отсутствующий файл даёт пустой календарь.
func NewFileFeed(path string, logger Logger) (*FileFeed, error) {
	f := &FileFeed{
		path:   path,
		logger: logger,
		days:   map[string]domain.DaySchedule{},
	}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Reload перечитывает файл расписания
func (f *FileFeed) Reload() error {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		f.logger.Warn("ScheduleFeed: file %s not found, using empty schedule", f.path)
		f.swap(map[string]domain.DaySchedule{})
		return nil
	}
	if err != nil {
		return fmt.Errorf("schedule.feed: read %s: %w", f.path, err)
	}

	days, err := Parse(data)
	if err != nil {
		return err
	}

	f.swap(days)
	f.logger.Info("ScheduleFeed: loaded %d days from %s", len(days), f.path)
	return nil
}

// DaySchedule возвращает расписание дня или nil, если день не опубликован
func (f *FileFeed) DaySchedule(ctx context.Context, date string) (*domain.DaySchedule, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	day, ok := f.days[date]
	if !ok {
		return nil, nil
	}
	return &day, nil
}

func (f *FileFeed) swap(days map[string]domain.DaySchedule) {
	f.mu.Lock()
	f.days = days
	f.mu.Unlock()
}

// Parse разбирает и проверяет TOML-описание расписания
func Parse(data []byte) (map[string]domain.DaySchedule, error) {
	var raw fileFormat
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
	}

	days := make(map[string]domain.DaySchedule, len(raw.Days))
	for _, d := range raw.Days {
		if _, err := domain.ParseDate(d.Date); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFeed, err)
		}
		if _, dup := days[d.Date]; dup {
			return nil, fmt.Errorf("%w: date %s is listed twice", ErrInvalidFeed, d.Date)
		}

		for _, o := range d.Education {
			if !o.Language.IsValid() || !o.Mode.IsValid() {
				return nil, fmt.Errorf("%w: %s: unknown offering %s/%s", ErrInvalidFeed, d.Date, o.Language, o.Mode)
			}
			if err := validateSlots(o.Slots); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFeed, d.Date, err)
			}
		}
		for _, o := range d.Recording {
			if !o.Language.IsValid() {
				return nil, fmt.Errorf("%w: %s: unknown recording language %s", ErrInvalidFeed, d.Date, o.Language)
			}
			if err := validateSlots(o.Slots); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFeed, d.Date, err)
			}
		}

		days[d.Date] = domain.DaySchedule{
			Date:      d.Date,
			Education: d.Education,
			Recording: d.Recording,
		}
	}

	return days, nil
}

func validateSlots(slots []int) error {
	for _, s := range slots {
		if s < domain.MinSlot || s > domain.MaxSlot {
			return fmt.Errorf("slot %d out of range %d..%d", s, domain.MinSlot, domain.MaxSlot)
		}
	}
	return nil
}
