package domain

import (
	"fmt"
	"time"
)

// SlotTimeTable время начала каждого слота (HH:MM, местное время)
type SlotTimeTable map[int]string

// DefaultSlotTimeTable расписание слотов по умолчанию
func DefaultSlotTimeTable() SlotTimeTable {
	return SlotTimeTable{
		1: "08:30",
		2: "09:30",
		3: "10:30",
		4: "11:30",
		5: "13:30",
		6: "14:30",
		7: "15:30",
		8: "16:30",
	}
}

// Validate проверяет, что для каждого слота 1..8 задано корректное время
func (t SlotTimeTable) Validate() error {
	for slot := MinSlot; slot <= MaxSlot; slot++ {
		v, ok := t[slot]
		if !ok {
			return fmt.Errorf("start time for slot %d is not set", slot)
		}
		if _, err := time.Parse(TimeFormat, v); err != nil {
			return fmt.Errorf("invalid start time %q for slot %d: %w", v, slot, err)
		}
	}
	return nil
}

// StartTime вычисляет момент начала слота в указанную дату
func (t SlotTimeTable) StartTime(date string, slot int, loc *time.Location) (time.Time, error) {
	hhmm, ok := t[slot]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown slot %d", slot)
	}

	clock, err := time.Parse(TimeFormat, hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time %q for slot %d: %w", hhmm, slot, err)
	}

	day, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}

	if loc == nil {
		loc = time.UTC
	}

	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

// SlotAvailability занятость одного слота
type SlotAvailability struct {
	Slot         int
	Available    bool
	CurrentCount int
	MaxCount     int
}

// EducationOffering открытые слоты для пары (язык, формат) в конкретный день
type EducationOffering struct {
	Language Language `toml:"language"`
	Mode     Mode     `toml:"mode"`
	Slots    []int    `toml:"slots"`
}

// RecordingOffering открытые слоты записи для языка в конкретный день
type RecordingOffering struct {
	Language Language `toml:"language"`
	Slots    []int    `toml:"slots"`
}

// DaySchedule расписание одного дня из календаря слотов
type DaySchedule struct {
	Date      string
	Education []EducationOffering
	Recording []RecordingOffering
}

// IsEducationSlotOpen проверяет, открыт ли слот для пары (язык, формат)
func (d *DaySchedule) IsEducationSlotOpen(language Language, mode Mode, slot int) bool {
	if d == nil {
		return false
	}
	for _, o := range d.Education {
		if o.Language != language || o.Mode != mode {
			continue
		}
		for _, s := range o.Slots {
			if s == slot {
				return true
			}
		}
	}
	return false
}

// IsRecordingSlotOpen проверяет, открыт ли слот записи для языка
func (d *DaySchedule) IsRecordingSlotOpen(language Language, slot int) bool {
	if d == nil {
		return false
	}
	for _, o := range d.Recording {
		if o.Language != language {
			continue
		}
		for _, s := range o.Slots {
			if s == slot {
				return true
			}
		}
	}
	return false
}
