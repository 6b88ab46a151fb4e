package domain

import "time"

// Границы номеров слотов в дне
const (
	MinSlot = 1
	MaxSlot = 8
)

// Вместимость слота по формату занятий
const (
	OneToOneCapacity   = 1
	SmallGroupCapacity = 4
)

// Значения по умолчанию для отмены
const (
	DefaultCancelCutoff = 48 * time.Hour
	DefaultTimezone     = "Asia/Seoul"
)

// Business validation constants
const (
	MaxNameLength         = 100
	MaxNotesLength        = 500
	MaxCancelReasonLength = 500
)

// Time format constants
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// AllLanguages фиксированный набор языков, для которых считается доступность
var AllLanguages = []Language{
	LanguageKoreanEnglish,
	LanguageJapanese,
	LanguageChinese,
}

// AllModes фиксированный набор форматов занятий
var AllModes = []Mode{
	ModeOneToOne,
	ModeSmallGroup,
}

// AllActivityTypes все типы активностей, по одному документу на месяц для каждого
var AllActivityTypes = []ActivityType{
	ActivityEducation,
	ActivityRecording,
}
