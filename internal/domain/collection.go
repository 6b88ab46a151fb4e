package domain

import "time"

// MonthlyCollection все бронирования одного месяца.
// Хранится и перезаписывается целиком, это единица конкурентного доступа.
type MonthlyCollection struct {
	Month       string        `json:"month"` // "2025-09"
	Education   []Reservation `json:"education"`
	Recording   []Reservation `json:"recording"`
	LastUpdated time.Time     `json:"lastUpdated"`
}

// NewMonthlyCollection создает пустую коллекцию месяца
func NewMonthlyCollection(month string) *MonthlyCollection {
	return &MonthlyCollection{
		Month:     month,
		Education: []Reservation{},
		Recording: []Reservation{},
	}
}

// Records возвращает список записей указанного типа
func (c *MonthlyCollection) Records(activityType ActivityType) []Reservation {
	if activityType == ActivityRecording {
		return c.Recording
	}
	return c.Education
}

// SetRecords заменяет список записей указанного типа
func (c *MonthlyCollection) SetRecords(activityType ActivityType, records []Reservation) {
	if activityType == ActivityRecording {
		c.Recording = records
		return
	}
	c.Education = records
}

// Append добавляет запись в список её типа
func (c *MonthlyCollection) Append(r Reservation) {
	c.SetRecords(r.ActivityType, append(c.Records(r.ActivityType), r))
}

// IndexOf возвращает индекс записи с указанным id или -1
func (c *MonthlyCollection) IndexOf(activityType ActivityType, id string) int {
	for i := range c.Records(activityType) {
		if c.Records(activityType)[i].ID == id {
			return i
		}
	}
	return -1
}

// Remove удаляет запись по индексу, сохраняя порядок остальных
func (c *MonthlyCollection) Remove(activityType ActivityType, idx int) {
	records := c.Records(activityType)
	if idx < 0 || idx >= len(records) {
		return
	}
	out := make([]Reservation, 0, len(records)-1)
	out = append(out, records[:idx]...)
	out = append(out, records[idx+1:]...)
	c.SetRecords(activityType, out)
}

// Normalize приводит статусы всех записей к каноническому виду и
// заменяет nil-списки пустыми
func (c *MonthlyCollection) Normalize() {
	if c.Education == nil {
		c.Education = []Reservation{}
	}
	if c.Recording == nil {
		c.Recording = []Reservation{}
	}
	for i := range c.Education {
		c.Education[i].Status = NormalizeStatus(c.Education[i].Status)
	}
	for i := range c.Recording {
		c.Recording[i].Status = NormalizeStatus(c.Recording[i].Status)
	}
}

// ActiveCount количество активных записей указанного типа
func (c *MonthlyCollection) ActiveCount(activityType ActivityType) int {
	count := 0
	for i := range c.Records(activityType) {
		if c.Records(activityType)[i].IsActive() {
			count++
		}
	}
	return count
}

// CollectionKey ключ коллекции (месяц, тип активности), единица сериализации записи
func CollectionKey(month string, activityType ActivityType) string {
	return month + "/" + string(activityType)
}
