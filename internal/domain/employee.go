package domain

// Employee запись сотрудника из справочника
type Employee struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// Identity результат разрешения личности вызывающего.
// RawID: идентификатор, переданный клиентом (может быть логином),
// CanonicalID: идентификатор сотрудника из справочника.
type Identity struct {
	CanonicalID string
	RawID       string
	Email       string
	Name        string
	Department  string
	Position    string
	Resolved    bool // false, если справочник недоступен или сотрудник не найден
}

// Matches проверяет, принадлежит ли employeeID этой личности
// Во время миграции записи могут содержать как канонический, так и сырой идентификатор
func (i Identity) Matches(employeeID string) bool {
	if employeeID == "" {
		return false
	}
	return employeeID == i.CanonicalID || (i.RawID != "" && employeeID == i.RawID)
}
