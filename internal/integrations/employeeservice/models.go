package employeeservice

import "github.com/m04kA/SMC-ClassReservation/internal/domain"

// Employee модель сотрудника из справочника сотрудников
type Employee struct {
	EmployeeID string `json:"employeeId"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

// ToDomain конвертирует модель справочника в domain
func (e Employee) ToDomain() domain.Employee {
	return domain.Employee{
		ID:         e.EmployeeID,
		Email:      e.Email,
		Name:       e.Name,
		Department: e.Department,
		Position:   e.Position,
	}
}

// ErrorResponse модель ошибки от справочника
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
