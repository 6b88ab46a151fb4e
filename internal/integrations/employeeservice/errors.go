package employeeservice

import "errors"

var (
	// ErrEmployeeNotFound возвращается, когда сотрудник не найден в справочнике
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("employeeservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("employeeservice client: invalid response")

	// ErrCache возвращается при ошибках кэша справочника
	ErrCache = errors.New("employeeservice cache: error")
)
