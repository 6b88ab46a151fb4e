package blob

import "errors"

var (
	// ErrNotFound возвращается, когда документа по указанному пути нет
	ErrNotFound = errors.New("blob.store: document not found")

	// ErrInvalidPath возвращается при пустом пути
	ErrInvalidPath = errors.New("blob.store: invalid path")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blob.store: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blob.store: failed to execute query")

	// ErrUnavailable возвращается, когда хранилище не ответило за отведённые попытки
	ErrUnavailable = errors.New("blob.store: store unavailable")
)
