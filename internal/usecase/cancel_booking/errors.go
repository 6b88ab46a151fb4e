package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrNotFound возвращается, когда бронирование сотрудника не найдено
	ErrNotFound = errors.New("cancel_booking: booking not found")

	// ErrTooLateToCancel возвращается, когда до начала занятия осталось меньше допустимого
	ErrTooLateToCancel = errors.New("cancel_booking: too late to cancel")

	// ErrAlreadyCanceled возвращается, когда бронирование уже отменено
	ErrAlreadyCanceled = errors.New("cancel_booking: booking already canceled")

	// ErrStoreUnavailable возвращается при временной недоступности хранилища
	ErrStoreUnavailable = errors.New("cancel_booking: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
