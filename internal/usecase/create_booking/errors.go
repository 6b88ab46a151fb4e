package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrDateOutOfRange возвращается для прошедших дат и дат за пределами окна записи
	ErrDateOutOfRange = fmt.Errorf("%w: date is outside the booking window", ErrInvalidInput)

	// ErrSlotClosed возвращается, когда календарь не открывает слот для записи
	ErrSlotClosed = errors.New("create_booking: slot is not open in the schedule")

	// ErrDuplicateBooking возвращается, когда сотрудник уже записан на этот слот
	ErrDuplicateBooking = errors.New("create_booking: duplicate booking")

	// ErrLanguageAlreadyBooked возвращается, когда у сотрудника уже есть активная запись на этот язык
	ErrLanguageAlreadyBooked = errors.New("create_booking: language already booked")

	// ErrSlotFull возвращается, когда все места в слоте заняты
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrStoreUnavailable возвращается при временной недоступности хранилища
	ErrStoreUnavailable = errors.New("create_booking: store unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
