package reservations

import "errors"

var (
	// ErrCollectionNotFound возвращается, когда документа месяца ещё нет
	ErrCollectionNotFound = errors.New("reservations.repository: collection not found")

	// ErrInvalidKey возвращается при некорректном месяце или типе активности
	ErrInvalidKey = errors.New("reservations.repository: invalid collection key")

	// ErrDecode возвращается, когда документ не удалось разобрать
	ErrDecode = errors.New("reservations.repository: failed to decode collection")

	// ErrEncode возвращается, когда коллекцию не удалось сериализовать
	ErrEncode = errors.New("reservations.repository: failed to encode collection")

	// ErrStoreUnavailable возвращается при временной недоступности хранилища
	ErrStoreUnavailable = errors.New("reservations.repository: store unavailable")

	// ErrStore возвращается при прочих ошибках хранилища
	ErrStore = errors.New("reservations.repository: store error")
)
