package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 1 << 20

// Машиночитаемые коды ошибок
const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeDuplicateBooking      = "DUPLICATE_BOOKING"
	CodeLanguageAlreadyBooked = "LANGUAGE_ALREADY_BOOKED"
	CodeSlotFull              = "SLOT_FULL"
	CodeSlotClosed            = "SLOT_CLOSED"
	CodeTooLateToCancel       = "TOO_LATE_TO_CANCEL"
	CodeAlreadyCanceled       = "ALREADY_CANCELED"
	CodeNotFound              = "NOT_FOUND"
	CodeStoreUnavailable      = "STORE_UNAVAILABLE"
	CodeRateLimited           = "RATE_LIMITED"
	CodeInternal              = "INTERNAL_ERROR"
)

const (
	msgInternalError    = "서버 내부 오류가 발생했습니다"
	msgStoreUnavailable = "일시적으로 저장소를 사용할 수 없습니다. 잠시 후 다시 시도해 주세요"
	msgRateLimited      = "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON пишет JSON-ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError пишет ошибку с машиночитаемым кодом и текстом для пользователя
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeValidation, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusConflict, code, message)
}

func RespondServiceUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable, CodeStoreUnavailable, msgStoreUnavailable)
}

func RespondTooManyRequests(w http.ResponseWriter) {
	RespondError(w, http.StatusTooManyRequests, CodeRateLimited, msgRateLimited)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, msgInternalError)
}

// DecodeJSON декодирует тело запроса в v; неизвестные поля и лишние данные считаются ошибкой
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	if decoder.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}
