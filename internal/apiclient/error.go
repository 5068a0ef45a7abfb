package apiclient

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind классифицирует неудачный исход запроса
type Kind string

const (
	// KindRequestFailed - сервер ответил не-2xx (или 2xx с полем "error")
	KindRequestFailed Kind = "request_failed"
	// KindValidation - ввод отклонён до отправки запроса
	KindValidation Kind = "validation_failed"
	// KindTransport - соединение, DNS, отменённый контекст
	KindTransport Kind = "transport"
	// KindDecode - тело ответа не разобрать
	KindDecode Kind = "decode"
)

var (
	ErrRequestFailed    = errors.New("request failed")
	ErrValidationFailed = errors.New("validation failed")
)

// Error неудачная ветка результата запроса
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is позволяет сравнивать с ErrRequestFailed / ErrValidationFailed
func (e *Error) Is(target error) bool {
	switch target {
	case ErrRequestFailed:
		return e.Kind == KindRequestFailed
	case ErrValidationFailed:
		return e.Kind == KindValidation
	}
	return false
}

// NewValidationError ошибка ввода, обнаруженная до сетевого вызова
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

func requestFailed(status int, body string) *Error {
	msg := body
	if msg == "" {
		msg = fmt.Sprintf("Request failed with status %d", status)
	}
	return &Error{Kind: KindRequestFailed, StatusCode: status, Message: msg}
}

// KindOf возвращает Kind для ошибки клиента, пустую строку для чужих ошибок
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}
