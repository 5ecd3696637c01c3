// errors стандартизирует ответы об ошибках HTTP-слоя sections-service.
// На вход принимает ошибку сервисного слоя (service.Err*), на выход даёт:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей;
//   - имя поля для ошибок валидации формы.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/pribylovaa/hobby-sections/internal/models"
	"github.com/pribylovaa/hobby-sections/internal/service"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат ошибки для клиента.
// Code — короткий стабильный код; Message — безопасное описание;
// Field — поле формы, не прошедшее валидацию;
// RequestID — из X-Request-Id (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервиса в HTTP-статус и тело ответа.
//
// Маппинг:
//   - service.ErrInvalidArgument -> 400 (для *models.ValidationError добавляется field);
//   - service.ErrNotFound -> 404;
//   - service.ErrAlreadyExists -> 409;
//   - context.Canceled -> 499, context.DeadlineExceeded -> 504;
//   - nil и прочее -> 500/internal.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := base(err)
	resp := ErrorResponse{Error: APIError{Code: code, Message: msg}}

	var vErr *models.ValidationError
	if status == http.StatusBadRequest && stderrors.As(err, &vErr) {
		resp.Error.Field = vErr.Field
		resp.Error.Message = vErr.Message
	}

	return status, resp
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func base(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case stderrors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case stderrors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case stderrors.Is(err, service.ErrAlreadyExists):
		return http.StatusConflict, "already_exists", "already exists"
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
