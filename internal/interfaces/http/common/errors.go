package common

import (
	"errors"
	"net/http"
)

// APIError は HTTP ステータスを伴う業務エラー。バリデーション失敗などの
// クライアント起因のエラーをハンドラまで運び、エンベロープへ写像する。
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewBadRequest creates a 400 validation error.
func NewBadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

// StatusOf はエラーに対応する HTTP ステータスを返す。明示的なステータスを
// 持たないエラーは一律 500 として扱い、内部詳細はクライアントへ出さない。
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
