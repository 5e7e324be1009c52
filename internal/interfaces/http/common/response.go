package common

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Envelope is the uniform success/data/message/timestamp response wrapper.
// 失敗時は data の代わりに error を載せる。
type Envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
}

// WriteSuccess writes a success envelope with the given payload and message.
func WriteSuccess(logger zerolog.Logger, w http.ResponseWriter, status int, data any, message string) {
	writeJSON(logger, w, status, Envelope{
		Success:   true,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// WriteError writes an error envelope carrying error instead of data.
func WriteError(logger zerolog.Logger, w http.ResponseWriter, status int, errMessage, message string) {
	writeJSON(logger, w, status, Envelope{
		Success:   false,
		Error:     errMessage,
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// writeJSON は JSON レスポンスの共通書き込み処理。
// Content-Type 設定とエラーログ出力を一元化して重複を避ける。
func writeJSON(logger zerolog.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("JSON エンコードに失敗")
	}
}
