package dto

// ErrorResponse はエラー時の共通レスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse はメッセージのみを返すレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse は入力検証エラー（422）のレスポンスです。
type ValidationErrorResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}
