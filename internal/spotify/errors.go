package spotify

import (
	"errors"
	"fmt"

	"github.com/nao1215/tunegate/pkg/httpclient"
)

// ErrUnsupportedSearchType は未対応の検索種別が指定されたことを表す。
var ErrUnsupportedSearchType = errors.New("未対応の検索種別です")

// UpstreamError は上流APIとの通信失敗、または上流APIが2xx以外を返したことを表す。
type UpstreamError struct {
	// Endpoint は呼び出した上流APIのパス。
	Endpoint string
	// StatusCode は上流APIが返したステータスコード。通信自体に失敗した場合は0。
	StatusCode int
	// Err は元のエラー。
	Err error
}

// Error はエラーメッセージを返す。
func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("上流APIがエラーを返しました: endpoint=%s, status=%d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("上流APIとの通信に失敗: endpoint=%s: %v", e.Endpoint, e.Err)
}

// Unwrap は元のエラーを返す。
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ResponseShapeError は上流APIのレスポンスが期待する構造と一致しないことを表す。
type ResponseShapeError struct {
	// Endpoint は呼び出した上流APIのパス。
	Endpoint string
	// Reason は不一致の内容。
	Reason string
	// Err はデコード失敗時の元のエラー。
	Err error
}

// Error はエラーメッセージを返す。
func (e *ResponseShapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("上流APIのレスポンスが不正です: endpoint=%s, reason=%s: %v", e.Endpoint, e.Reason, e.Err)
	}
	return fmt.Sprintf("上流APIのレスポンスが不正です: endpoint=%s, reason=%s", e.Endpoint, e.Reason)
}

// Unwrap は元のエラーを返す。
func (e *ResponseShapeError) Unwrap() error {
	return e.Err
}

// classify はhttpclientのエラーをUpstreamErrorかResponseShapeErrorに分類する。
func classify(endpoint string, err error) error {
	if errors.Is(err, httpclient.ErrDecode) {
		return &ResponseShapeError{Endpoint: endpoint, Reason: "JSONとして解釈できません", Err: err}
	}

	var statusErr *httpclient.StatusError
	if errors.As(err, &statusErr) {
		return &UpstreamError{Endpoint: endpoint, StatusCode: statusErr.StatusCode, Err: err}
	}
	return &UpstreamError{Endpoint: endpoint, Err: err}
}

// missingField はフィールド欠落を表すResponseShapeErrorを生成する。
func missingField(endpoint, field string) error {
	return &ResponseShapeError{Endpoint: endpoint, Reason: fmt.Sprintf("%s がありません", field)}
}
