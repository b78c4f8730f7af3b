package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

// defaultTimeout は外部APIへのリクエストのタイムアウト。
const defaultTimeout = 30 * time.Second

// ErrDecode はレスポンスボディがJSONとして解釈できなかったことを表す。
var ErrDecode = errors.New("レスポンスボディのデシリアライズに失敗")

// StatusError は接続先が2xx以外のステータスを返したことを表す。
type StatusError struct {
	// StatusCode は接続先が返したHTTPステータスコード。
	StatusCode int
	// Body はレスポンスボディ（診断用）。
	Body string
}

// Error はエラーメッセージを返す。
func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTPエラー: status=%d, body=%s", e.StatusCode, e.Body)
}

// Client は外部API通信用のHTTPクライアント。
// 全リクエストで同じhttp.Clientを再利用する。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL は接続先APIのベースURL。
	baseURL string
}

// Option はClientの設定を変更する関数。
type Option func(*Client)

// WithTimeout はリクエストのタイムアウトを設定する。
// 0以下の値は無視する。
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New は新しいHTTPクライアントを生成する。
// baseURLには接続先APIのベースURL（例: "https://api.spotify.com/v1"）を指定する。
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetJSON は指定パスにGETリクエストを送信する。
// レスポンスボディをresultにデシリアライズする。
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, result any) error {
	return c.doJSON(ctx, http.MethodGet, path, query, nil, result)
}

// PostJSON は指定パスにPOSTリクエストを送信する。
// bodyがnilの場合はボディなしで送信する。resultがnilの場合はレスポンスボディを読み捨てる。
func (c *Client) PostJSON(ctx context.Context, path string, query url.Values, body any, result any) error {
	return c.doJSON(ctx, http.MethodPost, path, query, body, result)
}

// doJSON はJSON形式のHTTPリクエストを実行する共通処理。
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	reqURL := c.baseURL + path
	if encoded := EncodeQuery(query); encoded != "" {
		reqURL += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// コンテキストからアクセストークンを伝播する
	if token, ok := ctx.Value(contextKeyToken).(*oauth2.Token); ok {
		token.SetAuthHeader(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}

	return nil
}

// EncodeQuery はクエリパラメータをキー順にパーセントエンコードする。
// url.Values.Encodeと異なり、空白は"+"ではなく"%20"になる。
func EncodeQuery(query url.Values) string {
	if len(query) == 0 {
		return ""
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		for _, v := range query[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(Escape(k))
			b.WriteByte('=')
			b.WriteString(Escape(v))
		}
	}
	return b.String()
}

// Escape は文字列をクエリ値としてパーセントエンコードする。
// 例: "spotify:track:abc 123" -> "spotify%3Atrack%3Aabc%20123"
func Escape(s string) string {
	// QueryEscapeはリテラルの"+"を"%2B"にするため、残る"+"は全て空白由来
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// contextKey はコンテキストキーの型。
type contextKey string

// contextKeyToken はコンテキストにアクセストークンを格納するためのキー。
const contextKeyToken contextKey = "access_token"

// WithBearerToken はコンテキストにアクセストークンを設定する。
// 設定されたトークンはAuthorization: Bearerヘッダーとして送信される。
func WithBearerToken(ctx context.Context, accessToken string) context.Context {
	return context.WithValue(ctx, contextKeyToken, &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	})
}
