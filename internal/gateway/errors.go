package gateway

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/tunegate/internal/spotify"
	"github.com/nao1215/tunegate/pkg/middleware"
)

// InvalidRequestError は呼び出し元の入力が不正であることを表す。
type InvalidRequestError struct {
	// Field は不正な入力の名前。
	Field string
	// Reason は不正な理由。
	Reason string
}

// Error はエラーメッセージを返す。
func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// respondError はエラーの種類に応じたステータスコードでJSONエラーを返す。
//
//   - InvalidRequestError: 400
//   - UpstreamError: 上流の401/403はそのまま、それ以外は502
//   - ResponseShapeError: 502
//   - その他: 500
func respondError(c *gin.Context, err error) {
	var (
		invalidErr  *InvalidRequestError
		upstreamErr *spotify.UpstreamError
		shapeErr    *spotify.ResponseShapeError
	)

	switch {
	case errors.As(err, &invalidErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "リクエストが不正です: " + invalidErr.Error()})
	case errors.As(err, &upstreamErr):
		log.Printf("上流APIエラー: request_id=%s, error=%v", middleware.GetRequestID(c), err)
		switch upstreamErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			c.JSON(upstreamErr.StatusCode, gin.H{"error": "アクセストークンが上流APIに拒否されました"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "上流APIとの通信に失敗しました"})
		}
	case errors.As(err, &shapeErr):
		log.Printf("上流APIレスポンス不正: request_id=%s, error=%v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "上流APIのレスポンスが不正です"})
	default:
		log.Printf("内部エラー: request_id=%s, error=%v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "内部サーバーエラーが発生しました"})
	}
}
