package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// contextKeyToken はGinコンテキストにアクセストークンを格納するためのキー。
const contextKeyToken = "access_token"

// queryKeyToken はアクセストークンを受け取るクエリパラメータ名。
const queryKeyToken = "token"

// BearerToken は呼び出し元のアクセストークンを取り出すGinミドルウェアを返す。
// クエリパラメータ "token" を優先し、無ければ Authorization: Bearer ヘッダーを使う。
// トークンの中身は検証せず、上流APIにそのまま転送する。
func BearerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.Query(queryKeyToken))
		if token == "" {
			if authHeader := c.GetHeader("Authorization"); authHeader != "" {
				bearer, found := strings.CutPrefix(authHeader, "Bearer ")
				if !found {
					c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
						"error": "Bearer トークン形式が不正です",
					})
					return
				}
				token = strings.TrimSpace(bearer)
			}
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "アクセストークンが必要です",
			})
			return
		}

		c.Set(contextKeyToken, token)
		c.Next()
	}
}

// GetToken はGinコンテキストからアクセストークンを取得する。
// BearerTokenミドルウェアが事前に適用されている必要がある。
func GetToken(c *gin.Context) string {
	token, _ := c.Get(contextKeyToken)
	if s, ok := token.(string); ok {
		return s
	}
	return ""
}
