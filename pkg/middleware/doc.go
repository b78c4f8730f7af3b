// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// アクセストークンの抽出、リクエストIDの付与、パニックリカバリ、
// CORS設定など、gatewayサービスで使用するミドルウェアを含む。
package middleware
