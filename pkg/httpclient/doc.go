// Package httpclient は外部APIとのHTTP通信を行うクライアントを提供する。
//
// JSONのGET/POST、クエリ文字列のパーセントエンコード、
// コンテキスト経由のBearerトークン付与、非2xxステータスの型付きエラー化を担当する。
package httpclient
