// Package spotify は音楽ストリーミングAPI（Spotify Web API）の呼び出しと、
// フロントエンド向けのレスポンス整形を提供する。
//
// 上流APIの各レスポンスは型付きの構造体でデコードし、境界で必須フィールドを検証する。
// 検証に失敗した場合はResponseShapeError、上流の通信失敗や非2xxステータスは
// UpstreamErrorとして返す。取得したデータは保持しない。
package spotify
