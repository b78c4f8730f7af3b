// Package gateway はAPI Gatewayサービスの内部実装を提供する。
//
// ブラウザからのリクエストを音楽ストリーミングAPIへの呼び出しに変換し、
// レスポンスをフロントエンド向けの形に整形して返す。呼び出し元のアクセストークンは
// リクエストごとに受け取り、上流APIにBearerトークンとして転送する。
// 状態は持たず、取得したデータも保存しない。
package gateway
