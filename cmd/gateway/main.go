// API Gatewayサービスのエントリポイント。
// ブラウザからのリクエストを音楽ストリーミングAPIに転送し、レスポンスを整形して返す。
// 外部からアクセス可能な唯一のサービスであり、上流APIとの境界となる。
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/nao1215/tunegate/internal/gateway"
)

func main() {
	cfg, err := gateway.LoadConfig()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗: %v", err)
	}

	server, err := gateway.NewServer(cfg)
	if err != nil {
		log.Fatalf("Gatewayサーバーの初期化に失敗: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Gatewayサービスを起動します: :%s (upstream=%s)", cfg.Port, cfg.UpstreamURL)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("Gatewayサービスの起動に失敗: %v", err)
	}
}
