package gateway

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/nao1215/tunegate/internal/spotify"
)

// Config はGatewayサービスの設定。起動時に一度だけ組み立ててServerに渡す。
type Config struct {
	// Port はサーバーのリッスンポート。
	Port string
	// UpstreamURL は音楽ストリーミングAPIのベースURL。
	UpstreamURL string
	// UpstreamTimeout は上流APIへのリクエストのタイムアウト。
	UpstreamTimeout time.Duration
	// AllowedOrigins はCORSで許可するオリジン。
	AllowedOrigins []string
	// DefaultSeeds はおすすめ取得でシードが指定されなかった場合に使う値。
	DefaultSeeds spotify.Seeds
}

// DefaultConfig は環境変数が何も設定されていない場合の設定を返す。
func DefaultConfig() Config {
	return Config{
		Port:            "8080",
		UpstreamURL:     spotify.DefaultBaseURL,
		UpstreamTimeout: 30 * time.Second,
		AllowedOrigins:  []string{"http://localhost:3000"},
		DefaultSeeds: spotify.Seeds{
			Artists: []string{"3MZsBdqDrRTJihTHQrO6Dq"},
			Genres:  []string{"rap"},
			Tracks:  []string{"1jcNHi5D96aaD0T5f1OjFY"},
		},
	}
}

// LoadConfig は.envファイルと環境変数から設定を読み込む。
// .envファイルが存在しない場合は環境変数だけを使う。
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf(".envファイルの読み込みに失敗: %w", err)
		}
		log.Println(".envファイルが無いため環境変数のみを使用します")
	}
	return configFromEnv()
}

// configFromEnv は環境変数から設定を組み立てる。
func configFromEnv() (Config, error) {
	cfg := DefaultConfig()

	cfg.Port = getEnvOr("PORT", cfg.Port)
	cfg.UpstreamURL = getEnvOr("SPOTIFY_API_URL", cfg.UpstreamURL)

	if raw := os.Getenv("UPSTREAM_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("UPSTREAM_TIMEOUTの形式が不正です: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("UPSTREAM_TIMEOUTは正の値である必要があります: %s", raw)
		}
		cfg.UpstreamTimeout = d
	}

	if origins := splitList(os.Getenv("FRONTEND_URL")); len(origins) > 0 {
		cfg.AllowedOrigins = origins
	}
	if seeds := splitList(os.Getenv("DEFAULT_SEED_ARTISTS")); len(seeds) > 0 {
		cfg.DefaultSeeds.Artists = seeds
	}
	if seeds := splitList(os.Getenv("DEFAULT_SEED_GENRES")); len(seeds) > 0 {
		cfg.DefaultSeeds.Genres = seeds
	}
	if seeds := splitList(os.Getenv("DEFAULT_SEED_TRACKS")); len(seeds) > 0 {
		cfg.DefaultSeeds.Tracks = seeds
	}

	return cfg, nil
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// splitList はカンマ区切りの文字列を分割し、空要素を取り除く。
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
