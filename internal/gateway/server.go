package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/tunegate/internal/spotify"
	"github.com/nao1215/tunegate/pkg/httpclient"
	"github.com/nao1215/tunegate/pkg/middleware"
)

// shutdownTimeout は停止シグナル受信後に処理中のリクエストを待つ時間。
const shutdownTimeout = 10 * time.Second

// Server はAPI GatewayサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// spotify は上流APIのクライアント。
	spotify *spotify.Client
	// defaultSeeds はおすすめ取得のデフォルトシード。
	defaultSeeds spotify.Seeds
}

// NewServer は新しいGatewayサーバーを生成する。
func NewServer(cfg Config) (*Server, error) {
	if cfg.UpstreamURL == "" {
		return nil, errors.New("上流APIのURLが設定されていません")
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	s := &Server{
		router:       router,
		port:         cfg.Port,
		spotify:      spotify.NewClient(httpclient.New(cfg.UpstreamURL, httpclient.WithTimeout(cfg.UpstreamTimeout))),
		defaultSeeds: cfg.DefaultSeeds,
	}
	s.setupRoutes()

	return s, nil
}

// Handler はサーバーのHTTPハンドラを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるまで待つ。
// キャンセル後は処理中のリクエストの完了を待ってから停止する。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTPサーバーの起動に失敗: %w", err)
	case <-ctx.Done():
		log.Println("Gatewayサービスを停止します")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTPサーバーの停止に失敗: %w", err)
		}
		return nil
	}
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	// 上流APIを呼ぶエンドポイント（アクセストークン必須）
	api := s.router.Group("/")
	api.Use(middleware.BearerToken())
	{
		// 検索
		api.GET("/search/:search_type/:query", s.handleSearch())
		// ジャンルシード一覧
		api.GET("/genres", s.handleGenres())
		// おすすめトラック
		api.GET("/recommend", s.handleRecommend())
		// プレイリスト一覧
		api.GET("/playlists", s.handlePlaylists())
		api.GET("/playlists/:user_id", s.handlePlaylists())
		// プレイリストへのトラック追加
		api.GET("/add_playlist/:playlist_id/:track_uri", s.handleAddPlaylist())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "gateway"})
	})
}

// searchURI は検索エンドポイントのパスパラメータ。
type searchURI struct {
	// SearchType は検索種別（track または artist）。
	SearchType string `uri:"search_type" binding:"required,oneof=track artist"`
	// Query は検索クエリ。
	Query string `uri:"query" binding:"required"`
}

// recommendQuery はおすすめエンドポイントのクエリパラメータ。
// 同じキーを繰り返して複数のシードを指定できる。
type recommendQuery struct {
	Artists []string `form:"artists"`
	Genres  []string `form:"genres"`
	Tracks  []string `form:"tracks"`
}

// playlistsQuery はプレイリスト一覧エンドポイントのクエリパラメータ。
type playlistsQuery struct {
	// Offset は上流APIのページ開始位置。
	Offset int `form:"offset" binding:"min=0"`
}

// handleSearch はトラックまたはアーティストを検索するハンドラを返す。
func (s *Server) handleSearch() gin.HandlerFunc {
	return func(c *gin.Context) {
		var uri searchURI
		if err := c.ShouldBindUri(&uri); err != nil {
			respondError(c, &InvalidRequestError{Field: "search_type", Reason: "track または artist を指定してください"})
			return
		}
		if strings.TrimSpace(uri.Query) == "" {
			respondError(c, &InvalidRequestError{Field: "query", Reason: "検索クエリが空です"})
			return
		}

		result, err := s.spotify.Search(c.Request.Context(), middleware.GetToken(c), uri.Query, spotify.SearchType(uri.SearchType))
		if err != nil {
			if errors.Is(err, spotify.ErrUnsupportedSearchType) {
				err = &InvalidRequestError{Field: "search_type", Reason: err.Error()}
			}
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, result.Items())
	}
}

// handleGenres はおすすめ取得に使えるジャンルシード一覧を返すハンドラを返す。
func (s *Server) handleGenres() gin.HandlerFunc {
	return func(c *gin.Context) {
		genres, err := s.spotify.GenreSeeds(c.Request.Context(), middleware.GetToken(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, genres)
	}
}

// handleRecommend はシードに基づくおすすめトラックを返すハンドラを返す。
// 指定されなかった種類のシードには設定のデフォルト値を使う。
func (s *Server) handleRecommend() gin.HandlerFunc {
	return func(c *gin.Context) {
		var q recommendQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondError(c, &InvalidRequestError{Field: "query", Reason: err.Error()})
			return
		}

		seeds := spotify.Seeds{
			Artists: orDefault(q.Artists, s.defaultSeeds.Artists),
			Genres:  orDefault(q.Genres, s.defaultSeeds.Genres),
			Tracks:  orDefault(q.Tracks, s.defaultSeeds.Tracks),
		}
		if err := validateSeeds(seeds); err != nil {
			respondError(c, err)
			return
		}

		tracks, err := s.spotify.Recommendations(c.Request.Context(), middleware.GetToken(c), seeds)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tracks)
	}
}

// handlePlaylists はユーザーが所有するプレイリスト一覧を返すハンドラを返す。
// パスにユーザーIDが無い場合はトークンの持ち主を上流APIに問い合わせる。
func (s *Server) handlePlaylists() gin.HandlerFunc {
	return func(c *gin.Context) {
		var q playlistsQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondError(c, &InvalidRequestError{Field: "offset", Reason: "0以上の整数を指定してください"})
			return
		}

		ctx := c.Request.Context()
		token := middleware.GetToken(c)

		userID := c.Param("user_id")
		if userID == "" {
			id, err := s.spotify.CurrentUserID(ctx, token)
			if err != nil {
				respondError(c, err)
				return
			}
			userID = id
		}

		playlists, err := s.spotify.OwnedPlaylists(ctx, token, userID, q.Offset)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, playlists)
	}
}

// handleAddPlaylist はプレイリストにトラックを追加するハンドラを返す。
// 成功時はボディなしの204を返す。
func (s *Server) handleAddPlaylist() gin.HandlerFunc {
	return func(c *gin.Context) {
		playlistID := strings.TrimSpace(c.Param("playlist_id"))
		trackURI := strings.TrimSpace(c.Param("track_uri"))
		if playlistID == "" {
			respondError(c, &InvalidRequestError{Field: "playlist_id", Reason: "プレイリストIDが空です"})
			return
		}
		if trackURI == "" {
			respondError(c, &InvalidRequestError{Field: "track_uri", Reason: "トラックURIが空です"})
			return
		}

		if err := s.spotify.AddTrackToPlaylist(c.Request.Context(), middleware.GetToken(c), playlistID, trackURI); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// orDefault はvaluesが空の場合にdefaultsを返す。
func orDefault(values, defaults []string) []string {
	if len(values) == 0 {
		return defaults
	}
	return values
}

// validateSeeds はシードが空でなくカンマを含まないことを検証する。
// シードはカンマ区切りで連結して送信するため、カンマを含む値は区別できない。
func validateSeeds(seeds spotify.Seeds) error {
	groups := []struct {
		field  string
		values []string
	}{
		{field: "artists", values: seeds.Artists},
		{field: "genres", values: seeds.Genres},
		{field: "tracks", values: seeds.Tracks},
	}
	for _, g := range groups {
		for _, v := range g.values {
			if strings.TrimSpace(v) == "" {
				return &InvalidRequestError{Field: g.field, Reason: "空のシードは指定できません"}
			}
			if strings.Contains(v, ",") {
				return &InvalidRequestError{Field: g.field, Reason: fmt.Sprintf("シードにカンマは使えません: %q", v)}
			}
		}
	}
	return nil
}
