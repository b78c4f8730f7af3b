package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nao1215/tunegate/pkg/httpclient"
)

// DefaultBaseURL はSpotify Web APIのベースURL。
const DefaultBaseURL = "https://api.spotify.com/v1"

// 上流APIのエンドポイント。
const (
	endpointSearch          = "/search"
	endpointGenreSeeds      = "/recommendations/available-genre-seeds"
	endpointRecommendations = "/recommendations"
	endpointMe              = "/me"
	endpointMyPlaylists     = "/me/playlists"
)

// Client は上流APIを呼び出してレスポンスを整形するクライアント。
// 状態を持たないため、複数のリクエストから並行に利用できる。
type Client struct {
	// http は上流APIとの通信に使うHTTPクライアント。
	http *httpclient.Client
}

// NewClient は新しいクライアントを生成する。
func NewClient(hc *httpclient.Client) *Client {
	return &Client{http: hc}
}

// Search はクエリで検索し、検索種別に応じた結果を返す。
// トラック検索ではプレビューURLを持つトラックだけを返す。
func (c *Client) Search(ctx context.Context, token, query string, searchType SearchType) (SearchResult, error) {
	if searchType != SearchTypeTrack && searchType != SearchTypeArtist {
		return SearchResult{}, fmt.Errorf("%w: %q", ErrUnsupportedSearchType, searchType)
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("type", string(searchType))

	var resp searchResponse
	if err := c.http.GetJSON(withToken(ctx, token), endpointSearch, q, &resp); err != nil {
		return SearchResult{}, classify(endpointSearch, err)
	}

	result := SearchResult{Type: searchType}
	switch searchType {
	case SearchTypeTrack:
		if resp.Tracks == nil || resp.Tracks.Items == nil {
			return SearchResult{}, missingField(endpointSearch, "tracks.items")
		}
		tracks, err := toTracks(endpointSearch, resp.Tracks.Items)
		if err != nil {
			return SearchResult{}, err
		}
		result.Tracks = tracks
	case SearchTypeArtist:
		if resp.Artists == nil || resp.Artists.Items == nil {
			return SearchResult{}, missingField(endpointSearch, "artists.items")
		}
		artists, err := toArtists(endpointSearch, resp.Artists.Items)
		if err != nil {
			return SearchResult{}, err
		}
		result.Artists = artists
	}
	return result, nil
}

// GenreSeeds はおすすめ取得に使えるジャンルシードの一覧を返す。
func (c *Client) GenreSeeds(ctx context.Context, token string) ([]string, error) {
	var resp genreSeedsResponse
	if err := c.http.GetJSON(withToken(ctx, token), endpointGenreSeeds, nil, &resp); err != nil {
		return nil, classify(endpointGenreSeeds, err)
	}
	if resp.Genres == nil {
		return nil, missingField(endpointGenreSeeds, "genres")
	}
	return resp.Genres, nil
}

// Recommendations はシードに基づくおすすめトラックを返す。
// 各シードはカンマ区切りで連結して送信する。
func (c *Client) Recommendations(ctx context.Context, token string, seeds Seeds) ([]Track, error) {
	q := url.Values{}
	q.Set("seed_artists", strings.Join(seeds.Artists, ","))
	q.Set("seed_genres", strings.Join(seeds.Genres, ","))
	q.Set("seed_tracks", strings.Join(seeds.Tracks, ","))

	var resp recommendationsResponse
	if err := c.http.GetJSON(withToken(ctx, token), endpointRecommendations, q, &resp); err != nil {
		return nil, classify(endpointRecommendations, err)
	}
	if resp.Tracks == nil {
		return nil, missingField(endpointRecommendations, "tracks")
	}
	return toTracks(endpointRecommendations, resp.Tracks)
}

// CurrentUserID はトークンの持ち主のユーザーIDを返す。
func (c *Client) CurrentUserID(ctx context.Context, token string) (string, error) {
	var resp profileResponse
	if err := c.http.GetJSON(withToken(ctx, token), endpointMe, nil, &resp); err != nil {
		return "", classify(endpointMe, err)
	}
	if resp.ID == "" {
		return "", missingField(endpointMe, "id")
	}
	return resp.ID, nil
}

// OwnedPlaylists はトークンの持ち主がフォローするプレイリストのうち、
// userIDが所有するものだけをoffsetから1ページ分返す。
func (c *Client) OwnedPlaylists(ctx context.Context, token, userID string, offset int) ([]Playlist, error) {
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))

	var resp playlistPage
	if err := c.http.GetJSON(withToken(ctx, token), endpointMyPlaylists, q, &resp); err != nil {
		return nil, classify(endpointMyPlaylists, err)
	}
	if resp.Items == nil {
		return nil, missingField(endpointMyPlaylists, "items")
	}
	return toOwnedPlaylists(endpointMyPlaylists, resp.Items, userID)
}

// AddTrackToPlaylist はプレイリストにトラックを追加する。
// トラックURIはクエリ文字列としてパーセントエンコードして送信する。
func (c *Client) AddTrackToPlaylist(ctx context.Context, token, playlistID, trackURI string) error {
	endpoint := "/playlists/" + url.PathEscape(playlistID) + "/tracks"

	q := url.Values{}
	q.Set("uris", trackURI)

	if err := c.http.PostJSON(withToken(ctx, token), endpoint, q, nil, nil); err != nil {
		return classify(endpoint, err)
	}
	return nil
}

// withToken はリクエスト用のコンテキストにアクセストークンを設定する。
func withToken(ctx context.Context, token string) context.Context {
	return httpclient.WithBearerToken(ctx, token)
}
