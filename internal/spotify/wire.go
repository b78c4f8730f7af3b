package spotify

// 上流APIのレスポンス構造。必要なフィールドだけを定義する。
// 必須のエンベロープはポインタまたはnilスライスで欠落を検出する。

// wireImage は画像オブジェクト。height/widthはnullの場合がある。
type wireImage struct {
	URL    string `json:"url"`
	Height *int   `json:"height"`
	Width  *int   `json:"width"`
}

type wireArtistRef struct {
	Name string `json:"name"`
}

type wireAlbum struct {
	Images []wireImage `json:"images"`
}

type wireTrack struct {
	ID         string          `json:"id"`
	URI        string          `json:"uri"`
	Name       string          `json:"name"`
	PreviewURL *string         `json:"preview_url"`
	Album      wireAlbum       `json:"album"`
	Artists    []wireArtistRef `json:"artists"`
}

type wireArtist struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Images []wireImage `json:"images"`
	Genres []string    `json:"genres"`
}

type wireOwner struct {
	ID string `json:"id"`
}

type wirePlaylist struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Owner *wireOwner `json:"owner"`
}

type trackPage struct {
	Items []*wireTrack `json:"items"`
}

type artistPage struct {
	Items []*wireArtist `json:"items"`
}

// searchResponse は GET /search のレスポンス。
// typeに応じてtracksかartistsのどちらかが入る。
type searchResponse struct {
	Tracks  *trackPage  `json:"tracks"`
	Artists *artistPage `json:"artists"`
}

// genreSeedsResponse は GET /recommendations/available-genre-seeds のレスポンス。
type genreSeedsResponse struct {
	Genres []string `json:"genres"`
}

// recommendationsResponse は GET /recommendations のレスポンス。
type recommendationsResponse struct {
	Tracks []*wireTrack `json:"tracks"`
}

// profileResponse は GET /me のレスポンス。
type profileResponse struct {
	ID string `json:"id"`
}

// playlistPage は GET /me/playlists のレスポンス。
type playlistPage struct {
	Items []*wirePlaylist `json:"items"`
}
