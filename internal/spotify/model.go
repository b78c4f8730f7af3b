package spotify

// Image はアルバムやアーティストの画像。
type Image struct {
	// URL は画像のURL。
	URL string `json:"url"`
	// Height は画像の高さ（ピクセル）。不明な場合はnull。
	Height *int `json:"height"`
	// Width は画像の幅（ピクセル）。不明な場合はnull。
	Width *int `json:"width"`
}

// Track はフロントエンドに返すトラック。
// プレビューURLを持つトラックだけが生成される。
type Track struct {
	// ID はトラックID。
	ID string `json:"id"`
	// URI はトラックURI（例: "spotify:track:xxx"）。
	URI string `json:"uri"`
	// Name はトラック名。
	Name string `json:"name"`
	// PreviewURL は試聴クリップのURL。
	PreviewURL string `json:"preview_url"`
	// Image はアルバム画像の先頭要素。アルバムに画像が無い場合はnull。
	Image *Image `json:"image"`
	// Artists はアーティスト名の一覧。
	Artists []string `json:"artists"`
}

// Artist はフロントエンドに返すアーティスト。
type Artist struct {
	// ID はアーティストID。
	ID string `json:"id"`
	// Name はアーティスト名。
	Name string `json:"name"`
	// Images はアーティスト画像の一覧。
	Images []Image `json:"images"`
	// Genres はジャンルの一覧。
	Genres []string `json:"genres"`
}

// Playlist はフロントエンドに返すプレイリスト。
type Playlist struct {
	// ID はプレイリストID。
	ID string `json:"id"`
	// Name はプレイリスト名。
	Name string `json:"name"`
}

// SearchType は検索種別。
type SearchType string

const (
	// SearchTypeTrack はトラック検索。
	SearchTypeTrack SearchType = "track"
	// SearchTypeArtist はアーティスト検索。
	SearchTypeArtist SearchType = "artist"
)

// SearchResult は検索結果。Typeに応じてTracksかArtistsのどちらか一方だけが設定される。
type SearchResult struct {
	// Type は検索種別。
	Type SearchType
	// Tracks はType == SearchTypeTrackの場合の結果。
	Tracks []Track
	// Artists はType == SearchTypeArtistの場合の結果。
	Artists []Artist
}

// Items はレスポンスとして返す一覧を返す。
func (r SearchResult) Items() any {
	if r.Type == SearchTypeTrack {
		return r.Tracks
	}
	return r.Artists
}

// Seeds はおすすめトラック取得に使うシード。
type Seeds struct {
	// Artists はアーティストIDの一覧。
	Artists []string
	// Genres はジャンル名の一覧。
	Genres []string
	// Tracks はトラックIDの一覧。
	Tracks []string
}

// toTracks はプレビューURLを持つトラックだけを抽出してTrackに変換する。
// 順序は維持する。nullの要素は読み飛ばす。
func toTracks(endpoint string, items []*wireTrack) ([]Track, error) {
	tracks := make([]Track, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if item.ID == "" {
			return nil, missingField(endpoint, "track.id")
		}
		if item.URI == "" {
			return nil, missingField(endpoint, "track.uri")
		}
		if item.PreviewURL == nil || *item.PreviewURL == "" {
			continue
		}

		var image *Image
		if len(item.Album.Images) > 0 {
			first := toImage(item.Album.Images[0])
			image = &first
		}

		artists := make([]string, 0, len(item.Artists))
		for _, a := range item.Artists {
			artists = append(artists, a.Name)
		}

		tracks = append(tracks, Track{
			ID:         item.ID,
			URI:        item.URI,
			Name:       item.Name,
			PreviewURL: *item.PreviewURL,
			Image:      image,
			Artists:    artists,
		})
	}
	return tracks, nil
}

// toArtists はアーティストを絞り込まずに変換する。
func toArtists(endpoint string, items []*wireArtist) ([]Artist, error) {
	artists := make([]Artist, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if item.ID == "" {
			return nil, missingField(endpoint, "artist.id")
		}

		images := make([]Image, 0, len(item.Images))
		for _, img := range item.Images {
			images = append(images, toImage(img))
		}
		genres := item.Genres
		if genres == nil {
			genres = []string{}
		}

		artists = append(artists, Artist{
			ID:     item.ID,
			Name:   item.Name,
			Images: images,
			Genres: genres,
		})
	}
	return artists, nil
}

// toOwnedPlaylists はuserIDが所有するプレイリストだけを抽出する。
func toOwnedPlaylists(endpoint string, items []*wirePlaylist, userID string) ([]Playlist, error) {
	playlists := make([]Playlist, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if item.ID == "" {
			return nil, missingField(endpoint, "playlist.id")
		}
		if item.Owner == nil || item.Owner.ID == "" {
			return nil, missingField(endpoint, "playlist.owner.id")
		}
		if item.Owner.ID != userID {
			continue
		}
		playlists = append(playlists, Playlist{ID: item.ID, Name: item.Name})
	}
	return playlists, nil
}

func toImage(img wireImage) Image {
	return Image{URL: img.URL, Height: img.Height, Width: img.Width}
}
