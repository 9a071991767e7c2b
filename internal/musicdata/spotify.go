// file: internal/musicdata/spotify.go
// version: 1.2.0
// guid: 3d2e1f0a-9b8c-4d7e-6f5a-4b3c2d1e0f9a

package musicdata

import (
	"context"
	"fmt"
	"log"

	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/musiclib-tools/album-cleaner/internal/models"
)

const searchResultLimit = 10

// SpotifyLookup resolves albums against the Spotify catalog using the
// client-credentials flow. Results are relevance-gated before being
// accepted; the next-ranked result is tried when the top hit is
// rejected as irrelevant.
type SpotifyLookup struct {
	client         *spotify.Client
	matchThreshold float64
	limiter        *rate.Limiter
}

// NewSpotifyLookup authenticates against Spotify and returns a Lookup.
func NewSpotifyLookup(ctx context.Context, clientID, clientSecret string, matchThreshold float64) (*SpotifyLookup, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("spotify credentials are not configured")
	}

	config := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyauth.TokenURL,
	}
	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("spotify authentication failed: %w", err)
	}

	httpClient := spotifyauth.New().Client(ctx, token)
	return &SpotifyLookup{
		client:         spotify.New(httpClient),
		matchThreshold: matchThreshold,
		limiter:        rate.NewLimiter(rate.Limit(5), 1),
	}, nil
}

// SearchAlbum searches Spotify for query and returns the first
// relevant ranked result with its ordered track list. Returns
// ErrNotFound when nothing relevant matched.
func (s *SpotifyLookup) SearchAlbum(ctx context.Context, query, artistHint, albumHint string) (*models.AlbumTracks, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	log.Printf("[DEBUG] musicdata: searching Spotify with query %q", query)
	results, err := s.client.Search(ctx, query, spotify.SearchTypeAlbum, spotify.Limit(searchResultLimit))
	if err != nil {
		return nil, fmt.Errorf("spotify search failed: %w", err)
	}
	if results.Albums == nil || len(results.Albums.Albums) == 0 {
		return nil, fmt.Errorf("%w: query %q", ErrNotFound, query)
	}

	for _, album := range results.Albums.Albums {
		artistName := ""
		if len(album.Artists) > 0 {
			artistName = album.Artists[0].Name
		}

		if !ArtistsOverlap(artistHint, artistName) {
			log.Printf("[DEBUG] musicdata: rejecting %q by %q: no artist overlap with %q", album.Name, artistName, artistHint)
			continue
		}
		if !AlbumRelevant(albumHint, album.Name, s.matchThreshold) {
			log.Printf("[DEBUG] musicdata: rejecting %q: album name too dissimilar to %q", album.Name, albumHint)
			continue
		}

		tracks, err := s.albumTracks(ctx, album.ID)
		if err != nil {
			return nil, err
		}
		log.Printf("[DEBUG] musicdata: accepted %q - %q with %d tracks", artistName, album.Name, len(tracks))
		return &models.AlbumTracks{Artist: artistName, Album: album.Name, Tracks: tracks}, nil
	}

	return nil, fmt.Errorf("%w: no relevant result for query %q", ErrNotFound, query)
}

func (s *SpotifyLookup) albumTracks(ctx context.Context, id spotify.ID) ([]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	page, err := s.client.GetAlbumTracks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch album tracks: %w", err)
	}
	tracks := make([]string, 0, len(page.Tracks))
	for _, t := range page.Tracks {
		tracks = append(tracks, t.Name)
	}
	return tracks, nil
}

// LiteralQuery builds the first-attempt search string from the
// identity guess, using Spotify's fielded query syntax when the artist
// is known.
func LiteralQuery(artist, album string) string {
	if artist == "" || artist == "unknown" {
		return album
	}
	return fmt.Sprintf("artist:%q album:%q", artist, album)
}
