// Package unsplash searches the Unsplash photo library for card backgrounds.
package unsplash

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dghubble/sling"
	"go.uber.org/zap"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

const (
	DefaultBaseURL = "https://api.unsplash.com/"
	DefaultPerPage = 12
)

var ErrEmptyQuery = errors.New("empty search query")

// Client calls the photo search endpoint.
type Client struct {
	sling     *sling.Sling
	accessKey string
	perPage   int
	logger    *zap.Logger
}

// Options configures a Client. Zero values fall back to the defaults.
type Options struct {
	BaseURL    string
	AccessKey  string
	PerPage    int
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(opts Options) *Client {
	base := opts.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	if opts.PerPage <= 0 {
		opts.PerPage = DefaultPerPage
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := sling.New().Base(base).Set("Accept-Version", "v1")
	if opts.HTTPClient != nil {
		s = s.Client(opts.HTTPClient)
	}

	return &Client{
		sling:     s,
		accessKey: opts.AccessKey,
		perPage:   opts.PerPage,
		logger:    opts.Logger,
	}
}

type searchParams struct {
	Query    string `url:"query"`
	PerPage  int    `url:"per_page"`
	Page     int    `url:"page"`
	ClientID string `url:"client_id,omitempty"`
}

type searchResponse struct {
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Results    []struct {
		ID             string `json:"id"`
		AltDescription string `json:"alt_description"`
		Description    string `json:"description"`
		URLs           struct {
			Small   string `json:"small"`
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

type apiError struct {
	Errors []string `json:"errors"`
}

func (e *apiError) Error() string {
	return strings.Join(e.Errors, "; ")
}

// SearchPhotos returns one page of results for query. page starts at 1.
func (c *Client) SearchPhotos(ctx context.Context, query string, page int) (entities.PhotoPage, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return entities.PhotoPage{}, ErrEmptyQuery
	}
	if page < 1 {
		page = 1
	}

	params := &searchParams{
		Query:    query,
		PerPage:  c.perPage,
		Page:     page,
		ClientID: c.accessKey,
	}

	req, err := c.sling.New().Get("search/photos").QueryStruct(params).Request()
	if err != nil {
		return entities.PhotoPage{}, fmt.Errorf("build search request: %w", err)
	}

	var (
		out     searchResponse
		failure apiError
	)
	resp, err := c.sling.Do(req.WithContext(ctx), &out, &failure)
	if err != nil {
		return entities.PhotoPage{}, fmt.Errorf("search photos: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(failure.Errors) > 0 {
			return entities.PhotoPage{}, fmt.Errorf("search photos: %s: %w", resp.Status, &failure)
		}
		return entities.PhotoPage{}, fmt.Errorf("search photos: unexpected status %s", resp.Status)
	}

	result := entities.PhotoPage{
		Page:       page,
		TotalPages: out.TotalPages,
		Photos:     make([]entities.Photo, 0, len(out.Results)),
	}
	for _, r := range out.Results {
		if r.URLs.Regular == "" {
			continue
		}
		desc := r.AltDescription
		if desc == "" {
			desc = r.Description
		}
		result.Photos = append(result.Photos, entities.Photo{
			ID:           r.ID,
			ThumbnailURL: r.URLs.Small,
			FullURL:      r.URLs.Regular,
			Description:  desc,
		})
	}

	c.logger.Debug("photo search",
		zap.String("query", query),
		zap.Int("page", page),
		zap.Int("results", len(result.Photos)),
		zap.Int("total_pages", out.TotalPages),
	)

	return result, nil
}
