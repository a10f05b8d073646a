// Package tmdb is a thin client for the TMDB movie catalog. Queries with a
// search term hit /search/movie; without one they fall back to the popular
// listing. Responses are mapped into the service's own page envelope.
package tmdb

import (
	"context"
	"strconv"

	apperrors "github.com/cinevault/cinevault/errors"
	"github.com/cinevault/cinevault/httpclient"
	"github.com/cinevault/cinevault/logger"
)

// Film is a single catalog entry as exposed to API consumers.
type Film struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	Poster      string  `json:"poster,omitempty"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	VoteAverage float64 `json:"voteAverage"`
}

// Page is a single page of catalog results.
type Page struct {
	Items      []Film `json:"items"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	Total      int    `json:"total"`
}

// upstream wire format
type searchResponse struct {
	Page    int `json:"page"`
	Results []struct {
		ID          int64   `json:"id"`
		Title       string  `json:"title"`
		Overview    string  `json:"overview"`
		PosterPath  string  `json:"poster_path"`
		ReleaseDate string  `json:"release_date"`
		VoteAverage float64 `json:"vote_average"`
	} `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// Client queries the TMDB catalog.
type Client struct {
	cfg  Config
	http *httpclient.Client
	log  *logger.Logger
}

// New creates a catalog client. An empty API key is valid configuration;
// the client reports the catalog as unconfigured at query time instead.
func New(cfg Config, log *logger.Logger) (*Client, error) {
	cfg.ApplyDefaults()

	httpClient, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Query: map[string]string{
			"api_key":  cfg.APIKey,
			"language": cfg.Language,
		},
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		cfg:  cfg,
		http: httpClient,
		log:  log.WithComponent("tmdb"),
	}, nil
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.cfg.APIKey != "" }

// Search returns one page of catalog results. A non-empty query searches by
// title; an empty query lists popular films. page values below 1 are
// clamped to 1.
func (c *Client) Search(ctx context.Context, query string, page int) (*Page, error) {
	if !c.Configured() {
		return nil, apperrors.CatalogKeyMissing()
	}
	if page < 1 {
		page = 1
	}

	path := "/movie/popular"
	params := map[string]string{"page": strconv.Itoa(page)}
	if query != "" {
		path = "/search/movie"
		params["query"] = query
	}

	var upstream searchResponse
	if err := c.http.GetJSON(ctx, path, params, &upstream); err != nil {
		c.log.Warn("catalog request failed", logger.Fields(
			logger.FieldError, err.Error(),
			"path", path,
		))
		return nil, apperrors.ExternalAPI(err)
	}

	result := &Page{
		Items:      make([]Film, 0, len(upstream.Results)),
		Page:       upstream.Page,
		TotalPages: upstream.TotalPages,
		Total:      upstream.TotalResults,
	}
	for _, r := range upstream.Results {
		result.Items = append(result.Items, Film{
			ID:          r.ID,
			Title:       r.Title,
			Overview:    r.Overview,
			Poster:      r.PosterPath,
			ReleaseDate: r.ReleaseDate,
			VoteAverage: r.VoteAverage,
		})
	}
	return result, nil
}
