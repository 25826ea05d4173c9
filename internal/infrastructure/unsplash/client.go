// Package unsplash implements best-effort stock image lookup. A failed
// lookup never fails the caller; slides simply go out without an image.
package unsplash

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"decksnap/slides-api/internal/domain/slide"
	"decksnap/slides-api/internal/domain/status"
	"decksnap/slides-api/internal/infrastructure/metrics"
)

const (
	baseURL            = "https://api.unsplash.com"
	defaultOrientation = "landscape"
)

// Options configures the Unsplash client. An empty AccessKey disables
// lookups entirely.
type Options struct {
	AccessKey string
	Timeout   time.Duration
}

// Client searches Unsplash for slide imagery.
type Client struct {
	httpClient *resty.Client
	accessKey  string
	log        zerolog.Logger
}

// NewClient creates a Resty-backed Unsplash client.
func NewClient(opts Options, log zerolog.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Client{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Authorization", "Client-ID "+opts.AccessKey).
			SetTimeout(opts.Timeout),
		accessKey: opts.AccessKey,
		log:       log.With().Str("component", "unsplash").Logger(),
	}
}

type searchResponse struct {
	Results []photo `json:"results"`
}

type photo struct {
	Description    *string `json:"description"`
	AltDescription *string `json:"alt_description"`
	URLs           struct {
		Regular string `json:"regular"`
	} `json:"urls"`
	User struct {
		Name string `json:"name"`
	} `json:"user"`
}

// SearchImage returns the best match for the query, or nil when the lookup
// fails for any reason. One attempt per call, no retries.
func (c *Client) SearchImage(ctx context.Context, query string) *slide.Image {
	if c.accessKey == "" {
		metrics.RecordImageLookup("disabled")
		return nil
	}

	var result searchResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":       query,
			"orientation": defaultOrientation,
			"per_page":    "1",
		}).
		SetResult(&result).
		Get("/search/photos")
	if err != nil {
		c.log.Warn().Err(err).Str("query", query).
			Str("severity", status.ErrorSeverityAbsorbed.String()).Msg("image search failed")
		metrics.RecordImageLookup("error")
		return nil
	}
	if resp.IsError() {
		c.log.Warn().Int("status", resp.StatusCode()).Str("query", query).
			Str("severity", status.ErrorSeverityAbsorbed.String()).Msg("image search rejected")
		metrics.RecordImageLookup("error")
		return nil
	}
	if len(result.Results) == 0 {
		metrics.RecordImageLookup("miss")
		return nil
	}

	p := result.Results[0]
	alt := query
	if p.AltDescription != nil && *p.AltDescription != "" {
		alt = *p.AltDescription
	} else if p.Description != nil && *p.Description != "" {
		alt = *p.Description
	}

	metrics.RecordImageLookup("hit")
	return &slide.Image{
		URL:    p.URLs.Regular,
		Alt:    alt,
		Credit: p.User.Name,
	}
}
