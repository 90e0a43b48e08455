// Package gfonts reads family popularity from the Google Fonts metadata
// feed.
//
// The feed is a JSON document guarded by the XSSI prefix ")]}'". Only the
// family name and its popularity metric are read; lower metrics are more
// popular.
package gfonts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/glyphgap/glyphgap/pkg/buildinfo"
	"github.com/glyphgap/glyphgap/pkg/cache"
	gerrors "github.com/glyphgap/glyphgap/pkg/errors"
	"github.com/glyphgap/glyphgap/pkg/integrations"
)

// DefaultURL is the public family metadata endpoint.
const DefaultURL = "https://fonts.google.com/metadata/fonts"

var xssiPrefix = []byte(")]}'")

// Entry is one family in the popularity feed.
type Entry struct {
	Family     string `json:"family"`
	Popularity int    `json:"popularity"`
}

type feed struct {
	FamilyMetadataList []Entry `json:"familyMetadataList"`
}

// Client fetches the popularity feed.
type Client struct {
	*integrations.Client
	url string
}

// NewClient creates a feed client that caches the decoded feed in backend
// for cacheTTL. An empty url selects [DefaultURL].
func NewClient(backend cache.Cache, url string, cacheTTL time.Duration, opts ...integrations.Option) *Client {
	if url == "" {
		url = DefaultURL
	}
	headers := map[string]string{
		"Accept":     "application/json",
		"User-Agent": buildinfo.UserAgent(),
	}
	return &Client{
		Client: integrations.NewClient(backend, "gfonts:", cacheTTL, headers, opts...),
		url:    url,
	}
}

// FetchPopularity returns every family in the feed. If refresh is true the
// cached copy is ignored. cached reports whether the entries came from cache.
//
// Returns one of the integrations sentinel errors for transport failures
// and a decode error for malformed feeds.
func (c *Client) FetchPopularity(ctx context.Context, refresh bool) (entries []Entry, cached bool, err error) {
	cached, err = c.Cached(ctx, c.url, refresh, &entries, func() error {
		data, err := c.GetBytes(ctx, c.url)
		if err != nil {
			return err
		}
		entries, err = Decode(data)
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("fetch popularity from %s: %w", c.url, err)
	}
	return entries, cached, nil
}

// Decode parses a feed document, with or without the XSSI prefix.
func Decode(data []byte) ([]Entry, error) {
	data = bytes.TrimSpace(data)
	data = bytes.TrimPrefix(data, xssiPrefix)

	var f feed
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode popularity feed: %w", err)
	}
	return f.FamilyMetadataList, nil
}

// ReadFile decodes a feed document saved on disk. A missing file is
// reported with [gerrors.ErrCodeFileNotFound].
func ReadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, gerrors.Wrap(gerrors.ErrCodeFileNotFound, err, "popularity file %s", path)
	}
	if err != nil {
		return nil, err
	}
	entries, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}
