package cards

import (
	"context"
	"errors"
	"iter"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/youruser/binderbase/internal/apperr"
	"github.com/youruser/binderbase/internal/util"
)

const (
	// DefaultBaseURL is the public Scryfall API.
	DefaultBaseURL = "https://api.scryfall.com"

	minAutocompleteLen = 2
	maxCommanderHits   = 10
)

// Client looks cards up on Scryfall and normalizes the responses.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = util.NewHTTPClient(0)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger.Named("scryfall"),
	}
}

// ByExactName resolves name to its canonical card record.
func (c *Client) ByExactName(ctx context.Context, name string) (Card, error) {
	var raw scryfallCard
	err := util.GetJSON(ctx, c.http, c.baseURL+"/cards/named?exact="+url.QueryEscape(name), &raw)
	if err != nil {
		var se *util.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return Card{}, apperr.NotFound("Card not found: %s", name)
		}
		c.logger.Warn("exact lookup failed", zap.String("name", name), zap.Error(err))
		return Card{}, apperr.Provider("card lookup failed", err)
	}
	return normalize(raw), nil
}

// Search returns matching cards lazily, following result pages on demand.
// The sequence is finite and can be ranged over once. A provider failure
// ends it early instead of surfacing an error.

func (c *Client) Search(ctx context.Context, query string) iter.Seq[Card] {
	pages := c.pages(ctx, c.searchURL(query))
	return func(yield func(Card) bool) {
		for raw := range pages {
			if !yield(normalize(raw)) {
				return
			}
		}
	}
}

// SearchCommanders returns up to ten commander-eligible cards matching query.
func (c *Client) SearchCommanders(ctx context.Context, query string) []Commander {
	out := []Commander{}
	for raw := range c.pages(ctx, c.searchURL(query+" is:commander")) {
		colors := raw.ColorIdentity
		if colors == nil {
			colors = []string{}
		}
		out = append(out, Commander{Name: raw.Name, Colors: colors, Image: displayImage(raw)})
		if len(out) == maxCommanderHits {
			break
		}
	}
	return out
}

// Autocomplete returns name suggestions for partial. Inputs shorter than two
// characters return nothing without calling the provider.
func (c *Client) Autocomplete(ctx context.Context, partial string) []string {
	partial = strings.TrimSpace(partial)
	if utf8.RuneCountInString(partial) < minAutocompleteLen {
		return []string{}
	}
	var catalog scryfallCatalog
	if err := util.GetJSON(ctx, c.http, c.baseURL+"/cards/autocomplete?q="+url.QueryEscape(partial), &catalog); err != nil {
		c.logger.Warn("autocomplete failed", zap.String("q", partial), zap.Error(err))
		return []string{}
	}
	if catalog.Data == nil {
		return []string{}
	}
	return catalog.Data
}

func (c *Client) searchURL(query string) string {
	return c.baseURL + "/cards/search?q=" + url.QueryEscape(query)
}

// pages yields raw records from first and every following page. Once started,
// ranging again yields nothing, from any goroutine.
func (c *Client) pages(ctx context.Context, first string) iter.Seq[scryfallCard] {
	var started atomic.Bool
	return func(yield func(scryfallCard) bool) {
		if started.Swap(true) {
			return
		}
		for next := first; next != ""; {
			var page scryfallList
			if err := util.GetJSON(ctx, c.http, next, &page); err != nil {
				var se *util.StatusError
				if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
					c.logger.Debug("search returned no matches", zap.String("url", next))
				} else {
					c.logger.Warn("search page failed", zap.String("url", next), zap.Error(err))
				}
				return
			}
			next = ""
			if page.HasMore {
				next = page.NextPage
			}
			for _, raw := range page.Data {
				if !yield(raw) {
					return
				}
			}
		}
	}
}
