package recommend

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/youruser/binderbase/internal/apperr"
	"github.com/youruser/binderbase/internal/util"
)

const (
	// DefaultBaseURL serves EDHREC's page JSON.
	DefaultBaseURL = "https://json.edhrec.com/pages"

	maxPerCategory = 10
	maxColorCards  = 20
)

// Client fetches recommendation pages from EDHREC.
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
		logger:  logger.Named("edhrec"),
	}
}

// ByCommander returns the category-bucketed recommendations for a commander.
func (c *Client) ByCommander(ctx context.Context, name string) (Recommendations, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Recommendations{}, apperr.Validation("Commander name is required")
	}
	slug := Slug(name)
	if strings.Trim(slug, "-") == "" {
		return Recommendations{}, apperr.NotFound("Commander not found: %s", name)
	}

	var page edhrecPage
	if err := util.GetJSON(ctx, c.http, c.baseURL+"/commanders/"+slug+".json", &page); err != nil {
		var se *util.StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return Recommendations{}, apperr.NotFound("Commander not found: %s", name)
		}
		c.logger.Warn("commander page failed", zap.String("slug", slug), zap.Error(err))
		return Recommendations{}, apperr.Provider("recommendation lookup failed", err)
	}

	recs := newRecommendations(name)
	for _, list := range page.Container.JSONDict.CardLists {
		b := Classify(list.Header)
		if b == BucketUnrecognized {
			c.logger.Debug("unrecognized category", zap.String("slug", slug), zap.String("header", list.Header))
		}
		recs.place(b, list.Header, toCards(list.CardViews))
	}
	return recs, nil
}

// ByColorIdentity returns the top cards for a color identity. Unknown
// combinations and provider failures yield an empty list.
func (c *Client) ByColorIdentity(ctx context.Context, colors []string) ColorRecommendations {
	out := ColorRecommendations{Colors: []string{}, Cards: []ColorCard{}}
	sorted, ok := CanonicalColors(colors)
	if !ok {
		c.logger.Debug("unknown color combination", zap.Strings("colors", colors))
		return out
	}
	key, _ := ColorKey(sorted)
	out.Colors, out.Key = sorted, key

	var page edhrecPage
	if err := util.GetJSON(ctx, c.http, c.baseURL+"/top/"+key+".json", &page); err != nil {
		c.logger.Warn("color page failed", zap.String("key", key), zap.Error(err))
		return out
	}
	lists := page.Container.JSONDict.CardLists
	if len(lists) == 0 {
		return out
	}
	views := lists[0].CardViews
	if len(views) > maxColorCards {
		views = views[:maxColorCards]
	}
	for _, v := range views {
		out.Cards = append(out.Cards, ColorCard{Name: v.Name, URL: v.URL, Sanitized: v.Sanitized, NumDecks: v.NumDecks})
	}
	return out
}

func toCards(views []edhrecCard) []Card {
	if len(views) > maxPerCategory {
		views = views[:maxPerCategory]
	}
	out := make([]Card, 0, len(views))
	for _, v := range views {
		out = append(out, Card{
			Name:      v.Name,
			URL:       v.URL,
			Inclusion: v.Inclusion,
			Synergy:   v.Synergy,
			Sanitized: v.Sanitized,
		})
	}
	return out
}
