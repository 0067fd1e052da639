package api

import (
	"context"
	"iter"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/youruser/binderbase/internal/cards"
	"github.com/youruser/binderbase/internal/deck"
	"github.com/youruser/binderbase/internal/logging"
	"github.com/youruser/binderbase/internal/recommend"
	"github.com/youruser/binderbase/internal/util"
)

// CardSource is the card lookup surface the handlers use.
type CardSource interface {
	ByExactName(ctx context.Context, name string) (cards.Card, error)
	Search(ctx context.Context, query string) iter.Seq[cards.Card]
	SearchCommanders(ctx context.Context, query string) []cards.Commander
	Autocomplete(ctx context.Context, partial string) []string
}

// Recommender is the recommendation lookup surface the handlers use.
type Recommender interface {
	ByCommander(ctx context.Context, name string) (recommend.Recommendations, error)
	ByColorIdentity(ctx context.Context, colors []string) recommend.ColorRecommendations
}

// Pinger checks the record store connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Decks  *deck.Service
	Cards  CardSource
	Recs   Recommender
	DB     Pinger
	HTTP   *http.Client // art downloads
	Logger *zap.Logger

	Debug        bool
	AllowOrigins []string
	PublicURL    string
}

type Server struct {
	decks  *deck.Service
	cards  CardSource
	recs   Recommender
	db     Pinger
	http   *http.Client
	logger *zap.Logger

	debug        bool
	allowOrigins []string
	publicURL    string
}

func NewServer(d Deps) *Server {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.HTTP == nil {
		d.HTTP = util.NewHTTPClient(0)
	}
	return &Server{
		decks:        d.Decks,
		cards:        d.Cards,
		recs:         d.Recs,
		db:           d.DB,
		http:         d.HTTP,
		logger:       d.Logger.Named("api"),
		debug:        d.Debug,
		allowOrigins: d.AllowOrigins,
		publicURL:    strings.TrimRight(d.PublicURL, "/"),
	}
}

// Engine builds the gin engine with middleware and every route mounted.
func (s *Server) Engine() *gin.Engine {
	r := gin.New()
	r.Use(s.requestID(), s.cors(), logging.GinLogger(s.logger), gin.CustomRecovery(s.recovery))
	s.RegisterRoutes(r)
	return r
}

func (s *Server) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(logging.RequestIDKey, rid)
		c.Header("X-Request-ID", rid)
		c.Next()
	}
}

func (s *Server) cors() gin.HandlerFunc {
	wildcard := slices.Contains(s.allowOrigins, "*")
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case wildcard:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(s.allowOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		case len(s.allowOrigins) > 0 && origin == "":
			c.Header("Access-Control-Allow-Origin", s.allowOrigins[0])
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}

func (s *Server) recovery(c *gin.Context, recovered any) {
	s.logger.Error("panic in handler",
		zap.Any("panic", recovered),
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString(logging.RequestIDKey)),
		zap.Stack("stack"))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Internal server error"})
}
