package api

import (
	"fmt"
	"image"
	"net/http"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/youruser/binderbase/internal/apperr"
	imagepkg "github.com/youruser/binderbase/internal/image"
)

// shareURL is the frontend page a deck's QR code points at.
func (s *Server) shareURL(deckID uint) string {
	return fmt.Sprintf("%s/deckPage?deck=%d", s.publicURL, deckID)
}

func (s *Server) deckQR(c *gin.Context) {
	id, err := idParam(c, "deckId", "deck")
	if err != nil {
		s.fail(c, err)
		return
	}
	size := imagepkg.DefaultQRSize
	if v := c.Query("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.fail(c, badRequest("size must be an integer"))
			return
		}
		size = n
	}
	if _, err := s.decks.GetDeck(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	b, err := imagepkg.GenerateQRPNG(s.shareURL(id), size)
	if err != nil {
		s.fail(c, apperr.Provider("failed to render QR code", err))
		return
	}
	c.Data(http.StatusOK, "image/png", b)
}

// deckImage renders the commander, a QR code and the deck's card art into
// one PNG. Art that cannot be fetched is left out.
func (s *Server) deckImage(c *gin.Context) {
	ctx := c.Request.Context()
	id, err := idParam(c, "deckId", "deck")
	if err != nil {
		s.fail(c, err)
		return
	}
	d, err := s.decks.GetDeck(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}

	var commander image.Image
	if d.Commander != nil {
		card, err := s.cards.ByExactName(ctx, *d.Commander)
		if err == nil && card.Image != "" {
			commander, err = imagepkg.DownloadImage(ctx, s.http, card.Image)
		}
		if err != nil {
			s.logger.Warn("commander art unavailable", zap.Uint("deck_id", id), zap.Error(err))
		}
	}

	urls := make([]string, 0, len(d.Cards))
	for _, row := range d.Cards {
		if row.CardImage == nil {
			continue
		}
		urls = append(urls, *row.CardImage)
		if len(urls) == imagepkg.MaxCardArt {
			break
		}
	}
	art := imagepkg.DownloadAll(ctx, s.http, urls)

	qr, err := imagepkg.GenerateQRImage(s.shareURL(id), imagepkg.DefaultQRSize)
	if err != nil {
		s.logger.Warn("qr render failed", zap.Uint("deck_id", id), zap.Error(err))
	}

	out := imagepkg.ComposeDeckImage(commander, art, qr)
	c.Header("Content-Type", "image/png")
	c.Status(http.StatusOK)
	if err := imaging.Encode(c.Writer, out, imaging.PNG); err != nil {
		s.logger.Error("encode deck image", zap.Uint("deck_id", id), zap.Error(err))
	}
}
