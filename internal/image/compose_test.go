package imagepkg

import (
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
)

func solid(w, h int, c color.Color) image.Image {
	return imaging.New(w, h, c)
}

func TestComposeDeckImageEmpty(t *testing.T) {
	out := ComposeDeckImage(nil, nil, nil)
	assert.Equal(t, canvasWidth, out.Bounds().Dx())
	assert.Equal(t, margin+commanderH+margin+margin, out.Bounds().Dy())
	assert.Equal(t, background, out.NRGBAAt(0, 0))
}

func TestComposeDeckImageLayout(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	green := color.NRGBA{G: 0xff, A: 0xff}
	blue := color.NRGBA{B: 0xff, A: 0xff}

	cards := make([]image.Image, cardsPerRow+1)
	for i := range cards {
		cards[i] = solid(488, 680, blue)
	}
	out := ComposeDeckImage(solid(488, 680, red), cards, solid(100, 100, green))

	gridTop := margin + commanderH + margin
	assert.Equal(t, gridTop+2*(cardH+gap)+margin, out.Bounds().Dy(), "two grid rows")

	assert.Equal(t, red, out.NRGBAAt(margin+10, margin+10))
	assert.Equal(t, green, out.NRGBAAt(canvasWidth-margin-10, margin+10))
	assert.Equal(t, blue, out.NRGBAAt(margin+10, gridTop+10))
	assert.Equal(t, blue, out.NRGBAAt(margin+10, gridTop+cardH+gap+10))
	// second slot of the second row is empty
	assert.Equal(t, background, out.NRGBAAt(margin+cardW+gap+10, gridTop+cardH+gap+10))
}

func TestComposeDeckImageCapsArt(t *testing.T) {
	cards := make([]image.Image, MaxCardArt+20)
	for i := range cards {
		cards[i] = solid(10, 14, color.White)
	}
	out := ComposeDeckImage(nil, cards, nil)
	rows := MaxCardArt / cardsPerRow
	assert.Equal(t, margin+commanderH+margin+rows*(cardH+gap)+margin, out.Bounds().Dy())
}
