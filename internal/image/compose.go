package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Layout of the composed deck image, in pixels.
const (
	canvasWidth = 2150
	margin      = 48
	gap         = 8

	commanderW = 400
	commanderH = 560
	qrEdge     = 400

	cardW       = 215
	cardH       = 300
	cardsPerRow = 9

	// MaxCardArt is the most card images one deck image shows.
	MaxCardArt = cardsPerRow * 6
)

var background = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x24, A: 0xff}

// ComposeDeckImage draws the commander at the top left, the QR code at the top
// right and the card art in a grid below them. Any part may be missing.
func ComposeDeckImage(commander image.Image, cards []image.Image, qr image.Image) *image.NRGBA {
	if len(cards) > MaxCardArt {
		cards = cards[:MaxCardArt]
	}
	rows := (len(cards) + cardsPerRow - 1) / cardsPerRow
	gridTop := margin + commanderH + margin
	height := gridTop + rows*(cardH+gap) + margin

	canvas := imaging.New(canvasWidth, height, background)

	if commander != nil {
		c := imaging.Fill(commander, commanderW, commanderH, imaging.Center, imaging.Lanczos)
		canvas = imaging.Paste(canvas, c, image.Pt(margin, margin))
	}
	if qr != nil {
		q := imaging.Resize(qr, qrEdge, qrEdge, imaging.NearestNeighbor)
		canvas = imaging.Paste(canvas, q, image.Pt(canvasWidth-margin-qrEdge, margin))
	}

	for i, art := range cards {
		x := margin + (i%cardsPerRow)*(cardW+gap)
		y := gridTop + (i/cardsPerRow)*(cardH+gap)
		c := imaging.Fill(art, cardW, cardH, imaging.Center, imaging.Lanczos)
		canvas = imaging.Paste(canvas, c, image.Pt(x, y))
	}
	return canvas
}
