package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Layout of a composed deck image.
const (
	canvasWidth  = 2150
	margin       = 48
	gap          = 8
	heroWidth    = 300
	heroHeight   = 450
	qrSide       = 400
	cardWidth    = 215
	cardHeight   = 300
	cardsPerRow  = 9
	headerHeight = heroHeight
)

// ComposeDeckImage lays out hero art across the top, the QR code at the
// top right and card art in rows below. Nil images are skipped.
func ComposeDeckImage(heroes []image.Image, cards []image.Image, qr image.Image) image.Image {
	rows := (len(cards) + cardsPerRow - 1) / cardsPerRow
	height := margin + headerHeight + margin + rows*(cardHeight+gap) + margin
	canvas := imaging.New(canvasWidth, height, color.NRGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff})

	x := margin
	for _, h := range heroes {
		if h == nil {
			continue
		}
		if x+heroWidth > canvasWidth-margin-qrSide-gap {
			break
		}
		canvas = imaging.Paste(canvas, imaging.Resize(h, heroWidth, heroHeight, imaging.Lanczos), image.Pt(x, margin))
		x += heroWidth + gap
	}

	if qr != nil {
		q := imaging.Resize(qr, qrSide, qrSide, imaging.Lanczos)
		canvas = imaging.Paste(canvas, q, image.Pt(canvasWidth-margin-qrSide, margin))
	}

	y := margin + headerHeight + margin
	for i, c := range cards {
		if c == nil {
			continue
		}
		col, row := i%cardsPerRow, i/cardsPerRow
		pt := image.Pt(margin+col*(cardWidth+gap), y+row*(cardHeight+gap))
		canvas = imaging.Paste(canvas, imaging.Resize(c, cardWidth, cardHeight, imaging.Lanczos), pt)
	}

	return canvas
}
