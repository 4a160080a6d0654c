package software

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const captionMargin = 4

// Caption draws text in the top-left corner of img with the built-in 7x13
// bitmap face. Lines are split on '\n'.
func Caption(img *image.RGBA, text string, col color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
	}
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()
	y := captionMargin + metrics.Ascent.Ceil()

	start := 0
	for i := 0; i <= len(text); i++ {
		if i < len(text) && text[i] != '\n' {
			continue
		}
		d.Dot = fixed.P(captionMargin, y)
		d.DrawString(text[start:i])
		y += lineHeight
		start = i + 1
	}
}
