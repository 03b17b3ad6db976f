package passcard

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var (
	gradientFrom = color.RGBA{0x7C, 0x3A, 0xED, 0xFF}
	gradientTo   = color.RGBA{0x93, 0x33, 0xEA, 0xFF}
	headerSub    = color.RGBA{0xFF, 0xFF, 0xFF, 0xE6}
	labelColor   = color.RGBA{0x6B, 0x72, 0x80, 0xFF}
	valueColor   = color.RGBA{0x11, 0x18, 0x27, 0xFF}
	dividerColor = color.RGBA{0xE5, 0xE7, 0xEB, 0xFF}
)

var loadFonts = sync.OnceValues(func() (fontSet, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("passcard: parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return fontSet{}, fmt.Errorf("passcard: parse bold font: %w", err)
	}
	return fontSet{regular: regular, bold: bold}, nil
})

type fontSet struct {
	regular, bold *opentype.Font
}

// faces holds the sized faces for one drawing. opentype faces are not safe
// for concurrent use, so each Image call builds its own.
type faces struct {
	title, subtitle, label, value font.Face
}

func newFaces() (*faces, error) {
	fs, err := loadFonts()
	if err != nil {
		return nil, err
	}
	mk := func(f *opentype.Font, size float64) (font.Face, error) {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			return nil, fmt.Errorf("passcard: font face: %w", err)
		}
		return face, nil
	}

	var out faces
	for _, v := range []struct {
		dst  *font.Face
		f    *opentype.Font
		size float64
	}{
		{&out.title, fs.bold, 32},
		{&out.subtitle, fs.regular, 20},
		{&out.label, fs.regular, 16},
		{&out.value, fs.regular, 20},
	} {
		face, err := mk(v.f, v.size)
		if err != nil {
			out.Close()
			return nil, err
		}
		*v.dst = face
	}
	return &out, nil
}

func (f *faces) Close() {
	for _, face := range []font.Face{f.title, f.subtitle, f.label, f.value} {
		if face != nil {
			_ = face.Close()
		}
	}
}

// PNG rasterizes the card.
func (c Card) PNG() ([]byte, error) {
	img, err := c.Image()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("passcard: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// Image draws the card onto a fresh RGBA canvas.
func (c Card) Image() (*image.RGBA, error) {
	ff, err := newFaces()
	if err != nil {
		return nil, err
	}
	defer ff.Close()

	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	xdraw.Draw(img, img.Bounds(), image.White, image.Point{}, xdraw.Src)

	// Header
	for x := range Width {
		col := lerp(gradientFrom, gradientTo, float64(x)/float64(Width-1))
		xdraw.Draw(img, image.Rect(x, 0, x+1, headerHeight), image.NewUniform(col), image.Point{}, xdraw.Src)
	}
	drawText(img, padding, headerHeight-30, c.EventName, color.White, ff.title)
	drawText(img, padding, headerHeight-5, c.Category+" Pass", headerSub, ff.subtitle)

	// Detail rows
	x0, y0 := padding, contentStart
	textX := x0 + iconSize + 15

	fillRect(img, image.Rect(x0, y0, x0+iconSize, y0+iconSize), labelColor)
	drawText(img, textX, y0+18, "Date & Time", labelColor, ff.label)
	drawText(img, textX, y0+45, c.EventDate, valueColor, ff.value)

	fillCircle(img, x0+12, y0+padding+50, 12, labelColor)
	drawText(img, textX, y0+padding+60, "Attendee", labelColor, ff.label)
	drawText(img, textX, y0+padding+87, c.UserName, valueColor, ff.value)

	catY := y0 + 2*padding + 70
	fillRect(img, image.Rect(x0, catY, x0+iconSize, catY+iconSize), labelColor)
	drawText(img, textX, y0+2*padding+90, "Pass Category", labelColor, ff.label)
	drawText(img, textX, y0+2*padding+117, c.Category, valueColor, ff.value)

	// Dashed divider
	divX := leftColumn + padding
	for y := contentStart; y < Height-padding; y += 16 {
		fillRect(img, image.Rect(divX-1, y, divX+1, min(y+8, Height-padding)), dividerColor)
	}

	// QR and ticket reference
	code, err := c.QR()
	if err != nil {
		return nil, err
	}
	qrX := Width - qrSize - padding
	xdraw.Draw(img, image.Rect(qrX, contentStart, qrX+qrSize, contentStart+qrSize), code, code.Bounds().Min, xdraw.Src)

	ticket := "Ticket #" + c.Ticket
	w := font.MeasureString(ff.label, ticket).Ceil()
	drawText(img, qrX+qrSize/2-w/2, contentStart+qrSize+30, ticket, labelColor, ff.label)

	return img, nil
}

// drawText renders s with its baseline at y.
func drawText(dst *image.RGBA, x, y int, s string, col color.Color, face font.Face) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func fillRect(dst *image.RGBA, r image.Rectangle, col color.Color) {
	xdraw.Draw(dst, r, image.NewUniform(col), image.Point{}, xdraw.Src)
}

func fillCircle(dst *image.RGBA, cx, cy, radius int, col color.Color) {
	for y := -radius; y <= radius; y++ {
		for x := -radius; x <= radius; x++ {
			if x*x+y*y <= radius*radius {
				dst.Set(cx+x, cy+y, col)
			}
		}
	}
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	mix := func(p, q uint8) uint8 { return uint8(float64(p) + (float64(q)-float64(p))*t) }
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 0xFF}
}
