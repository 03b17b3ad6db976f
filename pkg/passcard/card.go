package passcard

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
	"github.com/google/uuid"
)

// Layout, in pixels.
const (
	Width        = 800
	headerHeight = 100
	qrSize       = 200
	padding      = 40
	iconSize     = 24
	contentStart = headerHeight + padding
	leftColumn   = Width - qrSize - 3*padding
	Height       = headerHeight + 4*padding + 150
)

// Details is what gets printed on a pass.
type Details struct {
	UserName  string
	EventName string
	EventDate string
	Category  string
}

// Card is a pass ready to draw.
type Card struct {
	Details
	Ticket string
}

// NewTicketRef returns the short reference printed under the QR code.
var NewTicketRef = func() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// New stamps d with a fresh ticket reference.
func New(d Details) Card {
	return Card{Details: d, Ticket: NewTicketRef()}
}

// QRPayload is the plain, unsigned text encoded in the QR code.
func (c Card) QRPayload() string {
	return "EVENT:" + c.EventName + "|USER:" + c.UserName + "|DATE:" + c.EventDate
}

// QR returns the code scaled to the card's QR region.
func (c Card) QR() (image.Image, error) {
	code, err := qr.Encode(c.QRPayload(), qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("passcard: encode qr: %w", err)
	}
	scaled, err := barcode.Scale(code, qrSize, qrSize)
	if err != nil {
		return nil, fmt.Errorf("passcard: scale qr: %w", err)
	}
	return scaled, nil
}

func (c Card) qrPNG() ([]byte, error) {
	img, err := c.QR()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("passcard: encode qr png: %w", err)
	}
	return buf.Bytes(), nil
}

// Render returns the PNG for d.
func Render(d Details) ([]byte, error) {
	return New(d).PNG()
}
