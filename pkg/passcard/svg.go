package passcard

import (
	"encoding/base64"
	"strings"
	"text/template"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	`"`, "&quot;",
)

// EscapeXML replaces the five XML metacharacters with entities.
func EscapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

var svgTemplate = template.Must(template.New("card").Funcs(template.FuncMap{
	"x":   EscapeXML,
	"add": func(a, b int) int { return a + b },
	"mul": func(a, b int) int { return a * b },
}).Parse(`<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<svg width="{{.W}}" height="{{.H}}" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <linearGradient id="headerGradient" x1="0%" y1="0%" x2="100%" y2="0%">
      <stop offset="0%" style="stop-color:#7C3AED;stop-opacity:1" />
      <stop offset="100%" style="stop-color:#9333EA;stop-opacity:1" />
    </linearGradient>
  </defs>
  <rect width="{{.W}}" height="{{.Header}}" fill="url(#headerGradient)" />
  <text x="{{.Pad}}" y="{{add .Header -30}}" font-family="Arial" font-size="32" fill="white" font-weight="bold">{{x .Card.EventName}}</text>
  <text x="{{.Pad}}" y="{{add .Header -5}}" font-family="Arial" font-size="20" fill="rgba(255,255,255,0.9)">{{x .Card.Category}} Pass</text>
  <rect x="0" y="{{.Header}}" width="{{.W}}" height="{{add .H (mul .Header -1)}}" fill="#ffffff" />
  <g transform="translate({{.Pad}}, {{.Content}})">
    <rect x="0" y="0" width="{{.Icon}}" height="{{.Icon}}" rx="4" fill="#6B7280"/>
    <text x="{{add .Icon 15}}" y="18" font-family="Arial" font-size="16" fill="#6B7280">Date &amp; Time</text>
    <text x="{{add .Icon 15}}" y="45" font-family="Arial" font-size="20" fill="#111827">{{x .Card.EventDate}}</text>
    <circle cx="12" cy="{{add .Pad 50}}" r="12" fill="#6B7280"/>
    <text x="{{add .Icon 15}}" y="{{add .Pad 60}}" font-family="Arial" font-size="16" fill="#6B7280">Attendee</text>
    <text x="{{add .Icon 15}}" y="{{add .Pad 87}}" font-family="Arial" font-size="20" fill="#111827">{{x .Card.UserName}}</text>
    <rect x="0" y="{{add (mul .Pad 2) 70}}" width="{{.Icon}}" height="{{.Icon}}" rx="4" fill="#6B7280"/>
    <text x="{{add .Icon 15}}" y="{{add (mul .Pad 2) 90}}" font-family="Arial" font-size="16" fill="#6B7280">Pass Category</text>
    <text x="{{add .Icon 15}}" y="{{add (mul .Pad 2) 117}}" font-family="Arial" font-size="20" fill="#111827">{{x .Card.Category}}</text>
  </g>
  <line x1="{{.Divider}}" y1="{{.Content}}" x2="{{.Divider}}" y2="{{add .H (mul .Pad -1)}}" stroke="#E5E7EB" stroke-width="2" stroke-dasharray="8,8"/>
  <g transform="translate({{.QRX}}, {{.Content}})">
    <image href="data:image/png;base64,{{.QR}}" width="{{.QRSize}}" height="{{.QRSize}}" />
    <text x="{{.QRMid}}" y="{{add .QRSize 30}}" font-family="Arial" font-size="16" fill="#6B7280" text-anchor="middle">Ticket #{{x .Card.Ticket}}</text>
  </g>
</svg>
`))

type svgData struct {
	Card                         Card
	W, H, Header, Pad, Icon      int
	Content, Divider, QRX, QRMid int
	QRSize                       int
	QR                           string
}

// SVG returns the vector description of the card.
func (c Card) SVG() (string, error) {
	qrPNG, err := c.qrPNG()
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	err = svgTemplate.Execute(&sb, svgData{
		Card:    c,
		W:       Width,
		H:       Height,
		Header:  headerHeight,
		Pad:     padding,
		Icon:    iconSize,
		Content: contentStart,
		Divider: leftColumn + padding,
		QRX:     Width - qrSize - padding,
		QRMid:   qrSize / 2,
		QRSize:  qrSize,
		QR:      base64.StdEncoding.EncodeToString(qrPNG),
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
