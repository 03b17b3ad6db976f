// Package passcard draws event passes.
//
// A Card has two renditions built from the same layout: SVG markup, where
// every interpolated string is XML-escaped, and a PNG raster drawn with
// golang.org/x/image using the Go fonts. Both embed a QR code carrying
//
//	EVENT:{eventName}|USER:{userName}|DATE:{eventDate}
//
// and a short random ticket reference that is not persisted anywhere.
package passcard
