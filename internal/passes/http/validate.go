package http

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/aussiebroadwan/eventpass/pkg/httpx"
)

// isoLayouts are the ISO 8601 forms accepted for event dates.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseISODate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// validEmail accepts a bare address only, no display name.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s && strings.Contains(s[strings.LastIndex(s, "@")+1:], ".")
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// maxTextLen caps names and locations. Names end up in the pass QR payload,
// which has a fixed capacity.
const maxTextLen = 200

var msgTooLong = "must be at most " + strconv.Itoa(maxTextLen) + " characters"

func tooLong(s string) bool { return utf8.RuneCountInString(s) > maxTextLen }

// validation collects field errors in rule order.
type validation []httpx.FieldError

func (v *validation) check(ok bool, field, msg string) {
	if !ok {
		*v = append(*v, httpx.FieldError{Field: field, Message: msg})
	}
}

// decodeBody decodes the JSON body into dst, writing 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
