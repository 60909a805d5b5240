package apphttp

import (
	"strings"
	"time"

	"github.com/goodsign/monday"

	"muciocar/internal/domain"
)

// viewFuncs are the helpers available to every template.
func viewFuncs(loc *time.Location) map[string]any {
	parse := func(s string) (time.Time, bool) {
		if t, err := time.ParseInLocation(domain.DateLayout, s, loc); err == nil {
			return t, true
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t.In(loc), true
		}
		return time.Time{}, false
	}
	return map[string]any{
		// stars renders a 1..5 rating as filled and empty stars.
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			if n > 5 {
				n = 5
			}
			return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
		},
		// dateBR: "terça-feira, 20 de outubro de 2026".
		"dateBR": func(s string) string {
			t, ok := parse(s)
			if !ok {
				return s
			}
			return monday.Format(t, "Monday, 2 de January de 2006", monday.LocalePtBR)
		},
		"shortDate": func(s string) string {
			t, ok := parse(s)
			if !ok {
				return s
			}
			return t.Format("02/01/2006")
		},
		"initial": func(s string) string {
			s = strings.TrimSpace(s)
			if s == "" {
				return "?"
			}
			return strings.ToUpper(string([]rune(s)[:1]))
		},
	}
}
