package validate

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

var (
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	rePlate = regexp.MustCompile(`^[A-Za-z0-9-]{3,10}$`)
	reYear  = regexp.MustCompile(`^[0-9]{4}$`)
	reDigit = regexp.MustCompile(`\D`)
)

// Slots are the bookable start times of a working day.
var Slots = []string{"08:00", "09:00", "10:00", "11:00", "13:00", "14:00", "15:00", "16:00", "17:00"}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Digits strips everything that is not 0-9.
func Digits(s string) string { return reDigit.ReplaceAllString(s, "") }

// Phone accepts a Brazilian number with area code (10 or 11 digits) and
// returns it masked as "(DD) NNNNN-NNNN".
func Phone(s string) (string, bool) {
	d := Digits(s)
	if len(d) < 10 || len(d) > 11 {
		return "", false
	}
	return FormatPhone(d), true
}

// FormatPhone applies the phone mask progressively, so partial input is
// shown as it is typed. More than 11 digits is returned unchanged.
func FormatPhone(s string) string {
	d := Digits(s)
	if len(d) > 11 {
		return s
	}
	switch {
	case len(d) == 0:
		return ""
	case len(d) <= 2:
		return "(" + d
	}
	ddd, rest := d[:2], d[2:]
	first, second := rest, ""
	if len(rest) > 5 {
		first, second = rest[:5], rest[5:]
	}
	if len(d) == 10 {
		first, second = rest[:4], rest[4:]
	}
	if second == "" {
		return "(" + ddd + ") " + first
	}
	return "(" + ddd + ") " + first + "-" + second
}

// Name validates a displayable person name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > 80 {
		return "", false
	}
	return s, true
}

// Text trims s and checks it is non-empty and at most max runes.
func Text(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || utf8.RuneCountInString(s) > max {
		return "", false
	}
	return s, true
}

// Optional trims s and truncates it to max runes.
func Optional(s string, max int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > max {
		s = string([]rune(s)[:max])
	}
	return s
}

func Plate(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, rePlate.MatchString(s)
}

// Year accepts a four digit model year between 1950 and next year.
func Year(s string, now time.Time) (string, bool) {
	s = strings.TrimSpace(s)
	if !reYear.MatchString(s) {
		return "", false
	}
	y, _ := strconv.Atoi(s)
	return s, y >= 1950 && y <= now.Year()+1
}

func Rating(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}

// ID validates a simple resource identifier.
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Date parses YYYY-MM-DD as a calendar day in loc.
func Date(s string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Month parses YYYY-MM.
func Month(s string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01", strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func Slot(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, v := range Slots {
		if v == s {
			return s, true
		}
	}
	return "", false
}

// URL accepts an empty string or an absolute http(s) URL.
func URL(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if len(s) > 500 {
		return "", false
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	return s, true
}

// Password enforces the admin password policy.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z':
			hasLower = true
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		default:
			hasSymbol = true
		}
	}
	return hasLower && hasUpper && hasDigit && hasSymbol
}
