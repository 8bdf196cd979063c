// Credit to https://github.com/santhosh-tekuri/jsonschema
package linkml

import (
	"net/url"
	"strconv"
	"time"
)

// Formats validates the textual encoding of the date/datetime/uri
// primitives; the other classic format names (hostname, email,
// duration, uuid, ...) have no built-in primitive to attach to.
var Formats = map[string]func(string) bool{
	"date":       IsDate,
	"datetime":   IsDateTime,
	"uri":        IsURI,
	"uriorcurie": IsURI,
}

// IsDate tells whether s is a valid RFC 3339 full-date.
func IsDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsDateTime tells whether s is a valid RFC 3339 date-time.
func IsDateTime(s string) bool {
	if len(s) < 20 {
		return false
	}
	if s[10] != 'T' && s[10] != 't' {
		return false
	}
	return IsDate(s[:10]) && isTime(s[11:])
}

// isTime tells whether s is a valid RFC 3339 full-time, supporting the
// leap-second exception the standard library's time.Parse rejects.
func isTime(str string) bool {
	if len(str) < 9 || str[2] != ':' || str[5] != ':' {
		return false
	}
	inRange := func(s string, min, max int) (int, bool) {
		n, err := strconv.Atoi(s)
		if err != nil || n < min || n > max {
			return 0, false
		}
		return n, true
	}
	h, ok := inRange(str[0:2], 0, 23)
	if !ok {
		return false
	}
	m, ok := inRange(str[3:5], 0, 59)
	if !ok {
		return false
	}
	s, ok := inRange(str[6:8], 0, 60)
	if !ok {
		return false
	}
	str = str[8:]
	if len(str) > 0 && str[0] == '.' {
		str = str[1:]
		digits := 0
		for len(str) > 0 && str[0] >= '0' && str[0] <= '9' {
			digits++
			str = str[1:]
		}
		if digits == 0 {
			return false
		}
	}
	if len(str) == 0 {
		return false
	}
	if str[0] == 'z' || str[0] == 'Z' {
		if len(str) != 1 {
			return false
		}
	} else {
		if len(str) != 6 || str[3] != ':' {
			return false
		}
		if str[0] != '+' && str[0] != '-' {
			return false
		}
		if _, ok := inRange(str[1:3], 0, 23); !ok {
			return false
		}
		if _, ok := inRange(str[4:6], 0, 59); !ok {
			return false
		}
	}
	if s == 60 && (h != 23 || m != 59) {
		return false
	}
	return true
}

// IsURI tells whether s is an absolute URI per RFC 3986.
func IsURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}
