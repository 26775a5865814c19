// Package sport holds the fixed catalog of sports a team, tournament or
// player sport entry can reference.
package sport

import "strings"

type Sport string

const (
	Football   Sport = "Football"
	Cricket    Sport = "Cricket"
	Volleyball Sport = "Volleyball"
	Throwball  Sport = "Throwball"
	Badminton  Sport = "Badminton"
)

var All = []Sport{Football, Cricket, Volleyball, Throwball, Badminton}

// Parse matches v against the catalog case-insensitively.
func Parse(v string) (Sport, bool) {
	v = strings.TrimSpace(v)
	for _, s := range All {
		if strings.EqualFold(string(s), v) {
			return s, true
		}
	}
	return "", false
}

// Valid reports whether s is a canonical catalog value.
func (s Sport) Valid() bool {
	for _, known := range All {
		if s == known {
			return true
		}
	}
	return false
}

func (s Sport) String() string {
	return string(s)
}
