package playersport

import (
	"strings"
	"time"

	"github.com/riskibarqy/sports-league/internal/domain/sport"
)

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillExpert       SkillLevel = "expert"
)

func ParseSkillLevel(v string) (SkillLevel, bool) {
	switch SkillLevel(strings.ToLower(strings.TrimSpace(v))) {
	case SkillBeginner:
		return SkillBeginner, true
	case SkillIntermediate:
		return SkillIntermediate, true
	case SkillAdvanced:
		return SkillAdvanced, true
	case SkillExpert:
		return SkillExpert, true
	default:
		return "", false
	}
}

// Entry is one sport a player or coach practices. A user holds at most one
// entry per sport and at most one primary entry overall.
type Entry struct {
	ID         string
	UserID     string
	Sport      sport.Sport
	SkillLevel SkillLevel
	IsPrimary  bool
	CreatedAt  time.Time
}

// HasSport reports whether any entry in entries is for s.
func HasSport(entries []Entry, s sport.Sport) bool {
	for _, e := range entries {
		if e.Sport == s {
			return true
		}
	}
	return false
}

// Primary returns the primary entry, if any.
func Primary(entries []Entry) (Entry, bool) {
	for _, e := range entries {
		if e.IsPrimary {
			return e, true
		}
	}
	return Entry{}, false
}
