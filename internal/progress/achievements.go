package progress

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed achievements.yaml
var defaultAchievements []byte

// Kind names the counter an achievement is measured against.
type Kind string

const (
	KindVisits         Kind = "visits"
	KindPoints         Kind = "points"
	KindStreak         Kind = "streak"
	KindToursCompleted Kind = "tours_completed"
	// KindTour is met once the named tour is completed.
	KindTour Kind = "tour"
)

type Achievement struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	// Points is the reward shown next to the achievement.
	Points    int    `yaml:"points"`
	Kind      Kind   `yaml:"kind"`
	Threshold int    `yaml:"threshold"`
	Tour      string `yaml:"tour"`
}

// Met reports whether s satisfies a.
func (a Achievement) Met(s State) bool {
	switch a.Kind {
	case KindVisits:
		return s.VisitedCount() >= a.Threshold
	case KindPoints:
		return s.Points >= a.Threshold
	case KindStreak:
		return s.Streak >= a.Threshold
	case KindToursCompleted:
		return len(s.CompletedTours) >= a.Threshold
	case KindTour:
		return s.HasCompleted(a.Tour)
	default:
		return false
	}
}

// Unlocked returns the achievements met by s, in catalog order. It keeps no
// memory between calls.
func Unlocked(s State, all []Achievement) []Achievement {
	var out []Achievement
	for _, a := range all {
		if a.Met(s) {
			out = append(out, a)
		}
	}
	return out
}

// Locked returns the complement of Unlocked, in catalog order.
func Locked(s State, all []Achievement) []Achievement {
	var out []Achievement
	for _, a := range all {
		if !a.Met(s) {
			out = append(out, a)
		}
	}
	return out
}

// NewlyUnlocked returns the achievements met by after but not by before.
func NewlyUnlocked(before, after State, all []Achievement) []Achievement {
	var out []Achievement
	for _, a := range all {
		if a.Met(after) && !a.Met(before) {
			out = append(out, a)
		}
	}
	return out
}

type achievementFile struct {
	Achievements []Achievement `yaml:"achievements"`
}

// LoadAchievements reads the catalog at path, or the built-in catalog when
// path is empty.
func LoadAchievements(path string) ([]Achievement, error) {
	if path == "" {
		return ParseAchievements(defaultAchievements)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read achievements: %w", err)
	}
	return ParseAchievements(data)
}

// ParseAchievements decodes and validates a YAML achievement catalog.
func ParseAchievements(data []byte) ([]Achievement, error) {
	var f achievementFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse achievements: %w", err)
	}
	seen := make(map[string]struct{}, len(f.Achievements))
	for i, a := range f.Achievements {
		if a.ID == "" {
			return nil, fmt.Errorf("achievement %d: missing id", i)
		}
		if _, dup := seen[a.ID]; dup {
			return nil, fmt.Errorf("achievement %q: duplicate id", a.ID)
		}
		seen[a.ID] = struct{}{}
		switch a.Kind {
		case KindVisits, KindPoints, KindStreak, KindToursCompleted:
			if a.Threshold <= 0 {
				return nil, fmt.Errorf("achievement %q: threshold must be positive", a.ID)
			}
		case KindTour:
			if a.Tour == "" {
				return nil, fmt.Errorf("achievement %q: tour kind needs a tour id", a.ID)
			}
		default:
			return nil, fmt.Errorf("achievement %q: unknown kind %q", a.ID, a.Kind)
		}
	}
	return f.Achievements, nil
}
