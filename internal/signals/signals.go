// Package signals holds the per-user personalization inputs shared by the
// planner and the scorer.
package signals

import (
	"time"

	"github.com/abelbrown/scroll/internal/content"
)

// Action is a user reaction to an item.
type Action string

const (
	ActionView      Action = "view"
	ActionLike      Action = "like"
	ActionSave      Action = "save"
	ActionShare     Action = "share"
	ActionDislike   Action = "dislike"
	ActionNeverShow Action = "never_show"
)

// ParseAction validates a user-supplied action name.
func ParseAction(s string) (Action, bool) {
	switch a := Action(s); a {
	case ActionView, ActionLike, ActionSave, ActionShare, ActionDislike, ActionNeverShow:
		return a, true
	case "never-show", "nevershow", "block":
		return ActionNeverShow, true
	}
	return "", false
}

// Positive reports whether the action counts toward a kind's share.
func (a Action) Positive() bool {
	return a == ActionLike || a == ActionSave
}

// Preference is one recorded action.
type Preference struct {
	Kind      content.Kind
	Category  string
	Action    Action
	ContentID string
	Title     string
	At        time.Time
}

// Interest is a topic the user follows.
type Interest struct {
	Topic  string
	Weight float64
}

// Filter is an explicit per-kind rule.
type Filter struct {
	Kind    content.Kind
	Blocked bool
	Reason  string
}

// Set bundles everything known about one user. A nil *Set means anonymous.
type Set struct {
	Interests   []Interest
	Preferences []Preference
	Filters     []Filter
	// Views counts items of each kind the user was shown.
	Views map[content.Kind]int
}

// Empty reports whether the set carries no signal at all.
func (s *Set) Empty() bool {
	return s == nil || (len(s.Interests) == 0 && len(s.Preferences) == 0 && len(s.Filters) == 0)
}

// DislikeBlockRatio is the share of dislikes over a kind's exposures at which
// the kind is treated as blocked. Exposures are the recorded views, or the
// reactions when fewer views were recorded.
const DislikeBlockRatio = 0.7

// minDislikeSample avoids blocking a kind on a single dislike.
const minDislikeSample = 3

// Blocked returns the kinds the user does not want to see: explicit filters,
// any never_show action, or dislikes at or above DislikeBlockRatio.
func (s *Set) Blocked() map[content.Kind]string {
	blocked := make(map[content.Kind]string)
	if s == nil {
		return blocked
	}

	for _, f := range s.Filters {
		if f.Blocked {
			reason := f.Reason
			if reason == "" {
				reason = "filter"
			}
			blocked[f.Kind] = reason
		}
	}

	total := make(map[content.Kind]int)
	dislikes := make(map[content.Kind]int)
	for _, p := range s.Preferences {
		if p.Action == ActionView {
			continue
		}
		total[p.Kind]++
		switch p.Action {
		case ActionNeverShow:
			if _, ok := blocked[p.Kind]; !ok {
				blocked[p.Kind] = string(ActionNeverShow)
			}
		case ActionDislike:
			dislikes[p.Kind]++
		}
	}
	for kind, n := range dislikes {
		if _, ok := blocked[kind]; ok {
			continue
		}
		exposures := max(total[kind], s.Views[kind])
		if n >= minDislikeSample && float64(n)/float64(exposures) >= DislikeBlockRatio {
			blocked[kind] = "disliked"
		}
	}
	return blocked
}

// PositiveCounts returns like/save counts per kind.
func (s *Set) PositiveCounts() map[content.Kind]int {
	counts := make(map[content.Kind]int)
	if s == nil {
		return counts
	}
	for _, p := range s.Preferences {
		if p.Action.Positive() {
			counts[p.Kind]++
		}
	}
	return counts
}

// TopInterest returns the highest-weighted topic, or "".
func (s *Set) TopInterest() string {
	if s == nil {
		return ""
	}
	best := ""
	bestWeight := 0.0
	for _, in := range s.Interests {
		if in.Topic != "" && (best == "" || in.Weight > bestWeight) {
			best, bestWeight = in.Topic, in.Weight
		}
	}
	return best
}

// LastLiked returns the title of the most recent liked or saved wiki article.
func (s *Set) LastLiked() string {
	if s == nil {
		return ""
	}
	var title string
	var at time.Time
	for _, p := range s.Preferences {
		if p.Kind != content.KindWiki || !p.Action.Positive() || p.Title == "" {
			continue
		}
		if title == "" || p.At.After(at) {
			title, at = p.Title, p.At
		}
	}
	return title
}
