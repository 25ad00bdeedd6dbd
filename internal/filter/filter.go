// Title relevance rules shared by every vendor extractor.

package filter

import (
	"strings"
	"time"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

const (
	// DefaultThreshold is the minimum fuzzy ratio a title must beat.
	DefaultThreshold = 50
	// DefaultRecencyDays is how fresh a posting must be to notify on.
	DefaultRecencyDays = 7
)

// Rules decides whether a posting is worth notifying about. One value is
// built per keyword cycle and handed to the extractor.
type Rules struct {
	Keyword     string
	IgnoreTerms []string
	Threshold   int
	RecencyDays int
	Now         time.Time
}

// NewRules builds rules for one keyword with the given knobs. A zero now
// means the wall clock.
func NewRules(keyword string, ignoreTerms []string, threshold, recencyDays int, now time.Time) Rules {
	if now.IsZero() {
		now = time.Now()
	}
	return Rules{
		Keyword:     keyword,
		IgnoreTerms: ignoreTerms,
		Threshold:   threshold,
		RecencyDays: recencyDays,
		Now:         now,
	}
}

// Accept reports whether a title/date pair passes all three gates:
// fuzzy ratio strictly above the threshold, no ignore term present, and
// posted strictly inside the recency window. Ignore terms are matched as
// case-sensitive literal substrings, after the ratio gate.
func (r Rules) Accept(title string, posted time.Time) bool {
	if !r.MatchesTitle(title) {
		return false
	}
	return r.Recent(posted)
}

// MatchesTitle applies the ratio and ignore-term gates only. Used by
// adapters that have no real posting date and substitute today.
func (r Rules) MatchesTitle(title string) bool {
	if fuzzy.Ratio(title, r.Keyword) <= r.Threshold {
		return false
	}
	for _, term := range r.IgnoreTerms {
		if term == "" {
			continue
		}
		if strings.Contains(title, term) {
			return false
		}
	}
	return true
}

// Recent reports whether posted falls strictly inside the recency
// window. A posting exactly RecencyDays old is already stale.
func (r Rules) Recent(posted time.Time) bool {
	days := int(r.Now.Truncate(24*time.Hour).Sub(posted.Truncate(24*time.Hour)).Hours() / 24)
	return days < r.RecencyDays
}
