// Normalized job postings shared by every vendor extractor.

package jobs

import "time"

// Record is one job posting after normalization. Vendors disagree on
// everything else; this is the shape the rest of the pipeline sees.
type Record struct {
	ID       string
	Title    string
	Posted   time.Time
	ApplyURL string
}

// Records maps vendor job id to its posting. Insertion order is
// irrelevant; a later write for the same id replaces the earlier one.
type Records map[string]Record

// Merge folds other into r, last write wins on id collisions.
func (r Records) Merge(other Records) {
	for id, rec := range other {
		r[id] = rec
	}
}
