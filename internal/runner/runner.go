// The run loop: one pass over the configured companies, one keyword at
// a time, strictly sequential.

package runner

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-jobs-notifier/internal/config"
	"go-jobs-notifier/internal/extract"
	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/filter"
	"go-jobs-notifier/internal/jobs"
	"go-jobs-notifier/internal/notify"
	"go-jobs-notifier/internal/state"
)

// CompanyResult is the explicit outcome of one company's cycle. Jobs
// holds whatever was extracted before a failure, so a partial cycle
// still notifies what it found; Err carries the reason the cycle
// stopped early.
type CompanyResult struct {
	CompanyID string
	Company   string
	Jobs      jobs.Records
	Err       error
}

// Runner wires the collaborators for one run.
type Runner struct {
	Settings *config.Settings
	Client   *fetch.Client
	Table    map[string]extract.Extractor
	Notifier notify.Notifier
	Known    *state.KnownJobs

	// Now pins the clock in tests; zero means wall time.
	Now time.Time
}

func (r *Runner) now() time.Time {
	if r.Now.IsZero() {
		return time.Now()
	}
	return r.Now
}

// Run processes every enabled company once. A company failure is
// reported and skipped over; a notification-delivery failure aborts
// the run, since losing notifications defeats the point. The caller
// owns persisting known-jobs state, also on the failure path.
func (r *Runner) Run(ctx context.Context, companies []config.Company) error {
	runID := uuid.NewString()
	stamp := r.now().Format("02/01/2006 15:04:05")
	if err := r.Notifier.Deployment("Info", fmt.Sprintf("%s - Starting run %s ...", stamp, runID)); err != nil {
		log.Printf("deployment notice failed: %v", err)
	}

	for _, company := range companies {
		if !company.Enabled() {
			log.Printf("Bypassing %s as information not available", company.Name)
			continue
		}

		result := r.processCompany(ctx, company)
		if result.Err != nil {
			log.Printf("Looks like the company [ %s ] career page is down. So will try later: %v",
				company.Name, result.Err)
			if err := r.Notifier.Error(fmt.Sprintf("%s - %s: %v", stamp, company.Name, result.Err)); err != nil {
				log.Printf("error notice failed: %v", err)
			}
		}

		if err := r.notifyNew(company, result.Jobs); err != nil {
			return err
		}
	}

	log.Printf("All new jobs notified to the user.")
	stamp = r.now().Format("02/01/2006 15:04:05")
	if err := r.Notifier.Deployment("Information", fmt.Sprintf("%s - Run %s completed successfully.", stamp, runID)); err != nil {
		log.Printf("deployment notice failed: %v", err)
	}
	return nil
}

// processCompany runs every keyword cycle for one company and returns
// the explicit result. An unsupported company name extracts to an
// empty mapping without error.
func (r *Runner) processCompany(ctx context.Context, company config.Company) CompanyResult {
	result := CompanyResult{
		CompanyID: company.ID,
		Company:   company.Name,
		Jobs:      jobs.Records{},
	}

	extractor := extract.Lookup(r.Table, company.Name)
	if extractor == nil {
		log.Printf("No extractor registered for %s, skipping", company.Name)
		return result
	}

	for _, keyword := range company.Keywords {
		log.Printf("Fetching data from %s for keyword: %s ...", company.Name, keyword)

		req := r.keywordRequest(company, keyword)
		resp, err := r.Client.Do(ctx, req)
		if err != nil {
			result.Err = err
			return result
		}
		if resp.Empty() {
			return result
		}

		params := extract.Params{
			Base: req,
			Rules: filter.NewRules(keyword, r.Settings.IgnoreTerms,
				r.Settings.MatchThreshold, r.Settings.RecencyDays, r.now()),
		}
		recs, err := extractor.Extract(ctx, r.Client, resp, params)
		result.Jobs.Merge(recs)
		if err != nil {
			result.Err = err
			return result
		}
	}
	return result
}

// keywordRequest builds the search request for one keyword. GET
// vendors take the keyword in a {} URL placeholder; POST vendors take
// it in a body field whose name depends on the portal family.
func (r *Runner) keywordRequest(company config.Company, keyword string) fetch.Request {
	base := fetch.NewRequest(company.SearchType, company.SearchURL,
		company.SearchHeader, company.SearchExtraHeader)

	if company.SearchType != http.MethodPost {
		return base.WithKeywordURL(keyword)
	}
	switch company.Portal {
	case "Greenhouse":
		return base.WithNestedBodyField("params", "query", keyword)
	default:
		// Workday and friends.
		return base.WithBodyField("searchText", strings.ToLower(strings.ReplaceAll(keyword, " ", "+")))
	}
}

// notifyNew sends exactly one notification per previously unseen job
// id and records it as known.
func (r *Runner) notifyNew(company config.Company, found jobs.Records) error {
	for id, rec := range found {
		if r.Known.Known(company.ID, id) {
			continue
		}
		log.Printf("New job found: %s posted on: %s for company: %s. Notifying user ...",
			rec.Title, rec.Posted.Format("2006-01-02"), company.Name)
		if err := r.Notifier.JobFound(company.Name, rec); err != nil {
			return fmt.Errorf("notify %s job %s: %w", company.Name, id, err)
		}
		r.Known.Add(company.ID, id)
	}
	return nil
}
