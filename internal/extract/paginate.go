package extract

import (
	"context"
	"log"
	"math"

	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/jobs"
)

// pageFunc extracts one page and reports the vendor-declared total page
// count (0 when the page does not carry one).
type pageFunc func(page *fetch.Response) (jobs.Records, int, error)

// nextRequestFunc builds the request for the given 1-based page number.
type nextRequestFunc func(page int) fetch.Request

// PageCount converts a declared result total and page size into a page
// count.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(pageSize)))
}

// paginate runs extractPage over the first response and then walks
// pages 2..min(declared, cap), merging as it goes. A fetch failure or
// empty body on a later page is a soft stop: whatever accumulated so
// far is the result. A decode failure on a later page returns the
// partial records together with the error so the caller can abort the
// company cycle.
func paginate(ctx context.Context, client *fetch.Client, first *fetch.Response,
	extractPage pageFunc, nextRequest nextRequestFunc, pageCap int) (jobs.Records, error) {

	acc, declared, err := extractPage(first)
	if err != nil {
		return acc, err
	}
	if acc == nil {
		acc = jobs.Records{}
	}

	last := declared
	if pageCap < last {
		last = pageCap
	}
	for page := 2; page <= last; page++ {
		resp, err := client.Do(ctx, nextRequest(page))
		if err != nil {
			log.Printf("page %d fetch failed, keeping partial results: %v", page, err)
			return acc, nil
		}
		if resp.Empty() {
			return acc, nil
		}
		recs, _, err := extractPage(resp)
		if err != nil {
			return acc, err
		}
		acc.Merge(recs)
	}
	return acc, nil
}
