// Persisted known-job ids, one pipe-delimited row per company. This is
// the only thing that survives between runs.

package state

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// KnownJobs tracks the already-notified job ids per company id.
type KnownJobs struct {
	path string
	byID map[string]mapset.Set[string]
}

// Load reads the known-jobs file. A missing file is an empty state,
// not an error; the first run starts from nothing.
func Load(path string) (*KnownJobs, error) {
	kj := &KnownJobs{
		path: path,
		byID: make(map[string]mapset.Set[string]),
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return kj, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open known jobs: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read known jobs: %w", err)
	}
	for i, row := range rows {
		if i == 0 || len(row) < 2 {
			continue
		}
		set := mapset.NewSet[string]()
		for _, id := range strings.Split(row[1], "|") {
			if id != "" {
				set.Add(id)
			}
		}
		kj.byID[row[0]] = set
	}
	return kj, nil
}

// Known reports whether a job id has already been notified for the
// company.
func (k *KnownJobs) Known(companyID, jobID string) bool {
	set, ok := k.byID[companyID]
	return ok && set.Contains(jobID)
}

// Add marks a job id as notified.
func (k *KnownJobs) Add(companyID, jobID string) {
	set, ok := k.byID[companyID]
	if !ok {
		set = mapset.NewSet[string]()
		k.byID[companyID] = set
	}
	set.Add(jobID)
}

// Save rewrites the whole file. Called at the end of a run and on the
// failure path, so a partial run still keeps what it learned.
func (k *KnownJobs) Save() error {
	f, err := os.Create(k.path)
	if err != nil {
		return fmt.Errorf("write known jobs: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"CompanyID", "KnownJobs"}); err != nil {
		return fmt.Errorf("write known jobs header: %w", err)
	}

	companies := make([]string, 0, len(k.byID))
	for id := range k.byID {
		companies = append(companies, id)
	}
	sort.Strings(companies)

	for _, companyID := range companies {
		ids := k.byID[companyID].ToSlice()
		sort.Strings(ids)
		if err := w.Write([]string{companyID, strings.Join(ids, "|")}); err != nil {
			return fmt.Errorf("write known jobs row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush known jobs: %w", err)
	}
	log.Printf("Updated the known jobs file at %s", k.path)
	return nil
}
