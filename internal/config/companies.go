package config

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Company is one configured employer: identity, portal family, search
// endpoint and the per-request templates that go with it.
type Company struct {
	ID                string
	Name              string
	Portal            string
	Keywords          []string
	SearchURL         string
	SearchType        string            // GET or POST
	SearchHeader      map[string]any    // POST body template
	SearchExtraHeader map[string]string // HTTP headers
	MonitorStatus     string
}

// Enabled reports whether the company should be polled at all.
func (c Company) Enabled() bool {
	return c.MonitorStatus == "Enabled"
}

// The roster is split across several CSV tables sharing a CompanyID
// key, maintained by hand alongside the binary.
const (
	companyDataFile = "company_data.csv"
	keywordsFile    = "keywords.csv"
	searchAPIFile   = "search_api.csv"
	headersFile     = "search_headers.csv"
	extraHeaders    = "search_extra_headers.csv"
	statusFile      = "company_status.csv"
	// KnownJobsFile is owned by the state package but lives in the
	// same directory.
	KnownJobsFile = "already_known_jobs.csv"
)

// LoadCompanies joins the CSV tables into the company roster,
// preserving the order of company_data.csv.
func LoadCompanies(dataDir string) ([]Company, error) {
	rows, err := readTable(filepath.Join(dataDir, companyDataFile), ',')
	if err != nil {
		return nil, err
	}

	var companies []Company
	index := make(map[string]int)
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		index[row[0]] = len(companies)
		companies = append(companies, Company{ID: row[0], Name: row[1], Portal: row[2]})
	}

	rows, err = readTable(filepath.Join(dataDir, keywordsFile), ',')
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if i, ok := index[row[0]]; ok && len(row) > 1 {
			companies[i].Keywords = splitPipe(row[1])
		}
	}

	rows, err = readTable(filepath.Join(dataDir, searchAPIFile), ',')
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if i, ok := index[row[0]]; ok && len(row) > 2 {
			companies[i].SearchType = row[1]
			companies[i].SearchURL = row[2]
		}
	}

	rows, err = readTable(filepath.Join(dataDir, headersFile), '|')
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		i, ok := index[row[0]]
		if !ok || len(row) < 2 || row[1] == "" {
			continue
		}
		var body map[string]any
		if err := json.Unmarshal([]byte(row[1]), &body); err != nil {
			return nil, fmt.Errorf("company %s search header: %w", row[0], err)
		}
		companies[i].SearchHeader = body
	}

	rows, err = readTable(filepath.Join(dataDir, extraHeaders), '|')
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		i, ok := index[row[0]]
		if !ok || len(row) < 2 || row[1] == "" {
			continue
		}
		var headers map[string]string
		if err := json.Unmarshal([]byte(row[1]), &headers); err != nil {
			return nil, fmt.Errorf("company %s extra header: %w", row[0], err)
		}
		companies[i].SearchExtraHeader = headers
	}

	rows, err = readTable(filepath.Join(dataDir, statusFile), ',')
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		if i, ok := index[row[0]]; ok && len(row) > 1 {
			companies[i].MonitorStatus = row[1]
		}
	}

	return companies, nil
}

// readTable reads a CSV file and drops its header row.
func readTable(path string, delimiter rune) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	// Header templates are raw JSON documents; their quotes must not
	// trip the CSV quoting rules.
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}

func splitPipe(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
