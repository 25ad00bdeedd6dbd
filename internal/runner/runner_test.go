package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-jobs-notifier/internal/config"
	"go-jobs-notifier/internal/extract"
	"go-jobs-notifier/internal/fetch"
	"go-jobs-notifier/internal/jobs"
	"go-jobs-notifier/internal/state"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

// recordingNotifier captures everything instead of posting webhooks.
type recordingNotifier struct {
	mu     sync.Mutex
	jobs   []string
	errors []string
	deploy []string
	fail   bool
}

func (n *recordingNotifier) JobFound(company string, rec jobs.Record) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("webhook down")
	}
	n.jobs = append(n.jobs, company+"/"+rec.ID)
	return nil
}

func (n *recordingNotifier) Error(message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
	return nil
}

func (n *recordingNotifier) Deployment(kind, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.deploy = append(n.deploy, kind)
	return nil
}

func testSettings() *config.Settings {
	return &config.Settings{
		MatchThreshold:     50,
		RecencyDays:        7,
		HTTPTimeoutSeconds: 5,
		IgnoreTerms:        []string{"Senior"},
	}
}

func newRunner(t *testing.T, notifier *recordingNotifier) (*Runner, *state.KnownJobs) {
	t.Helper()
	known, err := state.Load(filepath.Join(t.TempDir(), "already_known_jobs.csv"))
	assert.NoError(t, err)
	return &Runner{
		Settings: testSettings(),
		Client:   fetch.NewClient(5 * time.Second),
		Table:    extract.Registry(),
		Notifier: notifier,
		Known:    known,
		Now:      testNow,
	}, known
}

func amazonServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	fresh := testNow.AddDate(0, 0, -1).Format("January 2, 2006")
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, fmt.Sprintf(
			`{"jobs":[{"id_icims":"1001","title":"Software Engineer","posted_date":"%s","job_path":"en/jobs/1001"}]}`,
			fresh))
	}))
}

func amazonCompany(url, status string) config.Company {
	return config.Company{
		ID:            "1",
		Name:          "Amazon",
		Portal:        "Custom",
		Keywords:      []string{"Software Engineer"},
		SearchType:    "GET",
		SearchURL:     url + "/search?base_query={}",
		MonitorStatus: status,
	}
}

func TestDisabledCompanyIsSkippedEntirely(t *testing.T) {
	hits := 0
	srv := amazonServer(t, &hits)
	defer srv.Close()

	notifier := &recordingNotifier{}
	r, _ := newRunner(t, notifier)

	err := r.Run(context.Background(), []config.Company{amazonCompany(srv.URL, "Disabled")})
	assert.NoError(t, err)
	assert.Zero(t, hits, "no requests for a disabled company")
	assert.Empty(t, notifier.jobs)
}

func TestNewJobNotifiedOnceThenKnown(t *testing.T) {
	hits := 0
	srv := amazonServer(t, &hits)
	defer srv.Close()

	notifier := &recordingNotifier{}
	r, known := newRunner(t, notifier)
	companies := []config.Company{amazonCompany(srv.URL, "Enabled")}

	assert.NoError(t, r.Run(context.Background(), companies))
	assert.Equal(t, []string{"Amazon/1001"}, notifier.jobs)
	assert.True(t, known.Known("1", "1001"))

	// Second run: the vendor still returns the job, but it is known.
	assert.NoError(t, r.Run(context.Background(), companies))
	assert.Equal(t, []string{"Amazon/1001"}, notifier.jobs, "never re-notified")
}

func TestUnknownCompanyYieldsNothing(t *testing.T) {
	hits := 0
	srv := amazonServer(t, &hits)
	defer srv.Close()

	notifier := &recordingNotifier{}
	r, _ := newRunner(t, notifier)

	company := amazonCompany(srv.URL, "Enabled")
	company.Name = "SomeStartupNobodyRegistered"

	assert.NoError(t, r.Run(context.Background(), []config.Company{company}))
	assert.Zero(t, hits, "no extractor, no requests")
	assert.Empty(t, notifier.jobs)
	assert.Empty(t, notifier.errors)
}

func TestCompanyFailureDoesNotStopOthers(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, "this is not json")
	}))
	defer bad.Close()
	hits := 0
	good := amazonServer(t, &hits)
	defer good.Close()

	notifier := &recordingNotifier{}
	r, _ := newRunner(t, notifier)

	broken := amazonCompany(bad.URL, "Enabled")
	broken.ID = "2"
	broken.Name = "Netflix"
	companies := []config.Company{broken, amazonCompany(good.URL, "Enabled")}

	assert.NoError(t, r.Run(context.Background(), companies))
	assert.Len(t, notifier.errors, 1, "broken company reported")
	assert.Equal(t, []string{"Amazon/1001"}, notifier.jobs, "healthy company still processed")
}

func TestNotificationFailureAbortsRun(t *testing.T) {
	hits := 0
	srv := amazonServer(t, &hits)
	defer srv.Close()

	notifier := &recordingNotifier{fail: true}
	r, known := newRunner(t, notifier)

	err := r.Run(context.Background(), []config.Company{amazonCompany(srv.URL, "Enabled")})
	assert.Error(t, err)
	assert.False(t, known.Known("1", "1001"), "job not marked known when delivery failed")
}

func TestKeywordRequestShapes(t *testing.T) {
	r, _ := newRunner(t, &recordingNotifier{})

	get := config.Company{SearchType: "GET", SearchURL: "https://x.example/s?q={}"}
	assert.Equal(t, "https://x.example/s?q=software+engineer",
		r.keywordRequest(get, "software engineer").URL)

	workday := config.Company{
		SearchType:   "POST",
		Portal:       "Workday",
		SearchURL:    "https://wd.example/jobs",
		SearchHeader: map[string]any{"limit": 20, "offset": 0, "searchText": ""},
	}
	req := r.keywordRequest(workday, "Software Engineer")
	assert.Equal(t, "software+engineer", req.Body["searchText"])

	greenhouse := config.Company{
		SearchType: "POST",
		Portal:     "Greenhouse",
		SearchURL:  "https://gh.example/search",
	}
	req = r.keywordRequest(greenhouse, "Software Engineer")
	params, ok := req.Body["params"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "Software Engineer", params["query"])
}
