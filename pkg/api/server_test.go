package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/floorkit/hbstar/pkg/config"
	"github.com/floorkit/hbstar/pkg/store"
)

const testManifest = "MODULE A 4 4\nMODULE B 3 3\n"

func TestServer_SubmitAndPoll(t *testing.T) {
	srv := NewServer(5*time.Second, store.NewMemoryStore())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	body := submitRequest{Input: testManifest, Config: fastConfig()}
	buf, _ := json.Marshal(body)

	resp, err := http.Post(ts.URL+"/jobs", "application/json", strings.NewReader(string(buf)))
	if err != nil {
		t.Fatalf("POST /jobs: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("POST /jobs status = %d, want 202", resp.StatusCode)
	}

	var sub submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&sub); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	if sub.ID == "" {
		t.Fatal("submit response has empty id")
	}

	var job jobResponse
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		r, err := http.Get(ts.URL + "/jobs/" + sub.ID)
		if err != nil {
			t.Fatalf("GET /jobs/%s: %v", sub.ID, err)
		}
		_ = json.NewDecoder(r.Body).Decode(&job)
		r.Body.Close()
		if job.Status == StatusDone || job.Status == StatusFailed {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if job.Status != StatusDone {
		t.Fatalf("job status = %q, error = %q, want done", job.Status, job.Error)
	}
	if job.BestArea <= 0 {
		t.Errorf("job.BestArea = %d, want > 0", job.BestArea)
	}
}

func TestServer_GetUnknownJob(t *testing.T) {
	srv := NewServer(5*time.Second, nil)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/jobs/nonexistent")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServer_SubmitMalformedBody(t *testing.T) {
	srv := NewServer(5*time.Second, nil)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/jobs", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func fastConfig() config.Config {
	c := config.Default()
	c.IterationsPerTemp = 5
	c.NoImprovementLimit = 10
	c.InitialTemperature = 10
	c.FinalTemperature = 5
	c.CoolingRate = 0.5
	return c
}
