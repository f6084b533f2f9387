package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/statboard/statboard/pkg/editor"
	"github.com/statboard/statboard/pkg/layout/grid"
	"github.com/statboard/statboard/pkg/layout/measure"
	"github.com/statboard/statboard/pkg/layout/resolve"
	"github.com/statboard/statboard/pkg/pipeline"
	"github.com/statboard/statboard/pkg/report"
	"github.com/statboard/statboard/pkg/store"
)

var square = measure.Estimator{CharWidthEm: 0.5, LineHeightEm: 1.0}

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	policy := resolve.DefaultPolicy()
	policy.Fit.CellPaddingPx = 0
	engine := resolve.NewWithPolicy(square, policy)

	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, nil, engine, logger)
	s := New(store.NewMemoryStore(), runner, editor.New(engine), logger)

	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return s, ts
}

func sampleReport(id string) report.Report {
	return report.Report{
		ID:    id,
		Title: "Weekly events",
		Blocks: []report.Block{
			{ID: id + "-b1", Cells: []report.Cell{
				{ChartID: "note", Width: 1, BodyType: report.BodyText, Text: "Signups rose all week"},
			}},
		},
	}
}

func putReport(t *testing.T, ts *httptest.Server, rep report.Report) {
	t.Helper()
	body, _ := json.Marshal(rep)
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/reports/"+rep.ID, bytes.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT report: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d", resp.StatusCode)
	}
}

func TestReportCRUD(t *testing.T) {
	_, ts := newTestServer(t)
	putReport(t, ts, sampleReport("r1"))

	resp, err := http.Get(ts.URL + "/api/reports/r1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	var got report.Report
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "Weekly events" || got.UpdatedAt.IsZero() {
		t.Errorf("report = %+v", got)
	}

	resp2, err := http.Get(ts.URL + "/api/reports/missing")
	if err != nil {
		t.Fatalf("GET missing: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("GET missing status = %d", resp2.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/reports/r1", nil)
	resp3, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	defer resp3.Body.Close()
	if resp3.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d", resp3.StatusCode)
	}
}

func TestPutRejectsMismatchedID(t *testing.T) {
	_, ts := newTestServer(t)
	body, _ := json.Marshal(sampleReport("r1"))
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/reports/other", bytes.NewReader(body))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestResolveEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	rep := sampleReport("r1")
	body, _ := json.Marshal(resolveRequest{Report: &rep, WidthPx: 800})
	resp, err := http.Post(ts.URL+"/api/layout/resolve", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var layout grid.Layout
	if err := json.NewDecoder(resp.Body).Decode(&layout); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(layout.Blocks) != 1 || layout.Blocks[0].Style.HeightPx != 200 {
		t.Errorf("layout = %+v", layout)
	}
}

func TestResolveRequiresReport(t *testing.T) {
	_, ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/api/layout/resolve", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if errResp.Code == "" || errResp.Message == "" {
		t.Errorf("error response = %+v", errResp)
	}
}

func TestValidateEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	rep := sampleReport("r1")
	rep.Blocks[0].Cells = append(rep.Blocks[0].Cells, report.Cell{
		ChartID: "photo", Width: 1, BodyType: report.BodyImage,
		Image: &report.ImageData{AspectRatio: report.Ratio{W: 16, H: 9}, Mode: report.ImageModeCover},
	})
	rep.Blocks[0].AspectRatioOverride = report.Ratio{W: 4, H: 6} // illegal with an image cell

	body, _ := json.Marshal(validateRequest{Report: &rep})
	resp, err := http.Post(ts.URL+"/api/layout/validate", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	var result editor.Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Valid {
		t.Error("illegal override should fail validation")
	}
}

func TestViewEndpoint(t *testing.T) {
	_, ts := newTestServer(t)
	putReport(t, ts, sampleReport("r1"))

	resp, err := http.Get(ts.URL + "/reports/r1/view?width=800")
	if err != nil {
		t.Fatalf("GET view: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("content type = %q", ct)
	}
	svg, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(svg, []byte("Signups rose all week")) {
		t.Error("view should render the report content")
	}

	resp2, err := http.Get(ts.URL + "/reports/r1/view?width=bogus")
	if err != nil {
		t.Fatalf("GET view bad width: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusBadRequest {
		t.Errorf("bad width status = %d", resp2.StatusCode)
	}
}

func TestRequestIDPropagates(t *testing.T) {
	_, ts := newTestServer(t)
	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("request id = %q", got)
	}
}

func TestShutdownWithoutStart(t *testing.T) {
	s, _ := newTestServer(t)
	if err := s.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}
