package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voltlab/powerbench/internal/sim"
	"github.com/voltlab/powerbench/internal/suggest"
	"github.com/voltlab/powerbench/internal/sweep"
	"github.com/voltlab/powerbench/internal/testutil"
	"github.com/voltlab/powerbench/pkg/catalog"
	"github.com/voltlab/powerbench/pkg/components"
)

type failingSimulator struct{}

func (failingSimulator) Simulate(context.Context, string) (sim.Metrics, error) {
	return sim.Metrics{}, errors.New("solver diverged")
}

func testCatalog() *catalog.Catalog {
	return catalog.New(
		[]components.MOSFET{
			testutil.NewMOSFET("FET-1", testutil.WithRatings(100, 80)),
			testutil.NewMOSFET("FET-2", testutil.WithRatings(80, 60)),
		},
		[]components.Capacitor{
			testutil.NewCapacitor("CAP-1", testutil.WithCapRating(100, 63)),
		},
		[]components.Inductor{
			testutil.NewInductor("IND-1", testutil.WithIndRating(100, 10, 14)),
		},
	)
}

func newTestServer(t *testing.T, simulator sim.Simulator) *Server {
	t.Helper()
	cat := testCatalog()
	logger := zap.NewNop()
	return New("127.0.0.1:0",
		suggest.NewEngine(cat),
		sweep.NewEngine(cat, simulator, logger),
		logger,
	)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) Problem {
	t.Helper()
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	var p Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, sim.NewMockSimulator(sim.WithLatency(0)))
	rec := doJSON(t, srv.Handler(), http.MethodGet, "/api/v1/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Contains(t, body, "version")
}

func TestHandleSuggest_OK(t *testing.T) {
	srv := newTestServer(t, sim.NewMockSimulator(sim.WithLatency(0)))

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/suggest", map[string]any{
		"class": "mosfet",
		"requirement": map[string]any{
			"maxVoltage": 48,
			"maxCurrent": 20,
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Suggestions []struct {
			Part    map[string]any `json:"part"`
			Score   float64        `json:"score"`
			Reasons []string       `json:"reasons"`
		} `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotEmpty(t, body.Suggestions)
	assert.Greater(t, body.Suggestions[0].Score, 0.0)
	assert.NotEmpty(t, body.Suggestions[0].Reasons)
}

func TestHandleSuggest_UnknownClass(t *testing.T) {
	srv := newTestServer(t, sim.NewMockSimulator(sim.WithLatency(0)))

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/suggest", map[string]any{
		"class":       "thermistor",
		"requirement": map[string]any{"maxVoltage": 48, "maxCurrent": 20},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, ProblemTypeBadRequest, p.Type)
	assert.Contains(t, p.Detail, "thermistor")
	assert.Equal(t, "/api/v1/suggest", p.Instance)
}

func TestHandleSuggest_ValidationError(t *testing.T) {
	srv := newTestServer(t, sim.NewMockSimulator(sim.WithLatency(0)))

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/suggest", map[string]any{
		"class":       "mosfet",
		"requirement": map[string]any{"maxVoltage": -48, "maxCurrent": 20},
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, ProblemTypeBadRequest, p.Type)
	assert.Contains(t, p.Detail, "maxVoltage")
}

func TestHandleSuggest_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, sim.NewMockSimulator(sim.WithLatency(0)))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/suggest", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, ProblemTypeBadRequest, p.Type)
}

func validSweepBody() map[string]any {
	return map[string]any{
		"circuitType": "BUCK",
		"operating": map[string]any{
			"inputVoltage":  24,
			"outputVoltage": 12,
			"loadCurrent":   4,
			"switchingFreq": 500000,
		},
		"values": map[string]any{
			"inductance":  22e-6,
			"capacitance": 100e-6,
		},
		"config": map[string]any{
			"mosfets":    []string{"FET-1", "FET-2"},
			"capacitors": []string{"CAP-1"},
			"inductors":  []string{"IND-1"},
			"priorities": map[string]any{"efficiency": true, "thd": true},
		},
	}
}

func TestHandleSweep_OK(t *testing.T) {
	srv := newTestServer(t, sim.NewMockSimulator(sim.WithLatency(0)))

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sweep", validSweepBody())

	require.Equal(t, http.StatusOK, rec.Code)
	var report sweep.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	assert.Equal(t, "BUCK", string(report.CircuitType))
	assert.NotEmpty(t, report.ID)
	require.Len(t, report.Permutations, 2)
	assert.Equal(t, 1, report.Permutations[0].Rank)
	assert.Equal(t, 2, report.Permutations[1].Rank)
	require.NotNil(t, report.Best)
	assert.Equal(t, report.Permutations[0].ID, report.Best.ID)
	assert.ElementsMatch(t, []string{"efficiency", "thd"}, report.PriorityMetrics)
}

func TestHandleSweep_UnknownPartNumber(t *testing.T) {
	srv := newTestServer(t, sim.NewMockSimulator(sim.WithLatency(0)))

	body := validSweepBody()
	body["config"].(map[string]any)["mosfets"] = []string{"FET-MISSING"}
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sweep", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, ProblemTypeBadRequest, p.Type)
	assert.Contains(t, p.Detail, "FET-MISSING")
}

func TestHandleSweep_UnknownCircuitType(t *testing.T) {
	srv := newTestServer(t, sim.NewMockSimulator(sim.WithLatency(0)))

	body := validSweepBody()
	body["circuitType"] = "FLYBACK"
	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sweep", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, ProblemTypeBadRequest, p.Type)
	assert.Contains(t, p.Detail, "FLYBACK")
}

func TestHandleSweep_SimulationFailure(t *testing.T) {
	srv := newTestServer(t, failingSimulator{})

	rec := doJSON(t, srv.Handler(), http.MethodPost, "/api/v1/sweep", validSweepBody())

	require.Equal(t, http.StatusBadGateway, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, ProblemTypeSimulation, p.Type)
	assert.Contains(t, p.Detail, "solver diverged")
}

func TestWriteProblem(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "no such report", "/api/v1/reports/42")

	require.Equal(t, http.StatusNotFound, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, ProblemTypeNotFound, p.Type)
	assert.Equal(t, "Not Found", p.Title)
	assert.Equal(t, http.StatusNotFound, p.Status)
	assert.Equal(t, "/api/v1/reports/42", p.Instance)
}
