package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/voltlab/powerbench/internal/netlist"
	"github.com/voltlab/powerbench/internal/suggest"
	"github.com/voltlab/powerbench/internal/sweep"
	"github.com/voltlab/powerbench/internal/version"
	"github.com/voltlab/powerbench/pkg/components"
)

// suggestRequest is the body for POST /api/v1/suggest.
type suggestRequest struct {
	Class       components.Class    `json:"class"`
	Requirement suggest.Requirement `json:"requirement"`
}

// sweepRequest is the body for POST /api/v1/sweep.
type sweepRequest struct {
	CircuitType netlist.CircuitType     `json:"circuitType"`
	Operating   netlist.OperatingPoint  `json:"operating"`
	Values      netlist.ComponentValues `json:"values"`
	Config      sweep.Config            `json:"config"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": version.Map(),
	})
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body: "+err.Error(), r.URL.Path)
		return
	}
	if !req.Class.Valid() {
		BadRequest(w, "unknown component class: "+string(req.Class), r.URL.Path)
		return
	}

	suggestions, err := s.suggester.Suggest(req.Class, req.Requirement)
	if err != nil {
		var verr *suggest.ValidationError
		if errors.As(err, &verr) {
			BadRequest(w, verr.Error(), r.URL.Path)
			return
		}
		s.logger.Error("suggestion failed", zap.Error(err))
		InternalError(w, "suggestion failed", r.URL.Path)
		return
	}

	suggestRequests.WithLabelValues(string(req.Class)).Inc()
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	var req sweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		BadRequest(w, "invalid JSON body: "+err.Error(), r.URL.Path)
		return
	}
	if !req.CircuitType.Valid() {
		BadRequest(w, "unknown circuit type: "+string(req.CircuitType), r.URL.Path)
		return
	}

	start := time.Now()
	onProgress := func(current, total int, id string) {
		simulationsTotal.Inc()
		s.logger.Debug("sweep progress",
			zap.Int("current", current),
			zap.Int("total", total),
			zap.String("combination", id),
		)
	}

	report, err := s.sweeper.Run(r.Context(), req.CircuitType, req.Operating, req.Values, req.Config, onProgress)
	if err != nil {
		var cerr *sweep.ConfigError
		var serr *sweep.SimulationError
		switch {
		case errors.As(err, &cerr):
			BadRequest(w, cerr.Error(), r.URL.Path)
		case errors.As(err, &serr):
			s.logger.Error("sweep aborted", zap.Error(err))
			SimulationFailed(w, serr.Error(), r.URL.Path)
		default:
			s.logger.Error("sweep failed", zap.Error(err))
			InternalError(w, err.Error(), r.URL.Path)
		}
		return
	}

	sweepsTotal.Inc()
	sweepDuration.Observe(time.Since(start).Seconds())
	writeJSON(w, http.StatusOK, report)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
