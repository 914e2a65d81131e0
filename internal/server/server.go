package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/toxguard-ai/toxguard/internal/config"
	"github.com/toxguard-ai/toxguard/internal/redact"
	"github.com/toxguard-ai/toxguard/internal/toxguard"
)

// Server exposes the detector over HTTP.
type Server struct {
	mux      *http.ServeMux
	cfg      *config.Config
	detector *toxguard.Detector
}

// New wires the routes for a detector.
func New(cfg *config.Config, detector *toxguard.Detector) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		cfg:      cfg,
		detector: detector,
	}

	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/v1/analyze", s.handleAnalyze)
	s.mux.HandleFunc("/v1/status", s.handleStatus)

	return s
}

// Start runs the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	redact.Logf("toxguard serving on %s (model_dir=%s)", addr, s.cfg.Model.Dir)
	return http.ListenAndServe(addr, s.mux)
}

// Handler returns the route multiplexer, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "ok")
}

type statusResponse struct {
	State string `json:"state"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{State: s.detector.State().String()})
}

type analyzeRequest struct {
	Text      string   `json:"text"`
	Threshold *float32 `json:"threshold,omitempty"`
}

type analyzeResponse struct {
	toxguard.Result
	IsToxic bool `json:"is_toxic"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Text == "" {
		http.Error(w, "missing text", http.StatusBadRequest)
		return
	}

	threshold := s.cfg.Model.Threshold
	if req.Threshold != nil {
		if *req.Threshold <= 0 || *req.Threshold >= 1 {
			http.Error(w, "threshold must be in (0, 1)", http.StatusBadRequest)
			return
		}
		threshold = *req.Threshold
	}

	ctx := r.Context()
	result := s.detector.DetectToxicity(ctx, req.Text)
	if result.HasError {
		// The detector never raises; an error result means the session could
		// not be loaded or inference failed.
		writeJSON(w, http.StatusServiceUnavailable, analyzeResponse{Result: result})
		return
	}

	if s.cfg.Logging.TextLevel == "snippet" {
		redact.Logf("analyze: text=%s toxic=%v p=%.3f", redact.Snippet(req.Text), result.Toxic, result.ToxicProbability)
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Result:  result,
		IsToxic: result.Toxic || result.Exceeds(threshold),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		redact.Logf("write response: %v", err)
	}
}
