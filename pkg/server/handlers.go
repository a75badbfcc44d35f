package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/checker"
	"github.com/verifywire/verifywire-go/pkg/normalize"
	"github.com/verifywire/verifywire-go/pkg/types"
)

type CheckRequest struct {
	ShortCode string `json:"shortCode"`
	Text      string `json:"text"`
}

type ErrorResponse struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	NextStep string `json:"nextStep,omitempty"`
}

// RecordResponse carries only public on-chain data.
type RecordResponse struct {
	ShortCode      string `json:"shortCode"`
	HasAttestation bool   `json:"hasAttestation"`
	*types.OnChainRecord
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, kind, message, nextStep string) {
	writeJSON(w, status, ErrorResponse{Kind: kind, Message: message, NextStep: nextStep})
}

// writeAppError maps the error taxonomy onto HTTP status codes.
func writeAppError(w http.ResponseWriter, err error) {
	var ae *apperrors.Error
	if !errors.As(err, &ae) {
		writeError(w, http.StatusInternalServerError, string(apperrors.KindInternal), "Internal error.", "")
		return
	}

	status := http.StatusInternalServerError
	switch ae.Kind {
	case apperrors.KindInput:
		status = http.StatusBadRequest
	case apperrors.KindConfiguration:
		status = http.StatusServiceUnavailable
	case apperrors.KindNetwork:
		status = http.StatusBadGateway
	}
	writeError(w, status, string(ae.Kind), ae.Message, ae.NextStep)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":             "ok",
		"registryConfigured": s.registry != nil,
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, string(apperrors.KindInput), "Failed to parse request body.", "Send JSON with shortCode and text.")
		return
	}

	// Each request is its own user action, so each gets its own checker.
	result, err := checker.NewChecker(s.registry, s.logger).Check(r.Context(), req.ShortCode, req.Text)
	if err != nil {
		s.metrics.IncrementCheckFailures(string(apperrors.KindOf(err)))
		s.logger.Sugar().Warnw("Check failed",
			"requestId", RequestID(r.Context()),
			"shortCode", normalize.NormalizeShortCode(req.ShortCode),
			"error", err,
		)
		writeAppError(w, err)
		return
	}

	s.metrics.IncrementChecks(string(result.Verdict.Kind))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		writeAppError(w, apperrors.Configuration("Registry not configured.", apperrors.ErrRegistryNotConfigured))
		return
	}

	code := normalize.NormalizeShortCode(chi.URLParam(r, "shortCode"))
	if !normalize.IsValidShortCode(code) {
		writeAppError(w, apperrors.Input("Invalid short code.", nil))
		return
	}

	rec, err := s.registry.GetRecord(r.Context(), code)
	if err != nil {
		s.logger.Sugar().Warnw("Record lookup failed", "requestId", RequestID(r.Context()), "shortCode", code, "error", err)
		writeAppError(w, apperrors.Network("Could not reach registry RPC.", err))
		return
	}

	s.metrics.IncrementRecordLookups()
	writeJSON(w, http.StatusOK, RecordResponse{
		ShortCode:      code,
		HasAttestation: rec.HasAttestation(),
		OnChainRecord:  rec,
	})
}
