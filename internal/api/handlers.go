package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/claimlens/claimlens/internal/model"
	"github.com/claimlens/claimlens/internal/store"
)

const maxRequestBody = 1 << 20 // 1 MiB

// batchRequest is the payload for batch verification.
type batchRequest struct {
	Texts             []string `json:"texts"`
	PublishingContext string   `json:"publishing_context,omitempty"`
}

const maxBatchSize = 50

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req model.VerifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	report, err := s.verifier.Verify(r.Context(), req)
	if err != nil {
		if errors.Is(err, model.ErrEmptyText) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("verify failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "verification failed")
		return
	}

	if s.store != nil {
		if err := s.store.Save(r.Context(), report); err != nil {
			// Persistence is best effort; the report still goes out.
			s.logger.Warn("save report", zap.String("id", report.ID), zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleVerifyBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "texts must not be empty")
		return
	}
	if len(req.Texts) > maxBatchSize {
		writeError(w, http.StatusBadRequest, "batch size exceeds "+strconv.Itoa(maxBatchSize))
		return
	}
	if s.batch == nil {
		writeError(w, http.StatusServiceUnavailable, "batch verification is not configured")
		return
	}

	results := s.batch.Run(r.Context(), req.PublishingContext, req.Texts)

	if s.store != nil {
		for _, result := range results {
			if result.Report == nil {
				continue
			}
			if err := s.store.Save(r.Context(), result.Report); err != nil {
				s.logger.Warn("save report", zap.String("id", result.Report.ID), zap.Error(err))
			}
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	summaries, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("list reports", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not list reports")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"reports": summaries})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	report, err := s.store.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		s.logger.Error("get report", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not load report")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.store.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	if err != nil {
		s.logger.Error("delete report", zap.String("id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "could not delete report")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeJSON parses the request body into dst, writing the 400 itself
// on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
