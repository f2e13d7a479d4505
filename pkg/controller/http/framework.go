package http

import (
	"net/http"

	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listFrameworks(w http.ResponseWriter, r *http.Request) {
	frameworks, err := s.uc.Framework.List(r.Context())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	body := make([]*frameworkResponse, len(frameworks))
	for i, f := range frameworks {
		body[i] = toFrameworkResponse(f)
	}
	respondJSON(r.Context(), w, http.StatusOK, body)
}

func (s *Server) createFramework(w http.ResponseWriter, r *http.Request) {
	var req frameworkRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	created, err := s.uc.Framework.Create(r.Context(), req.toModel())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, toFrameworkResponse(created))
}

func (s *Server) getFramework(w http.ResponseWriter, r *http.Request) {
	framework, err := s.uc.Framework.Get(r.Context(), types.FrameworkID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toFrameworkResponse(framework))
}

func (s *Server) updateFramework(w http.ResponseWriter, r *http.Request) {
	var req frameworkRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	framework := req.toModel()
	framework.ID = types.FrameworkID(chi.URLParam(r, "id"))
	updated, err := s.uc.Framework.Update(r.Context(), framework)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toFrameworkResponse(updated))
}

func (s *Server) sampleScore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Ratings []ratingInputBody `json:"ratings"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	result, err := s.uc.Framework.SampleScore(r.Context(),
		types.FrameworkID(chi.URLParam(r, "id")), toRatingInputs(req.Ratings))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	respondJSON(r.Context(), w, http.StatusOK, map[string]any{
		"score":    result.Score,
		"critical": result.Critical,
	})
}
