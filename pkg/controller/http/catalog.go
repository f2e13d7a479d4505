package http

import (
	"net/http"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.uc.Catalog.ListCategories(r.Context())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	body := make([]*categoryResponse, len(categories))
	for i, c := range categories {
		body[i] = toCategoryResponse(c)
	}
	respondJSON(r.Context(), w, http.StatusOK, body)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	created, err := s.uc.Catalog.CreateCategory(r.Context(), req.toModel())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, toCategoryResponse(created))
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	category, err := s.uc.Catalog.GetCategory(r.Context(), types.CategoryID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toCategoryResponse(category))
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	category := req.toModel()
	category.ID = types.CategoryID(chi.URLParam(r, "id"))
	updated, err := s.uc.Catalog.UpdateCategory(r.Context(), category)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toCategoryResponse(updated))
}

func (s *Server) listParameters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var found []*model.Parameter
	var err error
	if categoryID := r.URL.Query().Get("category_id"); categoryID != "" {
		found, err = s.uc.Catalog.ListParametersByCategory(ctx, types.CategoryID(categoryID))
	} else {
		found, err = s.uc.Catalog.ListParameters(ctx)
	}
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	body := make([]*parameterResponse, len(found))
	for i, p := range found {
		body[i] = toParameterResponse(p)
	}
	respondJSON(ctx, w, http.StatusOK, body)
}

func (s *Server) createParameter(w http.ResponseWriter, r *http.Request) {
	var req parameterRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	created, err := s.uc.Catalog.CreateParameter(r.Context(), req.toModel())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, toParameterResponse(created))
}

func (s *Server) getParameter(w http.ResponseWriter, r *http.Request) {
	param, err := s.uc.Catalog.GetParameter(r.Context(), types.ParameterID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toParameterResponse(param))
}

func (s *Server) updateParameter(w http.ResponseWriter, r *http.Request) {
	var req parameterRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	param := req.toModel()
	param.ID = types.ParameterID(chi.URLParam(r, "id"))
	updated, err := s.uc.Catalog.UpdateParameter(r.Context(), param)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toParameterResponse(updated))
}

func (s *Server) listRTOOptions(w http.ResponseWriter, r *http.Request) {
	options, err := s.uc.Catalog.ListRTOOptions(r.Context())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	body := make([]*rtoOptionResponse, len(options))
	for i, o := range options {
		body[i] = toRTOOptionResponse(o)
	}
	respondJSON(r.Context(), w, http.StatusOK, body)
}

func (s *Server) createRTOOption(w http.ResponseWriter, r *http.Request) {
	var req rtoOptionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	created, err := s.uc.Catalog.CreateRTOOption(r.Context(), req.toModel())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, toRTOOptionResponse(created))
}

func (s *Server) getRTOOption(w http.ResponseWriter, r *http.Request) {
	option, err := s.uc.Catalog.GetRTOOption(r.Context(), types.RTOOptionID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toRTOOptionResponse(option))
}

func (s *Server) updateRTOOption(w http.ResponseWriter, r *http.Request) {
	var req rtoOptionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	option := req.toModel()
	option.ID = types.RTOOptionID(chi.URLParam(r, "id"))
	updated, err := s.uc.Catalog.UpdateRTOOption(r.Context(), option)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toRTOOptionResponse(updated))
}
