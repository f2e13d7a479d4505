package http

import (
	"net/http"

	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := s.uc.Asset.ListDepartments(r.Context())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	body := make([]*departmentResponse, len(departments))
	for i, d := range departments {
		body[i] = toDepartmentResponse(d)
	}
	respondJSON(r.Context(), w, http.StatusOK, body)
}

func (s *Server) createDepartment(w http.ResponseWriter, r *http.Request) {
	var req departmentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	created, err := s.uc.Asset.CreateDepartment(r.Context(), req.toModel())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, toDepartmentResponse(created))
}

func (s *Server) getDepartment(w http.ResponseWriter, r *http.Request) {
	dept, err := s.uc.Asset.GetDepartment(r.Context(), types.DepartmentID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toDepartmentResponse(dept))
}

func (s *Server) updateDepartment(w http.ResponseWriter, r *http.Request) {
	var req departmentRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	dept := req.toModel()
	dept.ID = types.DepartmentID(chi.URLParam(r, "id"))
	updated, err := s.uc.Asset.UpdateDepartment(r.Context(), dept)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toDepartmentResponse(updated))
}

func (s *Server) listProcesses(w http.ResponseWriter, r *http.Request) {
	processes, err := s.uc.Asset.ListProcesses(r.Context())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	body := make([]*processResponse, len(processes))
	for i, p := range processes {
		body[i] = toProcessResponse(p)
	}
	respondJSON(r.Context(), w, http.StatusOK, body)
}

func (s *Server) createProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	created, err := s.uc.Asset.CreateProcess(r.Context(), req.toModel())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, toProcessResponse(created))
}

func (s *Server) getProcess(w http.ResponseWriter, r *http.Request) {
	process, err := s.uc.Asset.GetProcess(r.Context(), types.ProcessID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toProcessResponse(process))
}

func (s *Server) updateProcess(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	process := req.toModel()
	process.ID = types.ProcessID(chi.URLParam(r, "id"))
	updated, err := s.uc.Asset.UpdateProcess(r.Context(), process)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toProcessResponse(updated))
}

func (s *Server) listApplications(w http.ResponseWriter, r *http.Request) {
	applications, err := s.uc.Asset.ListApplications(r.Context())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	body := make([]*applicationResponse, len(applications))
	for i, a := range applications {
		body[i] = toApplicationResponse(a)
	}
	respondJSON(r.Context(), w, http.StatusOK, body)
}

func (s *Server) createApplication(w http.ResponseWriter, r *http.Request) {
	var req applicationRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	created, err := s.uc.Asset.CreateApplication(r.Context(), req.toModel())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusCreated, toApplicationResponse(created))
}

func (s *Server) getApplication(w http.ResponseWriter, r *http.Request) {
	app, err := s.uc.Asset.GetApplication(r.Context(), types.ApplicationID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toApplicationResponse(app))
}

func (s *Server) updateApplication(w http.ResponseWriter, r *http.Request) {
	var req applicationRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	app := req.toModel()
	app.ID = types.ApplicationID(chi.URLParam(r, "id"))
	updated, err := s.uc.Asset.UpdateApplication(r.Context(), app)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toApplicationResponse(updated))
}
