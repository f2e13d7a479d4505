package http

import (
	"net/http"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/bcm-lab/atropos/pkg/usecase"
	"github.com/go-chi/chi/v5"
)

func (s *Server) listBIAs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var instances []*model.BIAInstance
	var err error
	if departmentID := r.URL.Query().Get("department_id"); departmentID != "" {
		instances, err = s.uc.BIA.ListByDepartment(ctx, types.DepartmentID(departmentID))
	} else {
		instances, err = s.uc.BIA.List(ctx)
	}
	if err != nil {
		handleError(ctx, w, err)
		return
	}

	body := make([]*biaResponse, len(instances))
	for i, instance := range instances {
		body[i] = toBIAResponse(instance)
	}
	respondJSON(ctx, w, http.StatusOK, body)
}

func (s *Server) initiateBIA(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DepartmentID string `json:"department_id"`
		FrameworkID  string `json:"framework_id"`
		Frequency    string `json:"frequency"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	instance, items, err := s.uc.BIA.Initiate(r.Context(), usecase.InitiateInput{
		DepartmentID: types.DepartmentID(req.DepartmentID),
		FrameworkID:  types.FrameworkID(req.FrameworkID),
		Frequency:    types.BIAFrequency(req.Frequency),
	})
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	workItems := make([]*workItemResponse, len(items))
	for i, item := range items {
		workItems[i] = toWorkItemResponse(item)
	}
	respondJSON(r.Context(), w, http.StatusCreated, map[string]any{
		"instance":   toBIAResponse(instance),
		"work_items": workItems,
	})
}

func (s *Server) getBIA(w http.ResponseWriter, r *http.Request) {
	instance, err := s.uc.BIA.Get(r.Context(), types.BIAID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toBIAResponse(instance))
}

func (s *Server) listBIAWorkItems(w http.ResponseWriter, r *http.Request) {
	items, err := s.uc.BIA.ListWorkItems(r.Context(), types.BIAID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	body := make([]*workItemResponse, len(items))
	for i, item := range items {
		body[i] = toWorkItemResponse(item)
	}
	respondJSON(r.Context(), w, http.StatusOK, body)
}

func (s *Server) getWorkItem(w http.ResponseWriter, r *http.Request) {
	item, err := s.uc.Workflow.Get(r.Context(), types.WorkItemID(chi.URLParam(r, "id")))
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toWorkItemResponse(item))
}

type draftRequest struct {
	Ratings                []ratingInputBody `json:"ratings"`
	RecommendedRTOOptionID string            `json:"recommended_rto_option_id,omitempty"`
	RTOJustification       string            `json:"rto_justification,omitempty"`
}

func (r *draftRequest) toInput() usecase.DraftInput {
	input := usecase.DraftInput{
		Ratings:          toRatingInputs(r.Ratings),
		RTOJustification: r.RTOJustification,
	}
	if r.RecommendedRTOOptionID != "" {
		optionID := types.RTOOptionID(r.RecommendedRTOOptionID)
		input.RecommendedRTOOptionID = &optionID
	}
	return input
}

func (s *Server) saveDraft(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	item, err := s.uc.Workflow.SaveDraft(r.Context(), types.WorkItemID(chi.URLParam(r, "id")), req.toInput())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toWorkItemResponse(item))
}

func (s *Server) submitForReview(w http.ResponseWriter, r *http.Request) {
	var req draftRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	item, err := s.uc.Workflow.SubmitForReview(r.Context(), types.WorkItemID(chi.URLParam(r, "id")), req.toInput())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toWorkItemResponse(item))
}

func (s *Server) requestClarification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Comments string `json:"comments"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	item, err := s.uc.Workflow.RequestClarification(r.Context(), types.WorkItemID(chi.URLParam(r, "id")), req.Comments)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toWorkItemResponse(item))
}

func (s *Server) forwardForApproval(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Comments              string   `json:"comments,omitempty"`
		OverrideScore         *float64 `json:"override_score,omitempty"`
		OverrideRTOOptionID   string   `json:"override_rto_option_id,omitempty"`
		OverrideJustification string   `json:"override_justification,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	input := usecase.ForwardInput{
		Comments:              req.Comments,
		OverrideScore:         req.OverrideScore,
		OverrideJustification: req.OverrideJustification,
	}
	if req.OverrideRTOOptionID != "" {
		optionID := types.RTOOptionID(req.OverrideRTOOptionID)
		input.OverrideRTOOptionID = &optionID
	}

	item, err := s.uc.Workflow.ForwardForApproval(r.Context(), types.WorkItemID(chi.URLParam(r, "id")), input)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toWorkItemResponse(item))
}

func (s *Server) approve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FinalRTOOptionID      string `json:"final_rto_option_id,omitempty"`
		OverrideJustification string `json:"override_justification,omitempty"`
		Note                  string `json:"note,omitempty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}

	input := usecase.ApproveInput{
		OverrideJustification: req.OverrideJustification,
		Note:                  req.Note,
	}
	if req.FinalRTOOptionID != "" {
		optionID := types.RTOOptionID(req.FinalRTOOptionID)
		input.FinalRTOOptionID = &optionID
	}

	item, err := s.uc.Workflow.Approve(r.Context(), types.WorkItemID(chi.URLParam(r, "id")), input)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toWorkItemResponse(item))
}

func (s *Server) reject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Note string `json:"note"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	item, err := s.uc.Workflow.Reject(r.Context(), types.WorkItemID(chi.URLParam(r, "id")), req.Note)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	respondJSON(r.Context(), w, http.StatusOK, toWorkItemResponse(item))
}

func (s *Server) listPriorities(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := usecase.PriorityFilter{
		DepartmentID: types.DepartmentID(query.Get("department_id")),
		BIAID:        types.BIAID(query.Get("bia_id")),
		Status:       types.WorkItemStatus(query.Get("status")),
		CriticalOnly: query.Get("critical_only") == "true",
		Sort:         usecase.PrioritySort(query.Get("sort")),
	}

	rows, err := s.uc.Priority.ListPrioritizedProcesses(r.Context(), filter)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}

	body := make([]*priorityRowResponse, len(rows))
	for i, row := range rows {
		body[i] = toPriorityRowResponse(row)
	}
	respondJSON(r.Context(), w, http.StatusOK, body)
}
