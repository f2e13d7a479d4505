package http

import (
	"sort"
	"time"

	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/bcm-lab/atropos/pkg/usecase"
)

type ratingDefinitionBody struct {
	Label    string   `json:"label"`
	Score    int      `json:"score"`
	MinValue *float64 `json:"min_value,omitempty"`
	MaxValue *float64 `json:"max_value,omitempty"`
	Order    int      `json:"order"`
}

func toRatingDefinitions(bodies []ratingDefinitionBody) []model.RatingDefinition {
	defs := make([]model.RatingDefinition, len(bodies))
	for i, b := range bodies {
		defs[i] = model.RatingDefinition{
			Label:    b.Label,
			Score:    b.Score,
			MinValue: b.MinValue,
			MaxValue: b.MaxValue,
			Order:    b.Order,
		}
	}
	return defs
}

func fromRatingDefinitions(defs []model.RatingDefinition) []ratingDefinitionBody {
	bodies := make([]ratingDefinitionBody, len(defs))
	for i, d := range defs {
		bodies[i] = ratingDefinitionBody{
			Label:    d.Label,
			Score:    d.Score,
			MinValue: d.MinValue,
			MaxValue: d.MaxValue,
			Order:    d.Order,
		}
	}
	return bodies
}

type categoryRequest struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

func (r *categoryRequest) toModel() *model.Category {
	return &model.Category{
		ID:          types.CategoryID(r.ID),
		Name:        r.Name,
		Description: r.Description,
		Active:      r.Active,
	}
}

type categoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCategoryResponse(c *model.Category) *categoryResponse {
	return &categoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

type parameterRequest struct {
	ID          string                 `json:"id,omitempty"`
	CategoryID  string                 `json:"category_id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Kind        string                 `json:"kind"`
	Definitions []ratingDefinitionBody `json:"definitions"`
	Active      bool                   `json:"active"`
}

func (r *parameterRequest) toModel() *model.Parameter {
	return &model.Parameter{
		ID:          types.ParameterID(r.ID),
		CategoryID:  types.CategoryID(r.CategoryID),
		Name:        r.Name,
		Description: r.Description,
		Kind:        types.RatingKind(r.Kind),
		Definitions: toRatingDefinitions(r.Definitions),
		Active:      r.Active,
	}
}

type parameterResponse struct {
	ID          string                 `json:"id"`
	CategoryID  string                 `json:"category_id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Kind        string                 `json:"kind"`
	Definitions []ratingDefinitionBody `json:"definitions"`
	Active      bool                   `json:"active"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

func toParameterResponse(p *model.Parameter) *parameterResponse {
	return &parameterResponse{
		ID:          p.ID.String(),
		CategoryID:  p.CategoryID.String(),
		Name:        p.Name,
		Description: p.Description,
		Kind:        p.Kind.String(),
		Definitions: fromRatingDefinitions(p.Definitions),
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type rtoOptionRequest struct {
	ID              string `json:"id,omitempty"`
	Label           string `json:"label"`
	DurationMinutes int    `json:"duration_minutes"`
	Order           int    `json:"order"`
	Active          bool   `json:"active"`
}

func (r *rtoOptionRequest) toModel() *model.RTOOption {
	return &model.RTOOption{
		ID:              types.RTOOptionID(r.ID),
		Label:           r.Label,
		DurationMinutes: r.DurationMinutes,
		Order:           r.Order,
		Active:          r.Active,
	}
}

type rtoOptionResponse struct {
	ID              string    `json:"id"`
	Label           string    `json:"label"`
	DurationMinutes int       `json:"duration_minutes"`
	Order           int       `json:"order"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toRTOOptionResponse(o *model.RTOOption) *rtoOptionResponse {
	return &rtoOptionResponse{
		ID:              o.ID.String(),
		Label:           o.Label,
		DurationMinutes: o.DurationMinutes,
		Order:           o.Order,
		Active:          o.Active,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

type rtoValueBody struct {
	OptionID        string `json:"option_id"`
	Label           string `json:"label"`
	DurationMinutes int    `json:"duration_minutes"`
}

func toRTOValueBody(v *model.RTOValue) *rtoValueBody {
	if v == nil {
		return nil
	}
	return &rtoValueBody{
		OptionID:        v.OptionID.String(),
		Label:           v.Label,
		DurationMinutes: v.DurationMinutes,
	}
}

type frameworkParameterBody struct {
	ParameterID string `json:"parameter_id"`
	Weight      int    `json:"weight"`
	Order       int    `json:"order"`
}

type frameworkRequest struct {
	ID          string                   `json:"id,omitempty"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Formula     string                   `json:"formula"`
	Threshold   float64                  `json:"threshold"`
	Parameters  []frameworkParameterBody `json:"parameters"`
	Active      bool                     `json:"active"`
}

func (r *frameworkRequest) toModel() *model.Framework {
	params := make([]model.FrameworkParameter, len(r.Parameters))
	for i, p := range r.Parameters {
		params[i] = model.FrameworkParameter{
			ParameterID: types.ParameterID(p.ParameterID),
			Weight:      p.Weight,
			Order:       p.Order,
		}
	}
	return &model.Framework{
		ID:          types.FrameworkID(r.ID),
		Name:        r.Name,
		Description: r.Description,
		Formula:     types.FormulaID(r.Formula),
		Threshold:   r.Threshold,
		Parameters:  params,
		Active:      r.Active,
	}
}

type frameworkResponse struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description,omitempty"`
	Formula     string                   `json:"formula"`
	Threshold   float64                  `json:"threshold"`
	Parameters  []frameworkParameterBody `json:"parameters"`
	Active      bool                     `json:"active"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

func toFrameworkResponse(f *model.Framework) *frameworkResponse {
	params := make([]frameworkParameterBody, len(f.Parameters))
	for i, p := range f.Parameters {
		params[i] = frameworkParameterBody{
			ParameterID: p.ParameterID.String(),
			Weight:      p.Weight,
			Order:       p.Order,
		}
	}
	return &frameworkResponse{
		ID:          f.ID.String(),
		Name:        f.Name,
		Description: f.Description,
		Formula:     f.Formula.String(),
		Threshold:   f.Threshold,
		Parameters:  params,
		Active:      f.Active,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

type snapshotParameterBody struct {
	ParameterID string                 `json:"parameter_id"`
	Name        string                 `json:"name"`
	Kind        string                 `json:"kind"`
	Weight      int                    `json:"weight"`
	Order       int                    `json:"order"`
	Definitions []ratingDefinitionBody `json:"definitions"`
}

type snapshotBody struct {
	FrameworkID string                  `json:"framework_id"`
	Name        string                  `json:"name"`
	Formula     string                  `json:"formula"`
	Threshold   float64                 `json:"threshold"`
	Parameters  []snapshotParameterBody `json:"parameters"`
	TakenAt     time.Time               `json:"taken_at"`
}

func toSnapshotBody(s *model.FrameworkSnapshot) *snapshotBody {
	if s == nil {
		return nil
	}
	params := make([]snapshotParameterBody, len(s.Parameters))
	for i, p := range s.Parameters {
		params[i] = snapshotParameterBody{
			ParameterID: p.ParameterID.String(),
			Name:        p.Name,
			Kind:        p.Kind.String(),
			Weight:      p.Weight,
			Order:       p.Order,
			Definitions: fromRatingDefinitions(p.Definitions),
		}
	}
	return &snapshotBody{
		FrameworkID: s.FrameworkID.String(),
		Name:        s.Name,
		Formula:     s.Formula.String(),
		Threshold:   s.Threshold,
		Parameters:  params,
		TakenAt:     s.TakenAt,
	}
}

type biaResponse struct {
	ID           string        `json:"id"`
	DepartmentID string        `json:"department_id"`
	Snapshot     *snapshotBody `json:"snapshot,omitempty"`
	Frequency    string        `json:"frequency"`
	Status       string        `json:"status"`
	InitiatedAt  time.Time     `json:"initiated_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

func toBIAResponse(b *model.BIAInstance) *biaResponse {
	return &biaResponse{
		ID:           b.ID.String(),
		DepartmentID: b.DepartmentID.String(),
		Snapshot:     toSnapshotBody(b.Snapshot),
		Frequency:    b.Frequency.String(),
		Status:       b.Status.String(),
		InitiatedAt:  b.InitiatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

type ratingInputBody struct {
	ParameterID string   `json:"parameter_id"`
	Label       string   `json:"label,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	Note        string   `json:"note,omitempty"`
}

func toRatingInputs(bodies []ratingInputBody) []usecase.RatingInput {
	inputs := make([]usecase.RatingInput, len(bodies))
	for i, b := range bodies {
		inputs[i] = usecase.RatingInput{
			ParameterID: types.ParameterID(b.ParameterID),
			Label:       b.Label,
			Value:       b.Value,
			Note:        b.Note,
		}
	}
	return inputs
}

type ratingBody struct {
	ParameterID string   `json:"parameter_id"`
	Label       string   `json:"label,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	Note        string   `json:"note,omitempty"`
	Score       int      `json:"score"`
}

type workItemResponse struct {
	ID                    string        `json:"id"`
	BIAID                 string        `json:"bia_id"`
	ProcessID             string        `json:"process_id"`
	OwnerID               string        `json:"owner_id"`
	Ratings               []ratingBody  `json:"ratings"`
	RecommendedRTO        *rtoValueBody `json:"recommended_rto,omitempty"`
	RTOJustification      string        `json:"rto_justification,omitempty"`
	ReviewerComments      string        `json:"reviewer_comments,omitempty"`
	DepartmentHeadNote    string        `json:"department_head_note,omitempty"`
	OverrideJustification string        `json:"override_justification,omitempty"`
	FinalImpactScore      *float64      `json:"final_impact_score,omitempty"`
	FinalApprovedRTO      *rtoValueBody `json:"final_approved_rto,omitempty"`
	Status                string        `json:"status"`
	SubmittedAt           *time.Time    `json:"submitted_at,omitempty"`
	CreatedAt             time.Time     `json:"created_at"`
	UpdatedAt             time.Time     `json:"updated_at"`
}

func toWorkItemResponse(item *model.ProcessWorkItem) *workItemResponse {
	ratings := make([]ratingBody, 0, len(item.Ratings))
	for _, rating := range item.Ratings {
		ratings = append(ratings, ratingBody{
			ParameterID: rating.ParameterID.String(),
			Label:       rating.Label,
			Value:       rating.Value,
			Note:        rating.Note,
			Score:       rating.Score,
		})
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].ParameterID < ratings[j].ParameterID })

	return &workItemResponse{
		ID:                    item.ID.String(),
		BIAID:                 item.BIAID.String(),
		ProcessID:             item.ProcessID.String(),
		OwnerID:               item.OwnerID.String(),
		Ratings:               ratings,
		RecommendedRTO:        toRTOValueBody(item.RecommendedRTO),
		RTOJustification:      item.RTOJustification,
		ReviewerComments:      item.ReviewerComments,
		DepartmentHeadNote:    item.DepartmentHeadNote,
		OverrideJustification: item.OverrideJustification,
		FinalImpactScore:      item.FinalImpactScore,
		FinalApprovedRTO:      toRTOValueBody(item.FinalApprovedRTO),
		Status:                item.Status.String(),
		SubmittedAt:           item.SubmittedAt,
		CreatedAt:             item.CreatedAt,
		UpdatedAt:             item.UpdatedAt,
	}
}

type departmentRequest struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	HeadID string `json:"head_id,omitempty"`
	Active bool   `json:"active"`
}

func (r *departmentRequest) toModel() *model.Department {
	return &model.Department{
		ID:     types.DepartmentID(r.ID),
		Name:   r.Name,
		HeadID: types.UserID(r.HeadID),
		Active: r.Active,
	}
}

type departmentResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	HeadID    string    `json:"head_id,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toDepartmentResponse(d *model.Department) *departmentResponse {
	return &departmentResponse{
		ID:        d.ID.String(),
		Name:      d.Name,
		HeadID:    d.HeadID.String(),
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type processRequest struct {
	ID             string   `json:"id,omitempty"`
	DepartmentID   string   `json:"department_id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	OwnerID        string   `json:"owner_id,omitempty"`
	ApplicationIDs []string `json:"application_ids,omitempty"`
	Active         bool     `json:"active"`
}

func (r *processRequest) toModel() *model.Process {
	appIDs := make([]types.ApplicationID, len(r.ApplicationIDs))
	for i, id := range r.ApplicationIDs {
		appIDs[i] = types.ApplicationID(id)
	}
	return &model.Process{
		ID:             types.ProcessID(r.ID),
		DepartmentID:   types.DepartmentID(r.DepartmentID),
		Name:           r.Name,
		Description:    r.Description,
		OwnerID:        types.UserID(r.OwnerID),
		ApplicationIDs: appIDs,
		Active:         r.Active,
	}
}

type processResponse struct {
	ID             string    `json:"id"`
	DepartmentID   string    `json:"department_id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	OwnerID        string    `json:"owner_id,omitempty"`
	ApplicationIDs []string  `json:"application_ids,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func toProcessResponse(p *model.Process) *processResponse {
	appIDs := make([]string, len(p.ApplicationIDs))
	for i, id := range p.ApplicationIDs {
		appIDs[i] = id.String()
	}
	return &processResponse{
		ID:             p.ID.String(),
		DepartmentID:   p.DepartmentID.String(),
		Name:           p.Name,
		Description:    p.Description,
		OwnerID:        p.OwnerID.String(),
		ApplicationIDs: appIDs,
		Active:         p.Active,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type applicationRequest struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	OwnerID string `json:"owner_id,omitempty"`
	Active  bool   `json:"active"`
}

func (r *applicationRequest) toModel() *model.Application {
	return &model.Application{
		ID:      types.ApplicationID(r.ID),
		Name:    r.Name,
		OwnerID: types.UserID(r.OwnerID),
		Active:  r.Active,
	}
}

type applicationResponse struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	OwnerID    string        `json:"owner_id,omitempty"`
	DerivedRTO *rtoValueBody `json:"derived_rto,omitempty"`
	Active     bool          `json:"active"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

func toApplicationResponse(a *model.Application) *applicationResponse {
	return &applicationResponse{
		ID:         a.ID.String(),
		Name:       a.Name,
		OwnerID:    a.OwnerID.String(),
		DerivedRTO: toRTOValueBody(a.DerivedRTO),
		Active:     a.Active,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

type priorityRowResponse struct {
	ProcessID      string        `json:"process_id"`
	ProcessName    string        `json:"process_name,omitempty"`
	DepartmentID   string        `json:"department_id"`
	BIAID          string        `json:"bia_id"`
	WorkItemID     string        `json:"work_item_id"`
	WorkItemStatus string        `json:"work_item_status"`
	ImpactScore    *float64      `json:"impact_score,omitempty"`
	EffectiveRTO   *rtoValueBody `json:"effective_rto,omitempty"`
	Critical       bool          `json:"critical"`
}

func toPriorityRowResponse(row *model.PrioritizedProcess) *priorityRowResponse {
	return &priorityRowResponse{
		ProcessID:      row.ProcessID.String(),
		ProcessName:    row.ProcessName,
		DepartmentID:   row.DepartmentID.String(),
		BIAID:          row.BIAID.String(),
		WorkItemID:     row.WorkItemID.String(),
		WorkItemStatus: row.WorkItemStatus.String(),
		ImpactScore:    row.ImpactScore,
		EffectiveRTO:   toRTOValueBody(row.EffectiveRTO),
		Critical:       row.Critical,
	}
}
