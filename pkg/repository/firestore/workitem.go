package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type parameterRatingDocument struct {
	ParameterID string   `firestore:"parameter_id"`
	Label       string   `firestore:"label"`
	Value       *float64 `firestore:"value"`
	Note        string   `firestore:"note"`
	Score       int      `firestore:"score"`
}

type workItemDocument struct {
	ID        string `firestore:"id"`
	BIAID     string `firestore:"bia_id"`
	ProcessID string `firestore:"process_id"`
	OwnerID   string `firestore:"owner_id"`

	Ratings []parameterRatingDocument `firestore:"ratings"`

	RecommendedRTO        *rtoValueDocument `firestore:"recommended_rto"`
	RTOJustification      string            `firestore:"rto_justification"`
	ReviewerComments      string            `firestore:"reviewer_comments"`
	DepartmentHeadNote    string            `firestore:"department_head_note"`
	OverrideJustification string            `firestore:"override_justification"`

	FinalImpactScore *float64          `firestore:"final_impact_score"`
	FinalApprovedRTO *rtoValueDocument `firestore:"final_approved_rto"`

	Status      string     `firestore:"status"`
	SubmittedAt *time.Time `firestore:"submitted_at"`
	CreatedAt   time.Time  `firestore:"created_at"`
	UpdatedAt   time.Time  `firestore:"updated_at"`
}

func toWorkItemDoc(w *model.ProcessWorkItem) *workItemDocument {
	doc := &workItemDocument{
		ID:                    w.ID.String(),
		BIAID:                 w.BIAID.String(),
		ProcessID:             w.ProcessID.String(),
		OwnerID:               w.OwnerID.String(),
		RecommendedRTO:        toRTOValueDoc(w.RecommendedRTO),
		RTOJustification:      w.RTOJustification,
		ReviewerComments:      w.ReviewerComments,
		DepartmentHeadNote:    w.DepartmentHeadNote,
		OverrideJustification: w.OverrideJustification,
		FinalImpactScore:      w.FinalImpactScore,
		FinalApprovedRTO:      toRTOValueDoc(w.FinalApprovedRTO),
		Status:                w.Status.String(),
		SubmittedAt:           w.SubmittedAt,
		CreatedAt:             w.CreatedAt,
		UpdatedAt:             w.UpdatedAt,
	}

	for _, rating := range w.Ratings {
		doc.Ratings = append(doc.Ratings, parameterRatingDocument{
			ParameterID: rating.ParameterID.String(),
			Label:       rating.Label,
			Value:       rating.Value,
			Note:        rating.Note,
			Score:       rating.Score,
		})
	}
	sort.Slice(doc.Ratings, func(i, j int) bool { return doc.Ratings[i].ParameterID < doc.Ratings[j].ParameterID })

	return doc
}

func (d *workItemDocument) toModel() *model.ProcessWorkItem {
	item := &model.ProcessWorkItem{
		ID:                    types.WorkItemID(d.ID),
		BIAID:                 types.BIAID(d.BIAID),
		ProcessID:             types.ProcessID(d.ProcessID),
		OwnerID:               types.UserID(d.OwnerID),
		RecommendedRTO:        fromRTOValueDoc(d.RecommendedRTO),
		RTOJustification:      d.RTOJustification,
		ReviewerComments:      d.ReviewerComments,
		DepartmentHeadNote:    d.DepartmentHeadNote,
		OverrideJustification: d.OverrideJustification,
		FinalImpactScore:      d.FinalImpactScore,
		FinalApprovedRTO:      fromRTOValueDoc(d.FinalApprovedRTO),
		Status:                types.WorkItemStatus(d.Status),
		SubmittedAt:           d.SubmittedAt,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}

	if len(d.Ratings) > 0 {
		item.Ratings = make(map[types.ParameterID]model.ParameterRating, len(d.Ratings))
		for _, rating := range d.Ratings {
			paramID := types.ParameterID(rating.ParameterID)
			item.Ratings[paramID] = model.ParameterRating{
				ParameterID: paramID,
				Label:       rating.Label,
				Value:       rating.Value,
				Note:        rating.Note,
				Score:       rating.Score,
			}
		}
	}

	return item
}

type workItemRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newWorkItemRepository(client *firestore.Client) *workItemRepository {
	return &workItemRepository{client: client}
}

func (r *workItemRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_work_items"
	}
	return "work_items"
}

func (r *workItemRepository) Create(ctx context.Context, item *model.ProcessWorkItem) (*model.ProcessWorkItem, error) {
	now := time.Now().UTC()
	doc := toWorkItemDoc(item)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create work item", goerr.V("id", item.ID))
	}

	return doc.toModel(), nil
}

func (r *workItemRepository) Get(ctx context.Context, id types.WorkItemID) (*model.ProcessWorkItem, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "work item not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get work item", goerr.V("id", id))
	}

	var itemDoc workItemDocument
	if err := doc.DataTo(&itemDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal work item", goerr.V("id", id))
	}

	return itemDoc.toModel(), nil
}

func (r *workItemRepository) ListByBIA(ctx context.Context, biaID types.BIAID) ([]*model.ProcessWorkItem, error) {
	query := r.client.Collection(r.collection()).Where("bia_id", "==", biaID.String())
	return r.list(ctx, query)
}

func (r *workItemRepository) ListByProcess(ctx context.Context, processID types.ProcessID) ([]*model.ProcessWorkItem, error) {
	query := r.client.Collection(r.collection()).Where("process_id", "==", processID.String())
	return r.list(ctx, query)
}

func (r *workItemRepository) List(ctx context.Context) ([]*model.ProcessWorkItem, error) {
	return r.list(ctx, r.client.Collection(r.collection()).Query)
}

func (r *workItemRepository) list(ctx context.Context, query firestore.Query) ([]*model.ProcessWorkItem, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var items []*model.ProcessWorkItem
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate work items")
		}

		var itemDoc workItemDocument
		if err := doc.DataTo(&itemDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal work item")
		}

		items = append(items, itemDoc.toModel())
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID < items[j].ID
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})

	return items, nil
}

// PutWithStatus replaces the work item only while its stored status still
// matches expected. The check and the write run in one transaction so
// concurrent workflow actions cannot both win.
func (r *workItemRepository) PutWithStatus(ctx context.Context, item *model.ProcessWorkItem, expected types.WorkItemStatus) (*model.ProcessWorkItem, error) {
	docRef := r.client.Collection(r.collection()).Doc(item.ID.String())

	var result *model.ProcessWorkItem
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "work item not found", goerr.V("id", item.ID))
			}
			return goerr.Wrap(err, "failed to get work item", goerr.V("id", item.ID))
		}

		var existing workItemDocument
		if err := doc.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to unmarshal work item", goerr.V("id", item.ID))
		}

		if existing.Status != expected.String() {
			return goerr.Wrap(model.ErrConcurrentModification, "stored status does not match expectation",
				goerr.V("id", item.ID),
				goerr.V("stored_status", existing.Status),
				goerr.V("expected_status", expected.String()))
		}

		updated := toWorkItemDoc(item)
		updated.CreatedAt = existing.CreatedAt
		updated.UpdatedAt = time.Now().UTC()

		if err := tx.Set(docRef, updated); err != nil {
			return goerr.Wrap(err, "failed to put work item", goerr.V("id", item.ID))
		}

		result = updated.toModel()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
