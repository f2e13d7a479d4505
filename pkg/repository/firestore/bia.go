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

type snapshotParameterDocument struct {
	ParameterID string                     `firestore:"parameter_id"`
	Name        string                     `firestore:"name"`
	Kind        string                     `firestore:"kind"`
	Weight      int                        `firestore:"weight"`
	Order       int                        `firestore:"order"`
	Definitions []ratingDefinitionDocument `firestore:"definitions"`
}

type snapshotDocument struct {
	FrameworkID string                      `firestore:"framework_id"`
	Name        string                      `firestore:"name"`
	Formula     string                      `firestore:"formula"`
	Threshold   float64                     `firestore:"threshold"`
	Parameters  []snapshotParameterDocument `firestore:"parameters"`
	TakenAt     time.Time                   `firestore:"taken_at"`
}

func toSnapshotDoc(s *model.FrameworkSnapshot) *snapshotDocument {
	if s == nil {
		return nil
	}
	params := make([]snapshotParameterDocument, len(s.Parameters))
	for i, sp := range s.Parameters {
		params[i] = snapshotParameterDocument{
			ParameterID: sp.ParameterID.String(),
			Name:        sp.Name,
			Kind:        sp.Kind.String(),
			Weight:      sp.Weight,
			Order:       sp.Order,
			Definitions: toRatingDefinitionDocs(sp.Definitions),
		}
	}
	return &snapshotDocument{
		FrameworkID: s.FrameworkID.String(),
		Name:        s.Name,
		Formula:     s.Formula.String(),
		Threshold:   s.Threshold,
		Parameters:  params,
		TakenAt:     s.TakenAt,
	}
}

func fromSnapshotDoc(doc *snapshotDocument) *model.FrameworkSnapshot {
	if doc == nil {
		return nil
	}
	params := make([]model.SnapshotParameter, len(doc.Parameters))
	for i, sp := range doc.Parameters {
		params[i] = model.SnapshotParameter{
			ParameterID: types.ParameterID(sp.ParameterID),
			Name:        sp.Name,
			Kind:        types.RatingKind(sp.Kind),
			Weight:      sp.Weight,
			Order:       sp.Order,
			Definitions: fromRatingDefinitionDocs(sp.Definitions),
		}
	}
	return &model.FrameworkSnapshot{
		FrameworkID: types.FrameworkID(doc.FrameworkID),
		Name:        doc.Name,
		Formula:     types.FormulaID(doc.Formula),
		Threshold:   doc.Threshold,
		Parameters:  params,
		TakenAt:     doc.TakenAt,
	}
}

type biaDocument struct {
	ID           string            `firestore:"id"`
	DepartmentID string            `firestore:"department_id"`
	Snapshot     *snapshotDocument `firestore:"snapshot"`
	Frequency    string            `firestore:"frequency"`
	Status       string            `firestore:"status"`
	InitiatedAt  time.Time         `firestore:"initiated_at"`
	UpdatedAt    time.Time         `firestore:"updated_at"`
}

func toBIADoc(b *model.BIAInstance) *biaDocument {
	return &biaDocument{
		ID:           b.ID.String(),
		DepartmentID: b.DepartmentID.String(),
		Snapshot:     toSnapshotDoc(b.Snapshot),
		Frequency:    b.Frequency.String(),
		Status:       b.Status.String(),
		InitiatedAt:  b.InitiatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

func (d *biaDocument) toModel() *model.BIAInstance {
	return &model.BIAInstance{
		ID:           types.BIAID(d.ID),
		DepartmentID: types.DepartmentID(d.DepartmentID),
		Snapshot:     fromSnapshotDoc(d.Snapshot),
		Frequency:    types.BIAFrequency(d.Frequency),
		Status:       types.BIAStatus(d.Status),
		InitiatedAt:  d.InitiatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type biaRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newBIARepository(client *firestore.Client) *biaRepository {
	return &biaRepository{client: client}
}

func (r *biaRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_bia_instances"
	}
	return "bia_instances"
}

func (r *biaRepository) Create(ctx context.Context, instance *model.BIAInstance) (*model.BIAInstance, error) {
	doc := toBIADoc(instance)
	doc.UpdatedAt = time.Now().UTC()

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create BIA instance", goerr.V("id", instance.ID))
	}

	return doc.toModel(), nil
}

func (r *biaRepository) Get(ctx context.Context, id types.BIAID) (*model.BIAInstance, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "BIA instance not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get BIA instance", goerr.V("id", id))
	}

	var biaDoc biaDocument
	if err := doc.DataTo(&biaDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal BIA instance", goerr.V("id", id))
	}

	return biaDoc.toModel(), nil
}

func (r *biaRepository) List(ctx context.Context) ([]*model.BIAInstance, error) {
	return r.list(ctx, r.client.Collection(r.collection()).Query)
}

func (r *biaRepository) ListByDepartment(ctx context.Context, departmentID types.DepartmentID) ([]*model.BIAInstance, error) {
	query := r.client.Collection(r.collection()).Where("department_id", "==", departmentID.String())
	return r.list(ctx, query)
}

func (r *biaRepository) list(ctx context.Context, query firestore.Query) ([]*model.BIAInstance, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var instances []*model.BIAInstance
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate BIA instances")
		}

		var biaDoc biaDocument
		if err := doc.DataTo(&biaDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal BIA instance")
		}

		instances = append(instances, biaDoc.toModel())
	}
	sort.Slice(instances, func(i, j int) bool {
		return instances[i].InitiatedAt.Before(instances[j].InitiatedAt)
	})

	return instances, nil
}

func (r *biaRepository) UpdateStatus(ctx context.Context, id types.BIAID, biaStatus types.BIAStatus) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "status", Value: biaStatus.String()},
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "BIA instance not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to update BIA status", goerr.V("id", id))
	}

	return nil
}
