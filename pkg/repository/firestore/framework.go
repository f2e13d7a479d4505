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

type frameworkParameterDocument struct {
	ParameterID string `firestore:"parameter_id"`
	Weight      int    `firestore:"weight"`
	Order       int    `firestore:"order"`
}

type frameworkDocument struct {
	ID          string                       `firestore:"id"`
	Name        string                       `firestore:"name"`
	Description string                       `firestore:"description"`
	Formula     string                       `firestore:"formula"`
	Threshold   float64                      `firestore:"threshold"`
	Parameters  []frameworkParameterDocument `firestore:"parameters"`
	Active      bool                         `firestore:"active"`
	CreatedAt   time.Time                    `firestore:"created_at"`
	UpdatedAt   time.Time                    `firestore:"updated_at"`
}

func toFrameworkDoc(f *model.Framework) *frameworkDocument {
	params := make([]frameworkParameterDocument, len(f.Parameters))
	for i, fp := range f.Parameters {
		params[i] = frameworkParameterDocument{
			ParameterID: fp.ParameterID.String(),
			Weight:      fp.Weight,
			Order:       fp.Order,
		}
	}
	return &frameworkDocument{
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

func (d *frameworkDocument) toModel() *model.Framework {
	params := make([]model.FrameworkParameter, len(d.Parameters))
	for i, fp := range d.Parameters {
		params[i] = model.FrameworkParameter{
			ParameterID: types.ParameterID(fp.ParameterID),
			Weight:      fp.Weight,
			Order:       fp.Order,
		}
	}
	return &model.Framework{
		ID:          types.FrameworkID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Formula:     types.FormulaID(d.Formula),
		Threshold:   d.Threshold,
		Parameters:  params,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type frameworkRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newFrameworkRepository(client *firestore.Client) *frameworkRepository {
	return &frameworkRepository{client: client}
}

func (r *frameworkRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_frameworks"
	}
	return "frameworks"
}

func (r *frameworkRepository) Create(ctx context.Context, framework *model.Framework) (*model.Framework, error) {
	now := time.Now().UTC()
	doc := toFrameworkDoc(framework)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create framework", goerr.V("id", framework.ID))
	}

	return doc.toModel(), nil
}

func (r *frameworkRepository) Get(ctx context.Context, id types.FrameworkID) (*model.Framework, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "framework not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get framework", goerr.V("id", id))
	}

	var frameworkDoc frameworkDocument
	if err := doc.DataTo(&frameworkDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal framework", goerr.V("id", id))
	}

	return frameworkDoc.toModel(), nil
}

func (r *frameworkRepository) List(ctx context.Context) ([]*model.Framework, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var frameworks []*model.Framework
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate frameworks")
		}

		var frameworkDoc frameworkDocument
		if err := doc.DataTo(&frameworkDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal framework")
		}

		frameworks = append(frameworks, frameworkDoc.toModel())
	}
	sort.Slice(frameworks, func(i, j int) bool { return frameworks[i].Name < frameworks[j].Name })

	return frameworks, nil
}

func (r *frameworkRepository) Update(ctx context.Context, framework *model.Framework) (*model.Framework, error) {
	docRef := r.client.Collection(r.collection()).Doc(framework.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "framework not found", goerr.V("id", framework.ID))
		}
		return nil, goerr.Wrap(err, "failed to get framework", goerr.V("id", framework.ID))
	}

	var existing frameworkDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal framework", goerr.V("id", framework.ID))
	}

	updated := toFrameworkDoc(framework)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update framework", goerr.V("id", framework.ID))
	}

	return updated.toModel(), nil
}
