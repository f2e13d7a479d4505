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

type categoryDocument struct {
	ID          string    `firestore:"id"`
	Name        string    `firestore:"name"`
	Description string    `firestore:"description"`
	Active      bool      `firestore:"active"`
	CreatedAt   time.Time `firestore:"created_at"`
	UpdatedAt   time.Time `firestore:"updated_at"`
}

func (d *categoryDocument) toModel() *model.Category {
	return &model.Category{
		ID:          types.CategoryID(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type categoryRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCategoryRepository(client *firestore.Client) *categoryRepository {
	return &categoryRepository{client: client}
}

func (r *categoryRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_categories"
	}
	return "categories"
}

func (r *categoryRepository) Create(ctx context.Context, category *model.Category) (*model.Category, error) {
	now := time.Now().UTC()
	doc := &categoryDocument{
		ID:          category.ID.String(),
		Name:        category.Name,
		Description: category.Description,
		Active:      category.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create category", goerr.V("id", category.ID))
	}

	return doc.toModel(), nil
}

func (r *categoryRepository) Get(ctx context.Context, id types.CategoryID) (*model.Category, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "category not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get category", goerr.V("id", id))
	}

	var categoryDoc categoryDocument
	if err := doc.DataTo(&categoryDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal category", goerr.V("id", id))
	}

	return categoryDoc.toModel(), nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var categories []*model.Category
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate categories")
		}

		var categoryDoc categoryDocument
		if err := doc.DataTo(&categoryDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal category")
		}

		categories = append(categories, categoryDoc.toModel())
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })

	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *model.Category) (*model.Category, error) {
	docRef := r.client.Collection(r.collection()).Doc(category.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "category not found", goerr.V("id", category.ID))
		}
		return nil, goerr.Wrap(err, "failed to get category", goerr.V("id", category.ID))
	}

	var existing categoryDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal category", goerr.V("id", category.ID))
	}

	updated := &categoryDocument{
		ID:          existing.ID,
		Name:        category.Name,
		Description: category.Description,
		Active:      category.Active,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update category", goerr.V("id", category.ID))
	}

	return updated.toModel(), nil
}

type parameterDocument struct {
	ID          string                     `firestore:"id"`
	CategoryID  string                     `firestore:"category_id"`
	Name        string                     `firestore:"name"`
	Description string                     `firestore:"description"`
	Kind        string                     `firestore:"kind"`
	Definitions []ratingDefinitionDocument `firestore:"definitions"`
	Active      bool                       `firestore:"active"`
	CreatedAt   time.Time                  `firestore:"created_at"`
	UpdatedAt   time.Time                  `firestore:"updated_at"`
}

func (d *parameterDocument) toModel() *model.Parameter {
	return &model.Parameter{
		ID:          types.ParameterID(d.ID),
		CategoryID:  types.CategoryID(d.CategoryID),
		Name:        d.Name,
		Description: d.Description,
		Kind:        types.RatingKind(d.Kind),
		Definitions: fromRatingDefinitionDocs(d.Definitions),
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toParameterDoc(p *model.Parameter) *parameterDocument {
	return &parameterDocument{
		ID:          p.ID.String(),
		CategoryID:  p.CategoryID.String(),
		Name:        p.Name,
		Description: p.Description,
		Kind:        p.Kind.String(),
		Definitions: toRatingDefinitionDocs(p.Definitions),
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type parameterRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newParameterRepository(client *firestore.Client) *parameterRepository {
	return &parameterRepository{client: client}
}

func (r *parameterRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_parameters"
	}
	return "parameters"
}

func (r *parameterRepository) Create(ctx context.Context, param *model.Parameter) (*model.Parameter, error) {
	now := time.Now().UTC()
	doc := toParameterDoc(param)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create parameter", goerr.V("id", param.ID))
	}

	return doc.toModel(), nil
}

func (r *parameterRepository) Get(ctx context.Context, id types.ParameterID) (*model.Parameter, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "parameter not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get parameter", goerr.V("id", id))
	}

	var paramDoc parameterDocument
	if err := doc.DataTo(&paramDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal parameter", goerr.V("id", id))
	}

	return paramDoc.toModel(), nil
}

func (r *parameterRepository) List(ctx context.Context) ([]*model.Parameter, error) {
	return r.list(ctx, r.client.Collection(r.collection()).Query)
}

func (r *parameterRepository) ListByCategory(ctx context.Context, categoryID types.CategoryID) ([]*model.Parameter, error) {
	query := r.client.Collection(r.collection()).Where("category_id", "==", categoryID.String())
	return r.list(ctx, query)
}

func (r *parameterRepository) list(ctx context.Context, query firestore.Query) ([]*model.Parameter, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var params []*model.Parameter
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate parameters")
		}

		var paramDoc parameterDocument
		if err := doc.DataTo(&paramDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal parameter")
		}

		params = append(params, paramDoc.toModel())
	}
	sort.Slice(params, func(i, j int) bool { return params[i].Name < params[j].Name })

	return params, nil
}

func (r *parameterRepository) Update(ctx context.Context, param *model.Parameter) (*model.Parameter, error) {
	docRef := r.client.Collection(r.collection()).Doc(param.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "parameter not found", goerr.V("id", param.ID))
		}
		return nil, goerr.Wrap(err, "failed to get parameter", goerr.V("id", param.ID))
	}

	var existing parameterDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal parameter", goerr.V("id", param.ID))
	}

	updated := toParameterDoc(param)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update parameter", goerr.V("id", param.ID))
	}

	return updated.toModel(), nil
}

type rtoOptionDocument struct {
	ID              string    `firestore:"id"`
	Label           string    `firestore:"label"`
	DurationMinutes int       `firestore:"duration_minutes"`
	Order           int       `firestore:"order"`
	Active          bool      `firestore:"active"`
	CreatedAt       time.Time `firestore:"created_at"`
	UpdatedAt       time.Time `firestore:"updated_at"`
}

func (d *rtoOptionDocument) toModel() *model.RTOOption {
	return &model.RTOOption{
		ID:              types.RTOOptionID(d.ID),
		Label:           d.Label,
		DurationMinutes: d.DurationMinutes,
		Order:           d.Order,
		Active:          d.Active,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type rtoOptionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRTOOptionRepository(client *firestore.Client) *rtoOptionRepository {
	return &rtoOptionRepository{client: client}
}

func (r *rtoOptionRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_rto_options"
	}
	return "rto_options"
}

func (r *rtoOptionRepository) Create(ctx context.Context, option *model.RTOOption) (*model.RTOOption, error) {
	now := time.Now().UTC()
	doc := &rtoOptionDocument{
		ID:              option.ID.String(),
		Label:           option.Label,
		DurationMinutes: option.DurationMinutes,
		Order:           option.Order,
		Active:          option.Active,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create RTO option", goerr.V("id", option.ID))
	}

	return doc.toModel(), nil
}

func (r *rtoOptionRepository) Get(ctx context.Context, id types.RTOOptionID) (*model.RTOOption, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "RTO option not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get RTO option", goerr.V("id", id))
	}

	var optionDoc rtoOptionDocument
	if err := doc.DataTo(&optionDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal RTO option", goerr.V("id", id))
	}

	return optionDoc.toModel(), nil
}

func (r *rtoOptionRepository) List(ctx context.Context) ([]*model.RTOOption, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var options []*model.RTOOption
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate RTO options")
		}

		var optionDoc rtoOptionDocument
		if err := doc.DataTo(&optionDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal RTO option")
		}

		options = append(options, optionDoc.toModel())
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Order < options[j].Order })

	return options, nil
}

func (r *rtoOptionRepository) Update(ctx context.Context, option *model.RTOOption) (*model.RTOOption, error) {
	docRef := r.client.Collection(r.collection()).Doc(option.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "RTO option not found", goerr.V("id", option.ID))
		}
		return nil, goerr.Wrap(err, "failed to get RTO option", goerr.V("id", option.ID))
	}

	var existing rtoOptionDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal RTO option", goerr.V("id", option.ID))
	}

	updated := &rtoOptionDocument{
		ID:              existing.ID,
		Label:           option.Label,
		DurationMinutes: option.DurationMinutes,
		Order:           option.Order,
		Active:          option.Active,
		CreatedAt:       existing.CreatedAt,
		UpdatedAt:       time.Now().UTC(),
	}

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update RTO option", goerr.V("id", option.ID))
	}

	return updated.toModel(), nil
}
