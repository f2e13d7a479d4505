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

type departmentDocument struct {
	ID        string    `firestore:"id"`
	Name      string    `firestore:"name"`
	HeadID    string    `firestore:"head_id"`
	Active    bool      `firestore:"active"`
	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func (d *departmentDocument) toModel() *model.Department {
	return &model.Department{
		ID:        types.DepartmentID(d.ID),
		Name:      d.Name,
		HeadID:    types.UserID(d.HeadID),
		Active:    d.Active,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type departmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newDepartmentRepository(client *firestore.Client) *departmentRepository {
	return &departmentRepository{client: client}
}

func (r *departmentRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_departments"
	}
	return "departments"
}

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) (*model.Department, error) {
	now := time.Now().UTC()
	doc := &departmentDocument{
		ID:        dept.ID.String(),
		Name:      dept.Name,
		HeadID:    dept.HeadID.String(),
		Active:    dept.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create department", goerr.V("id", dept.ID))
	}

	return doc.toModel(), nil
}

func (r *departmentRepository) Get(ctx context.Context, id types.DepartmentID) (*model.Department, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get department", goerr.V("id", id))
	}

	var deptDoc departmentDocument
	if err := doc.DataTo(&deptDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal department", goerr.V("id", id))
	}

	return deptDoc.toModel(), nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var departments []*model.Department
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate departments")
		}

		var deptDoc departmentDocument
		if err := doc.DataTo(&deptDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal department")
		}

		departments = append(departments, deptDoc.toModel())
	}
	sort.Slice(departments, func(i, j int) bool { return departments[i].Name < departments[j].Name })

	return departments, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *model.Department) (*model.Department, error) {
	docRef := r.client.Collection(r.collection()).Doc(dept.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "department not found", goerr.V("id", dept.ID))
		}
		return nil, goerr.Wrap(err, "failed to get department", goerr.V("id", dept.ID))
	}

	var existing departmentDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal department", goerr.V("id", dept.ID))
	}

	updated := &departmentDocument{
		ID:        existing.ID,
		Name:      dept.Name,
		HeadID:    dept.HeadID.String(),
		Active:    dept.Active,
		CreatedAt: existing.CreatedAt,
		UpdatedAt: time.Now().UTC(),
	}

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update department", goerr.V("id", dept.ID))
	}

	return updated.toModel(), nil
}

type processDocument struct {
	ID             string    `firestore:"id"`
	DepartmentID   string    `firestore:"department_id"`
	Name           string    `firestore:"name"`
	Description    string    `firestore:"description"`
	OwnerID        string    `firestore:"owner_id"`
	ApplicationIDs []string  `firestore:"application_ids"`
	Active         bool      `firestore:"active"`
	CreatedAt      time.Time `firestore:"created_at"`
	UpdatedAt      time.Time `firestore:"updated_at"`
}

func toProcessDoc(p *model.Process) *processDocument {
	appIDs := make([]string, len(p.ApplicationIDs))
	for i, id := range p.ApplicationIDs {
		appIDs[i] = id.String()
	}
	return &processDocument{
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

func (d *processDocument) toModel() *model.Process {
	appIDs := make([]types.ApplicationID, len(d.ApplicationIDs))
	for i, id := range d.ApplicationIDs {
		appIDs[i] = types.ApplicationID(id)
	}
	return &model.Process{
		ID:             types.ProcessID(d.ID),
		DepartmentID:   types.DepartmentID(d.DepartmentID),
		Name:           d.Name,
		Description:    d.Description,
		OwnerID:        types.UserID(d.OwnerID),
		ApplicationIDs: appIDs,
		Active:         d.Active,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type processRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newProcessRepository(client *firestore.Client) *processRepository {
	return &processRepository{client: client}
}

func (r *processRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_processes"
	}
	return "processes"
}

func (r *processRepository) Create(ctx context.Context, process *model.Process) (*model.Process, error) {
	now := time.Now().UTC()
	doc := toProcessDoc(process)
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create process", goerr.V("id", process.ID))
	}

	return doc.toModel(), nil
}

func (r *processRepository) Get(ctx context.Context, id types.ProcessID) (*model.Process, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "process not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get process", goerr.V("id", id))
	}

	var processDoc processDocument
	if err := doc.DataTo(&processDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal process", goerr.V("id", id))
	}

	return processDoc.toModel(), nil
}

func (r *processRepository) List(ctx context.Context) ([]*model.Process, error) {
	return r.list(ctx, r.client.Collection(r.collection()).Query)
}

func (r *processRepository) ListActiveByDepartment(ctx context.Context, departmentID types.DepartmentID) ([]*model.Process, error) {
	query := r.client.Collection(r.collection()).
		Where("department_id", "==", departmentID.String()).
		Where("active", "==", true)
	return r.list(ctx, query)
}

func (r *processRepository) ListActiveByApplication(ctx context.Context, applicationID types.ApplicationID) ([]*model.Process, error) {
	query := r.client.Collection(r.collection()).
		Where("application_ids", "array-contains", applicationID.String()).
		Where("active", "==", true)
	return r.list(ctx, query)
}

func (r *processRepository) list(ctx context.Context, query firestore.Query) ([]*model.Process, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var processes []*model.Process
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate processes")
		}

		var processDoc processDocument
		if err := doc.DataTo(&processDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal process")
		}

		processes = append(processes, processDoc.toModel())
	}
	sort.Slice(processes, func(i, j int) bool { return processes[i].Name < processes[j].Name })

	return processes, nil
}

func (r *processRepository) Update(ctx context.Context, process *model.Process) (*model.Process, error) {
	docRef := r.client.Collection(r.collection()).Doc(process.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "process not found", goerr.V("id", process.ID))
		}
		return nil, goerr.Wrap(err, "failed to get process", goerr.V("id", process.ID))
	}

	var existing processDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal process", goerr.V("id", process.ID))
	}

	updated := toProcessDoc(process)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update process", goerr.V("id", process.ID))
	}

	return updated.toModel(), nil
}

type applicationDocument struct {
	ID         string            `firestore:"id"`
	Name       string            `firestore:"name"`
	OwnerID    string            `firestore:"owner_id"`
	DerivedRTO *rtoValueDocument `firestore:"derived_rto"`
	Active     bool              `firestore:"active"`
	CreatedAt  time.Time         `firestore:"created_at"`
	UpdatedAt  time.Time         `firestore:"updated_at"`
}

func (d *applicationDocument) toModel() *model.Application {
	return &model.Application{
		ID:         types.ApplicationID(d.ID),
		Name:       d.Name,
		OwnerID:    types.UserID(d.OwnerID),
		DerivedRTO: fromRTOValueDoc(d.DerivedRTO),
		Active:     d.Active,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type applicationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newApplicationRepository(client *firestore.Client) *applicationRepository {
	return &applicationRepository{client: client}
}

func (r *applicationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_applications"
	}
	return "applications"
}

func (r *applicationRepository) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	now := time.Now().UTC()
	doc := &applicationDocument{
		ID:         app.ID.String(),
		Name:       app.Name,
		OwnerID:    app.OwnerID.String(),
		DerivedRTO: toRTOValueDoc(app.DerivedRTO),
		Active:     app.Active,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	docRef := r.client.Collection(r.collection()).Doc(doc.ID)
	if _, err := docRef.Create(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create application", goerr.V("id", app.ID))
	}

	return doc.toModel(), nil
}

func (r *applicationRepository) Get(ctx context.Context, id types.ApplicationID) (*model.Application, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "application not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get application", goerr.V("id", id))
	}

	var appDoc applicationDocument
	if err := doc.DataTo(&appDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal application", goerr.V("id", id))
	}

	return appDoc.toModel(), nil
}

func (r *applicationRepository) List(ctx context.Context) ([]*model.Application, error) {
	iter := r.client.Collection(r.collection()).Documents(ctx)
	defer iter.Stop()

	var applications []*model.Application
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate applications")
		}

		var appDoc applicationDocument
		if err := doc.DataTo(&appDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal application")
		}

		applications = append(applications, appDoc.toModel())
	}
	sort.Slice(applications, func(i, j int) bool { return applications[i].Name < applications[j].Name })

	return applications, nil
}

func (r *applicationRepository) Update(ctx context.Context, app *model.Application) (*model.Application, error) {
	docRef := r.client.Collection(r.collection()).Doc(app.ID.String())

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "application not found", goerr.V("id", app.ID))
		}
		return nil, goerr.Wrap(err, "failed to get application", goerr.V("id", app.ID))
	}

	var existing applicationDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal application", goerr.V("id", app.ID))
	}

	updated := &applicationDocument{
		ID:         existing.ID,
		Name:       app.Name,
		OwnerID:    app.OwnerID.String(),
		DerivedRTO: toRTOValueDoc(app.DerivedRTO),
		Active:     app.Active,
		CreatedAt:  existing.CreatedAt,
		UpdatedAt:  time.Now().UTC(),
	}

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update application", goerr.V("id", app.ID))
	}

	return updated.toModel(), nil
}

func (r *applicationRepository) SetDerivedRTO(ctx context.Context, id types.ApplicationID, rto *model.RTOValue) error {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	var value interface{}
	if doc := toRTOValueDoc(rto); doc != nil {
		value = doc
	}

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "derived_rto", Value: value},
		{Path: "updated_at", Value: time.Now().UTC()},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "application not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to set derived RTO", goerr.V("id", id))
	}

	return nil
}
