package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/m-mizutani/goerr/v2"
)

type Firestore struct {
	client      *firestore.Client
	category    *categoryRepository
	parameter   *parameterRepository
	framework   *frameworkRepository
	rtoOption   *rtoOptionRepository
	bia         *biaRepository
	workItem    *workItemRepository
	department  *departmentRepository
	process     *processRepository
	application *applicationRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.category.collectionPrefix = prefix
		f.parameter.collectionPrefix = prefix
		f.framework.collectionPrefix = prefix
		f.rtoOption.collectionPrefix = prefix
		f.bia.collectionPrefix = prefix
		f.workItem.collectionPrefix = prefix
		f.department.collectionPrefix = prefix
		f.process.collectionPrefix = prefix
		f.application.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID),
			goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:      client,
		category:    newCategoryRepository(client),
		parameter:   newParameterRepository(client),
		framework:   newFrameworkRepository(client),
		rtoOption:   newRTOOptionRepository(client),
		bia:         newBIARepository(client),
		workItem:    newWorkItemRepository(client),
		department:  newDepartmentRepository(client),
		process:     newProcessRepository(client),
		application: newApplicationRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Category() interfaces.CategoryRepository {
	return f.category
}

func (f *Firestore) Parameter() interfaces.ParameterRepository {
	return f.parameter
}

func (f *Firestore) Framework() interfaces.FrameworkRepository {
	return f.framework
}

func (f *Firestore) RTOOption() interfaces.RTOOptionRepository {
	return f.rtoOption
}

func (f *Firestore) BIA() interfaces.BIARepository {
	return f.bia
}

func (f *Firestore) WorkItem() interfaces.WorkItemRepository {
	return f.workItem
}

func (f *Firestore) Department() interfaces.DepartmentRepository {
	return f.department
}

func (f *Firestore) Process() interfaces.ProcessRepository {
	return f.process
}

func (f *Firestore) Application() interfaces.ApplicationRepository {
	return f.application
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
