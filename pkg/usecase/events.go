package usecase

import (
	"context"

	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/bcm-lab/atropos/pkg/utils/async"
)

// publishEvent delivers the event in the background. A nil publisher drops
// the event; a delivery failure is logged by the dispatcher and never fails
// the emitting operation.
func publishEvent(ctx context.Context, publisher interfaces.Publisher, event *model.Event) {
	if publisher == nil {
		return
	}
	async.Dispatch(ctx, func(ctx context.Context) error {
		return publisher.Publish(ctx, event)
	})
}
