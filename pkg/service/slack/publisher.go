package slack

import (
	"context"
	"fmt"

	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	"github.com/bcm-lab/atropos/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// Publisher delivers domain events to a Slack channel
type Publisher struct {
	api     *slack.Client
	channel string
}

var _ interfaces.Publisher = &Publisher{}

// Option is a functional option for publisher configuration
type Option func(*Publisher)

// WithChannel sets the channel events are posted to
func WithChannel(channel string) Option {
	return func(p *Publisher) {
		p.channel = channel
	}
}

// New creates a new Slack publisher with the provided bot token
func New(token string, opts ...Option) (*Publisher, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	p := &Publisher{
		api: slack.New(token),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.channel == "" {
		return nil, goerr.New("Slack channel is required")
	}

	return p, nil
}

// Publish posts the event to the configured channel
func (p *Publisher) Publish(ctx context.Context, event *model.Event) error {
	text := formatEvent(event)

	_, _, err := p.api.PostMessageContext(ctx, p.channel,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post event to Slack",
			goerr.V("channel", p.channel),
			goerr.V("kind", event.Kind))
	}

	return nil
}

func formatEvent(event *model.Event) string {
	switch event.Kind {
	case model.EventWorkItemAssigned:
		return fmt.Sprintf(":inbox_tray: Work item assigned to <@%s> for process %s (BIA %s)",
			event.OwnerID, event.ProcessID, event.BIAID)
	case model.EventClarificationRequested:
		return fmt.Sprintf(":speech_balloon: Clarification requested on process %s: %s",
			event.ProcessID, event.Note)
	case model.EventSubmittedForApproval:
		return fmt.Sprintf(":eyes: Process %s forwarded for approval (BIA %s)",
			event.ProcessID, event.BIAID)
	case model.EventApproved:
		text := fmt.Sprintf(":white_check_mark: Process %s approved", event.ProcessID)
		if event.Score != nil {
			text += fmt.Sprintf(" with impact score %.2f", *event.Score)
		}
		if event.RTO != nil {
			text += fmt.Sprintf(", RTO %s", event.RTO.Label)
		}
		return text
	case model.EventRejected:
		return fmt.Sprintf(":x: Process %s rejected: %s", event.ProcessID, event.Note)
	case model.EventApplicationRTORecomputed:
		if event.RTO != nil {
			return fmt.Sprintf(":gear: Application %s RTO recomputed to %s",
				event.ApplicationID, event.RTO.Label)
		}
		return fmt.Sprintf(":gear: Application %s RTO cleared", event.ApplicationID)
	default:
		return fmt.Sprintf("BIA event: %s", event.Kind)
	}
}
