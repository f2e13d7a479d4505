package config

import (
	"github.com/bcm-lab/atropos/pkg/domain/interfaces"
	slackservice "github.com/bcm-lab/atropos/pkg/service/slack"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Slack holds CLI flags for Slack notification configuration
type Slack struct {
	oauthToken string
	channel    string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-oauth-token",
			Usage:       "Slack OAuth token for workflow notifications",
			Sources:     cli.EnvVars("ATROPOS_SLACK_OAUTH_TOKEN"),
			Destination: &s.oauthToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel",
			Usage:       "Slack channel to deliver workflow notifications to",
			Sources:     cli.EnvVars("ATROPOS_SLACK_CHANNEL"),
			Destination: &s.channel,
		},
	}
}

// IsConfigured returns true when a token is set
func (s *Slack) IsConfigured() bool {
	return s.oauthToken != ""
}

// Configure builds the Slack publisher, or nil when not configured
func (s *Slack) Configure() (interfaces.Publisher, error) {
	if !s.IsConfigured() {
		return nil, nil
	}
	if s.channel == "" {
		return nil, goerr.New("slack-channel is required when slack-oauth-token is set")
	}
	return slackservice.New(s.oauthToken, slackservice.WithChannel(s.channel))
}
