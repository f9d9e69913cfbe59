package config

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/gui-far/objectboard/pkg/service/notify"
)

type Notify struct {
	slackWebhookURL string
}

func (x *Notify) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-webhook-url",
			Usage:       "Slack incoming webhook URL for stage transition notifications",
			Category:    "Notification",
			Sources:     cli.EnvVars("OBJECTBOARD_SLACK_WEBHOOK_URL"),
			Destination: &x.slackWebhookURL,
		},
	}
}

func (x Notify) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("slack-webhook-url.len", len(x.slackWebhookURL)),
	)
}

// IsConfigured checks if a notification channel is set up
func (x *Notify) IsConfigured() bool {
	return x.slackWebhookURL != ""
}

// Configure builds the notification service, or nil when not configured
func (x *Notify) Configure() notify.Service {
	if x.slackWebhookURL == "" {
		return nil
	}
	return notify.NewSlackWebhook(x.slackWebhookURL)
}
