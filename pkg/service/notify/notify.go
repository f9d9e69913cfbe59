package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/gui-far/objectboard/pkg/domain/model"
	"github.com/gui-far/objectboard/pkg/domain/types"
)

// Service posts stage transition notifications. Implementations must be
// safe for concurrent use.
type Service interface {
	NotifyStageChange(ctx context.Context, def *model.ObjectDefinition, obj *model.GenericObject, from, to types.StageID) error
}

// SlackWebhook posts transition messages to a Slack incoming webhook
type SlackWebhook struct {
	webhookURL string
}

var _ Service = &SlackWebhook{}

func NewSlackWebhook(webhookURL string) *SlackWebhook {
	return &SlackWebhook{
		webhookURL: webhookURL,
	}
}

func stageLabel(def *model.ObjectDefinition, stageID types.StageID) string {
	if stage, ok := def.Stage(stageID); ok {
		return stage.Label
	}
	return string(stageID)
}

func (s *SlackWebhook) NotifyStageChange(ctx context.Context, def *model.ObjectDefinition, obj *model.GenericObject, from, to types.StageID) error {
	msg := &slack.WebhookMessage{
		Text: fmt.Sprintf("%s `%s` moved from *%s* to *%s*",
			def.Label, obj.ID, stageLabel(def, from), stageLabel(def, to)),
	}

	if err := slack.PostWebhookContext(ctx, s.webhookURL, msg); err != nil {
		return goerr.Wrap(err, "failed to post stage change notification",
			goerr.V("objectId", obj.ID), goerr.V("to", to))
	}

	return nil
}
