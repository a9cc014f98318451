package events

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/sttnf/project-DDP/pkg/logger"
)

// AuditHandler returns a message handler that writes each event to the
// structured log. Payloads are JSON already, so they are logged verbatim.
func AuditHandler(log logger.Logger, topic string) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		log.InfoContext(ctx, "audit",
			"topic", topic,
			"message_id", msg.UUID,
			"payload", string(msg.Payload),
		)
		return nil
	}
}
