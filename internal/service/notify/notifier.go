// Package notify delivers short text messages to the shop owner.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/aquashop/internal/config"
	"github.com/mamadbah2/aquashop/internal/domain/models"
	client "github.com/mamadbah2/aquashop/pkg/clients/whatsapp"
)

const sendTimeout = 10 * time.Second

// Notifier sends a message to the owner.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// WhatsAppNotifier pushes messages through the WhatsApp Cloud API.
type WhatsAppNotifier struct {
	owner  string
	client client.Client
	logger *zap.Logger
}

// NewWhatsAppNotifier wires a notifier for the configured owner number.
func NewWhatsAppNotifier(cfg config.WhatsAppConfig, client client.Client, logger *zap.Logger) *WhatsAppNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppNotifier{owner: cfg.OwnerNumber, client: client, logger: logger}
}

// Notify sends message to the owner.
func (n *WhatsAppNotifier) Notify(ctx context.Context, message string) error {
	return n.Send(ctx, models.OutboundMessageRequest{To: n.owner, Message: message})
}

// Send pushes one text message.
func (n *WhatsAppNotifier) Send(ctx context.Context, req models.OutboundMessageRequest) error {
	if req.To == "" {
		return errors.New("missing recipient")
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	resp, err := n.client.SendTextMessage(ctxWithTimeout, client.SendTextMessageRequest{
		To:         req.To,
		Body:       req.Message,
		PreviewURL: req.PreviewURL,
	})
	if err != nil {
		return fmt.Errorf("notify %s: %w", req.To, err)
	}

	n.logger.Info("owner notified", zap.String("to", req.To), zap.String("message_id", resp.MessageID()))
	return nil
}

// Nop discards every message.
type Nop struct{}

func (Nop) Notify(context.Context, string) error { return nil }
