package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/eventpass/pkg/slogx"
	"github.com/aussiebroadwan/eventpass/pkg/whatsapp"
)

var errDeliveryDisabled = errors.New("whatsapp delivery is not configured")

// whatsappMessenger adapts the Cloud API client to service.Messenger.
type whatsappMessenger struct {
	client *whatsapp.Client
}

func (m *whatsappMessenger) SendImage(ctx context.Context, to, link string) error {
	resp, err := m.client.SendImage(ctx, to, link)
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Debug("whatsapp image accepted", slog.String("message_id", resp.MessageID()))
	return nil
}

func (m *whatsappMessenger) SendTemplate(ctx context.Context, to string) error {
	resp, err := m.client.SendTemplate(ctx, to)
	if err != nil {
		return err
	}
	slogx.FromContext(ctx).Debug("whatsapp template accepted", slog.String("message_id", resp.MessageID()))
	return nil
}

// disabledMessenger fails every delivery when no credentials are set.
type disabledMessenger struct{}

func (disabledMessenger) SendImage(context.Context, string, string) error { return errDeliveryDisabled }
func (disabledMessenger) SendTemplate(context.Context, string) error      { return errDeliveryDisabled }
