package sse

import (
	"context"

	"github.com/cmlabs-hris/attendance-engine-go/internal/domain/alert"
)

// AlertNotifier delivers dispatched alerts to the organization's open
// notification streams. It satisfies alert.Notifier.
type AlertNotifier struct {
	hub *Hub
}

func NewAlertNotifier(hub *Hub) *AlertNotifier {
	return &AlertNotifier{hub: hub}
}

// Deliver implements alert.Notifier. Publishing to the hub never blocks, so
// the sink timeout the sweep imposes is effectively a no-op here; it still
// bounds any future transport swapped in behind this interface.
func (n *AlertNotifier) Deliver(ctx context.Context, p alert.Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	n.hub.Publish(p.OrganizationID, Event{
		OrganizationID: p.OrganizationID,
		Name:           string(p.Kind),
		Data:           p,
	})

	return nil
}
