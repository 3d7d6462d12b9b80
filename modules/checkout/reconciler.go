package checkout

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/installments-admin/pkg/billing"
	"github.com/dmitrymomot/installments-admin/pkg/logger"
)

// HandleWebhook verifies and dispatches a billing provider event. The
// signature is checked before the payload is interpreted; an unverifiable
// delivery is rejected outright.
//
// A returned error makes the HTTP endpoint fail the delivery so the
// provider redelivers it later; unknown event types and subscriptions
// without cancellation metadata are acknowledged as no-ops instead.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.provider.ParseWebhookEvent(payload, signature)
	if err != nil {
		return err
	}

	switch event.Type {
	case billing.EventCheckoutCompleted:
		return s.scheduleCancellation(ctx, event)
	case billing.EventInvoicePaid:
		if event.Invoice != nil {
			s.log.InfoContext(ctx, "invoice paid",
				slog.String("invoice_id", event.Invoice.ID),
				logger.Amount(event.Invoice.AmountPaid),
				logger.Component("reconciler"),
			)
		}
	default:
		s.log.DebugContext(ctx, "ignoring billing event",
			logger.EventType(event.ProviderEvent),
			logger.Component("reconciler"),
		)
	}
	return nil
}

// scheduleCancellation reads the cancellation plan back from the
// subscription created by a completed checkout and pushes the absolute
// cutoff to the provider. Setting the same cutoff twice is a no-op, so
// redelivered events are harmless.
func (s *Service) scheduleCancellation(ctx context.Context, event *billing.WebhookEvent) error {
	session := event.Session
	if session == nil || session.Mode != "subscription" || session.SubscriptionID == "" {
		s.log.InfoContext(ctx, "checkout completed without subscription, nothing to schedule",
			logger.EventType(event.ProviderEvent),
			logger.Component("reconciler"),
		)
		return nil
	}

	sub, err := s.provider.GetSubscription(ctx, session.SubscriptionID)
	if err != nil {
		return err
	}

	plan, ok := CancellationPlanFromMetadata(sub.Metadata)
	if !ok {
		// Not one of ours; leave it alone.
		s.log.WarnContext(ctx, "subscription has no cancellation metadata, skipping",
			logger.SubscriptionID(sub.ID),
			logger.SessionID(session.ID),
			logger.Component("reconciler"),
		)
		return nil
	}

	if sub.CancelAt == plan.CancelAt {
		s.log.InfoContext(ctx, "cancellation already scheduled",
			logger.SubscriptionID(sub.ID),
			slog.Int64("cancel_at", plan.CancelAt),
			logger.Component("reconciler"),
		)
		return nil
	}

	if _, err := s.provider.CancelSubscriptionAt(ctx, sub.ID, plan.CancelAt); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "subscription cancellation scheduled",
		logger.SubscriptionID(sub.ID),
		logger.SessionID(session.ID),
		slog.Int64("cancel_at", plan.CancelAt),
		slog.Int("payments_count", plan.PaymentsCount),
		logger.Component("reconciler"),
	)
	return nil
}
