package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/parlourcover/parlour/internal/application/notification/dto"
	"github.com/parlourcover/parlour/internal/application/notification/usecases"
	"github.com/parlourcover/parlour/internal/domain/notification"
	"github.com/parlourcover/parlour/internal/domain/parlour"
	"github.com/parlourcover/parlour/internal/domain/shared/events"
	"github.com/parlourcover/parlour/internal/infrastructure/email"
	"github.com/parlourcover/parlour/internal/shared/logger"
)

const deliveryTimeout = time.Minute

// Service groups the notification use cases and connects delivery to the
// domain event dispatcher.
type Service struct {
	logger logger.Interface

	deliver           *usecases.DeliverNotificationUseCase
	listNotifications *usecases.ListNotificationsUseCase
}

func NewService(
	notificationRepo notification.Repository,
	parlourRepo parlour.Repository,
	composer *email.Composer,
	sender usecases.EmailSender,
	documents usecases.DocumentResolver,
	logger logger.Interface,
) *Service {
	return &Service{
		logger: logger,

		deliver:           usecases.NewDeliverNotificationUseCase(notificationRepo, parlourRepo, composer, sender, documents, logger),
		listNotifications: usecases.NewListNotificationsUseCase(notificationRepo, logger),
	}
}

// Subscribe registers email delivery for every notifying event type.
func (s *Service) Subscribe(subscriber events.EventSubscriber) error {
	for _, eventType := range usecases.DeliveredEventTypes {
		handler := events.NewSimpleEventHandler(eventType, s.handle)
		if err := subscriber.Subscribe(eventType, handler); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", eventType, err)
		}
	}
	return nil
}

func (s *Service) handle(event events.DomainEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	if _, err := s.deliver.Execute(ctx, event); err != nil {
		s.logger.Errorw("failed to deliver notification",
			"error", err,
			"event_type", event.GetEventType(),
			"aggregate_id", event.GetAggregateID(),
		)
		return err
	}
	return nil
}

func (s *Service) ListNotifications(ctx context.Context, query usecases.ListNotificationsQuery) (*dto.ListNotificationsResponse, error) {
	return s.listNotifications.Execute(ctx, query)
}
