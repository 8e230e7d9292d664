package email

import (
	"context"

	"go.uber.org/zap"

	"github.com/tdea-viajes/travelbooking/internal/kafka"
	"github.com/tdea-viajes/travelbooking/internal/logging"
)

// Sender is a stand-in delivery channel; it logs the notification that a
// real mailer would send.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	logging.L().Info("send email",
		zap.String("to", event.UserEmail),
		zap.String("reference", event.Reference),
		zap.String("destination", event.Destination),
		zap.String("status", event.Status))
	return nil
}
