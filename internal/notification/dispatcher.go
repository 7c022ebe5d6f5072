package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"hostel-backend/internal/logger"
	"hostel-backend/internal/model"
	"hostel-backend/internal/store"
)

// LeaveStatusTitle is the title of the notification sent when a warden
// reviews a leave request.
const LeaveStatusTitle = "Leave Status Updated"

// LeaveStatusMessage renders the message sent to the owner of a reviewed leave request.
func LeaveStatusMessage(status model.LeaveStatus) string {
	return fmt.Sprintf("Your leave request has been %s.", status)
}

// Mailer delivers a copy of a notification outside the application.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// BroadcastResult reports how a broadcast went. Callers may ignore it.
type BroadcastResult struct {
	Recipients int
	Delivered  int
}

// Dispatcher records notifications for users. Delivery is synchronous and
// failures never reach the caller as anything but a return value.
type Dispatcher struct {
	store  store.Store
	mailer Mailer
	log    zerolog.Logger
}

// NewDispatcher creates a dispatcher. mailer may be nil.
func NewDispatcher(s store.Store, mailer Mailer) *Dispatcher {
	return &Dispatcher{
		store:  s,
		mailer: mailer,
		log:    logger.Named("notification"),
	}
}

// Notify creates one unread notification for userID. A failed write is
// logged here and returned; callers that treat delivery as fire-and-forget
// discard the error.
func (d *Dispatcher) Notify(ctx context.Context, userID, title, message string) error {
	n := &model.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
	}
	if err := d.store.CreateNotification(ctx, n); err != nil {
		d.log.Error().Err(err).Str("user_id", userID).Str("title", title).Msg("failed to create notification")
		return err
	}

	if d.mailer != nil {
		d.relay(ctx, userID, title, message)
	}
	return nil
}

func (d *Dispatcher) relay(ctx context.Context, userID, title, message string) {
	u, err := d.store.FindUserByID(ctx, userID)
	if err != nil {
		d.log.Warn().Err(err).Str("user_id", userID).Msg("mail relay skipped, recipient lookup failed")
		return
	}
	if err := d.mailer.Send(ctx, u.Email, title, message); err != nil {
		d.log.Warn().Err(err).Str("user_id", userID).Msg("mail relay failed")
	}
}

// Broadcast notifies every student, one write at a time. It keeps going
// when the caller's context is cancelled and when an individual write fails.
// Only a failure to enumerate the students is returned as an error.
func (d *Dispatcher) Broadcast(ctx context.Context, title, message string) (BroadcastResult, error) {
	ctx = context.WithoutCancel(ctx)

	ids, err := d.store.ListUserIDsByRole(ctx, model.RoleStudent)
	if err != nil {
		d.log.Error().Err(err).Msg("broadcast aborted, could not list students")
		return BroadcastResult{}, err
	}

	res := BroadcastResult{Recipients: len(ids)}
	for _, id := range ids {
		if d.Notify(ctx, id, title, message) == nil {
			res.Delivered++
		}
	}

	d.log.Info().
		Int("recipients", res.Recipients).
		Int("delivered", res.Delivered).
		Str("title", title).
		Msg("broadcast finished")
	return res, nil
}
