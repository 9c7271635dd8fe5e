package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/markhoor-institute/markhoor-api/internal/jobs"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeContactNotify is the task type for contact inquiry notifications.
	TaskTypeContactNotify = "contact:notify"
)

// ContactNotifyPayload carries an inquiry summary to the notification mailer.
type ContactNotifyPayload struct {
	InquiryID   string    `json:"inquiryId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// NewContactNotifyTask constructs an Asynq task.
func NewContactNotifyTask(payload ContactNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeContactNotify, data), nil
}

// Sender delivers notification emails.
type Sender interface {
	Send(subject, body string) error
}

// NewContactNotifyHandler builds the handler that emails staff about a new
// inquiry. Malformed payloads skip retry. metrics may be nil.
func NewContactNotifyHandler(logger *slog.Logger, sender Sender, metrics *jobmetrics.Metrics) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track("contact_notify")
		var payload ContactNotifyPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return tracker.End(asynq.SkipRetry)
		}
		subject := fmt.Sprintf("New inquiry: %s", payload.Subject)
		body := fmt.Sprintf(
			"Name: %s\nEmail: %s\nPhone: %s\nSubmitted: %s\n\n%s\n",
			payload.Name, payload.Email, payload.Phone,
			payload.SubmittedAt.Format(time.RFC1123), payload.Message,
		)
		if err := sender.Send(subject, body); err != nil {
			logger.Warn("contact notify", slog.String("inquiry_id", payload.InquiryID), slog.Any("error", err))
			return tracker.End(err)
		}
		logger.Info("contact notify sent", slog.String("inquiry_id", payload.InquiryID))
		return tracker.End(nil)
	}
}
