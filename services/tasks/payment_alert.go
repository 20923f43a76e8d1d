package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hibiken/asynq"
)

const TypePaymentFailedAlert = "payment:failed_alert"

// PaymentFailedPayload is the admin alert raised for a failed card payment.
type PaymentFailedPayload struct {
	EventID         string    `json:"eventId"`
	PaymentIntentID string    `json:"paymentIntentId"`
	BookingID       string    `json:"bookingId,omitempty"`
	FailureMessage  string    `json:"failureMessage,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

// NewPaymentFailedTask builds the alert task. The task id is the processor's
// event id, so a redelivered webhook does not raise a second alert.
func NewPaymentFailedTask(payload PaymentFailedPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePaymentFailedAlert, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}
	if payload.EventID != "" {
		opts = append(opts, asynq.TaskID(payload.EventID))
	}
	return task, opts, nil
}

// ParsePaymentFailedPayload decodes a task payload.
func ParsePaymentFailedPayload(task *asynq.Task) (PaymentFailedPayload, error) {
	var p PaymentFailedPayload
	err := json.Unmarshal(task.Payload(), &p)
	return p, err
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AlertQueue enqueues payment alerts on the asynq queue.
type AlertQueue struct {
	client enqueuer
}

func NewAlertQueue(client *asynq.Client) *AlertQueue {
	return &AlertQueue{client: client}
}

func (q *AlertQueue) EnqueuePaymentFailed(ctx context.Context, payload PaymentFailedPayload) error {
	task, opts, err := NewPaymentFailedTask(payload)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) || errors.Is(err, asynq.ErrDuplicateTask) {
			return nil
		}
		return err
	}
	return nil
}
