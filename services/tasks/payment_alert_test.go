package tasks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeClient) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "1", Type: task.Type()}, nil
}

func TestNewPaymentFailedTaskRoundTrip(t *testing.T) {
	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	task, opts, err := NewPaymentFailedTask(PaymentFailedPayload{
		EventID:         "evt_1",
		PaymentIntentID: "pi_1",
		BookingID:       "b-1",
		FailureMessage:  "Your card was declined.",
		OccurredAt:      at,
	})
	require.NoError(t, err)
	assert.Equal(t, TypePaymentFailedAlert, task.Type())
	assert.Len(t, opts, 3)

	p, err := ParsePaymentFailedPayload(task)
	require.NoError(t, err)
	assert.Equal(t, "pi_1", p.PaymentIntentID)
	assert.Equal(t, "Your card was declined.", p.FailureMessage)
	assert.True(t, p.OccurredAt.Equal(at))
}

func TestEnqueuePaymentFailed(t *testing.T) {
	client := &fakeClient{}
	q := &AlertQueue{client: client}

	require.NoError(t, q.EnqueuePaymentFailed(context.Background(), PaymentFailedPayload{EventID: "evt_1"}))
	require.Len(t, client.tasks, 1)
	assert.Equal(t, TypePaymentFailedAlert, client.tasks[0].Type())
}

func TestEnqueueDuplicateIsNotAnError(t *testing.T) {
	q := &AlertQueue{client: &fakeClient{err: asynq.ErrTaskIDConflict}}
	assert.NoError(t, q.EnqueuePaymentFailed(context.Background(), PaymentFailedPayload{EventID: "evt_1"}))

	q = &AlertQueue{client: &fakeClient{err: errors.New("redis down")}}
	assert.Error(t, q.EnqueuePaymentFailed(context.Background(), PaymentFailedPayload{EventID: "evt_2"}))
}
