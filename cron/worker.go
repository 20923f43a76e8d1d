package cron

import (
	"context"
	"fmt"
	"time"

	"catering/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitPaymentAlertWorker runs the payment alert worker in the background until
// ctx is cancelled.
func InitPaymentAlertWorker(ctx context.Context, redisOpts asynq.RedisClientOpt, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePaymentFailedAlert, handlePaymentFailedAlert(logger))

	go monitorRedisConnection(ctx, redisOpts, logger)

	// Start async worker with retry logic.
	go func() {
		logger.Info("[PaymentAlertWorker] starting async worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("[PaymentAlertWorker] failed to start worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("[PaymentAlertWorker] max retry attempts reached, alerts will not be processed")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
	return srv
}

func handlePaymentFailedAlert(logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParsePaymentFailedPayload(task)
		if err != nil {
			logger.Error("[PaymentAlertHandler] invalid payload", zap.Error(err))
			return fmt.Errorf("decode payment alert: %v: %w", err, asynq.SkipRetry)
		}

		logger.Warn("[PaymentAlertHandler] deposit payment failed",
			zap.String("eventID", p.EventID),
			zap.String("paymentIntentID", p.PaymentIntentID),
			zap.String("bookingID", p.BookingID),
			zap.String("failureMessage", p.FailureMessage),
			zap.Time("occurredAt", p.OccurredAt),
		)
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, opts asynq.RedisClientOpt, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("[PaymentAlertWorker] redis connection lost", zap.Error(err))
			}
		}
	}
}
