package bootstrap

import (
	"context"
	"log/slog"

	"parkhub/internal/infra/notify"
	"parkhub/internal/infra/repository"
	"parkhub/internal/pkg/config"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Invoke(StartNotifier),
)

// StartNotifier runs the outbox worker for as long as the app lives. With no
// broker URL configured the worker is skipped and jobs stay queued in the
// database.
func StartNotifier(lc fx.Lifecycle, cfg config.Config, store *repository.NotificationRepository) {
	if cfg.AMQP.URL == "" {
		slog.Info("AMQP URL not configured, notification worker disabled")
		return
	}

	publisher := notify.NewAMQPPublisher(cfg.AMQP)
	worker := notify.NewWorker(store, publisher, cfg.Notifier)

	workerCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			slog.Info("starting notification worker",
				"exchange", cfg.AMQP.Exchange,
				"poll_interval", cfg.Notifier.PollInterval.String())
			go worker.Run(workerCtx)
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return publisher.Close()
		},
	})
}
