// Package worker hosts the background maintenance jobs that run alongside
// the HTTP server.
package worker

import (
	"context"
	"log/slog"
	"time"

	"storefront/config"
	"storefront/internal/delivery"
	"storefront/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
)

// purgeTimeout bounds a single token purge run.
const purgeTimeout = 30 * time.Second

type maintenanceWorker struct {
	cfg       *config.Config
	logger    *slog.Logger
	cron      *cron.Cron
	txManager repository.TransactionManager
}

// ServerParams holds dependencies for the maintenance worker.
type ServerParams struct {
	fx.In

	Lc        fx.Lifecycle
	Cfg       *config.Config
	Logger    *slog.Logger
	TxManager repository.TransactionManager
}

// NewServer creates the maintenance worker. Its only job today is purging
// expired and revoked refresh token rows on the configured schedule.
func NewServer(params ServerParams) (delivery.Delivery, error) {
	srv := &maintenanceWorker{
		cfg:       params.Cfg,
		logger:    params.Logger,
		cron:      cron.New(),
		txManager: params.TxManager,
	}

	schedule := params.Cfg.Maintenance.TokenPurgeSchedule
	if schedule != "" {
		if _, err := srv.cron.AddFunc(schedule, srv.purgeTokens); err != nil {
			return nil, errors.Wrapf(err, "invalid token purge schedule %q", schedule)
		}
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// Serve starts the scheduler and blocks until the context is cancelled.
func (s *maintenanceWorker) Serve(ctx context.Context) error {
	if s.cfg.Maintenance.TokenPurgeSchedule == "" {
		s.logger.Info("Token purge disabled, no schedule configured")
	} else {
		s.logger.Info("Starting maintenance worker",
			slog.String("tokenPurgeSchedule", s.cfg.Maintenance.TokenPurgeSchedule))
	}
	s.cron.Start()

	<-ctx.Done()

	return nil
}

// stop waits for any running job to finish before shutting down.
func (s *maintenanceWorker) stop(ctx context.Context) error {
	s.logger.Info("Shutting down maintenance worker")

	jobsDone := s.cron.Stop().Done()
	select {
	case <-jobsDone:
		return nil
	case <-ctx.Done():
		return errors.WithStack(ctx.Err())
	}
}

func (s *maintenanceWorker) purgeTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
	defer cancel()

	var removed int64
	err := s.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		var txErr error
		removed, txErr = factory.RefreshTokenRepo().DeleteInactive(ctx)

		return txErr
	})
	if err != nil {
		s.logger.Error("Token purge failed", slog.Any("error", err))

		return
	}

	s.logger.Info("Purged inactive refresh tokens", slog.Int64("removed", removed))
}
