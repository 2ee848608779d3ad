package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uxmedia/demoportal/internal/ports"
	"go.uber.org/zap"
)

// notifyChannel matches the pg_notify channel used by the triggers on
// submissions and now_playing. The payload is the table name.
const notifyChannel = "demo_portal_changes"

const reconnectDelay = time.Second

// PgChangeFeed turns Postgres LISTEN/NOTIFY into a channel of table names.
// It holds one connection out of the pool for the lifetime of Run.
type PgChangeFeed struct {
	pool    *pgxpool.Pool
	logger  *zap.Logger
	changes chan string
}

var _ ports.ChangeFeed = (*PgChangeFeed)(nil)

func NewPgChangeFeed(pool *pgxpool.Pool, logger *zap.Logger) *PgChangeFeed {
	return &PgChangeFeed{
		pool:    pool,
		logger:  logger.Named("PgChangeFeed"),
		changes: make(chan string, 16),
	}
}

func (f *PgChangeFeed) Changes() <-chan string {
	return f.changes
}

// Run blocks until ctx is canceled, reconnecting after listener failures.
func (f *PgChangeFeed) Run(ctx context.Context) {
	for {
		err := f.listen(ctx)
		if ctx.Err() != nil {
			return
		}
		f.logger.Error("listener dropped, reconnecting", zap.Error(err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
	}
}

func (f *PgChangeFeed) listen(ctx context.Context) error {
	conn, err := f.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listener connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+notifyChannel); err != nil {
		return fmt.Errorf("listen %s: %w", notifyChannel, err)
	}
	f.logger.Info("listening for store changes", zap.String("channel", notifyChannel))

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}
		select {
		case f.changes <- n.Payload:
		default:
			// Consumer is mid-refresh; it refetches everything anyway, so
			// a dropped notification costs nothing.
		}
	}
}
