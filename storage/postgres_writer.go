package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/namiksejdovic1-tech/price-master-bih/models"
	"github.com/namiksejdovic1-tech/price-master-bih/utils"
)

// SnapshotWriter mirrors the latest scan outcome per (product, source)
// into Postgres. It keeps only the most recent snapshot — the upsert
// overwrites the previous row, so this is not a price history.
type SnapshotWriter struct {
	pool *pgxpool.Pool
}

// NewSnapshotWriter connects to Postgres. The connection is verified
// with a ping, retried with backoff since the database may still be
// starting alongside the service.
func NewSnapshotWriter(dsn string) (*SnapshotWriter, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := utils.Retry(3, func() error {
		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pingCancel()
		return pool.Ping(pingCtx)
	}); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect postgres: %w", err)
	}

	return &SnapshotWriter{pool: pool}, nil
}

func (w *SnapshotWriter) Close() {
	if w.pool != nil {
		w.pool.Close()
	}
}

// EnsureSchema creates the snapshot table when it does not exist.
func (w *SnapshotWriter) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	sql := `
	CREATE TABLE IF NOT EXISTS competitor_snapshots (
		product_id INT NOT NULL,
		source TEXT NOT NULL,
		status TEXT NOT NULL,
		price NUMERIC(12,2) NOT NULL,
		similarity NUMERIC(4,1),
		title TEXT,
		reason TEXT,
		scanned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (product_id, source)
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_status ON competitor_snapshots(status);
	`

	if _, err := w.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}

	return nil
}

// WriteScan upserts every entry of a scan result for one product.
func (w *SnapshotWriter) WriteScan(ctx context.Context, productID int, result models.ScanResult) error {
	if len(result) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	upsertSQL := `
	INSERT INTO competitor_snapshots (product_id, source, status, price, similarity, title, reason, scanned_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	ON CONFLICT (product_id, source) DO UPDATE SET
		status = EXCLUDED.status,
		price = EXCLUDED.price,
		similarity = EXCLUDED.similarity,
		title = EXCLUDED.title,
		reason = EXCLUDED.reason,
		scanned_at = EXCLUDED.scanned_at;
	`

	batch := &pgx.Batch{}
	for _, entry := range result {
		var similarity *float64
		if entry.Status == models.StatusMatch {
			similarity = &entry.Similarity
		}
		batch.Queue(upsertSQL, productID, entry.Source, entry.Status, entry.Price, similarity, entry.Title, entry.Reason)
	}

	results := w.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("snapshot upsert failed at row %d: %w", i, err)
		}
	}

	return nil
}
