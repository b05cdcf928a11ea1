package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/cbodonnell/torchlight/pkg/log"
	"github.com/cbodonnell/torchlight/pkg/repositories/models"
	"github.com/cbodonnell/torchlight/pkg/state"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ Repository = &PostgresRepository{}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgresRepository.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (*PostgresRepository, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %v", err)
	}

	var username string
	var database string
	if err := pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) SavePlayerInventory(ctx context.Context, timestamp int64, name string, ammo int16) error {
	q := `
	INSERT INTO inventories (name, timestamp, ammo) VALUES ($1, $2, $3)
	ON CONFLICT (name) DO UPDATE SET timestamp = $2, ammo = $3;
	`
	if _, err := r.pool.Exec(ctx, q, name, timestamp, ammo); err != nil {
		return fmt.Errorf("failed to save inventory: %v", err)
	}

	return nil
}

func (r *PostgresRepository) SaveSnapshot(ctx context.Context, snapshot *state.Snapshot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, player := range snapshot.Players {
		batch.Queue(`
		INSERT INTO inventories (name, timestamp, ammo) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET timestamp = $2, ammo = $3;
		`, player.Name, snapshot.Timestamp, player.Ammo)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save inventories: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *PostgresRepository) LoadPlayerInventory(ctx context.Context, name string) (*models.Inventory, error) {
	q := `
	SELECT name, timestamp, ammo FROM inventories WHERE name = $1;
	`
	inventory := &models.Inventory{}
	if err := r.pool.QueryRow(ctx, q, name).Scan(&inventory.Name, &inventory.Timestamp, &inventory.Ammo); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan inventory: %v", err)
	}

	return inventory, nil
}
