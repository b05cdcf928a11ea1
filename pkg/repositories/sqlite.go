package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/cbodonnell/torchlight/pkg/repositories/models"
	"github.com/cbodonnell/torchlight/pkg/state"
	_ "github.com/mattn/go-sqlite3"
)

var _ Repository = &SQLiteRepository{}

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at path and applies every
// migration file found in the migrations directory, in name order.
func NewSQLiteRepository(ctx context.Context, path string, migrations string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := migrate(ctx, db, migrations); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func migrate(ctx context.Context, db *sql.DB, migrations string) error {
	dir, err := os.ReadDir(migrations)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %v", err)
	}
	sort.Slice(dir, func(i, j int) bool { return dir[i].Name() < dir[j].Name() })

	for _, entry := range dir {
		if entry.IsDir() {
			continue
		}

		migrationPath := filepath.Join(migrations, entry.Name())
		migration, err := os.ReadFile(migrationPath)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %v", migrationPath, err)
		}

		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %v", migrationPath, err)
		}
	}

	return nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SavePlayerInventory(ctx context.Context, timestamp int64, name string, ammo int16) error {
	q := `
	INSERT OR REPLACE INTO inventories (name, timestamp, ammo)
	VALUES (?, ?, ?);
	`
	if _, err := r.db.ExecContext(ctx, q, name, timestamp, ammo); err != nil {
		return fmt.Errorf("failed to save inventory: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, snapshot *state.Snapshot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	q := `
	INSERT OR REPLACE INTO inventories (name, timestamp, ammo)
	VALUES (?, ?, ?);
	`
	for _, player := range snapshot.Players {
		if _, err := tx.ExecContext(ctx, q, player.Name, snapshot.Timestamp, player.Ammo); err != nil {
			return fmt.Errorf("failed to save inventory for %s: %v", player.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	return nil
}

func (r *SQLiteRepository) LoadPlayerInventory(ctx context.Context, name string) (*models.Inventory, error) {
	q := `
	SELECT name, timestamp, ammo FROM inventories WHERE name = ?;
	`
	inventory := &models.Inventory{}
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&inventory.Name, &inventory.Timestamp, &inventory.Ammo); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &ErrNotFound{}
		}
		return nil, fmt.Errorf("failed to scan inventory: %v", err)
	}

	return inventory, nil
}
