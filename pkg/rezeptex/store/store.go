// Package store persists extracted recipes and their image payloads in a
// local SQLite database for offline browsing.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"rezeptex/pkg/rezeptex/logging"
	"rezeptex/pkg/rezeptex/models"
)

// ErrNotFound reports a recipe key the store does not hold.
var ErrNotFound = errors.New("recipe not found")

// ErrLocked reports that another process holds the store.
var ErrLocked = errors.New("store is locked by another process")

// Store is the SQLite-backed recipe store. A sidecar flock guards it
// against concurrent importers; SQLite transactions serialize writes under
// the same recipe key so a re-import replaces the record wholesale.
type Store struct {
	db     *sql.DB
	lock   *flock.Flock
	path   string
	logger *slog.Logger
}

// Open initializes or connects to the store database at path, creating
// parent directories as needed.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.WithComponent(logger, "store")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure store directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire store lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db, lock: lock, path: path, logger: logger}
	if err := s.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return s, nil
}

// Close releases the database connection and the store lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

func (s *Store) applyMigrations(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS recipes (
    sheet_name  TEXT PRIMARY KEY,
    title       TEXT NOT NULL,
    category    TEXT NOT NULL DEFAULT '',
    data_json   TEXT NOT NULL,
    import_id   TEXT NOT NULL DEFAULT '',
    updated_at  TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS recipe_images (
    sheet_name     TEXT NOT NULL,
    position       INTEGER NOT NULL,
    path           TEXT NOT NULL,
    media_type     TEXT NOT NULL,
    width          INTEGER NOT NULL DEFAULT 0,
    height         INTEGER NOT NULL DEFAULT 0,
    transform_json TEXT NOT NULL,
    data           BLOB,
    PRIMARY KEY (sheet_name, position),
    FOREIGN KEY (sheet_name) REFERENCES recipes(sheet_name) ON DELETE CASCADE
);`)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// SaveRecipe upserts one recipe keyed by worksheet name. The write is a
// single transaction that fully replaces any prior record, including its
// image and transform list — never a merge.
func (s *Store) SaveRecipe(ctx context.Context, importID string, r models.Recipe) error {
	if r.SheetName == "" {
		return errors.New("recipe sheet name cannot be empty")
	}

	dataJSON, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal recipe: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_images WHERE sheet_name = ?`, r.SheetName); err != nil {
		return fmt.Errorf("clear images: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO recipes (sheet_name, title, category, data_json, import_id, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(sheet_name) DO UPDATE SET
             title = excluded.title,
             category = excluded.category,
             data_json = excluded.data_json,
             import_id = excluded.import_id,
             updated_at = excluded.updated_at`,
		r.SheetName, r.Title, r.Category, string(dataJSON), importID, now); err != nil {
		return fmt.Errorf("upsert recipe: %w", err)
	}

	for i, img := range r.Images {
		transformJSON, err := json.Marshal(img.Transform)
		if err != nil {
			return fmt.Errorf("marshal transform: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_images (sheet_name, position, path, media_type, width, height, transform_json, data)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.SheetName, i, img.Path, img.MediaType, img.Width, img.Height,
			string(transformJSON), img.Data); err != nil {
			return fmt.Errorf("insert image %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.Debug("recipe saved",
		"sheet", r.SheetName, "images", len(r.Images), "import_id", importID)
	return nil
}

// GetRecipe loads one recipe and its image payloads by worksheet name.
func (s *Store) GetRecipe(ctx context.Context, sheetName string) (*models.Recipe, error) {
	var dataJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT data_json FROM recipes WHERE sheet_name = ?`, sheetName).Scan(&dataJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, sheetName)
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}

	var r models.Recipe
	if err := json.Unmarshal([]byte(dataJSON), &r); err != nil {
		return nil, fmt.Errorf("unmarshal recipe: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, media_type, width, height, transform_json, data
         FROM recipe_images WHERE sheet_name = ? ORDER BY position`, sheetName)
	if err != nil {
		return nil, fmt.Errorf("get images: %w", err)
	}
	defer rows.Close()

	r.Images = nil
	for rows.Next() {
		var img models.RecipeImage
		var transformJSON string
		if err := rows.Scan(&img.Path, &img.MediaType, &img.Width, &img.Height,
			&transformJSON, &img.Data); err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		if err := json.Unmarshal([]byte(transformJSON), &img.Transform); err != nil {
			return nil, fmt.Errorf("unmarshal transform: %w", err)
		}
		r.Images = append(r.Images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate images: %w", err)
	}

	return &r, nil
}

// Summary is one row of the recipe listing.
type Summary struct {
	SheetName  string
	Title      string
	Category   string
	ImageCount int
	UpdatedAt  time.Time
}

// ListRecipes returns summaries for every stored recipe, ordered by sheet
// name.
func (s *Store) ListRecipes(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.sheet_name, r.title, r.category, r.updated_at,
                (SELECT COUNT(*) FROM recipe_images i WHERE i.sheet_name = r.sheet_name)
         FROM recipes r ORDER BY r.sheet_name`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		var sm Summary
		var updated string
		if err := rows.Scan(&sm.SheetName, &sm.Title, &sm.Category, &updated, &sm.ImageCount); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, updated); err == nil {
			sm.UpdatedAt = ts
		}
		result = append(result, sm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate summaries: %w", err)
	}

	return result, nil
}
