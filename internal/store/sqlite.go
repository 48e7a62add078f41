package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/cookable/cookable/internal/models"
)

// SQLiteStore is a database-backed recipe corpus. The record shape matches the
// flat-file formats; recipe_name stays the unique lookup key while rows carry
// an opaque uuid primary key.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates a SQLite recipe database at dbPath and
// initializes the schema. Parent directories are created if needed.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &models.DataSourceError{Source: dbPath, Reason: "cannot create database directory", Err: err}
		}
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, &models.DataSourceError{Source: dbPath, Reason: "cannot open database", Err: err}
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, &models.DataSourceError{Source: dbPath, Reason: "cannot enable WAL", Err: err}
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, &models.DataSourceError{Source: dbPath, Reason: "cannot initialize schema", Err: err}
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS recipes (
		id TEXT PRIMARY KEY,
		recipe_name TEXT NOT NULL,
		ingredients TEXT NOT NULL,
		cooking_time INTEGER NOT NULL,
		rating REAL NOT NULL,
		difficulty TEXT,
		instructions TEXT,
		position INTEGER NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_recipes_name ON recipes(recipe_name);
	CREATE INDEX IF NOT EXISTS idx_recipes_position ON recipes(position);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// All returns the full corpus in import order. Every row is validated; a
// malformed row aborts the load.
func (s *SQLiteStore) All() ([]*models.Recipe, error) {
	rows, err := s.db.Query(
		`SELECT recipe_name, ingredients, cooking_time, rating, difficulty, instructions
		 FROM recipes ORDER BY position`)
	if err != nil {
		return nil, &models.DataSourceError{Source: s.path, Reason: "query failed", Err: err}
	}
	defer rows.Close()

	var recipes []*models.Recipe
	row := 0
	for rows.Next() {
		row++
		var name, ingredients, difficulty, instructions string
		var cookingTime int
		var rating float64
		if err := rows.Scan(&name, &ingredients, &cookingTime, &rating, &difficulty, &instructions); err != nil {
			return nil, &models.DataSourceError{Source: s.path, Reason: fmt.Sprintf("row %d: scan failed", row), Err: err}
		}
		recipe, err := buildRecipe(s.path, row, name, ingredients, cookingTime, rating, difficulty, instructions)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.DataSourceError{Source: s.path, Reason: "iteration failed", Err: err}
	}
	return recipes, nil
}

// Get returns one recipe by name.
func (s *SQLiteStore) Get(name string) (*models.Recipe, error) {
	var ingredients, difficulty, instructions string
	var cookingTime int
	var rating float64
	err := s.db.QueryRow(
		`SELECT ingredients, cooking_time, rating, difficulty, instructions
		 FROM recipes WHERE recipe_name = ?`, name,
	).Scan(&ingredients, &cookingTime, &rating, &difficulty, &instructions)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("recipe not found: %s", name)
	}
	if err != nil {
		return nil, err
	}
	return buildRecipe(s.path, 0, name, ingredients, cookingTime, rating, difficulty, instructions)
}

// PutAll imports recipes, replacing any existing row with the same name.
// Positions continue from the current maximum so import order is preserved
// across repeated imports.
func (s *SQLiteStore) PutAll(recipes []*models.Recipe) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(position), -1) + 1 FROM recipes`).Scan(&next); err != nil {
		return fmt.Errorf("read max position: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO recipes (id, recipe_name, ingredients, cooking_time, rating, difficulty, instructions, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(recipe_name) DO UPDATE SET
		   ingredients = excluded.ingredients,
		   cooking_time = excluded.cooking_time,
		   rating = excluded.rating,
		   difficulty = excluded.difficulty,
		   instructions = excluded.instructions`)
	if err != nil {
		return fmt.Errorf("prepare import: %w", err)
	}
	defer stmt.Close()

	for _, r := range recipes {
		_, err := stmt.Exec(
			uuid.New().String(), r.Name, strings.Join(r.Ingredients, ","),
			r.CookingTime, r.Rating, r.Difficulty, r.Instructions, next,
		)
		if err != nil {
			return fmt.Errorf("import %s: %w", r.Name, err)
		}
		next++
	}
	return tx.Commit()
}

// Count returns the number of recipes stored.
func (s *SQLiteStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM recipes`).Scan(&n)
	return n, err
}
