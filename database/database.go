package database

import (
	"database/sql"
	"fmt"
	"time"

	"flowercoco/logging"

	_ "github.com/mattn/go-sqlite3"
)

// AnnotationInfo is one row of the annotation index: the record of a
// single produced per-image annotation.
type AnnotationInfo struct {
	ImagePath string
	Category  string
	MaskPath  string
	X         float64
	Y         float64
	Width     float64
	Height    float64
	Area      float64
	Degraded  bool
}

// InitDatabase initializes and returns an annotation index connection
func InitDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	// Create table if it doesn't exist
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS annotations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		image_path TEXT NOT NULL,
		category TEXT,
		mask_path TEXT,
		x REAL,
		y REAL,
		width REAL,
		height REAL,
		area REAL,
		degraded INTEGER,
		created_at TEXT,
		UNIQUE(image_path, category)
	);
	CREATE INDEX IF NOT EXISTS idx_image_path ON annotations(image_path);
	CREATE INDEX IF NOT EXISTS idx_category ON annotations(category);`

	_, err = db.Exec(createTableSQL)
	if err != nil {
		return nil, err
	}

	// Check if degraded column exists, add it if it doesn't
	var hasDegradedColumn bool
	err = db.QueryRow("SELECT COUNT(*) FROM pragma_table_info('annotations') WHERE name='degraded'").Scan(&hasDegradedColumn)
	if err != nil {
		return nil, fmt.Errorf("error checking for degraded column: %v", err)
	}

	if !hasDegradedColumn {
		// Add degraded column to existing table
		_, err = db.Exec("ALTER TABLE annotations ADD COLUMN degraded INTEGER;")
		if err != nil {
			return nil, fmt.Errorf("error adding degraded column: %v", err)
		}
		logging.DebugLog("Added 'degraded' column to existing database schema")
	}

	return db, nil
}

// OpenDatabase opens an existing annotation index
func OpenDatabase(dbPath string) (*sql.DB, error) {
	return sql.Open("sqlite3", dbPath)
}

// StoreAnnotationInfo records one produced annotation in the index
func StoreAnnotationInfo(db *sql.DB, info AnnotationInfo) error {
	now := time.Now().Format(time.RFC3339)

	stmt, err := db.Prepare(`
		INSERT OR REPLACE INTO annotations (
			image_path, category, mask_path, x, y, width, height, area, degraded, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("cannot prepare statement for %s: %v", info.ImagePath, err)
	}
	defer stmt.Close()

	degraded := 0
	if info.Degraded {
		degraded = 1
	}

	_, err = stmt.Exec(
		info.ImagePath,
		info.Category,
		info.MaskPath,
		info.X,
		info.Y,
		info.Width,
		info.Height,
		info.Area,
		degraded,
		now,
	)
	if err != nil {
		return fmt.Errorf("cannot insert data for %s: %v", info.ImagePath, err)
	}

	return nil
}

// RunStats contains statistics from an annotation run
type RunStats struct {
	TotalAnnotations int
	DegradedCount    int
	Categories       int
}

// GetRunStats retrieves statistics about indexed annotations
func GetRunStats(db *sql.DB, category string) (*RunStats, error) {
	var stats RunStats
	var err error

	var totalQuery, degradedQuery, categoryQuery string
	var args []interface{}

	if category != "" {
		totalQuery = "SELECT COUNT(*) FROM annotations WHERE category = ?"
		degradedQuery = "SELECT COUNT(*) FROM annotations WHERE degraded = 1 AND category = ?"
		categoryQuery = "SELECT COUNT(DISTINCT category) FROM annotations WHERE category = ?"
		args = append(args, category)
	} else {
		totalQuery = "SELECT COUNT(*) FROM annotations"
		degradedQuery = "SELECT COUNT(*) FROM annotations WHERE degraded = 1"
		categoryQuery = "SELECT COUNT(DISTINCT category) FROM annotations"
	}

	err = db.QueryRow(totalQuery, args...).Scan(&stats.TotalAnnotations)
	if err != nil {
		return nil, fmt.Errorf("failed to get total annotations: %v", err)
	}

	err = db.QueryRow(degradedQuery, args...).Scan(&stats.DegradedCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get degraded count: %v", err)
	}

	err = db.QueryRow(categoryQuery, args...).Scan(&stats.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to get category count: %v", err)
	}

	return &stats, nil
}
