package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"stpaul-crime/config"
	"stpaul-crime/core/utils"
)

// NewDB opens the SQLite database file in read-write mode. The file is
// created on first start; the parent directory is created as needed. The
// returned handle is process-wide and shared by all request handlers.
func NewDB(cfg *config.AppConfig, logger *utils.Logger) (*sql.DB, error) {
	path := cfg.DBPath
	if path == "" {
		return nil, fmt.Errorf("db_path is empty")
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	dsn := "file:" + path +
		"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", filepath.Base(path), err)
	}
	logger.Infof("connected to %s", filepath.Base(path))
	return db, nil
}
