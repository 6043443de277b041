// Package history persists audit results to a local SQLite database and
// exports them to Parquet for analysis tooling.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sitegrade/sitegrade/schema"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

const auditsTable = "sitegrade_audits"

// Store records audits and serves them back for the history command and the
// MCP server. A nil Store (disabled tracking) is safe to call.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
	}
	// Limit SQLite to a single open connection to avoid "database is locked" errors
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}
	if err := createAuditsTable(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func createAuditsTable(db *sql.DB) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			domain TEXT NOT NULL,
			url TEXT NOT NULL,
			audit_time DATETIME NOT NULL,
			final_score REAL NOT NULL,
			grade TEXT NOT NULL,
			risk_level TEXT NOT NULL,
			result_json TEXT NOT NULL
		);
	`, auditsTable)
	if _, err := db.Exec(query); err != nil {
		return err
	}

	indexQuery := fmt.Sprintf(
		`CREATE INDEX IF NOT EXISTS idx_%s_domain ON %s (domain, audit_time);`,
		auditsTable, auditsTable)
	_, err := db.Exec(indexQuery)
	return err
}

// RecordAudit stores one finished audit and returns its row ID. The full
// result is kept as JSON so future schema additions need no migration.
func (s *Store) RecordAudit(domain string, result *schema.AuditResult) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return 0, fmt.Errorf("encode audit result: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (domain, url, audit_time, final_score, grade, risk_level, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, auditsTable)
	res, err := s.db.Exec(query,
		domain, result.URL, result.ScrapeDate.UTC().Format(time.RFC3339),
		result.Final.FinalScore, result.Grade.Letter, result.Grade.RiskLevel, string(payload))
	if err != nil {
		return 0, fmt.Errorf("insert audit: %w", err)
	}
	return res.LastInsertId()
}

// ListAudits returns stored audit summaries, newest first. An empty domain
// lists every domain; limit <= 0 means no limit.
func (s *Store) ListAudits(domain string, limit int) ([]schema.HistoryEntry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT id, domain, url, audit_time, final_score, grade, risk_level
		FROM %s
	`, auditsTable)
	args := []any{}
	if domain != "" {
		query += " WHERE domain = ?"
		args = append(args, domain)
	}
	query += " ORDER BY audit_time DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audits: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []schema.HistoryEntry
	for rows.Next() {
		var e schema.HistoryEntry
		var auditTime string
		if err := rows.Scan(&e.ID, &e.Domain, &e.URL, &auditTime, &e.FinalScore, &e.Grade, &e.RiskLevel); err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		e.AuditTime, err = time.Parse(time.RFC3339, auditTime)
		if err != nil {
			return nil, fmt.Errorf("parse audit time %q: %w", auditTime, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetAudit loads one full stored result by row ID.
func (s *Store) GetAudit(id int64) (*schema.AuditResult, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("history tracking is disabled")
	}

	query := fmt.Sprintf(`SELECT result_json FROM %s WHERE id = ?`, auditsTable)
	var payload string
	if err := s.db.QueryRow(query, id).Scan(&payload); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("no audit with id %d", id)
		}
		return nil, fmt.Errorf("load audit %d: %w", id, err)
	}

	var result schema.AuditResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("decode audit %d: %w", id, err)
	}
	return &result, nil
}

// ClearAudits removes all stored audit history.
func (s *Store) ClearAudits() error {
	if s == nil || s.db == nil {
		return nil
	}
	query := fmt.Sprintf(`DELETE FROM %s`, auditsTable)
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("clear audits: %w", err)
	}
	return nil
}

// CountAudits returns the number of stored audits.
func (s *Store) CountAudits() (int, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, auditsTable)
	if err := s.db.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("count audits: %w", err)
	}
	return count, nil
}
