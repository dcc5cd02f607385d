package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"safety-worker-go/internal/models"
)

var ErrNotFound = errors.New("alert not found")

// timestampLayout is fixed width so text ordering matches time ordering
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// DB is the SQLite alert store
type DB struct {
	*sql.DB
}

// Open opens (creating if needed) the database at path and applies migrations
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	// one connection serialises concurrent camera writers
	sqlDB.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	db := &DB{sqlDB}
	if err := db.MigrateUp(MigrationsFS()); err != nil {
		sqlDB.Close()
		return nil, err
	}

	log.Info().Str("path", path).Msg("Alert database ready")
	return db, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// InsertAlert implements models.AlertStore
func (db *DB) InsertAlert(ctx context.Context, rec models.AlertRecord) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO alerts (alert_id, camera_id, latitude, longitude, timestamp, alert_type, threat_score, details, snapshot_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CameraID, rec.Latitude, rec.Longitude, formatTimestamp(rec.Timestamp),
		string(rec.AlertType), rec.ThreatScore, rec.Details, rec.SnapshotPath,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert %s: %w", rec.ID, err)
	}
	return nil
}

const selectAlerts = `
	SELECT alert_id, camera_id, latitude, longitude, timestamp, alert_type, threat_score, details, snapshot_path
	FROM alerts`

// GetAlert returns one alert by its id
func (db *DB) GetAlert(ctx context.Context, id string) (models.AlertRecord, error) {
	row := db.QueryRowContext(ctx, selectAlerts+` WHERE alert_id = ?`, id)
	rec, err := scanAlert(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AlertRecord{}, ErrNotFound
	}
	return rec, err
}

// ListAlerts returns the newest alerts first, at most limit
func (db *DB) ListAlerts(ctx context.Context, limit int) ([]models.AlertRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.QueryContext(ctx, selectAlerts+` ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return collectAlerts(rows)
}

// RecentAlerts returns alerts at or after since, newest first
func (db *DB) RecentAlerts(ctx context.Context, since time.Time) ([]models.AlertRecord, error) {
	rows, err := db.QueryContext(ctx, selectAlerts+` WHERE timestamp >= ? ORDER BY timestamp DESC, id DESC`, formatTimestamp(since))
	if err != nil {
		return nil, fmt.Errorf("failed to query recent alerts: %w", err)
	}
	return collectAlerts(rows)
}

// CountAlerts returns the number of persisted alerts
func (db *DB) CountAlerts(ctx context.Context) (int64, error) {
	var n int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alerts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAlert(s scanner) (models.AlertRecord, error) {
	var (
		rec       models.AlertRecord
		ts        string
		alertType string
	)
	if err := s.Scan(&rec.ID, &rec.CameraID, &rec.Latitude, &rec.Longitude, &ts, &alertType,
		&rec.ThreatScore, &rec.Details, &rec.SnapshotPath); err != nil {
		return models.AlertRecord{}, err
	}
	t, err := time.Parse(timestampLayout, ts)
	if err != nil {
		return models.AlertRecord{}, fmt.Errorf("bad timestamp %q for alert %s: %w", ts, rec.ID, err)
	}
	rec.Timestamp = t
	rec.AlertType = models.AlertType(alertType)
	return rec, nil
}

func collectAlerts(rows *sql.Rows) ([]models.AlertRecord, error) {
	defer rows.Close()

	out := []models.AlertRecord{}
	for rows.Next() {
		rec, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read alerts: %w", err)
	}
	return out, nil
}
