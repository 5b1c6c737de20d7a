package storage

import (
	"context"
	"database/sql"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SQLiteEventRepository implements EventRepository for SQLite.
type SQLiteEventRepository struct {
	db *sql.DB
}

func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

func (r *SQLiteEventRepository) Append(ctx context.Context, event ZooEventRecord) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO zoo_events (id, run_id, timestamp, event_type, actor_id, target_id, payload, tick)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, event.RunID, event.Timestamp, event.EventType,
		event.ActorID, event.TargetID, string(payloadBytes), event.Tick,
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]ZooEventRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []ZooEventRecord
	for rows.Next() {
		var e ZooEventRecord
		var payloadStr string
		err := rows.Scan(
			&e.ID, &e.RunID, &e.Timestamp, &e.EventType,
			&e.ActorID, &e.TargetID, &payloadStr, &e.Tick,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payloadStr), &e.Payload); err != nil {
			return nil, err
		}
		records = append(records, e)
	}
	return records, rows.Err()
}

func (r *SQLiteEventRepository) GetByRunID(ctx context.Context, runID string) ([]ZooEventRecord, error) {
	query := `SELECT id, run_id, timestamp, event_type, actor_id, target_id, payload, tick FROM zoo_events WHERE run_id = ? ORDER BY tick ASC, timestamp ASC`
	return r.getMany(ctx, query, runID)
}

func (r *SQLiteEventRepository) GetByEventType(ctx context.Context, runID, eventType string) ([]ZooEventRecord, error) {
	query := `SELECT id, run_id, timestamp, event_type, actor_id, target_id, payload, tick FROM zoo_events WHERE run_id = ? AND event_type = ? ORDER BY tick ASC, timestamp ASC`
	return r.getMany(ctx, query, runID, eventType)
}

// ---------------------------------------------------------
// SQLiteReportRepository
// ---------------------------------------------------------

type SQLiteReportRepository struct {
	db *sql.DB
}

func NewSQLiteReportRepository(db *sql.DB) *SQLiteReportRepository {
	return &SQLiteReportRepository{db: db}
}

func (r *SQLiteReportRepository) Upsert(ctx context.Context, report DayReportRecord) error {
	query := `
		INSERT INTO day_reports (run_id, day_length, tours_admitted, tours_skipped, total_earnings, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			day_length=excluded.day_length,
			tours_admitted=excluded.tours_admitted,
			tours_skipped=excluded.tours_skipped,
			total_earnings=excluded.total_earnings,
			finished_at=excluded.finished_at
	`
	_, err := r.db.ExecContext(ctx, query,
		report.RunID, report.DayLength, report.ToursAdmitted,
		report.ToursSkipped, report.TotalEarnings, report.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert day report: %w", err)
	}
	return nil
}

func (r *SQLiteReportRepository) GetByRunID(ctx context.Context, runID string) (DayReportRecord, error) {
	query := `SELECT run_id, day_length, tours_admitted, tours_skipped, total_earnings, finished_at FROM day_reports WHERE run_id = ?`

	var report DayReportRecord
	err := r.db.QueryRowContext(ctx, query, runID).Scan(
		&report.RunID, &report.DayLength, &report.ToursAdmitted,
		&report.ToursSkipped, &report.TotalEarnings, &report.FinishedAt,
	)
	if err != nil {
		return DayReportRecord{}, fmt.Errorf("failed to load day report: %w", err)
	}
	return report, nil
}
