package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/racechart/internal/contract"
	"github.com/huangsam/racechart/schema"
)

// Table names for render history.
const (
	renderRunsTable   = "racechart_render_runs"
	renderPointsTable = "racechart_render_points"
)

// historyTables lists the history tables in creation order.
var historyTables = []string{renderRunsTable, renderPointsTable}

// HistoryStoreImpl implements the HistoryStore interface.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &HistoryStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetHistoryDBFilePath())
	if err != nil {
		return nil, err
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the render tracking tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{renderRunsTable, getCreateRenderRunsQuery(backend)},
		{renderPointsTable, getCreateRenderPointsQuery(backend)},
	}
	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRenderRunsQuery returns the CREATE TABLE query for racechart_render_runs.
func getCreateRenderRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(renderRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_points INT NOT NULL DEFAULT 0,
				source VARCHAR(1024) NOT NULL,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_points INT NOT NULL DEFAULT 0,
				source TEXT NOT NULL,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_points INTEGER NOT NULL DEFAULT 0,
				source TEXT NOT NULL,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateRenderPointsQuery returns the CREATE TABLE query for racechart_render_points.
func getCreateRenderPointsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(renderPointsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				point_index INT NOT NULL,
				name VARCHAR(255) NOT NULL,
				nationality VARCHAR(16) NOT NULL,
				year INT NOT NULL,
				seconds INT NOT NULL,
				cx DOUBLE NOT NULL,
				cy DOUBLE NOT NULL,
				fill VARCHAR(64) NOT NULL,
				has_allegation BOOLEAN NOT NULL,
				PRIMARY KEY (run_id, point_index)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				point_index INT NOT NULL,
				name TEXT NOT NULL,
				nationality TEXT NOT NULL,
				year INT NOT NULL,
				seconds INT NOT NULL,
				cx DOUBLE PRECISION NOT NULL,
				cy DOUBLE PRECISION NOT NULL,
				fill TEXT NOT NULL,
				has_allegation BOOLEAN NOT NULL,
				PRIMARY KEY (run_id, point_index)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				point_index INTEGER NOT NULL,
				name TEXT NOT NULL,
				nationality TEXT NOT NULL,
				year INTEGER NOT NULL,
				seconds INTEGER NOT NULL,
				cx REAL NOT NULL,
				cy REAL NOT NULL,
				fill TEXT NOT NULL,
				has_allegation INTEGER NOT NULL,
				PRIMARY KEY (run_id, point_index)
			);
		`, quotedTableName)
	}
}

// BeginRender creates a new render run and returns its unique ID.
func (hs *HistoryStoreImpl) BeginRender(startTime time.Time, source string, configParams map[string]any) (int64, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(renderRunsTable, hs.backend)
	args := []any{formatTime(startTime, hs.backend), source, string(configJSON)}

	var runID int64
	switch hs.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, source, config_params) VALUES (%s) RETURNING run_id`,
			quotedTableName, placeholders(hs.backend, 3))
		err = hs.db.QueryRow(query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, source, config_params) VALUES (%s)`,
			quotedTableName, placeholders(hs.backend, 3))
		var result sql.Result
		result, err = hs.db.Exec(query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert render run: %w", err)
	}
	return runID, nil
}

// RecordPoints stores every placed point of a render in one transaction.
func (hs *HistoryStoreImpl) RecordPoints(runID int64, points []schema.PlacedPoint) error {
	if hs.backend == schema.NoneBackend || hs.db == nil || len(points) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (run_id, point_index, name, nationality, year, seconds, cx, cy, fill, has_allegation)
		VALUES (%s)
	`, quoteTableName(renderPointsTable, hs.backend), placeholders(hs.backend, 10))

	tx, err := hs.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	stmt, err := tx.Prepare(query)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare point insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, p := range points {
		if _, err := stmt.Exec(
			runID, p.Index, p.Record.Name, p.Record.Nationality, p.Record.Year, p.Record.Seconds,
			p.CX, p.CY, p.Fill, p.HasAllegation,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert point %d: %w", p.Index, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit points: %w", err)
	}
	return nil
}

// EndRender updates the render run with completion data.
func (hs *HistoryStoreImpl) EndRender(runID int64, endTime time.Time, totalPoints int) error {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(renderRunsTable, hs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholders(hs.backend, 1))
	startTime, err := hs.scanTime(hs.db.QueryRow(query, runID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for render %d: %w", runID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	var updateQuery string
	if hs.backend == schema.PostgreSQLBackend {
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_points = $3 WHERE run_id = $4`, quotedTableName)
	} else {
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_points = ? WHERE run_id = ?`, quotedTableName)
	}
	if _, err := hs.db.Exec(updateQuery, formatTime(endTime, hs.backend), durationMs, totalPoints, runID); err != nil {
		return fmt.Errorf("failed to update render run: %w", err)
	}
	return nil
}

// scanTime reads one timestamp column, parsing text on SQLite.
func (hs *HistoryStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	if hs.backend != schema.SQLiteBackend {
		var t time.Time
		err := row.Scan(&t)
		return t, err
	}
	var s string
	if err := row.Scan(&s); err != nil {
		return time.Time{}, err
	}
	return parseTime(s)
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(renderRunsTable, hs.backend)
	if err := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		lastRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", runsTable)
		lastRunTime, err := hs.scanTime(hs.db.QueryRow(lastRunQuery))
		if err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		status.LastRunTime = lastRunTime

		if err := hs.db.QueryRow(fmt.Sprintf("SELECT MAX(run_id) FROM %s", runsTable)).Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}

		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runsTable)
		oldestRunTime, err := hs.scanTime(hs.db.QueryRow(oldestRunQuery))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldestRunTime

		pointsQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_points), 0) FROM %s", runsTable)
		if err := hs.db.QueryRow(pointsQuery).Scan(&status.TotalPointsRecorded); err != nil {
			return status, fmt.Errorf("failed to get total points recorded: %w", err)
		}
	}

	for _, table := range historyTables {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend))
		if err := hs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllRenderRuns retrieves all render runs from the store.
func (hs *HistoryStoreImpl) GetAllRenderRuns() ([]schema.RenderRunRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, run_duration_ms, total_points, source, config_params
		FROM %s ORDER BY run_id`, quoteTableName(renderRunsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query render runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RenderRunRecord
	for rows.Next() {
		var record schema.RenderRunRecord

		switch hs.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &record.RunDurationMs,
				&record.TotalPoints, &record.Source, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan render run: %w", err)
			}
			if record.StartTime, err = parseTime(startTimeStr); err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			if endTimeStr != nil {
				endTime, err := parseTime(*endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &record.RunDurationMs,
				&record.TotalPoints, &record.Source, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan render run: %w", err)
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating render runs: %w", err)
	}
	return results, nil
}

// GetAllRenderPoints retrieves all recorded points from the store.
func (hs *HistoryStoreImpl) GetAllRenderPoints() ([]schema.RenderPointRecord, error) {
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, point_index, name, nationality, year, seconds, cx, cy, fill, has_allegation
		FROM %s ORDER BY run_id, point_index`, quoteTableName(renderPointsTable, hs.backend))
	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query render points: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RenderPointRecord
	for rows.Next() {
		var r schema.RenderPointRecord
		if err := rows.Scan(&r.RunID, &r.PointIndex, &r.Name, &r.Nationality, &r.Year, &r.Seconds,
			&r.CX, &r.CY, &r.Fill, &r.HasAllegation); err != nil {
			return nil, fmt.Errorf("failed to scan render point: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating render points: %w", err)
	}
	return results, nil
}
