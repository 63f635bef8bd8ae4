package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/sdphc/sdphc/internal/contract"
	"github.com/sdphc/sdphc/schema"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Table names for analysis tracking.
const (
	analysisRunsTable = "sdphc_analysis_runs"
	pointResultsTable = "sdphc_point_results"
)

// analysisTables lists the tables owned by the store, parents first.
var analysisTables = []string{analysisRunsTable, pointResultsTable}

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// driverFor returns the database/sql driver name of a backend.
func driverFor(backend schema.DatabaseBackend) (string, error) {
	switch backend {
	case schema.SQLiteBackend:
		return "sqlite", nil
	case schema.MySQLBackend:
		return "mysql", nil
	case schema.PostgreSQLBackend:
		return "pgx", nil
	default:
		return "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

// openDB opens and pings the database of a backend.
// An empty SQLite connection string selects the default database file.
func openDB(backend schema.DatabaseBackend, connStr string) (*sql.DB, string, error) {
	driverName, err := driverFor(backend)
	if err != nil {
		return nil, "", err
	}

	switch backend {
	case schema.SQLiteBackend:
		if connStr == "" {
			connStr = GetAnalysisDBFilePath()
		}
	case schema.MySQLBackend:
		// DATETIME columns are scanned into time.Time and migration scripts hold several statements
		cfg, err := mysql.ParseDSN(connStr)
		if err != nil {
			return nil, "", fmt.Errorf("invalid MySQL connection string: %w. Expected user:password@tcp(host:port)/dbname", err)
		}
		cfg.ParseTime = true
		cfg.MultiStatements = true
		connStr = cfg.FormatDSN()
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Check that the directory of the database file is writable."
		}
		return nil, "", fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}
	return db, driverName, nil
}

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &AnalysisStoreImpl{backend: backend}, nil
	}

	db, driverName, err := openDB(backend, connStr)
	if err != nil {
		return nil, err
	}

	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createAnalysisTables applies the embedded up migrations of the backend statement by statement.
// Every statement is idempotent, so this also works on a database managed by MigrateAnalysis.
func createAnalysisTables(db *sql.DB, backend schema.DatabaseBackend) error {
	scripts, err := upMigrations(backend)
	if err != nil {
		return err
	}
	for _, script := range scripts {
		for stmt := range strings.SplitSeq(script, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if _, err := db.Exec(stmt); err != nil {
				return fmt.Errorf("failed to execute %q: %w", firstLine(stmt), err)
			}
		}
	}
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

// quoteTableName quotes an identifier for the backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	if backend == schema.MySQLBackend {
		return "`" + name + "`"
	}
	return `"` + name + `"`
}

// placeholders returns n bind parameters in the syntax of the backend.
func placeholders(n int, backend schema.DatabaseBackend) string {
	parts := make([]string, n)
	for i := range parts {
		if backend == schema.PostgreSQLBackend {
			parts[i] = "$" + strconv.Itoa(i+1)
		} else {
			parts[i] = "?"
		}
	}
	return strings.Join(parts, ", ")
}

// disabled reports whether the store is a no-op.
func (as *AnalysisStoreImpl) disabled() bool {
	return as.backend == schema.NoneBackend || as.db == nil
}

// BeginAnalysis creates a new analysis run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(runUUID string, method schema.Method, startTime time.Time, configParams map[string]any) (int64, error) {
	if as.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	args := []any{runUUID, string(method), formatTime(startTime, as.backend), string(configJSON)}

	var analysisID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, method, start_time, config_params) VALUES (%s) RETURNING analysis_id`,
			quotedTableName, placeholders(4, as.backend))
		err = as.db.QueryRow(query, args...).Scan(&analysisID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_uuid, method, start_time, config_params) VALUES (%s)`,
			quotedTableName, placeholders(4, as.backend))
		var result sql.Result
		result, err = as.db.Exec(query, args...)
		if err == nil {
			analysisID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return analysisID, nil
}

// EndAnalysis updates the analysis run with completion data.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, totalPoints int) error {
	if as.disabled() {
		return nil
	}

	quotedTableName := quoteTableName(analysisRunsTable, as.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = %s`, quotedTableName, placeholders(1, as.backend))
	startTime, err := as.scanTime(as.db.QueryRow(query, analysisID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
	}

	durationMs := endTime.Sub(startTime).Milliseconds()

	var updateQuery string
	if as.backend == schema.PostgreSQLBackend {
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_points_analyzed = $3 WHERE analysis_id = $4`, quotedTableName)
	} else {
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_points_analyzed = ? WHERE analysis_id = ?`, quotedTableName)
	}
	if _, err := as.db.Exec(updateQuery, formatTime(endTime, as.backend), durationMs, totalPoints, analysisID); err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}
	return nil
}

// RecordPointResult stores the scores and label of one sampling point.
func (as *AnalysisStoreImpl) RecordPointResult(analysisID int64, result schema.PointResult) error {
	if as.disabled() {
		return nil
	}

	rec := schema.NewPointResultRecord(analysisID, result)
	query := fmt.Sprintf(`
		INSERT INTO %s (analysis_id, point_id, x, y, radon_score, vocs_score, co2_score, o2_score,
		                ch4_score, h2_score, h2s_score, other_soil_gas_score, all_indicator_score,
		                label, scope_of_contamination)
		VALUES (%s)
	`, quoteTableName(pointResultsTable, as.backend), placeholders(15, as.backend))

	_, err := as.db.Exec(query,
		rec.AnalysisID, rec.PointID, rec.X, rec.Y,
		rec.RadonScore, rec.VOCsScore, rec.CO2Score, rec.O2Score,
		rec.CH4Score, rec.H2Score, rec.H2SScore, rec.OtherSoilGasScore, rec.AllIndicatorScore,
		rec.Label, rec.ScopeOfContamination,
	)
	if err != nil {
		return fmt.Errorf("failed to insert point result %s: %w", rec.PointID, err)
	}
	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}
	if as.disabled() {
		return status, nil
	}

	runs := quoteTableName(analysisRunsTable, as.backend)
	if err := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row := as.db.QueryRow(fmt.Sprintf("SELECT analysis_id, start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", runs))
		var lastRunTime any
		if err := row.Scan(&status.LastRunID, &lastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		t, err := as.parseTime(lastRunTime)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = t

		oldest, err := as.scanTime(as.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", runs)))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldest

		row = as.db.QueryRow(fmt.Sprintf("SELECT COALESCE(SUM(total_points_analyzed), 0) FROM %s", runs))
		if err := row.Scan(&status.TotalPointsAnalyzed); err != nil {
			return status, fmt.Errorf("failed to get total points analyzed: %w", err)
		}
	}

	for _, table := range analysisTables {
		var count int64
		row := as.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, as.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	return status, nil
}

// GetAllAnalysisRuns retrieves all analysis runs from the store.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, run_uuid, method, start_time, end_time, run_duration_ms,
		total_points_analyzed, config_params FROM %s ORDER BY analysis_id`, quoteTableName(analysisRunsTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord
	for rows.Next() {
		var record schema.AnalysisRunRecord
		var startTime, endTime any
		if err := rows.Scan(&record.AnalysisID, &record.RunUUID, &record.Method, &startTime, &endTime,
			&record.RunDurationMs, &record.TotalPointsAnalyzed, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		if record.StartTime, err = as.parseTime(startTime); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if endTime != nil {
			t, err := as.parseTime(endTime)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &t
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}
	return results, nil
}

// GetAllPointResults retrieves all point results from the store.
func (as *AnalysisStoreImpl) GetAllPointResults() ([]schema.PointResultRecord, error) {
	if as.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT analysis_id, point_id, x, y, radon_score, vocs_score, co2_score, o2_score,
		ch4_score, h2_score, h2s_score, other_soil_gas_score, all_indicator_score, label, scope_of_contamination
		FROM %s ORDER BY analysis_id, point_id`, quoteTableName(pointResultsTable, as.backend))
	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query point results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PointResultRecord
	for rows.Next() {
		var r schema.PointResultRecord
		if err := rows.Scan(&r.AnalysisID, &r.PointID, &r.X, &r.Y,
			&r.RadonScore, &r.VOCsScore, &r.CO2Score, &r.O2Score,
			&r.CH4Score, &r.H2Score, &r.H2SScore, &r.OtherSoilGasScore, &r.AllIndicatorScore,
			&r.Label, &r.ScopeOfContamination); err != nil {
			return nil, fmt.Errorf("failed to scan point result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating point results: %w", err)
	}
	return results, nil
}

// scanTime reads a single time column from row.
func (as *AnalysisStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	var raw any
	if err := row.Scan(&raw); err != nil {
		return time.Time{}, err
	}
	return as.parseTime(raw)
}

// parseTime converts a scanned time column. SQLite stores RFC3339 text,
// MySQL and PostgreSQL return native datetimes.
func (as *AnalysisStoreImpl) parseTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		return time.Parse(time.RFC3339Nano, v)
	case []byte:
		return time.Parse(time.RFC3339Nano, string(v))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", raw)
	}
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	if backend == schema.SQLiteBackend {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t
}
