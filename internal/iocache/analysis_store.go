package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gitdebt/gitdebt/internal/contract"
	"github.com/gitdebt/gitdebt/schema"
)

// Table names for analysis tracking.
const (
	debtRunsTable          = "debt_runs"
	fileScoresTable        = "debt_file_scores"
	contributorScoresTable = "debt_contributor_scores"
)

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetAnalysisDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &AnalysisStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database server is running and accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	// Create the table schemas
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

// createAnalysisTables creates the analysis tracking tables.
func createAnalysisTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{debtRunsTable, getCreateDebtRunsQuery(backend)},
		{fileScoresTable, getCreateFileScoresQuery(backend)},
		{contributorScoresTable, getCreateContributorScoresQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateDebtRunsQuery returns the CREATE TABLE query for debt_runs.
func getCreateDebtRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(debtRunsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_files_analyzed INT,
				total_contributors INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_files_analyzed INT,
				total_contributors INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_files_analyzed INTEGER,
				total_contributors INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateFileScoresQuery returns the CREATE TABLE query for debt_file_scores.
func getCreateFileScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(fileScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				file_path VARCHAR(512) NOT NULL,
				analysis_time DATETIME(6) NOT NULL,
				loc INT NOT NULL,
				complexity INT NOT NULL,
				commit_count INT NOT NULL,
				lines_added INT NOT NULL,
				lines_removed INT NOT NULL,
				bug_fix_count INT NOT NULL,
				unique_authors INT NOT NULL,
				fan_in INT NOT NULL,
				fan_out INT NOT NULL,
				ownership_entropy DOUBLE NOT NULL,
				risk_score DOUBLE NOT NULL,
				systemic_risk_score DOUBLE NOT NULL,
				coverage_factor DOUBLE NOT NULL,
				main_factor VARCHAR(100) NOT NULL,
				PRIMARY KEY (analysis_id, file_path)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				file_path TEXT NOT NULL,
				analysis_time TIMESTAMPTZ NOT NULL,
				loc INT NOT NULL,
				complexity INT NOT NULL,
				commit_count INT NOT NULL,
				lines_added INT NOT NULL,
				lines_removed INT NOT NULL,
				bug_fix_count INT NOT NULL,
				unique_authors INT NOT NULL,
				fan_in INT NOT NULL,
				fan_out INT NOT NULL,
				ownership_entropy DOUBLE PRECISION NOT NULL,
				risk_score DOUBLE PRECISION NOT NULL,
				systemic_risk_score DOUBLE PRECISION NOT NULL,
				coverage_factor DOUBLE PRECISION NOT NULL,
				main_factor TEXT NOT NULL,
				PRIMARY KEY (analysis_id, file_path)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER NOT NULL,
				file_path TEXT NOT NULL,
				analysis_time TEXT NOT NULL,
				loc INTEGER NOT NULL,
				complexity INTEGER NOT NULL,
				commit_count INTEGER NOT NULL,
				lines_added INTEGER NOT NULL,
				lines_removed INTEGER NOT NULL,
				bug_fix_count INTEGER NOT NULL,
				unique_authors INTEGER NOT NULL,
				fan_in INTEGER NOT NULL,
				fan_out INTEGER NOT NULL,
				ownership_entropy REAL NOT NULL,
				risk_score REAL NOT NULL,
				systemic_risk_score REAL NOT NULL,
				coverage_factor REAL NOT NULL,
				main_factor TEXT NOT NULL,
				PRIMARY KEY (analysis_id, file_path)
			);
		`, quotedTableName)
	}
}

// getCreateContributorScoresQuery returns the CREATE TABLE query for debt_contributor_scores.
func getCreateContributorScoresQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(contributorScoresTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				author VARCHAR(255) NOT NULL,
				analysis_time DATETIME(6) NOT NULL,
				total_commits DOUBLE NOT NULL,
				lines_added DOUBLE NOT NULL,
				lines_removed DOUBLE NOT NULL,
				bug_fix_count DOUBLE NOT NULL,
				efficiency_score DOUBLE NOT NULL,
				risk_score DOUBLE NOT NULL,
				PRIMARY KEY (analysis_id, author)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id BIGINT NOT NULL,
				author TEXT NOT NULL,
				analysis_time TIMESTAMPTZ NOT NULL,
				total_commits DOUBLE PRECISION NOT NULL,
				lines_added DOUBLE PRECISION NOT NULL,
				lines_removed DOUBLE PRECISION NOT NULL,
				bug_fix_count DOUBLE PRECISION NOT NULL,
				efficiency_score DOUBLE PRECISION NOT NULL,
				risk_score DOUBLE PRECISION NOT NULL,
				PRIMARY KEY (analysis_id, author)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				analysis_id INTEGER NOT NULL,
				author TEXT NOT NULL,
				analysis_time TEXT NOT NULL,
				total_commits REAL NOT NULL,
				lines_added REAL NOT NULL,
				lines_removed REAL NOT NULL,
				bug_fix_count REAL NOT NULL,
				efficiency_score REAL NOT NULL,
				risk_score REAL NOT NULL,
				PRIMARY KEY (analysis_id, author)
			);
		`, quotedTableName)
	}
}

// BeginAnalysis creates a new analysis run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginAnalysis(startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(debtRunsTable, as.backend)

	var analysisID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING analysis_id`, quotedTableName)
		err = as.db.QueryRow(query, startTime, string(configJSON)).Scan(&analysisID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = as.db.Exec(query, formatTime(startTime, as.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		analysisID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	return analysisID, nil
}

// EndAnalysis updates the analysis run with completion data.
func (as *AnalysisStoreImpl) EndAnalysis(analysisID int64, endTime time.Time, totalFiles, totalContributors int) error {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}

	// First, get the start_time to calculate duration
	quotedTableName := quoteTableName(debtRunsTable, as.backend)
	var startTime time.Time

	var query string
	switch as.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = $1`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE analysis_id = ?`, quotedTableName)
	}

	row := as.db.QueryRow(query, analysisID)

	// Handle different time storage formats per backend
	switch as.backend {
	case schema.SQLiteBackend:
		var startTimeStr string
		if err := row.Scan(&startTimeStr); err != nil {
			return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
		}
		var err error
		startTime, err = time.Parse(time.RFC3339Nano, startTimeStr)
		if err != nil {
			return fmt.Errorf("failed to parse start_time: %w", err)
		}
	default: // MySQL and PostgreSQL store as native datetime
		if err := row.Scan(&startTime); err != nil {
			return fmt.Errorf("failed to get start_time for analysis %d: %w", analysisID, err)
		}
	}

	// Calculate duration in milliseconds
	durationMs := endTime.Sub(startTime).Milliseconds()

	// Update the analysis run with completion data
	var updateQuery string
	var args []any

	switch as.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_files_analyzed = $3, total_contributors = $4 WHERE analysis_id = $5`, quotedTableName)
		args = []any{endTime, durationMs, totalFiles, totalContributors, analysisID}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_files_analyzed = ?, total_contributors = ? WHERE analysis_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, as.backend), durationMs, totalFiles, totalContributors, analysisID}
	}

	_, err := as.db.Exec(updateQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}

	return nil
}

// RecordFileScores stores the final debt scores for one file record.
func (as *AnalysisStoreImpl) RecordFileScores(analysisID int64, analysisTime time.Time, rec *schema.FileRecord) error {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(fileScoresTable, as.backend)

	columns := `analysis_id, file_path, analysis_time, loc, complexity, commit_count,
				 lines_added, lines_removed, bug_fix_count, unique_authors, fan_in, fan_out,
				 ownership_entropy, risk_score, systemic_risk_score, coverage_factor, main_factor`

	var query string
	switch as.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`, quotedTableName, columns)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, quotedTableName, columns)
	}

	args := []any{
		analysisID, rec.Path, formatTime(analysisTime, as.backend), rec.LOC, rec.Complexity, rec.CommitCount,
		rec.LinesAdded, rec.LinesRemoved, rec.BugFixCount, rec.UniqueAuthorCount, rec.FanIn, rec.FanOut,
		rec.OwnershipEntropy, rec.RiskScore, rec.SystemicRiskScore, rec.MissingTestCoverageFactor, rec.MainFactor,
	}

	if _, err := as.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert file scores: %w", err)
	}

	return nil
}

// RecordContributorScores stores the final debt scores for one contributor record.
func (as *AnalysisStoreImpl) RecordContributorScores(analysisID int64, analysisTime time.Time, rec *schema.ContributorRecord) error {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(contributorScoresTable, as.backend)

	columns := `analysis_id, author, analysis_time, total_commits, lines_added,
				 lines_removed, bug_fix_count, efficiency_score, risk_score`

	var query string
	switch as.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, quotedTableName, columns)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, quotedTableName, columns)
	}

	args := []any{
		analysisID, rec.Author, formatTime(analysisTime, as.backend), rec.TotalCommits, rec.LinesAdded,
		rec.LinesRemoved, rec.BugFixCount, rec.EfficiencyScore, rec.RiskScore,
	}

	if _, err := as.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert contributor scores: %w", err)
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

	if as.backend == schema.NoneBackend || as.db == nil {
		return status, nil
	}

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(debtRunsTable, as.backend))
	row := as.db.QueryRow(runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		lastRunQuery := fmt.Sprintf("SELECT analysis_id, start_time FROM %s ORDER BY analysis_id DESC LIMIT 1", quoteTableName(debtRunsTable, as.backend))
		row = as.db.QueryRow(lastRunQuery)

		switch as.backend {
		case schema.SQLiteBackend:
			var lastRunID int64
			var lastRunTimeStr string
			if err := row.Scan(&lastRunID, &lastRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
			status.LastRunID = lastRunID
			lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			status.LastRunTime = lastRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.LastRunID, &status.LastRunTime); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
		}

		// Get oldest run time
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY analysis_id ASC LIMIT 1", quoteTableName(debtRunsTable, as.backend))
		row = as.db.QueryRow(oldestRunQuery)

		switch as.backend {
		case schema.SQLiteBackend:
			var oldestRunTimeStr string
			if err := row.Scan(&oldestRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
			oldestRunTime, err := time.Parse(time.RFC3339Nano, oldestRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse oldest run time: %w", err)
			}
			status.OldestRunTime = oldestRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.OldestRunTime); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
		}

		// Get total files analyzed
		filesQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_files_analyzed), 0) FROM %s", quoteTableName(debtRunsTable, as.backend))
		row = as.db.QueryRow(filesQuery)
		if err := row.Scan(&status.TotalFilesAnalyzed); err != nil {
			return status, fmt.Errorf("failed to get total files analyzed: %w", err)
		}
	}

	// Get table sizes
	tables := []string{debtRunsTable, fileScoresTable, contributorScoresTable}
	for _, table := range tables {
		quotedTable := quoteTableName(table, as.backend)
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTable)
		row = as.db.QueryRow(countQuery)
		var count int64
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllAnalysisRuns retrieves all analysis runs from the store.
func (as *AnalysisStoreImpl) GetAllAnalysisRuns() ([]schema.AnalysisRunRecord, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(debtRunsTable, as.backend)
	query := fmt.Sprintf("SELECT analysis_id, start_time, end_time, run_duration_ms, total_files_analyzed, total_contributors, config_params FROM %s ORDER BY analysis_id", quotedTableName)

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord

	for rows.Next() {
		var record schema.AnalysisRunRecord

		switch as.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.AnalysisID, &startTimeStr, &endTimeStr, &record.RunDurationMs, &record.TotalFilesAnalyzed, &record.TotalContributors, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan analysis run: %w", err)
			}
			// Parse start time
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			// Parse end time if present
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.AnalysisID, &record.StartTime, &record.EndTime, &record.RunDurationMs, &record.TotalFilesAnalyzed, &record.TotalContributors, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan analysis run: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}

	return results, nil
}

// GetAllFileDebtRecords retrieves all per-file score rows from the store.
func (as *AnalysisStoreImpl) GetAllFileDebtRecords() ([]schema.FileDebtRecord, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(fileScoresTable, as.backend)
	query := fmt.Sprintf(`SELECT analysis_id, file_path, analysis_time, loc, complexity, commit_count,
    lines_added, lines_removed, bug_fix_count, unique_authors, fan_in, fan_out,
    ownership_entropy, risk_score, systemic_risk_score, coverage_factor, main_factor
    FROM %s ORDER BY analysis_id, file_path`, quotedTableName)

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query file debt records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.FileDebtRecord

	for rows.Next() {
		var record schema.FileDebtRecord

		switch as.backend {
		case schema.SQLiteBackend:
			var analysisTimeStr string
			if err := rows.Scan(&record.AnalysisID, &record.FilePath, &analysisTimeStr, &record.LOC,
				&record.Complexity, &record.CommitCount, &record.LinesAdded, &record.LinesRemoved,
				&record.BugFixCount, &record.UniqueAuthors, &record.FanIn, &record.FanOut,
				&record.OwnershipEntropy, &record.RiskScore, &record.SystemicRiskScore,
				&record.CoverageFactor, &record.MainFactor); err != nil {
				return nil, fmt.Errorf("failed to scan file debt record: %w", err)
			}
			// Parse analysis time
			analysisTime, err := time.Parse(time.RFC3339Nano, analysisTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse analysis_time: %w", err)
			}
			record.AnalysisTime = analysisTime
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.AnalysisID, &record.FilePath, &record.AnalysisTime, &record.LOC,
				&record.Complexity, &record.CommitCount, &record.LinesAdded, &record.LinesRemoved,
				&record.BugFixCount, &record.UniqueAuthors, &record.FanIn, &record.FanOut,
				&record.OwnershipEntropy, &record.RiskScore, &record.SystemicRiskScore,
				&record.CoverageFactor, &record.MainFactor); err != nil {
				return nil, fmt.Errorf("failed to scan file debt record: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file debt records: %w", err)
	}

	return results, nil
}

// GetAllContributorDebtRecords retrieves all per-contributor score rows from the store.
func (as *AnalysisStoreImpl) GetAllContributorDebtRecords() ([]schema.ContributorDebtRecord, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(contributorScoresTable, as.backend)
	query := fmt.Sprintf(`SELECT analysis_id, author, analysis_time, total_commits, lines_added,
    lines_removed, bug_fix_count, efficiency_score, risk_score
    FROM %s ORDER BY analysis_id, author`, quotedTableName)

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributor debt records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ContributorDebtRecord

	for rows.Next() {
		var record schema.ContributorDebtRecord

		switch as.backend {
		case schema.SQLiteBackend:
			var analysisTimeStr string
			if err := rows.Scan(&record.AnalysisID, &record.Author, &analysisTimeStr, &record.TotalCommits,
				&record.LinesAdded, &record.LinesRemoved, &record.BugFixCount,
				&record.EfficiencyScore, &record.RiskScore); err != nil {
				return nil, fmt.Errorf("failed to scan contributor debt record: %w", err)
			}
			// Parse analysis time
			analysisTime, err := time.Parse(time.RFC3339Nano, analysisTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse analysis_time: %w", err)
			}
			record.AnalysisTime = analysisTime
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.AnalysisID, &record.Author, &record.AnalysisTime, &record.TotalCommits,
				&record.LinesAdded, &record.LinesRemoved, &record.BugFixCount,
				&record.EfficiencyScore, &record.RiskScore); err != nil {
				return nil, fmt.Errorf("failed to scan contributor debt record: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contributor debt records: %w", err)
	}

	return results, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
