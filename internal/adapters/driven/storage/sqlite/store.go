package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/semsearch-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/semsearch-cli/internal/core/domain"
	"github.com/custodia-labs/semsearch-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.MetadataStore = (*Store)(nil)

// unknownFileType is the stats bucket for documents without a file type.
const unknownFileType = "unknown"

// Store is the SQLite-backed metadata store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the SQLite database at dbPath and runs
// pending migrations. If dbPath is empty, defaults to
// ~/.semsearch/data/metadata.db.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".semsearch", "data", "metadata.db")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// InsertDocument durably persists a document record. The doc_id PRIMARY
// KEY makes the uniqueness check and the insert a single atomic step.
func (s *Store) InsertDocument(ctx context.Context, doc *domain.Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (doc_id, title, content, file_path, file_type,
			word_count, embedding_model, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.DocID, doc.Title, doc.Content,
		nullString(doc.FilePath), nullString(doc.FileType),
		doc.WordCount, nullString(doc.EmbeddingModel),
		doc.CreatedAt, doc.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateID, doc.DocID)
		}
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

// GetDocument retrieves a document by doc_id.
func (s *Store) GetDocument(ctx context.Context, docID string) (*domain.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT doc_id, title, content, file_path, file_type,
			word_count, embedding_model, created_at, updated_at
		FROM documents WHERE doc_id = ?
	`, docID)

	doc, err := scanDocument(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return doc, nil
}

// ListDocuments returns all documents ordered by creation time, with
// insertion order (rowid) breaking ties.
func (s *Store) ListDocuments(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT doc_id, title, content, file_path, file_type,
			word_count, embedding_model, created_at, updated_at
		FROM documents ORDER BY created_at, rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// InsertQueryLog appends an immutable query-log entry.
func (s *Store) InsertQueryLog(ctx context.Context, entry *domain.QueryLogEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO query_log (query_text, timestamp, results_count, avg_similarity, execution_seconds)
		VALUES (?, ?, ?, ?, ?)
	`, entry.QueryText, entry.Timestamp, entry.ResultsCount,
		entry.AvgSimilarity, entry.ExecutionSeconds)

	if err != nil {
		return fmt.Errorf("%w: inserting query log: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// DocumentStats aggregates document count, total words and file-type counts.
func (s *Store) DocumentStats(ctx context.Context) (*domain.DocumentStats, error) {
	stats := &domain.DocumentStats{
		FileTypes: make(map[string]int),
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(word_count), 0) FROM documents
	`)
	if err := row.Scan(&stats.TotalDocuments, &stats.TotalWords); err != nil {
		return nil, fmt.Errorf("aggregating documents: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT COALESCE(NULLIF(file_type, ''), ?), COUNT(*)
		FROM documents GROUP BY 1
	`, unknownFileType)
	if err != nil {
		return nil, fmt.Errorf("aggregating file types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fileType string
		var count int
		if err := rows.Scan(&fileType, &count); err != nil {
			return nil, fmt.Errorf("scanning file type: %w", err)
		}
		stats.FileTypes[fileType] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating file types: %w", err)
	}

	return stats, nil
}

// QueryStats aggregates the query log and returns the limit most recent
// query texts, newest first. Ties on timestamp keep insertion order.
func (s *Store) QueryStats(ctx context.Context, limit int) (*domain.SearchAnalytics, error) {
	stats := &domain.SearchAnalytics{}

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(AVG(execution_seconds), 0), COALESCE(AVG(results_count), 0)
		FROM query_log
	`)
	if err := row.Scan(&stats.TotalSearches, &stats.AvgExecutionSeconds, &stats.AvgResults); err != nil {
		return nil, fmt.Errorf("aggregating query log: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT query_text FROM query_log
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent queries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scanning query text: %w", err)
		}
		stats.RecentQueries = append(stats.RecentQueries, text)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recent queries: %w", err)
	}

	return stats, nil
}

// ==================== Helper Functions ====================

// scanDocument scans a document row via the given Scan function.
func scanDocument(scan func(...any) error) (*domain.Document, error) {
	var doc domain.Document
	var filePath, fileType, model sql.NullString

	if err := scan(&doc.DocID, &doc.Title, &doc.Content, &filePath, &fileType,
		&doc.WordCount, &model, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
		return nil, err
	}

	doc.FilePath = filePath.String
	doc.FileType = fileType.String
	doc.EmbeddingModel = model.String

	return &doc, nil
}

// nullString converts an empty string to NULL for storage.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// isUniqueViolation reports whether err is a SQLite UNIQUE/PRIMARY KEY
// constraint failure. modernc.org/sqlite does not export a typed error
// for this, so the message is the contract.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
