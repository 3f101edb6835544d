package report

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/Sternrassler/population-report/pkg/population"
	"github.com/rs/zerolog"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect selects placeholder syntax and the database/sql driver name.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"
	DialectMySQL    Dialect = "mysql"
)

// DefaultTable is the table used when SQLSink.Table is empty.
const DefaultTable = "population_report"

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ParseDialect maps a driver name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(strings.ToLower(name)) {
	case DialectSQLite, "sqlite":
		return DialectSQLite, nil
	case DialectPostgres, "postgresql", "pq":
		return DialectPostgres, nil
	case DialectMySQL:
		return DialectMySQL, nil
	default:
		return "", fmt.Errorf("unsupported sql driver %q (want sqlite3, postgres or mysql)", name)
	}
}

// OpenSQL opens a database for the given dialect and checks the connection.
func OpenSQL(ctx context.Context, dialect Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	return db, nil
}

// SQLSink stores the report in a SQL table. Each run replaces the previous
// report; position keeps the city input order.
type SQLSink struct {
	DB      *sql.DB
	Dialect Dialect
	Table   string
}

// NewSQLSink creates a SQLSink writing to DefaultTable.
func NewSQLSink(db *sql.DB, dialect Dialect) *SQLSink {
	return &SQLSink{DB: db, Dialect: dialect, Table: DefaultTable}
}

// Accept creates the table if missing and replaces its contents with records
// in a single transaction.
func (s *SQLSink) Accept(ctx context.Context, records []population.PopulationRecord) (err error) {
	if s.DB == nil {
		return fmt.Errorf("sql database is required")
	}
	table := s.Table
	if table == "" {
		table = DefaultTable
	}
	if !identifierPattern.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}

	if _, err := s.DB.ExecContext(ctx, createTableSQL(table)); err != nil {
		return fmt.Errorf("create table %s: %w", table, err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear table %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insertSQL(s.Dialect, table))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, i, r.Province, r.City, r.Population); err != nil {
			return fmt.Errorf("insert %s/%s: %w", r.Province, r.City, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit report: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("table", table).
		Str("dialect", string(s.Dialect)).
		Int("records", len(records)).
		Msg("SQL report written")
	return nil
}

func createTableSQL(table string) string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	position INTEGER NOT NULL,
	province VARCHAR(255) NOT NULL,
	city VARCHAR(255) NOT NULL,
	population DOUBLE PRECISION NOT NULL
)`, table)
}

func insertSQL(dialect Dialect, table string) string {
	return fmt.Sprintf("INSERT INTO %s (position, province, city, population) VALUES (%s)",
		table, strings.Join(placeholders(dialect, 4), ", "))
}

// placeholders returns n bind parameters in the dialect's syntax.
func placeholders(dialect Dialect, n int) []string {
	out := make([]string, n)
	for i := range out {
		if dialect == DialectPostgres {
			out[i] = fmt.Sprintf("$%d", i+1)
		} else {
			out[i] = "?"
		}
	}
	return out
}
