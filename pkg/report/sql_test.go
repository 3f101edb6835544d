package report

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/Sternrassler/population-report/pkg/population"
	"github.com/google/go-cmp/cmp"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenSQL(context.Background(), DialectSQLite, filepath.Join(t.TempDir(), "report.db"))
	if err != nil {
		t.Fatalf("OpenSQL() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func readTable(t *testing.T, db *sql.DB, table string) []population.PopulationRecord {
	t.Helper()
	rows, err := db.Query("SELECT province, city, population FROM " + table + " ORDER BY position")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	defer rows.Close()

	var out []population.PopulationRecord
	for rows.Next() {
		var r population.PopulationRecord
		if err := rows.Scan(&r.Province, &r.City, &r.Population); err != nil {
			t.Fatalf("scan: %v", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	return out
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{"sqlite3", DialectSQLite, false},
		{"sqlite", DialectSQLite, false},
		{"Postgres", DialectPostgres, false},
		{"postgresql", DialectPostgres, false},
		{"mysql", DialectMySQL, false},
		{"oracle", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDialect(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDialect(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDialect(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInsertSQL(t *testing.T) {
	tests := []struct {
		dialect Dialect
		want    string
	}{
		{DialectSQLite, "INSERT INTO t (position, province, city, population) VALUES (?, ?, ?, ?)"},
		{DialectMySQL, "INSERT INTO t (position, province, city, population) VALUES (?, ?, ?, ?)"},
		{DialectPostgres, "INSERT INTO t (position, province, city, population) VALUES ($1, $2, $3, $4)"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			if got := insertSQL(tt.dialect, "t"); got != tt.want {
				t.Errorf("insertSQL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSQLSink_Accept(t *testing.T) {
	db := openTestDB(t)
	sink := NewSQLSink(db, DialectSQLite)
	ctx := context.Background()

	if err := sink.Accept(ctx, sampleRecords); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if diff := cmp.Diff(sampleRecords, readTable(t, db, DefaultTable)); diff != "" {
		t.Errorf("stored records mismatch (-want +got):\n%s", diff)
	}

	// a second run replaces the first
	if err := sink.Accept(ctx, sampleRecords[2:]); err != nil {
		t.Fatalf("second Accept() error = %v", err)
	}
	if diff := cmp.Diff(sampleRecords[2:], readTable(t, db, DefaultTable)); diff != "" {
		t.Errorf("replaced records mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLSink_CustomTable(t *testing.T) {
	db := openTestDB(t)
	sink := &SQLSink{DB: db, Dialect: DialectSQLite, Table: "ontario_2024"}

	if err := sink.Accept(context.Background(), sampleRecords[:1]); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if got := readTable(t, db, "ontario_2024"); len(got) != 1 {
		t.Errorf("got %d rows, want 1", len(got))
	}
}

func TestSQLSink_Errors(t *testing.T) {
	ctx := context.Background()

	if err := (&SQLSink{Dialect: DialectSQLite}).Accept(ctx, sampleRecords); err == nil {
		t.Error("Accept() without DB should fail")
	}

	db := openTestDB(t)
	sink := &SQLSink{DB: db, Dialect: DialectSQLite, Table: "report; DROP TABLE x"}
	if err := sink.Accept(ctx, sampleRecords); err == nil {
		t.Error("Accept() with invalid table name should fail")
	}
}

func TestSQLSink_EmptyReport(t *testing.T) {
	db := openTestDB(t)
	sink := NewSQLSink(db, DialectSQLite)

	if err := sink.Accept(context.Background(), nil); err != nil {
		t.Fatalf("Accept() error = %v", err)
	}
	if got := readTable(t, db, DefaultTable); len(got) != 0 {
		t.Errorf("got %d rows, want 0", len(got))
	}
}
