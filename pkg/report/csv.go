package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Sternrassler/population-report/pkg/population"
	"github.com/rs/zerolog"
)

// CSVHeader is the first row of every CSV report.
var CSVHeader = []string{"province", "city", "population"}

// CSVSink writes the report to a CSV file, replacing any previous report.
type CSVSink struct {
	Path string
}

// NewCSVSink creates a CSVSink writing to path.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{Path: path}
}

// Accept writes records to Path. The file is written to a temporary sibling
// and renamed into place, so a failed write leaves the old report intact.
func (s *CSVSink) Accept(ctx context.Context, records []population.PopulationRecord) (err error) {
	if s.Path == "" {
		return fmt.Errorf("csv path is required")
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".*")
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err := w.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{r.Province, r.City, strconv.FormatFloat(r.Population, 'f', -1, 64)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", r.City, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("move report into place: %w", err)
	}

	zerolog.Ctx(ctx).Info().
		Str("path", s.Path).
		Int("records", len(records)).
		Msg("CSV report written")
	return nil
}
