package report

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/Sternrassler/population-report/pkg/population"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// TableHeaders are the column titles of the console table.
var TableHeaders = []string{"Province", "City", "Population"}

// TableSink prints the report as a bordered console table.
type TableSink struct {
	Out io.Writer
}

// NewTableSink creates a TableSink writing to out.
func NewTableSink(out io.Writer) *TableSink {
	return &TableSink{Out: out}
}

// Accept renders records and writes them to Out.
func (s *TableSink) Accept(ctx context.Context, records []population.PopulationRecord) error {
	if _, err := fmt.Fprintln(s.Out, RenderTable(records)); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Int("records", len(records)).Msg("Report table written")
	return nil
}

// RenderTable formats records as a bordered table with a header row.
func RenderTable(records []population.PopulationRecord) string {
	rows := lo.Map(records, func(r population.PopulationRecord, _ int) []string {
		return []string{r.Province, r.City, FormatPopulation(r.Population)}
	})

	cell := lipgloss.NewStyle().Padding(0, 1)
	header := cell.Bold(true)
	number := cell.Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(TableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case col == 2:
				return number
			default:
				return cell
			}
		})

	return t.String()
}

// FormatPopulation prints a population as a whole number.
func FormatPopulation(p float64) string {
	return strconv.FormatFloat(math.Round(p), 'f', 0, 64)
}
