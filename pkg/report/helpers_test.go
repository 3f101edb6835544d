package report

import (
	"context"
	"errors"

	"github.com/Sternrassler/population-report/pkg/population"
)

var sampleRecords = []population.PopulationRecord{
	{Province: "Ontario", City: "Toronto", Population: 2794356},
	{Province: "Quebec", City: "Montreal", Population: 1762949},
	{Province: "Ontario", City: "Ottawa", Population: 1017449.4},
	{Province: "Ontario", City: "Kingston", Population: 0},
}

type recordingSink struct {
	got []population.PopulationRecord
	err error
}

func (s *recordingSink) Accept(_ context.Context, records []population.PopulationRecord) error {
	s.got = records
	return s.err
}

var errSinkDown = errors.New("sink down")
