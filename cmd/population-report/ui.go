package main

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// spinnerRefreshRate is how often the spinner redraws.
const spinnerRefreshRate = 100 * time.Millisecond

// Spinner is the progress indicator shown while a run is in flight.
type Spinner interface {
	Start()
	Stop()
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }
func (rs *realSpinner) Stop()  { rs.s.Stop() }

type nopSpinner struct{}

func (nopSpinner) Start() {}
func (nopSpinner) Stop()  {}

var newSpinner = func(w io.Writer) Spinner {
	opt := spinner.WithWriter(w)
	if f, ok := w.(*os.File); ok {
		opt = spinner.WithWriterFile(f)
	}
	s := spinner.New(spinner.CharSets[11], spinnerRefreshRate, opt)
	s.Suffix = " Building population report..."
	return &realSpinner{s}
}

// startSpinner starts a spinner on w unless quiet is set. The spinner only
// draws when w is a terminal.
func startSpinner(quiet bool, w io.Writer) Spinner {
	if quiet {
		return nopSpinner{}
	}
	s := newSpinner(w)
	s.Start()
	return s
}
