// Package report contains the sinks that consume a finished population
// report: a console table, a CSV file, and a SQL table. MultiSink fans one
// report out to several of them.
//
// Every sink receives the records in city input order and keeps that order.
package report
