// Package pipeline runs the population report: it fetches the province and
// city reference lists concurrently, joins them, fans out one detail lookup
// per resolvable city onto a bounded worker pool, and aggregates the results
// in city input order before handing them to a report sink.
//
// A run moves through these states:
//
//	fetching_reference -> joining -> fetching_population -> aggregating -> done
//	                 \______________________________________________\-> aborted
//
// Failure handling:
//   - An empty or failed reference fetch aborts the run before any lookup
//   - A city with an unknown province key is dropped silently
//   - A missing detail record defaults the population to 0
//   - A detail lookup that fails at the I/O layer drops that city and logs a
//     warning naming it; the run continues
//   - An interrupted wait on the pool aborts the run; no partial report
//
// Example usage:
//
//	p, err := pipeline.New(pipeline.DefaultConfig(), refs, details, sink,
//		pipeline.WithLogger(logger))
//	report, err := p.Run(ctx)
package pipeline
