// Package export drives the export pipeline and shapes its output.
//
// It joins enumerator output with matcher results into export rows,
// renders them as a semicolon separated CSV, journals run summaries when a
// database is configured, and exposes the pipeline both to the CLI and,
// through a Fiber handler, to the serve command.
package export
