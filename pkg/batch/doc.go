// Package batch applies CPF validation to delimited text sources.
//
// A Processor reads records one at a time from a file (or any io.Reader),
// treats the first field of each record as a candidate CPF and classifies
// it with package cpf. Emitted records stream to an optional Sink and to a
// Reporter in input order, and per-source counters are returned in a
// Result.
//
// # Partial Failure
//
// In directory mode each source is processed in isolation: a missing,
// unreadable or unsupported file is recorded in its own Result and
// reported, and the remaining files are still processed. Only a directory
// that cannot be enumerated, or a sink that can no longer be written,
// stops the run.
//
// # Malformed Records
//
// Every line is one record; quoted fields cannot span lines. A blank line,
// a record whose first field is empty or only whitespace, or a line the CSV
// reader cannot parse is counted in FileStats.Total and FileStats.Skipped
// and otherwise ignored.
//
// Processing is sequential; a Processor must not be shared between
// goroutines.
package batch
