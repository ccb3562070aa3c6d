package batch

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cpfinspector/cpfinspector/pkg/cpf"
	operr "github.com/cpfinspector/cpfinspector/pkg/errors"
)

// maxLineSize bounds the length of one input line.
const maxLineSize = 1024 * 1024

// DefaultExtensions are the file suffixes accepted as sources.
var DefaultExtensions = []string{".csv", ".txt"}

// Sink receives every emitted record of a run.
type Sink interface {
	Write(rec Record) error
}

// Reporter is notified as sources and records are processed.
type Reporter interface {
	SourceStarted(source string)
	Record(source string, rec Record)
	SourceFinished(result *Result, emitInvalid bool)
	SourceFailed(source string, err error)
	Unsupported(source string)
}

// Processor validates the candidates of one or more sources.
type Processor struct {
	sink       Sink
	reporter   Reporter
	logger     *slog.Logger
	delimiter  rune
	extensions []string
	exclude    []string
}

// Option configures a Processor.
type Option func(*Processor)

// WithSink routes every emitted record to sink. A nil sink disables output.
func WithSink(sink Sink) Option {
	return func(p *Processor) {
		p.sink = sink
	}
}

// WithReporter sets the reporter notified of progress.
func WithReporter(reporter Reporter) Option {
	return func(p *Processor) {
		if reporter != nil {
			p.reporter = reporter
		}
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithDelimiter sets the field delimiter of input records.
func WithDelimiter(delimiter rune) Option {
	return func(p *Processor) {
		p.delimiter = delimiter
	}
}

// WithExtensions replaces the accepted file suffixes.
func WithExtensions(extensions ...string) Option {
	return func(p *Processor) {
		if len(extensions) == 0 {
			return
		}
		p.extensions = make([]string, 0, len(extensions))
		for _, ext := range extensions {
			p.extensions = append(p.extensions, normalizeExtension(ext))
		}
	}
}

// WithExclude skips the given paths when enumerating a directory, typically
// the output file of the run.
func WithExclude(paths ...string) Option {
	return func(p *Processor) {
		p.exclude = append(p.exclude, paths...)
	}
}

// NewProcessor creates a Processor. Without options it reads comma-delimited
// .csv and .txt sources, has no sink and reports nothing.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		reporter:   nopReporter{},
		logger:     slog.New(slog.DiscardHandler),
		delimiter:  ',',
		extensions: DefaultExtensions,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Supported reports whether name carries an accepted extension.
func (p *Processor) Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range p.extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// ProcessSource validates every record of the file at path.
//
// The returned Result is never nil. Errors wrap ErrUnsupportedFormat,
// ErrSourceNotFound, ErrSink or a read failure, and are also stored in
// Result.Err. An empty file is a successful result with all counters zero.
func (p *Processor) ProcessSource(path string, emitInvalid bool) (*Result, error) {
	res := &Result{Source: path}

	if !p.Supported(path) {
		res.Err = operr.NewOperationalError("checking source", path, ErrUnsupportedFormat)
		p.reporter.Unsupported(path)
		return res, res.Err
	}

	f, err := openSource(path)
	if err != nil {
		res.Err = operr.NewOperationalError("opening source", path, err)
		p.logger.Debug("source unavailable", "source", path, "error", err)
		p.reporter.SourceFailed(path, res.Err)
		return res, res.Err
	}
	defer func() {
		_ = f.Close()
	}()

	return p.ProcessReader(path, f, emitInvalid)
}

// ProcessReader validates the records read from r, identified as name in
// results and reports.
//
// Every record increments Stats.Total. Valid candidates are emitted in
// formatted form; invalid ones are emitted unmodified only when
// emitInvalid is true.
func (p *Processor) ProcessReader(name string, r io.Reader, emitInvalid bool) (*Result, error) {
	res := &Result{Source: name}
	p.reporter.SourceStarted(name)
	p.logger.Debug("processing source", "source", name, "emit_invalid", emitInvalid)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		res.Stats.Total++
		index := res.Stats.Total

		candidate, err := p.firstField(scanner.Text())
		if err != nil {
			res.Stats.Skipped++
			p.logger.Debug("skipping malformed record", "source", name, "record", index, "error", err)
			continue
		}
		if strings.TrimSpace(candidate) == "" {
			res.Stats.Skipped++
			p.logger.Debug("skipping record with empty first field", "source", name, "record", index)
			continue
		}

		var rec Record
		switch {
		case cpf.IsValid(candidate):
			// IsValid guarantees 11 digits, so Format cannot fail.
			formatted, _ := cpf.Format(candidate)
			res.Stats.Valid++
			rec = Record{Index: index, Value: formatted, Verdict: Valid}
		case emitInvalid:
			res.Stats.Invalid++
			rec = Record{Index: index, Value: candidate, Verdict: Invalid}
		default:
			continue
		}

		res.Records = append(res.Records, rec)
		if err := p.emit(name, rec); err != nil {
			res.Err = err
			p.reporter.SourceFailed(name, err)
			return res, err
		}
	}

	if err := scanner.Err(); err != nil {
		res.Err = operr.NewOperationalErrorWithAttrs("reading source", name, err, map[string]interface{}{
			"record": res.Stats.Total + 1,
		})
		p.reporter.SourceFailed(name, res.Err)
		return res, res.Err
	}

	p.logger.Debug("source finished", "source", name,
		"total", res.Stats.Total,
		"valid", res.Stats.Valid,
		"invalid", res.Stats.Invalid,
		"skipped", res.Stats.Skipped,
	)
	p.reporter.SourceFinished(res, emitInvalid)
	return res, nil
}

// firstField parses one line as a delimited record and returns its first
// field. A line without the delimiter is a single field.
func (p *Processor) firstField(line string) (string, error) {
	if strings.TrimSpace(line) == "" {
		return "", nil
	}

	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = p.delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	fields, err := reader.Read()
	if err != nil {
		return "", err
	}
	return fields[0], nil
}

// ProcessDirectory processes every file directly inside dir, in lexical
// order. Subdirectories are ignored.
//
// Failures of individual sources are recorded in their Result and do not
// stop the batch. The error is non-nil only when dir cannot be enumerated
// (wrapping ErrDirectoryNotFound) or the sink fails (wrapping ErrSink); in
// the latter case the results processed so far are returned.
func (p *Processor) ProcessDirectory(dir string, emitInvalid bool) ([]*Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, operr.NewOperationalError("reading directory", dir,
			fmt.Errorf("%w: %w", ErrDirectoryNotFound, pathCause(err)))
	}

	p.logger.Debug("processing directory", "directory", dir, "entries", len(entries))

	results := make([]*Result, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if p.excluded(path) {
			p.logger.Debug("skipping excluded file", "source", path)
			continue
		}

		res, err := p.ProcessSource(path, emitInvalid)
		results = append(results, res)
		if errors.Is(err, ErrSink) {
			return results, err
		}
	}

	return results, nil
}

func (p *Processor) emit(source string, rec Record) error {
	if p.sink != nil {
		if err := p.sink.Write(rec); err != nil {
			return operr.NewOperationalErrorWithAttrs("writing record from", source,
				fmt.Errorf("%w: %w", ErrSink, err), map[string]interface{}{
					"record": rec.Index,
				})
		}
	}
	p.reporter.Record(source, rec)
	return nil
}

func (p *Processor) excluded(path string) bool {
	if len(p.exclude) == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	for _, ex := range p.exclude {
		exInfo, err := os.Stat(ex)
		if err != nil {
			continue
		}
		if os.SameFile(info, exInfo) {
			return true
		}
	}
	return false
}

func openSource(path string) (*os.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, pathCause(err))
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: is a directory", ErrSourceNotFound)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceNotFound, pathCause(err))
	}
	return f, nil
}

// pathCause strips the operation and path from an *os.PathError; the path
// is already carried by the OperationalError.
func pathCause(err error) error {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

type nopReporter struct{}

func (nopReporter) SourceStarted(string) {}
func (nopReporter) Record(string, Record) {}
func (nopReporter) SourceFinished(*Result, bool) {}
func (nopReporter) SourceFailed(string, error) {}
func (nopReporter) Unsupported(string) {}
