package batch

import "errors"

var (
	// ErrSourceNotFound is returned when a source file does not exist or cannot be opened.
	ErrSourceNotFound = errors.New("source not found")

	// ErrDirectoryNotFound is returned when a directory cannot be enumerated.
	ErrDirectoryNotFound = errors.New("directory not found")

	// ErrUnsupportedFormat is returned for files without a recognized extension.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrSink is returned when an emitted record cannot be written to the sink.
	ErrSink = errors.New("cannot write to output")
)
