package playlist

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound        = errors.New("file not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrUnsupportedLayout   = errors.New("unsupported playlist layout")
	ErrUnrecognizedLayout  = errors.New("unrecognized tab-log layout")
	ErrEmptySource         = errors.New("playlist has no tracks")
	ErrMalformedRow        = errors.New("malformed row")
	ErrNotImplemented      = errors.New("not implemented")
	ErrExportWithoutData   = errors.New("no playlist to export, read a playlist first")
	ErrOutputExists        = errors.New("output file already exists")
)

// RowError reports the row that stopped a read
type RowError struct {
	// Row is the 1-based line in the source file; the header is line 1
	Row    int
	Field  string
	Reason string
}

func (e *RowError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("row %d: field %q: %s", e.Row, e.Field, e.Reason)
}

func (e *RowError) Unwrap() error {
	return ErrMalformedRow
}
