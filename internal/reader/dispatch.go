package reader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"playlistformatter/internal/playlist"
	"playlistformatter/internal/utils"
)

// Dispatch reads the playlist file at path with the reader its extension
// and content call for.
func Dispatch(path string) (*playlist.Document, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: '%s'", playlist.ErrFileNotFound, path)
	}

	parts := SplitPath(path)
	var doc *playlist.Document
	switch strings.ToLower(parts.Ext) {
	case ".csv":
		slog.Debug("dispatching to time-series reader", "path", path)
		doc, err = readTimeSeriesFile(path)
	case ".txt":
		doc, err = readTextFile(path)
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return nil, fmt.Errorf("%w: spreadsheet playlists ('%s')", playlist.ErrNotImplemented, parts.Ext)
	default:
		return nil, fmt.Errorf("%w: '%s'", playlist.ErrUnsupportedFileType, parts.Ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read playlist '%s': %w", path, err)
	}

	doc.Path = parts
	return doc, nil
}

// SplitPath splits path into directory, base name without extension, and extension.
func SplitPath(path string) playlist.PathParts {
	dir, file := filepath.Split(path)
	ext := filepath.Ext(file)
	return playlist.PathParts{
		Dir:  filepath.Clean(dir),
		Base: strings.TrimSuffix(file, ext),
		Ext:  ext,
	}
}

func readTimeSeriesFile(path string) (*playlist.Document, error) {
	r, err := openDecoded(path)
	if err != nil {
		return nil, err
	}
	rows, err := utils.ReadCsvRecords(r)
	if err != nil {
		return nil, err
	}
	return ReadTimeSeries(rows)
}

// readTextFile sniffs the first line to pick a text layout.
func readTextFile(path string) (*playlist.Document, error) {
	lines, err := readLines(path)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: file is empty", playlist.ErrEmptySource)
	}
	if !strings.HasPrefix(lines[0], tabLogMarker) {
		return nil, fmt.Errorf("%w: first line does not start with %q", playlist.ErrUnsupportedLayout, tabLogMarker)
	}
	slog.Debug("dispatching to tab-log reader", "path", path, "lines", len(lines))
	return ReadTabLog(lines)
}
