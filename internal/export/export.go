package export

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"playlistformatter/internal/playlist"
	"playlistformatter/internal/utils"
)

// separatorColumn fills the unnamed column between artist and song
const separatorColumn = "-"

// TabLogRow is one exported row of a tab-log playlist
type TabLogRow struct {
	Artist    string `csv:"Artist"`
	Separator string `csv:""`
	Song      string `csv:"Song"`
}

// TimeSeriesRow is one exported row of a time-series playlist
type TimeSeriesRow struct {
	Artist    string `csv:"Artist"`
	Separator string `csv:""`
	Song      string `csv:"Song"`
	Time      string `csv:"Time"`
	Playtime  string `csv:"Playtime"`
	StartTime string `csv:"Start time"`
}

// Encode converts a document into CSV records, header first. The column
// layout depends on the document source.
func Encode(doc *playlist.Document) ([][]string, error) {
	if doc == nil || len(doc.Tracks) == 0 {
		return nil, playlist.ErrExportWithoutData
	}

	switch doc.Source.(type) {
	case playlist.TabLog:
		rows := make([]TabLogRow, 0, len(doc.Tracks))
		for _, t := range doc.Tracks {
			rows = append(rows, TabLogRow{Artist: t.Artist, Separator: separatorColumn, Song: t.Title})
		}
		return records(rows)
	case playlist.TimeSeries:
		rows := make([]TimeSeriesRow, 0, len(doc.Tracks))
		for i, t := range doc.Tracks {
			if t.Timing == nil {
				return nil, fmt.Errorf("track %d (%s) has no timing", i+1, t)
			}
			rows = append(rows, TimeSeriesRow{
				Artist:    t.Artist,
				Separator: separatorColumn,
				Song:      t.Title,
				Time:      playlist.FormatDuration(t.Timing.Elapsed),
				Playtime:  playlist.FormatDuration(t.Timing.Play),
				StartTime: playlist.FormatClock(t.Timing.Start),
			})
		}
		return records(rows)
	default:
		return nil, fmt.Errorf("%w: %T", playlist.ErrUnsupportedLayout, doc.Source)
	}
}

func records[T any](rows []T) ([][]string, error) {
	var zero T
	headers := utils.StructToCsvHeader(reflect.TypeOf(zero))
	out := [][]string{headers}
	for _, row := range rows {
		record, err := utils.StructToCsvRecord(row, headers)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

// OutputPath derives where an export of doc is written.
//
// An empty request falls back to the document's base name. A ".csv"
// extension is appended unless the name already ends in ".csv" or ".txt".
// Bare file names are placed in dir, or next to the input when dir is empty.
func OutputPath(doc *playlist.Document, requested, dir string) string {
	name := strings.TrimSpace(requested)
	if name == "" {
		name = doc.Path.Base
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt":
	default:
		// not filepath.Ext replacement: dotted dates in names must survive
		name += ".csv"
	}

	if filepath.IsAbs(name) || filepath.Dir(name) != "." {
		return name
	}
	if dir == "" {
		dir = doc.Path.Dir
	}
	return filepath.Join(dir, name)
}

// Write exports doc to path as CSV, or as "Artist - Title" lines when path
// ends in ".txt". An existing file is only replaced when overwrite is set.
func Write(doc *playlist.Document, path string, overwrite bool) error {
	records, err := Encode(doc)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			return fmt.Errorf("%w: '%s'", playlist.ErrOutputExists, path)
		}
		slog.Info("overwriting existing file", "path", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("error checking output file: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".txt") {
		err = writeText(file, doc)
	} else {
		err = writeCsv(file, records)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("error writing playlist to '%s': %w", path, err)
	}
	slog.Debug("exported playlist", "path", path, "tracks", len(doc.Tracks))
	return file.Close()
}

func writeCsv(w io.Writer, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return err
	}
	return writer.Error()
}

func writeText(w io.Writer, doc *playlist.Document) error {
	buf := bufio.NewWriter(w)
	for _, t := range doc.Tracks {
		if _, err := fmt.Fprintln(buf, t.String()); err != nil {
			return err
		}
	}
	return buf.Flush()
}
