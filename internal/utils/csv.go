package utils

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
)

// StructToCsvHeader takes a struct type and returns a slice of strings representing the CSV header.
// It uses the `csv` tag on struct fields to determine the header name, so `csv:""` yields an empty column name.
// If a field doesn't have a `csv` tag, the field name is used.
func StructToCsvHeader(t reflect.Type) []string {
	var headers []string
	for i := 0; i < t.NumField(); i++ {
		headers = append(headers, headerName(t.Field(i)))
	}
	return headers
}

func headerName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("csv"); ok {
		return tag
	}
	return field.Name
}

// StructToCsvRecord converts a struct (or pointer to struct) into a row ordered by headers.
// For slices, it joins the elements using a semicolon (;) to handle multi-value fields.
func StructToCsvRecord(item any, headers []string) ([]string, error) {
	v := reflect.ValueOf(item)

	// If item is a pointer, get the value it points to
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil, fmt.Errorf("data must be a slice of structs")
	}

	row := make([]string, len(headers))
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		idx := indexOf(headers, headerName(t.Field(i)))
		if idx < 0 {
			continue // Skip fields not in the headers
		}

		fieldValue := v.Field(i)
		if fieldValue.Kind() == reflect.Slice {
			var sliceValues []string
			for j := 0; j < fieldValue.Len(); j++ {
				sliceValues = append(sliceValues, fmt.Sprintf("%v", fieldValue.Index(j).Interface()))
			}
			row[idx] = strings.Join(sliceValues, ";")
		} else {
			row[idx] = fmt.Sprintf("%v", fieldValue.Interface())
		}
	}
	return row, nil
}

// WriteCsv writes the headers followed by one row per item of data.
func WriteCsv[T any](w io.Writer, headers []string, data []T) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, item := range data {
		row, err := StructToCsvRecord(item, headers)
		if err != nil {
			return err
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteToCsvFile writes the given headers and data to a CSV file at the specified filePath.
func WriteToCsvFile[T any](filePath string, headers []string, data []T) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}

	if err := WriteCsv(file, headers, data); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ReadCsvRecords reads a CSV document whose first row names the columns and
// returns every following row keyed by column name. Rows shorter than the
// header simply lack the trailing keys.
func ReadCsvRecords(r io.Reader) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row %d: %w", len(rows)+1, err)
		}
		row := make(map[string]string, len(header))
		for i, value := range record {
			if i < len(header) {
				row[header[i]] = value
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// indexOf returns the index of a string in a slice or -1 if not found
func indexOf(slice []string, item string) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}
