package fetcher

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// readCSVFile parses a headered CSV into raw records. Rows shorter than the
// header are padded with empty values; extra cells are dropped.
func readCSVFile(path string, meta SourceMeta) (*FileData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "csv: open %s", path)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return &FileData{Meta: meta}, nil
	}
	if err != nil {
		return nil, eris.Wrapf(err, "csv: read header of %s", path)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}

	data := &FileData{Meta: meta}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "csv: read row of %s", path)
		}
		data.Records = append(data.Records, rowToRecord(header, row))
	}
	return data, nil
}

func rowToRecord(header, row []string) RawRecord {
	record := RawRecord{Columns: make([]Column, 0, len(header))}
	for i, name := range header {
		var value string
		if i < len(row) {
			value = strings.TrimSpace(row[i])
		}
		record.Columns = append(record.Columns, Column{Name: name, Value: value})
	}
	return record
}
