package fetcher

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// readXLSXFile parses every sheet of a workbook. Each sheet's first row is
// its header; sheets without a header row are skipped.
func readXLSXFile(path string, meta SourceMeta) (*FileData, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "xlsx: open %s", path)
	}

	data := &FileData{Meta: meta}
	for _, sheet := range f.Sheets {
		if len(sheet.Rows) < 2 {
			continue
		}
		header := rowToStrings(sheet.Rows[0])
		for _, row := range sheet.Rows[1:] {
			cells := rowToStrings(row)
			if emptyRow(cells) {
				continue
			}
			data.Records = append(data.Records, rowToRecord(header, cells))
		}
	}
	return data, nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		cells[i] = strings.TrimSpace(cell.String())
	}
	return cells
}

func emptyRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
