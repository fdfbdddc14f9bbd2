// Package fetcher reads member source files (CSV, XLSX, and text dumps)
// into raw column/value records for the ingest pipeline.
package fetcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Column is one header/value cell from a source row. Order is preserved
// from the source file; the field mapper depends on it.
type Column struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RawRecord is one source row.
type RawRecord struct {
	Columns []Column `json:"columns"`
}

// SourceMeta describes the file a record came from.
type SourceMeta struct {
	FileName string    `json:"file_name"`
	FilePath string    `json:"file_path"`
	ModTime  time.Time `json:"mod_time"`
}

// FileData is everything extracted from one source file: structured rows
// plus any standalone email addresses not attached to a row.
type FileData struct {
	Meta    SourceMeta  `json:"meta"`
	Records []RawRecord `json:"records"`
	Emails  []string    `json:"emails,omitempty"`
}

var supportedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".txt":  true,
}

// Supported reports whether the file extension is one the reader handles.
func Supported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// ReadFile parses a single source file based on its extension.
func ReadFile(ctx context.Context, path string) (*FileData, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "fetcher: context cancelled")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: stat %s", path)
	}
	meta := SourceMeta{
		FileName: filepath.Base(path),
		FilePath: path,
		ModTime:  info.ModTime(),
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSVFile(path, meta)
	case ".xlsx":
		return readXLSXFile(path, meta)
	case ".txt":
		return readTextFile(path, meta)
	default:
		return nil, eris.Errorf("fetcher: unsupported file type %s", path)
	}
}

// Discover walks a directory tree and returns every supported file, sorted
// by path.
func Discover(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && Supported(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: discover files in %s", root)
	}
	return files, nil
}
