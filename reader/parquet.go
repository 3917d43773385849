package reader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/segmentio/parquet-go"

	"github.com/vegasq/linqcat/linq"
)

// Reader reads parquet files and returns rows as records.
//
// It keeps both the OS file handle and the parquet file handle so Close can
// release them.
type Reader struct {
	file   *os.File
	pqFile *parquet.File
}

// NewReader opens path and validates it as a parquet file.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	stat, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pqFile, err := parquet.OpenFile(file, stat.Size())
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}

	return &Reader{
		file:   file,
		pqFile: pqFile,
	}, nil
}

// ReadAll reads every row into memory. Record fields follow the schema's
// column order.
func (r *Reader) ReadAll() (linq.List, error) {
	columns := r.columnNames()
	rows := make(linq.List, 0, r.pqFile.NumRows())

	reader := parquet.NewReader(r.pqFile)
	defer func() { _ = reader.Close() }()

	for {
		row := make(map[string]interface{})
		err := reader.Read(&row)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		rows = append(rows, linq.RecordOf(row, columns...))
	}

	return rows, nil
}

func (r *Reader) columnNames() []string {
	fields := r.pqFile.Schema().Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name()
	}
	return names
}

// Schema returns the parquet file schema.
func (r *Reader) Schema() *parquet.Schema {
	return r.pqFile.Schema()
}

// Close releases the file handle. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

func readParquet(path string) (linq.List, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}

	rows, readErr := r.ReadAll()
	closeErr := r.Close()
	if readErr != nil {
		return nil, readErr
	}
	if closeErr != nil {
		return nil, fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	return rows, nil
}
