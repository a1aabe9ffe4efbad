// Package csvfile reads and writes occurrence tables as delimited text with a
// header row. An empty field reads as an absent cell and an absent cell is
// written as an empty field.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
)

const utf8BOM = "\ufeff"

// ErrMalformed marks structural problems in the delimited text.
var ErrMalformed = errors.New("malformed delimited text")

// Read parses a delimited table from r.
func Read(r io.Reader, delimiter rune) (*domain.Table, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformed)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	names := make([]string, len(header))
	copy(names, header)
	names[0] = strings.TrimPrefix(names[0], utf8BOM)

	cols := make([][]domain.Cell, len(names))
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if len(record) > len(names) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d", ErrMalformed, line, len(record), len(names))
		}
		// Only an empty field is absent. Tokens like NA (Namibia) stay text.
		for c := range cols {
			var cell domain.Cell
			if c < len(record) && record[c] != "" {
				cell = domain.Text(record[c])
			}
			cols[c] = append(cols[c], cell)
		}
	}

	t, err := domain.NewTableFromColumns(names, cols)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return t, nil
}

// Load reads the table stored at path. A missing file yields an error that
// matches fs.ErrNotExist.
func Load(path string, delimiter rune) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f, delimiter)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// Write renders t to w in column order.
func Write(w io.Writer, t *domain.Table, delimiter rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delimiter

	if err := cw.Write(t.Columns()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	record := make([]string, t.NumCols())
	for r := 0; r < t.NumRows(); r++ {
		for c, cell := range t.Row(r) {
			record[c] = cell.OrElse("")
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes t to path, replacing any existing file.
func Save(path string, t *domain.Table, delimiter rune) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, t, delimiter); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// Source extracts a table from a delimited file.
type Source struct {
	Path      string
	Delimiter rune
}

// Extract loads the file. The context is only checked before reading.
func (s Source) Extract(ctx context.Context) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Load(s.Path, s.Delimiter)
}

// Sink loads a table into a delimited file.
type Sink struct {
	Path      string
	Delimiter rune
}

// Name identifies the sink in logs.
func (s Sink) Name() string { return "csv:" + s.Path }

// Load writes the table.
func (s Sink) Load(ctx context.Context, t *domain.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return Save(s.Path, t, s.Delimiter)
}
