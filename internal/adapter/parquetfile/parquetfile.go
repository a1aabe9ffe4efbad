// Package parquetfile stores occurrence tables as Parquet files. Every column
// is OPTIONAL so absent cells survive the round trip; text columns are
// dictionary-encoded.
package parquetfile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
)

// ParseCompression maps SNAPPY, GZIP or NONE to a Parquet codec. Empty means
// SNAPPY.
func ParseCompression(s string) (parquet.CompressionCodec, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SNAPPY", "":
		return parquet.CompressionCodec_SNAPPY, nil
	case "GZIP":
		return parquet.CompressionCodec_GZIP, nil
	case "NONE", "UNCOMPRESSED":
		return parquet.CompressionCodec_UNCOMPRESSED, nil
	default:
		return 0, fmt.Errorf("unsupported compression type: %s", s)
	}
}

// Schema returns the column kinds and the writer metadata for t.
func Schema(t *domain.Table) ([]domain.Kind, []string) {
	names := t.Columns()
	kinds := make([]domain.Kind, len(names))
	md := make([]string, len(names))
	for i, name := range names {
		cells, _ := t.Column(name)
		kinds[i] = domain.InferKind(cells)
		md[i] = metadata(name, kinds[i])
	}
	return kinds, md
}

func metadata(name string, k domain.Kind) string {
	var typ string
	switch k {
	case domain.KindInt:
		typ = "type=INT64"
	case domain.KindFloat:
		typ = "type=DOUBLE"
	case domain.KindBool:
		typ = "type=BOOLEAN"
	case domain.KindTimestamp:
		typ = "type=INT64, convertedtype=TIMESTAMP_MILLIS"
	default:
		typ = "type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"
	}
	return fmt.Sprintf("name=%s, %s, repetitiontype=OPTIONAL", name, typ)
}

// Write stores t at path with the given compression.
func Write(path string, t *domain.Table, codec parquet.CompressionCodec) (err error) {
	if t.NumCols() == 0 {
		return errors.New("parquet: table has no columns")
	}
	kinds, md := Schema(t)

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := fw.Close(); cerr != nil {
			err = multierror.Append(err, fmt.Errorf("close %s: %w", path, cerr)).ErrorOrNil()
		}
	}()

	pw, err := writer.NewCSVWriter(md, fw, 1)
	if err != nil {
		return fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = codec

	names := t.Columns()
	for r := 0; r < t.NumRows(); r++ {
		rec := make([]interface{}, len(names))
		for c, name := range names {
			rec[c] = toValue(t.Cell(r, name), kinds[c])
		}
		if err := pw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}

	return writeStop(pw)
}

// writeStop flushes the footer; the library panics on some internal errors.
func writeStop(pw *writer.CSVWriter) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parquet writer panicked during WriteStop: %v", r)
		}
	}()
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("finish parquet file: %w", err)
	}
	return nil
}

// toValue converts canonical text to the Go value the column kind stores.
// Absent cells become nil (null).
func toValue(c domain.Cell, k domain.Kind) interface{} {
	s, ok := c.Get()
	if !ok {
		return nil
	}
	switch k {
	case domain.KindInt:
		v, _ := strconv.ParseInt(s, 10, 64)
		return v
	case domain.KindFloat:
		return domain.ParseFloat(c).OrElse(0)
	case domain.KindBool:
		return s == "true"
	case domain.KindTimestamp:
		return domain.ParseDate(c).OrElse(time.Time{}).UnixMilli()
	default:
		return s
	}
}

// Read loads the table stored at path. A missing file yields an error that
// matches fs.ErrNotExist.
func Read(path string) (t *domain.Table, err error) {
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := fr.Close(); cerr != nil {
			err = multierror.Append(err, fmt.Errorf("close %s: %w", path, cerr)).ErrorOrNil()
		}
	}()

	pr, err := reader.NewParquetColumnReader(fr, 1)
	if err != nil {
		return nil, fmt.Errorf("read parquet footer %s: %w", path, err)
	}
	defer pr.ReadStop()

	rows := pr.GetNumRows()
	elements := pr.SchemaHandler.SchemaElements[1:]
	names := make([]string, len(elements))
	cols := make([][]domain.Cell, len(elements))
	for i, el := range elements {
		names[i] = pr.SchemaHandler.Infos[i+1].ExName
		cols[i] = make([]domain.Cell, rows)
		if rows == 0 {
			continue
		}
		values, _, _, err := pr.ReadColumnByIndex(int64(i), rows)
		if err != nil {
			return nil, fmt.Errorf("read column %s: %w", names[i], err)
		}
		if int64(len(values)) != rows {
			return nil, fmt.Errorf("read column %s: got %d values, want %d", names[i], len(values), rows)
		}
		timestamp := el.IsSetConvertedType() && el.GetConvertedType() == parquet.ConvertedType_TIMESTAMP_MILLIS
		for r, v := range values {
			cols[i][r] = fromValue(v, timestamp)
		}
	}

	t, err = domain.NewTableFromColumns(names, cols)
	if err != nil {
		return nil, fmt.Errorf("build table from %s: %w", path, err)
	}
	return t, nil
}

func fromValue(v interface{}, timestamp bool) domain.Cell {
	switch x := v.(type) {
	case nil:
		return domain.Absent()
	case string:
		return domain.Text(x)
	case []byte:
		return domain.Text(string(x))
	case int64:
		if timestamp {
			return domain.Text(domain.FormatDate(time.UnixMilli(x).UTC()))
		}
		return domain.Text(domain.FormatInt(x))
	case int32:
		return domain.Text(domain.FormatInt(int64(x)))
	case float64:
		return domain.Text(domain.FormatFloat(x))
	case float32:
		return domain.Text(domain.FormatFloat(float64(x)))
	case bool:
		return domain.Text(domain.FormatBool(x))
	default:
		return domain.Text(fmt.Sprint(x))
	}
}

// Source extracts a table from a Parquet file.
type Source struct {
	Path string
}

// Extract loads the file.
func (s Source) Extract(ctx context.Context) (*domain.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Read(s.Path)
}

// Sink loads a table into a Parquet file.
type Sink struct {
	Path        string
	Compression parquet.CompressionCodec
}

// Name identifies the sink in logs.
func (s Sink) Name() string { return "parquet:" + s.Path }

// Load writes the table.
func (s Sink) Load(ctx context.Context, t *domain.Table) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return Write(s.Path, t, s.Compression)
}
