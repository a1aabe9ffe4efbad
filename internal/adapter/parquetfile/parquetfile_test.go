package parquetfile

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xitongsys/parquet-go/parquet"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
)

func cleanedTable(t *testing.T) *domain.Table {
	t.Helper()
	c := domain.Text
	a := domain.Absent()
	tbl, err := domain.NewTable(
		[]string{"gbifID", "decimalLatitude", "countryCode", "eventDate", "speciesKey_missing", "stateProvince", "order", "coordinateUncertaintyInMeters"},
		[][]domain.Cell{
			{c("4011"), c("45.5"), c("CA"), c("2019-05-04"), c("false"), c("Quebec"), c("Carnivora"), c("30")},
			{c("4012"), c("-12.25"), c("Unknown"), c("2001-07-15T10:30:00Z"), c("true"), a, c("Fagales"), a},
			{c("4013"), c("0"), c("CA"), a, c("false"), c("Quebec"), a, c("9999.5")},
		},
	)
	require.NoError(t, err)
	return tbl
}

func TestSchema(t *testing.T) {
	kinds, md := Schema(cleanedTable(t))

	assert.Equal(t, []domain.Kind{
		domain.KindInt, domain.KindFloat, domain.KindText, domain.KindTimestamp,
		domain.KindBool, domain.KindText, domain.KindText, domain.KindFloat,
	}, kinds)
	assert.Equal(t, "name=countryCode, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY, repetitiontype=OPTIONAL", md[2])
	for _, m := range md {
		assert.True(t, strings.HasSuffix(m, "repetitiontype=OPTIONAL"), m)
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	codecs := []parquet.CompressionCodec{
		parquet.CompressionCodec_SNAPPY,
		parquet.CompressionCodec_GZIP,
		parquet.CompressionCodec_UNCOMPRESSED,
	}
	in := cleanedTable(t)

	for _, codec := range codecs {
		t.Run(codec.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.parquet")
			require.NoError(t, Write(path, in, codec))

			out, err := Read(path)
			require.NoError(t, err)

			require.Equal(t, in.Columns(), out.Columns())
			require.Equal(t, in.NumRows(), out.NumRows())
			for _, name := range in.Columns() {
				want, _ := in.Column(name)
				got, _ := out.Column(name)
				assert.Equal(t, want, got, name)
			}
		})
	}
}

func TestWriteRead_LargeIntegers(t *testing.T) {
	in, err := domain.NewTable([]string{"occurrenceKey"}, [][]domain.Cell{
		{domain.Text("9007199254740993")},
		{domain.Text("-9223372036854775808")},
		{domain.Text("9223372036854775807")},
	})
	require.NoError(t, err)

	kinds, _ := Schema(in)
	require.Equal(t, []domain.Kind{domain.KindInt}, kinds)

	path := filepath.Join(t.TempDir(), "keys.parquet")
	require.NoError(t, Write(path, in, parquet.CompressionCodec_SNAPPY))
	out, err := Read(path)
	require.NoError(t, err)

	want, _ := in.Column("occurrenceKey")
	got, _ := out.Column("occurrenceKey")
	assert.Equal(t, want, got)
}

func TestWriteRead_EmptyTable(t *testing.T) {
	in, err := domain.NewTable([]string{"gbifID", "kingdom"}, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, Write(path, in, parquet.CompressionCodec_SNAPPY))

	out, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"gbifID", "kingdom"}, out.Columns())
	assert.Zero(t, out.NumRows())
}

func TestWrite_NoColumns(t *testing.T) {
	in, err := domain.NewTable(nil, nil)
	require.NoError(t, err)
	require.Error(t, Write(filepath.Join(t.TempDir(), "x.parquet"), in, parquet.CompressionCodec_SNAPPY))
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.parquet"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSinkSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.parquet")
	in := cleanedTable(t)

	require.NoError(t, Sink{Path: path, Compression: parquet.CompressionCodec_SNAPPY}.Load(context.Background(), in))
	out, err := Source{Path: path}.Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, in.Row(1), out.Row(1))
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in   string
		want parquet.CompressionCodec
	}{
		{"", parquet.CompressionCodec_SNAPPY},
		{"snappy", parquet.CompressionCodec_SNAPPY},
		{"GZIP", parquet.CompressionCodec_GZIP},
		{"NONE", parquet.CompressionCodec_UNCOMPRESSED},
	}
	for _, tt := range tests {
		got, err := ParseCompression(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseCompression("lz4")
	require.Error(t, err)
}
