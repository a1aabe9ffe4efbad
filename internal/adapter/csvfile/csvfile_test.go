package csvfile

import (
	"bytes"
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	in := "\ufeffgbifID,countryCode,locality\n1,CA,\"Mount Royal, Montreal\"\n2,,\n3,US\n"

	tbl, err := Read(strings.NewReader(in), ',')
	require.NoError(t, err)

	assert.Equal(t, []string{"gbifID", "countryCode", "locality"}, tbl.Columns())
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, domain.Text("Mount Royal, Montreal"), tbl.Cell(0, "locality"))
	assert.Equal(t, domain.Absent(), tbl.Cell(1, "countryCode"))
	assert.Equal(t, domain.Absent(), tbl.Cell(2, "locality"), "short row is padded")
}

func TestRead_NATokensStayText(t *testing.T) {
	tbl, err := Read(strings.NewReader("countryCode,stateProvince,elevation\nNA,None,NaN\nnull,nan,\n"), ',')
	require.NoError(t, err)

	assert.Equal(t, domain.Text("NA"), tbl.Cell(0, "countryCode"))
	assert.Equal(t, domain.Text("None"), tbl.Cell(0, "stateProvince"))
	assert.Equal(t, domain.Text("NaN"), tbl.Cell(0, "elevation"))
	assert.Equal(t, domain.Text("null"), tbl.Cell(1, "countryCode"))
	assert.Equal(t, domain.Text("nan"), tbl.Cell(1, "stateProvince"))
	assert.Equal(t, domain.Absent(), tbl.Cell(1, "elevation"))
}

func TestRead_TabDelimited(t *testing.T) {
	tbl, err := Read(strings.NewReader("a\tb\nx\ty\n"), '\t')
	require.NoError(t, err)
	assert.Equal(t, domain.Text("y"), tbl.Cell(0, "b"))
}

func TestRead_Malformed(t *testing.T) {
	tests := map[string]string{
		"empty input":   "",
		"long row":      "a,b\n1,2,3\n",
		"bare quote":    "a\n\"unterminated\n",
		"duplicate col": "a,a\n1,2\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(in), ',')
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), ',')
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	tbl, err := domain.NewTable([]string{"gbifID", "stateProvince", "note"}, [][]domain.Cell{
		{domain.Text("1"), domain.Text("Quebec"), domain.Text("has \"quotes\"\nand newline")},
		{domain.Text("2"), domain.Absent(), domain.Text("x")},
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	sink := Sink{Path: path, Delimiter: ','}
	require.NoError(t, sink.Load(context.Background(), tbl))

	got, err := Source{Path: path, Delimiter: ','}.Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tbl.Columns(), got.Columns())
	for r := 0; r < tbl.NumRows(); r++ {
		assert.Equal(t, tbl.Row(r), got.Row(r))
	}
}

func TestWrite_AbsentIsEmptyField(t *testing.T) {
	tbl, err := domain.NewTable([]string{"a", "b"}, [][]domain.Cell{{domain.Absent(), domain.Text("x")}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, tbl, ','))
	assert.Equal(t, "a,b\n,x\n", buf.String())
}

func TestSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Source{Path: "unused.csv", Delimiter: ','}.Extract(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
