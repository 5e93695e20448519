package frame

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Validation(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)

	_, err = New([]string{"a", "b"}, [][]string{{"1"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 0")

	f, err := New([]string{"a", "b"}, [][]string{{"1", "2"}})
	require.NoError(t, err)
	assert.Equal(t, 1, f.Len())
}

func TestReadCSV(t *testing.T) {
	in := "sepal_length,sepal_width,species\n5.1,3.5,setosa\n6.2,2.9,versicolor\n"

	f, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"sepal_length", "sepal_width", "species"}, f.Columns)
	assert.Equal(t, 2, f.Len())
	assert.Equal(t, []string{"6.2", "2.9", "versicolor"}, f.Records[1])
}

func TestReadCSV_Empty(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty CSV input")
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	f, err := New([]string{"a", "b"}, [][]string{{"1", "x"}, {"2", "y"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.WriteCSV(&buf))

	back, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, f.Columns, back.Columns)
	assert.Equal(t, f.Records, back.Records)
}

func TestLoadCSVFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	f, err := LoadCSVFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, f.Columns)
	assert.Equal(t, 1, f.Len())

	_, err = LoadCSVFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestWriteParquet(t *testing.T) {
	f, err := New([]string{"a", "b"}, [][]string{{"1", "x"}, {"2", "y"}})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.WriteParquet(&buf))

	// Parquet files open and close with the PAR1 magic.
	out := buf.Bytes()
	require.Greater(t, len(out), 8)
	assert.Equal(t, "PAR1", string(out[:4]))
	assert.Equal(t, "PAR1", string(out[len(out)-4:]))
}

func TestWriteParquet_EmptyFrame(t *testing.T) {
	f, err := New([]string{"a"}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, f.WriteParquet(&buf))
	assert.Greater(t, buf.Len(), 0)
}
