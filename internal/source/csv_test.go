package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadlag-go/internal/config"
	"leadlag-go/internal/series"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestCSVLoad(t *testing.T) {
	dir := t.TempDir()
	x := writeFile(t, dir, "btc.csv", "timestamp,price\n0,100\n1.5,101\n3,100.5\n")
	y := writeFile(t, dir, "eth.csv", "0.5, 10\n2, 11\n")

	ds, err := NewCSV(config.CSV{XPath: x, YPath: y}, 12).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1.5, 3}, ds.X.Timestamps)
	assert.Equal(t, []float64{100, 101, 100.5}, ds.X.Values)
	assert.Equal(t, []float64{0.5, 2}, ds.Y.Timestamps)
	assert.Equal(t, [2]string{"btc", "eth"}, ds.Symbols)
	assert.Equal(t, 12, ds.AssumedLag)
}

func TestCSVRejectsBadRows(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.csv", "0,1\n1,2\n")
	bad := writeFile(t, dir, "bad.csv", "0,1\n1,abc\n")
	_, err := NewCSV(config.CSV{XPath: good, YPath: bad}, 1).Load(context.Background())
	assert.Error(t, err)

	unsorted := writeFile(t, dir, "unsorted.csv", "0,1\n2,2\n1,3\n")
	_, err = NewCSV(config.CSV{XPath: good, YPath: unsorted}, 1).Load(context.Background())
	assert.ErrorIs(t, err, series.ErrUnsortedTimestamps)
	assert.Contains(t, err.Error(), "unsorted.csv")

	single := writeFile(t, dir, "single.csv", "timestamp,price\n0,1\n")
	_, err = NewCSV(config.CSV{XPath: single, YPath: good}, 1).Load(context.Background())
	assert.ErrorIs(t, err, series.ErrDegenerateSeries)

	_, err = NewCSV(config.CSV{XPath: filepath.Join(dir, "missing.csv"), YPath: good}, 1).Load(context.Background())
	assert.Error(t, err)
}
