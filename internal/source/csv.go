package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"leadlag-go/internal/config"
	"leadlag-go/internal/series"
)

// CSV loads two files of timestamp,value rows. A non-numeric first row is treated as a header.
type CSV struct {
	xPath      string
	yPath      string
	assumedLag int
}

// NewCSV builds a file-backed provider.
func NewCSV(cfg config.CSV, assumedLag int) *CSV {
	return &CSV{xPath: cfg.XPath, yPath: cfg.YPath, assumedLag: assumedLag}
}

// Name returns the provider identifier.
func (c *CSV) Name() string { return ProviderCSV }

// Load reads both files.
func (c *CSV) Load(ctx context.Context) (Dataset, error) {
	x, err := readSeries(ctx, c.xPath)
	if err != nil {
		return Dataset{}, err
	}
	y, err := readSeries(ctx, c.yPath)
	if err != nil {
		return Dataset{}, err
	}
	ds := Dataset{
		X:          x,
		Y:          y,
		Symbols:    [2]string{label(c.xPath), label(c.yPath)},
		AssumedLag: c.assumedLag,
	}
	return ds, ds.validate()
}

func readSeries(ctx context.Context, path string) (series.Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return series.Series{}, fmt.Errorf("open series: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true

	var ts, vals []float64
	for row := 0; ; row++ {
		if row%4096 == 0 && ctx.Err() != nil {
			return series.Series{}, ctx.Err()
		}
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return series.Series{}, fmt.Errorf("read %s: %w", path, err)
		}
		t, tsErr := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		v, valErr := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if tsErr != nil || valErr != nil {
			if row == 0 {
				continue
			}
			return series.Series{}, fmt.Errorf("parse %s row %d: %q", path, row+1, rec)
		}
		ts = append(ts, t)
		vals = append(vals, v)
	}
	s, err := series.New(vals, ts)
	if err != nil {
		return series.Series{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func label(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
