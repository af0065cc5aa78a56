package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"autoswing/market"
)

const cacheSubdir = "runtime/data_cache/daily"

var cacheHeader = []string{"date", "open", "high", "low", "close", "volume"}

// CachePath is the on-disk location of a symbol's daily bar cache.
func CachePath(root, symbol string) string {
	return filepath.Join(root, cacheSubdir, strings.ToUpper(symbol)+".csv")
}

// ReadDailyCache loads a symbol's cached bars, sorted ascending. A missing
// cache file returns nil, nil.
func ReadDailyCache(root, symbol string) (market.Series, error) {
	file, err := os.Open(CachePath(root, symbol))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read cache for %s: %w", symbol, err)
	}

	var series market.Series
	for i, row := range rows {
		if i == 0 || len(row) < len(cacheHeader) {
			continue
		}
		bar, err := parseBarRow(row)
		if err != nil {
			// Malformed cache line: treat as no data for that day.
			continue
		}
		series = append(series, bar)
	}
	series.Sort()
	return series, nil
}

// WriteDailyCache replaces a symbol's cache with the given bars.
func WriteDailyCache(root, symbol string, series market.Series) error {
	path := CachePath(root, symbol)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create cache for %s: %w", symbol, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(cacheHeader); err != nil {
		return err
	}
	for _, bar := range series {
		row := []string{
			bar.Date.Format("2006-01-02"),
			f(bar.Open), f(bar.High), f(bar.Low), f(bar.Close), f(bar.Volume),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// MergeWithCache merges freshly fetched bars over the existing cache,
// deduplicating by date with the new bar winning, and returns the combined
// sorted series.
func MergeWithCache(root, symbol string, fresh market.Series) (market.Series, error) {
	old, err := ReadDailyCache(root, symbol)
	if err != nil {
		return nil, err
	}

	byDate := make(map[time.Time]market.Bar, len(old)+len(fresh))
	for _, bar := range old {
		byDate[bar.Date] = bar
	}
	for _, bar := range fresh {
		byDate[bar.Date] = bar
	}

	merged := make(market.Series, 0, len(byDate))
	for _, bar := range byDate {
		merged = append(merged, bar)
	}
	merged.Sort()
	return merged, nil
}

func parseBarRow(row []string) (market.Bar, error) {
	var bar market.Bar
	var err error

	if bar.Date, err = time.Parse("2006-01-02", row[0]); err != nil {
		return bar, err
	}
	fields := []*float64{&bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume}
	for i, dst := range fields {
		if *dst, err = strconv.ParseFloat(row[i+1], 64); err != nil {
			return bar, err
		}
	}
	return bar, nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
