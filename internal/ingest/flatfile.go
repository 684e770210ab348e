package ingest

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Kangyi02/DaoAI-assessment/internal/inspection"
	"github.com/Kangyi02/DaoAI-assessment/internal/store"
)

// File names LoadDir expects inside the data directory.
const (
	pointsFile     = "points.txt"
	categoriesFile = "categories.txt"
	groupsFile     = "groups.txt"
)

// LoadDir reads the three aligned text files in dir and writes the dataset
// to s. points.txt carries "x y" per line, categories.txt one integer per
// line, groups.txt one group id per line. Blank lines are skipped; after
// that the three sequences must have equal length. Ids are assigned
// 1-based in sequence order.
func LoadDir(ctx context.Context, s store.Store, dir string, opts *Options) (*Result, error) {
	coords, err := readCoordFile(filepath.Join(dir, pointsFile))
	if err != nil {
		return nil, err
	}
	categories, err := readIntFile(filepath.Join(dir, categoriesFile))
	if err != nil {
		return nil, err
	}
	groups, err := readIntFile(filepath.Join(dir, groupsFile))
	if err != nil {
		return nil, err
	}

	if len(coords) != len(categories) || len(coords) != len(groups) {
		return nil, fmt.Errorf("aligned files disagree: %d points, %d categories, %d groups",
			len(coords), len(categories), len(groups))
	}

	pts := make([]inspection.Point, len(coords))
	for i, c := range coords {
		pts[i] = inspection.Point{
			ID:       int64(i + 1),
			GroupID:  groups[i],
			X:        c.x,
			Y:        c.y,
			Category: int(categories[i]),
		}
	}
	return writePoints(ctx, s, pts, opts.batchSize())
}

type coord struct {
	x, y float64
}

func readCoordFile(path string) ([]coord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var out []coord
	sc := bufio.NewScanner(f)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s:%d: want \"x y\", got %q", path, lineno, line)
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: parse x: %w", path, lineno, err)
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: parse y: %w", path, lineno, err)
		}
		out = append(out, coord{x, y})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

func readIntFile(path string) ([]int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var out []int64
	sc := bufio.NewScanner(f)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineno, err)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}
