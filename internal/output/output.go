// Package output renders finalized query results as coordinate lines.
//
// The wire format is one point per line, "<x> <y>", ordered ascending by
// y, then x, then id. Coordinates print in their shortest round-trip form,
// so integral values carry no decimal point.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Kangyi02/DaoAI-assessment/internal/eval"
	"github.com/Kangyi02/DaoAI-assessment/internal/inspection"
)

// Finalize materializes a result set in output order.
func Finalize(rs *eval.ResultSet) []inspection.Point {
	pts := rs.Points()
	inspection.SortPoints(pts)
	return pts
}

// WritePoints writes one coordinate line per point, in slice order.
func WritePoints(w io.Writer, pts []inspection.Point) error {
	bw := bufio.NewWriter(w)
	for _, p := range pts {
		bw.WriteString(formatCoord(p.X))
		bw.WriteByte(' ')
		bw.WriteString(formatCoord(p.Y))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteFile renders pts to path, creating or truncating the file. An empty
// result produces an empty file.
func WriteFile(path string, pts []inspection.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WritePoints(f, pts); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
