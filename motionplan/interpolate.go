package motionplan

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// InterpolatePath subdivides each consecutive waypoint pair into uniform samples no further
// than step apart in configuration space. Collision is not re-checked; every segment of a
// planned path is already certified free.
func InterpolatePath(path [][]float64, step float64) [][]float64 {
	if len(path) < 2 || step <= 0 {
		return path
	}
	out := make([][]float64, 0, len(path))
	for i := 0; i+1 < len(path); i++ {
		from, to := path[i], path[i+1]
		n := int(math.Ceil(configDistance(from, to) / step))
		if n < 1 {
			n = 1
		}
		diff := make([]float64, len(from))
		floats.SubTo(diff, to, from)
		for j := 0; j < n; j++ {
			sample := make([]float64, len(from))
			floats.AddScaledTo(sample, from, float64(j)/float64(n), diff)
			out = append(out, sample)
		}
	}
	out = append(out, cloneConfig(path[len(path)-1]))
	return out
}

// WritePath writes one configuration per line, comma-separated, the format the external
// scene renderer consumes.
func WritePath(w io.Writer, path [][]float64) error {
	for _, q := range path {
		fields := make([]string, len(q))
		for i, v := range q {
			fields[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
			return err
		}
	}
	return nil
}
