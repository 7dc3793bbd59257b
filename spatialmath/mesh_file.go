package spatialmath

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/golang/geo/r3"
)

// ErrMeshLoadFailed denotes a missing or malformed mesh file.
var ErrMeshLoadFailed = errors.New("mesh load failed")

// NewMeshFromOBJFile reads a Wavefront OBJ file and returns its triangle mesh. Faces with more
// than three vertices are fan-triangulated. Texture and normal indices are ignored.
func NewMeshFromOBJFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrMeshLoadFailed, "%s: %v", path, err)
	}
	defer f.Close() //nolint:errcheck

	label := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	mesh, err := readOBJ(label, f)
	if err != nil {
		return nil, errors.Wrapf(ErrMeshLoadFailed, "%s: %v", path, err)
	}
	return mesh, nil
}

func readOBJ(label string, r io.Reader) (*Mesh, error) {
	var vertices []r3.Vector
	var faces [][3]int

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, errors.Errorf("line %d: vertex with %d coordinates", lineNo, len(fields)-1)
			}
			var coords [3]float64
			for i := 0; i < 3; i++ {
				c, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", lineNo)
				}
				coords[i] = c
			}
			vertices = append(vertices, r3.Vector{X: coords[0], Y: coords[1], Z: coords[2]})
		case "f":
			if len(fields) < 4 {
				return nil, errors.Errorf("line %d: face with %d vertices", lineNo, len(fields)-1)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, field := range fields[1:] {
				i, err := parseOBJIndex(field, len(vertices))
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", lineNo)
				}
				idx = append(idx, i)
			}
			for i := 1; i < len(idx)-1; i++ {
				faces = append(faces, [3]int{idx[0], idx[i], idx[i+1]})
			}
		default:
			// vn, vt, o, g, usemtl and friends carry nothing the planner needs.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, errors.New("no faces")
	}
	return NewMesh(label, vertices, faces)
}

// parseOBJIndex resolves a face vertex reference ("7", "7/1", "7//2", "-1") to a zero-based
// vertex index.
func parseOBJIndex(field string, numVertices int) (int, error) {
	if slash := strings.IndexByte(field, '/'); slash >= 0 {
		field = field[:slash]
	}
	i, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}
	if i < 0 {
		i = numVertices + i
	} else {
		i--
	}
	if i < 0 || i >= numVertices {
		return 0, errors.Errorf("face index %s out of range", field)
	}
	return i, nil
}
