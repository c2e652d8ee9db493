package objmodel

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// FileLoader loads Wavefront OBJ meshes from the filesystem. It is the
// default loader used by the tracker builder; only vertex and face
// records are consumed, everything else in the file is skipped.
type FileLoader struct{}

func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

func (l *FileLoader) Load(ri ResourceIdentifier) (*ObjectModel, error) {
	if ri.Count() == 0 {
		return nil, fmt.Errorf("objmodel: resource identifier names no meshes")
	}
	bodies := make([]Body, 0, ri.Count())
	for i := 0; i < ri.Count(); i++ {
		body, err := loadOBJ(ri.MeshPath(i))
		if err != nil {
			return nil, fmt.Errorf("objmodel: load %s: %w", ri.Meshes[i], err)
		}
		body.Name = ri.Meshes[i]
		bodies = append(bodies, body)
	}
	return &ObjectModel{bodies: bodies}, nil
}

func loadOBJ(path string) (Body, error) {
	var body Body

	f, err := os.Open(path)
	if err != nil {
		return body, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return body, fmt.Errorf("line %d: vertex needs 3 coordinates", line)
			}
			var p [3]float64
			for k := 0; k < 3; k++ {
				p[k], err = strconv.ParseFloat(fields[k+1], 64)
				if err != nil {
					return body, fmt.Errorf("line %d: %w", line, err)
				}
			}
			body.Vertices = append(body.Vertices, p)
		case "f":
			if len(fields) < 4 {
				return body, fmt.Errorf("line %d: face needs 3 vertices", line)
			}
			// Fan-triangulate polygons; indices are 1-based and may
			// carry /texture/normal suffixes.
			idx := make([]int, len(fields)-1)
			for k, fv := range fields[1:] {
				idx[k], err = parseFaceIndex(fv, len(body.Vertices))
				if err != nil {
					return body, fmt.Errorf("line %d: %w", line, err)
				}
			}
			for k := 1; k+1 < len(idx); k++ {
				body.Triangles = append(body.Triangles, [3]int{idx[0], idx[k], idx[k+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return body, err
	}
	if len(body.Vertices) == 0 {
		return body, fmt.Errorf("no vertices found")
	}
	return body, nil
}

func parseFaceIndex(field string, vertexCount int) (int, error) {
	if i := strings.IndexByte(field, '/'); i >= 0 {
		field = field[:i]
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = vertexCount + n + 1
	}
	if n < 1 || n > vertexCount {
		return 0, fmt.Errorf("face index %d out of range", n)
	}
	return n - 1, nil
}
