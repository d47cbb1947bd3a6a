package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/facet/pkg/math3d"
)

var (
	// ErrMalformedNumber is returned for a vertex coordinate or face index
	// that does not parse as a number.
	ErrMalformedNumber = errors.New("malformed numeric token")
	// ErrShortVertex is returned for a "v" line with fewer than 3 coordinates.
	ErrShortVertex = errors.New("vertex needs 3 coordinates")
)

// ParseError locates a load failure within a mesh file.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// LoadOBJ reads a Wavefront OBJ file. Any read or parse failure is fatal;
// no partial mesh is returned.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// ParseOBJ parses "v" and "f" statements from r. Face tokens may carry
// "/"-separated texture and normal indices; only the vertex index is kept.
// File indices are 1-based; negative indices count back from the most
// recent vertex. Everything else in the file is ignored.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	mesh := NewMesh("")
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVertex(fields[1:])
			if err != nil {
				return nil, &ParseError{Line: line, Err: err}
			}
			mesh.Vertices = append(mesh.Vertices, v)
		case "f":
			face, err := parseFace(fields[1:], len(mesh.Vertices))
			if err != nil {
				return nil, &ParseError{Line: line, Err: err}
			}
			mesh.Faces = append(mesh.Faces, face)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	mesh.CalculateBounds()

	return mesh, nil
}

func parseVertex(tokens []string) (math3d.Vec3, error) {
	if len(tokens) < 3 {
		return math3d.Vec3{}, fmt.Errorf("got %d: %w", len(tokens), ErrShortVertex)
	}
	var c [3]float64
	for i := range c {
		f, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return math3d.Vec3{}, fmt.Errorf("coordinate %q: %w", tokens[i], ErrMalformedNumber)
		}
		c[i] = f
	}
	return math3d.V3(c[0], c[1], c[2]), nil
}

// parseFace converts face tokens to 0-based indices. seen is the number of
// vertices defined so far, used to resolve negative indices.
func parseFace(tokens []string, seen int) (Face, error) {
	face := make(Face, 0, len(tokens))
	for _, tok := range tokens {
		head, _, _ := strings.Cut(tok, "/")
		n, err := strconv.Atoi(head)
		if err != nil {
			return nil, fmt.Errorf("index %q: %w", tok, ErrMalformedNumber)
		}
		var idx int
		switch {
		case n > 0:
			idx = n - 1
		case n < 0:
			idx = seen + n
			if idx < 0 {
				return nil, fmt.Errorf("relative index %d with %d vertices: %w", n, seen, ErrIndexRange)
			}
		default:
			return nil, fmt.Errorf("index 0: %w", ErrIndexRange)
		}
		face = append(face, idx)
	}
	return face, nil
}
