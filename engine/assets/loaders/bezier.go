package loaders

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spaghettifunk/patchview/engine/bezier"
)

// lineReader hands out the meaningful lines of a file along with their
// 1-based line numbers. Blank lines and `#` comments are skipped.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{sc: bufio.NewScanner(r)}
}

func (lr *lineReader) next() ([]string, error) {
	for lr.sc.Scan() {
		lr.line++
		fields := strings.Fields(lr.sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		return fields, nil
	}
	if err := lr.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func (lr *lineReader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %w", lr.line, fmt.Errorf(format, args...))
}

// ParseBezier reads a patch file: the surface count on the first line, then for
// each surface a `u v` degree line followed by v+1 rows of u+1 xyz triples.
func ParseBezier(r io.Reader) ([]*bezier.Surface, error) {
	lr := newLineReader(r)

	fields, err := lr.next()
	if err == io.EOF {
		return nil, ErrEmptyModel
	}
	if err != nil {
		return nil, err
	}
	count, err := parseInts(fields, 1)
	if err != nil {
		return nil, lr.errorf("surface count: %w", err)
	}
	if count[0] < 0 {
		return nil, lr.errorf("%w: negative surface count %d", ErrSyntax, count[0])
	}

	surfaces := make([]*bezier.Surface, 0, count[0])
	for s := 0; s < count[0]; s++ {
		fields, err := lr.next()
		if err == io.EOF {
			return nil, fmt.Errorf("surface %d: %w: missing degree line, file declares %d surfaces", s, ErrSyntax, count[0])
		}
		if err != nil {
			return nil, err
		}
		deg, err := parseInts(fields, 2)
		if err != nil {
			return nil, lr.errorf("surface %d degrees: %w", s, err)
		}
		uDeg, vDeg := deg[0], deg[1]
		if uDeg < 1 || vDeg < 1 || uDeg > bezier.MaxDegree || vDeg > bezier.MaxDegree {
			return nil, lr.errorf("surface %d: %w: degree %dx%d outside [1, %d]", s, ErrSyntax, uDeg, vDeg, bezier.MaxDegree)
		}

		coords := make([]float64, 0, 3*(uDeg+1)*(vDeg+1))
		for row := 0; row <= vDeg; row++ {
			fields, err := lr.next()
			if err == io.EOF {
				return nil, fmt.Errorf("surface %d: %w: missing control row %d", s, ErrSyntax, row)
			}
			if err != nil {
				return nil, err
			}
			values, err := parseFloats(fields, 3*(uDeg+1))
			if err != nil {
				return nil, lr.errorf("surface %d row %d: %w", s, row, err)
			}
			coords = append(coords, values...)
		}

		surface, err := bezier.NewSurface(uDeg, vDeg, coords)
		if err != nil {
			return nil, lr.errorf("surface %d: %w", s, err)
		}
		surfaces = append(surfaces, surface)
	}
	return surfaces, nil
}

func parseInts(fields []string, want int) ([]int, error) {
	if len(fields) != want {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrSyntax, len(fields), want)
	}
	out := make([]int, want)
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrSyntax, f)
		}
		out[i] = n
	}
	return out, nil
}

func parseFloats(fields []string, want int) ([]float64, error) {
	if len(fields) != want {
		return nil, fmt.Errorf("%w: got %d values, want %d", ErrSyntax, len(fields), want)
	}
	out := make([]float64, want)
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrSyntax, f)
		}
		out[i] = x
	}
	return out, nil
}
