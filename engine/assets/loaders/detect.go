package loaders

import (
	"bufio"
	"io"
	"strings"
)

// Kind is the on-disk format of a model file.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindWavefront is a triangle mesh in the Wavefront OBJ subset (v and f).
	KindWavefront
	// KindBezier is a list of tensor-product Bezier patches.
	KindBezier
)

func (k Kind) String() string {
	switch k {
	case KindWavefront:
		return "wavefront"
	case KindBezier:
		return "bezier"
	default:
		return "unknown"
	}
}

// DetectKind sniffs the format from the first line that is neither blank nor a
// comment. A Wavefront statement keyword (v, f, o, mtllib, ...) means
// Wavefront; anything else, normally the patch count, is taken to be a Bezier
// patch file.
func DetectKind(r io.Reader) (Kind, error) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] == "v" || fields[0] == "f" || ignoredWavefront[fields[0]] {
			return KindWavefront, nil
		}
		return KindBezier, nil
	}
	if err := sc.Err(); err != nil {
		return KindUnknown, err
	}
	return KindUnknown, ErrEmptyModel
}
