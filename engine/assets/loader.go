package assets

import (
	"io"

	"github.com/spaghettifunk/patchview/engine/assets/loaders"
	"github.com/spaghettifunk/patchview/engine/resources"
)

// Loader turns the contents of a model file into a Model.
type Loader interface {
	Load(path string, r io.Reader) (*resources.Model, error)
}

type BezierLoader struct{}

func (BezierLoader) Load(path string, r io.Reader) (*resources.Model, error) {
	surfaces, err := loaders.ParseBezier(r)
	if err != nil {
		return nil, err
	}
	return resources.NewSurfaceModel(path, surfaces), nil
}

type WavefrontLoader struct{}

func (WavefrontLoader) Load(path string, r io.Reader) (*resources.Model, error) {
	mesh, err := loaders.ParseWavefront(r)
	if err != nil {
		return nil, err
	}
	return resources.NewMeshModel(path, mesh), nil
}
