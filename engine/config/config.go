// Package config loads the viewer settings from a TOML file layered over
// built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/patchview/engine/core"
	"github.com/spaghettifunk/patchview/engine/math"
)

var ErrInvalid = errors.New("invalid config")

type Window struct {
	Title  string `toml:"title"`
	X      uint32 `toml:"x"`
	Y      uint32 `toml:"y"`
	Width  uint32 `toml:"width"`
	Height uint32 `toml:"height"`
}

type Log struct {
	Level string `toml:"level"`
}

// Detail bounds the coarseness the viewer tessellates with.
type Detail struct {
	Min     int `toml:"min"`
	Max     int `toml:"max"`
	Initial int `toml:"initial"`
}

// Camera holds the orbit camera start pose and limits. Angles are in degrees.
type Camera struct {
	Theta      float32 `toml:"theta"`
	Phi        float32 `toml:"phi"`
	Radius     float32 `toml:"radius"`
	RMin       float32 `toml:"r_min"`
	RMax       float32 `toml:"r_max"`
	Nadir      float32 `toml:"nadir"`
	Zenith     float32 `toml:"zenith"`
	FovDegrees float32 `toml:"fov"`
	Near       float32 `toml:"near"`
	Far        float32 `toml:"far"`
}

type Light struct {
	Position [4]float32 `toml:"position"`
	Ambient  [4]float32 `toml:"ambient"`
	Diffuse  [4]float32 `toml:"diffuse"`
	Specular [4]float32 `toml:"specular"`
}

type Material struct {
	Ambient   [4]float32 `toml:"ambient"`
	Diffuse   [4]float32 `toml:"diffuse"`
	Specular  [4]float32 `toml:"specular"`
	Shininess float32    `toml:"shininess"`
}

// Snapshot sizes the image written by headless rendering.
type Snapshot struct {
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	Caption bool   `toml:"caption"`
	Output  string `toml:"output"`
}

type Config struct {
	Window   Window   `toml:"window"`
	Log      Log      `toml:"log"`
	Detail   Detail   `toml:"detail"`
	Camera   Camera   `toml:"camera"`
	Light    Light    `toml:"light"`
	Material Material `toml:"material"`
	Snapshot Snapshot `toml:"snapshot"`
}

// Default returns the settings the viewer runs with when no file is given.
func Default() *Config {
	return &Config{
		Window: Window{Title: "patchview", X: 100, Y: 100, Width: 512, Height: 512},
		Log:    Log{Level: "info"},
		Detail: Detail{Min: 2, Max: 20, Initial: 2},
		Camera: Camera{
			Theta: 0, Phi: 90, Radius: 5,
			RMin: 2, RMax: 50,
			Nadir: 5, Zenith: 175,
			FovDegrees: 40, Near: 1, Far: 50,
		},
		Light: Light{
			Position: [4]float32{100, 100, 100, 1},
			Ambient:  [4]float32{0.2, 0.2, 0.2, 1},
			Diffuse:  [4]float32{1, 1, 1, 1},
			Specular: [4]float32{1, 1, 1, 1},
		},
		Material: Material{
			Ambient:   [4]float32{1, 0, 1, 1},
			Diffuse:   [4]float32{1, 0.8, 0, 1},
			Specular:  [4]float32{1, 0.8, 0, 1},
			Shininess: 100,
		},
		Snapshot: Snapshot{Width: 512, Height: 512, Caption: true},
	}
}

// Load reads path over the defaults. A missing file is not an error: the
// defaults are returned and a warning is logged. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogWarn("config file %s not found, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays TOML data on cfg and validates the result. Unknown keys are
// rejected so typos do not go unnoticed.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("line %d, column %d: %w", row, col, err)
		}
		return err
	}
	return cfg.Validate()
}

// Encode writes cfg as TOML. `patchview -dump-config` uses it to print a
// starting file.
func (c *Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Config) Validate() error {
	switch {
	case c.Detail.Min < 2:
		return fmt.Errorf("%w: detail.min %d is below 2", ErrInvalid, c.Detail.Min)
	case c.Detail.Max < c.Detail.Min:
		return fmt.Errorf("%w: detail.max %d is below detail.min %d", ErrInvalid, c.Detail.Max, c.Detail.Min)
	case c.Detail.Initial < c.Detail.Min || c.Detail.Initial > c.Detail.Max:
		return fmt.Errorf("%w: detail.initial %d is outside [%d, %d]", ErrInvalid, c.Detail.Initial, c.Detail.Min, c.Detail.Max)
	case c.Window.Width == 0 || c.Window.Height == 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0:
		return fmt.Errorf("%w: snapshot size %dx%d", ErrInvalid, c.Snapshot.Width, c.Snapshot.Height)
	case c.Camera.RMin <= 0 || c.Camera.RMax < c.Camera.RMin:
		return fmt.Errorf("%w: camera radius range [%v, %v]", ErrInvalid, c.Camera.RMin, c.Camera.RMax)
	case c.Camera.Nadir < 0 || c.Camera.Zenith > 180 || c.Camera.Zenith < c.Camera.Nadir:
		return fmt.Errorf("%w: camera phi range [%v, %v]", ErrInvalid, c.Camera.Nadir, c.Camera.Zenith)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: clip planes near=%v far=%v", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}
	return nil
}

// Vec4 converts a TOML colour or position array.
func Vec4(a [4]float32) math.Vec4 {
	return math.NewVec4(a[0], a[1], a[2], a[3])
}
