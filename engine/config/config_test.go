package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	data := `
[window]
title = "teapot"
width = 800

[detail]
initial = 6

[material]
shininess = 32.0
diffuse = [0.5, 0.5, 0.5, 1.0]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Window.Title != "teapot" || cfg.Window.Width != 800 {
		t.Errorf("window = %+v", cfg.Window)
	}
	if cfg.Window.Height != 512 {
		t.Errorf("unset height = %d, want default 512", cfg.Window.Height)
	}
	if cfg.Detail.Initial != 6 || cfg.Detail.Max != 20 {
		t.Errorf("detail = %+v", cfg.Detail)
	}
	if cfg.Material.Shininess != 32 || cfg.Material.Diffuse != [4]float32{0.5, 0.5, 0.5, 1} {
		t.Errorf("material = %+v", cfg.Material)
	}
	if cfg.Material.Ambient != [4]float32{1, 0, 1, 1} {
		t.Errorf("unset ambient = %v, want default", cfg.Material.Ambient)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Detail != Default().Detail {
		t.Errorf("detail = %+v, want defaults", cfg.Detail)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		invalid bool
	}{
		{"syntax", "[window\nwidth = 3", false},
		{"unknown key", "[window]\ndepth = 3", false},
		{"detail below two", "[detail]\nmin = 1\ninitial = 2", true},
		{"detail inverted", "[detail]\nmin = 8\nmax = 4\ninitial = 8", true},
		{"zero width", "[window]\nwidth = 0", true},
		{"far before near", "[camera]\nnear = 10.0\nfar = 5.0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Decode([]byte(tt.data), Default())
			if err == nil {
				t.Fatal("Decode() = nil, want an error")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Errorf("errors.Is(%v, ErrInvalid) = %v, want %v", err, got, tt.invalid)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Default().Encode()
	if err != nil {
		t.Fatalf("Encode() = %v", err)
	}
	if !strings.Contains(string(data), "[camera]") {
		t.Errorf("encoded config lacks a camera table:\n%s", data)
	}
	cfg := &Config{}
	if err := Decode(data, cfg); err != nil {
		t.Fatalf("Decode(Encode()) = %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("round trip changed the config:\n got %+v\nwant %+v", cfg, Default())
	}
}
