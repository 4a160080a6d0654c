package opengl

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	ErrShaderCompile = errors.New("shader compilation failed")
	ErrProgramLink   = errors.New("program link failed")
)

//go:embed shaders/blinn_phong.vert.glsl
var vertexShaderSource string

//go:embed shaders/passthrough.frag.glsl
var fragmentShaderSource string

// uniformNames lists every uniform the backend sets each frame.
var uniformNames = []string{
	"ctm", "ptm",
	"view_pos",
	"light_pos", "light_ambi", "light_diff", "light_spec",
	"material_ambi", "material_diff", "material_spec", "material_shin",
}

const (
	positionAttrib = "vPosition"
	normalAttrib   = "vNorm"
)

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%w: %s", ErrShaderCompile, strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}

func newProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("%w: %s", ErrProgramLink, strings.TrimRight(log, "\x00"))
	}
	return program, nil
}
