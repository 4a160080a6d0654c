// Package opengl draws triangle soups with an OpenGL 4.1 core context. The
// context must be current on the calling thread before Initialize.
package opengl

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/spaghettifunk/patchview/engine/bezier"
	"github.com/spaghettifunk/patchview/engine/core"
	"github.com/spaghettifunk/patchview/engine/math"
	"github.com/spaghettifunk/patchview/engine/renderer"
)

const vec4Size = int(unsafe.Sizeof(math.Vec4{}))

// bufferLayout returns the byte size of a buffer holding n positions followed
// by n normals, and the byte offset of the normals.
func bufferLayout(n int) (size, normalOffset int) {
	return 2 * vec4Size * n, vec4Size * n
}

type Backend struct {
	program  uint32
	vao      uint32
	vbo      uint32
	uniforms map[string]int32

	posAttrib  uint32
	normAttrib uint32

	// capacity is the vertex count the buffer storage was specified for.
	capacity    int
	vertexCount int32

	width  uint32
	height uint32
}

func New() *Backend {
	return &Backend{uniforms: make(map[string]int32, len(uniformNames))}
}

func (b *Backend) Initialize(appName string, appWidth, appHeight uint32) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("initializing OpenGL: %w", err)
	}
	core.LogInfo("OpenGL %s, GLSL %s", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)))

	program, err := newProgram(vertexShaderSource, fragmentShaderSource)
	if err != nil {
		return err
	}
	b.program = program
	gl.UseProgram(program)

	for _, name := range uniformNames {
		loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
		if loc < 0 {
			core.LogWarn("uniform %s not active in the shader", name)
		}
		b.uniforms[name] = loc
	}
	pos := gl.GetAttribLocation(program, gl.Str(positionAttrib+"\x00"))
	norm := gl.GetAttribLocation(program, gl.Str(normalAttrib+"\x00"))
	if pos < 0 || norm < 0 {
		return fmt.Errorf("vertex attributes missing: %s=%d %s=%d", positionAttrib, pos, normalAttrib, norm)
	}
	b.posAttrib, b.normAttrib = uint32(pos), uint32(norm)

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.EnableVertexAttribArray(b.posAttrib)
	gl.EnableVertexAttribArray(b.normAttrib)

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(1.0, 1.0, 1.0, 1.0)

	return b.Resized(appWidth, appHeight)
}

func (b *Backend) Shutdown() error {
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	gl.DeleteProgram(b.program)
	return nil
}

func (b *Backend) Resized(width, height uint32) error {
	b.width, b.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
	return nil
}

// UploadGeometry copies the soup into the vertex buffer. Storage is
// re-specified only when the vertex count changes.
func (b *Backend) UploadGeometry(soup bezier.Soup) error {
	n := soup.Len()
	if len(soup.Normals) != n {
		return fmt.Errorf("%w: %d positions, %d normals", bezier.ErrGridMismatch, n, len(soup.Normals))
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)

	size, normalOffset := bufferLayout(n)
	if n != b.capacity {
		gl.BufferData(gl.ARRAY_BUFFER, size, nil, gl.STATIC_DRAW)
		gl.VertexAttribPointer(b.posAttrib, 4, gl.FLOAT, false, 0, gl.PtrOffset(0))
		gl.VertexAttribPointer(b.normAttrib, 4, gl.FLOAT, false, 0, gl.PtrOffset(normalOffset))
		b.capacity = n
	}
	if n > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, normalOffset, gl.Ptr(soup.Positions))
		gl.BufferSubData(gl.ARRAY_BUFFER, normalOffset, normalOffset, gl.Ptr(soup.Normals))
	}
	b.vertexCount = int32(n)
	return nil
}

func (b *Backend) BeginFrame(deltaTime float64) error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	return nil
}

func (b *Backend) DrawFrame(packet *renderer.RenderPacket) error {
	gl.UseProgram(b.program)

	// Row-vector matrices read column-major are already the transposes GLSL wants.
	gl.UniformMatrix4fv(b.uniforms["ctm"], 1, false, &packet.View.Data[0])
	gl.UniformMatrix4fv(b.uniforms["ptm"], 1, false, &packet.Projection.Data[0])

	eye := packet.ViewPosition.ToVec4(1.0)
	gl.Uniform4fv(b.uniforms["view_pos"], 1, &eye.X)
	b.uniform4(&packet.Light.Position, "light_pos")
	b.uniform4(&packet.Light.Ambient, "light_ambi")
	b.uniform4(&packet.Light.Diffuse, "light_diff")
	b.uniform4(&packet.Light.Specular, "light_spec")
	b.uniform4(&packet.Material.Ambient, "material_ambi")
	b.uniform4(&packet.Material.Diffuse, "material_diff")
	b.uniform4(&packet.Material.Specular, "material_spec")
	gl.Uniform1f(b.uniforms["material_shin"], packet.Material.Shininess)

	if b.vertexCount > 0 {
		gl.BindVertexArray(b.vao)
		gl.DrawArrays(gl.TRIANGLES, 0, b.vertexCount)
	}
	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		return fmt.Errorf("OpenGL error 0x%x", errCode)
	}
	return nil
}

func (b *Backend) uniform4(v *math.Vec4, name string) {
	gl.Uniform4fv(b.uniforms[name], 1, &v.X)
}

// EndFrame is a no-op; the platform swaps buffers.
func (b *Backend) EndFrame(deltaTime float64) error {
	return nil
}
