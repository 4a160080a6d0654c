package renderer

import (
	"github.com/spaghettifunk/patchview/engine/config"
	"github.com/spaghettifunk/patchview/engine/math"
)

/** @brief A point light. Colours are RGBA, Position is homogeneous. */
type Light struct {
	Position math.Vec4
	Ambient  math.Vec4
	Diffuse  math.Vec4
	Specular math.Vec4
}

/** @brief The surface reflectance used for every model. */
type Material struct {
	Ambient   math.Vec4
	Diffuse   math.Vec4
	Specular  math.Vec4
	Shininess float32
}

func LightFromConfig(c config.Light) Light {
	return Light{
		Position: config.Vec4(c.Position),
		Ambient:  config.Vec4(c.Ambient),
		Diffuse:  config.Vec4(c.Diffuse),
		Specular: config.Vec4(c.Specular),
	}
}

func MaterialFromConfig(c config.Material) Material {
	return Material{
		Ambient:   config.Vec4(c.Ambient),
		Diffuse:   config.Vec4(c.Diffuse),
		Specular:  config.Vec4(c.Specular),
		Shininess: c.Shininess,
	}
}

/**
 * @brief Evaluates Blinn-Phong lighting at a vertex, in world space. The
 * result is clamped to [0, 1] with alpha 1. The GLSL vertex shader computes
 * the same thing.
 *
 * @param position The vertex position.
 * @param normal The unit vertex normal.
 * @param eye The camera position.
 */
func Shade(light Light, material Material, position, normal, eye math.Vec3) math.Vec4 {
	l := light.Position.ToVec3().Sub(position).Normalize()
	e := eye.Sub(position).Normalize()
	h := l.Add(e).Normalize()

	ambient := light.Ambient.Mul(material.Ambient)

	kd := max(l.Dot(normal), 0)
	diffuse := light.Diffuse.Mul(material.Diffuse).MulScalar(kd)

	var specular math.Vec4
	if kd > 0 {
		ks := math.Pow(max(normal.Dot(h), 0), material.Shininess)
		specular = light.Specular.Mul(material.Specular).MulScalar(ks)
	}

	c := ambient.Add(diffuse).Add(specular)
	return math.NewVec4(
		math.Clamp(c.X, 0, 1),
		math.Clamp(c.Y, 0, 1),
		math.Clamp(c.Z, 0, 1),
		1.0,
	)
}
