package components

import (
	"github.com/spaghettifunk/patchview/engine/config"
	"github.com/spaghettifunk/patchview/engine/math"
)

/**
 * @brief A camera orbiting a target point on a sphere. Theta turns around
 * the world Y axis, Phi is measured down from +Y, both in degrees.
 */
type OrbitCamera struct {
	Theta  float32
	Phi    float32
	Radius float32
	Target math.Vec3

	/** @brief Limits and projection parameters. */
	settings config.Camera
	/** @brief The pose Reset returns to. */
	home [3]float32

	/** @brief Internal flag used to determine when the view matrix needs to be rebuilt. */
	isDirty    bool
	viewMatrix math.Mat4
}

func NewOrbitCamera(settings config.Camera) *OrbitCamera {
	c := &OrbitCamera{
		settings: settings,
		home:     [3]float32{settings.Theta, settings.Phi, settings.Radius},
	}
	c.Reset()
	return c
}

// Reset returns to the home pose. The target is kept.
func (c *OrbitCamera) Reset() {
	c.Theta = math.Wrap(c.home[0], 360)
	c.Phi = math.Clamp(c.home[1], c.settings.Nadir, c.settings.Zenith)
	c.Radius = math.Clamp(c.home[2], c.settings.RMin, c.settings.RMax)
	c.isDirty = true
}

/**
 * @brief Aims the camera at the centre of ext and moves the home radius so
 * the whole box is in view. The current pose is reset.
 */
func (c *OrbitCamera) Frame(ext math.Extents3D) {
	c.Target = ext.Center()
	if r := ext.Radius(); r > 0 {
		// Distance at which a sphere of radius r fills the vertical field of view.
		half := math.DegToRad(c.settings.FovDegrees) * 0.5
		c.home[2] = r / math.Sin(half) * 1.1
	}
	c.Reset()
}

// Rotate adds dx degrees to theta and dy degrees to phi.
func (c *OrbitCamera) Rotate(dx, dy float32) {
	c.Theta = math.Wrap(c.Theta+dx, 360)
	c.Phi = math.Clamp(c.Phi+dy, c.settings.Nadir, c.settings.Zenith)
	c.isDirty = true
}

// ZoomIn moves 10% closer unless already at the minimum radius.
func (c *OrbitCamera) ZoomIn() bool {
	if c.Radius <= c.settings.RMin {
		return false
	}
	c.Radius = math.Clamp(c.Radius*0.9, c.settings.RMin, c.settings.RMax)
	c.isDirty = true
	return true
}

// ZoomOut moves 10% farther unless already at the maximum radius.
func (c *OrbitCamera) ZoomOut() bool {
	if c.Radius >= c.settings.RMax {
		return false
	}
	c.Radius = math.Clamp(c.Radius*1.1, c.settings.RMin, c.settings.RMax)
	c.isDirty = true
	return true
}

// Eye returns the camera position in world space.
func (c *OrbitCamera) Eye() math.Vec3 {
	p := math.DegToRad(c.Phi)
	t := math.DegToRad(c.Theta)
	sp := math.Sin(p)
	offset := math.NewVec3(c.Radius*sp*math.Sin(t), c.Radius*math.Cos(p), c.Radius*sp*math.Cos(t))
	return c.Target.Add(offset)
}

// Up returns the camera's up vector, perpendicular to the view direction and
// in the plane of world Y.
func (c *OrbitCamera) Up() math.Vec3 {
	forward := c.Target.Sub(c.Eye()).Normalize()
	side := forward.Cross(math.NewVec3Up()).Normalize()
	return side.Cross(forward).Normalize()
}

func (c *OrbitCamera) View() math.Mat4 {
	if c.isDirty {
		c.viewMatrix = math.NewMat4LookAt(c.Eye(), c.Target, c.Up())
		c.isDirty = false
	}
	return c.viewMatrix
}

func (c *OrbitCamera) Projection(aspect float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	// Keep the far plane behind the target when the model is large.
	far := max(c.settings.Far, c.Radius*2)
	return math.NewMat4Perspective(math.DegToRad(c.settings.FovDegrees), aspect, c.settings.Near, far)
}
