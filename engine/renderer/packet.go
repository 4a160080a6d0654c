package renderer

import "github.com/spaghettifunk/patchview/engine/math"

/** @brief Everything a backend needs to draw one frame. */
type RenderPacket struct {
	DeltaTime float64
	/** @brief World to view transform (row-vector convention). */
	View math.Mat4
	/** @brief View to clip transform. */
	Projection math.Mat4
	/** @brief The camera position in world space. */
	ViewPosition math.Vec3
	Light        Light
	Material     Material
}
