package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector. Positions carry W=1, directions W=0.
type Vec4 struct {
	X, Y, Z, W float32
}

/** @brief a 4x4 matrix, row-vector convention (translation lives in Data[12..14]). */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief Represents the extents of a 3d object.
 */
type Extents3D struct {
	/** @brief The minimum extents of the object. */
	Min Vec3
	/** @brief The maximum extents of the object. */
	Max Vec3
}
