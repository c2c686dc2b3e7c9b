package maths

// Pose is a position plus an orientation.
type Pose struct {
	Position    Vec3
	Orientation Quat
}

// PoseIdentity returns the origin pose with no rotation.
func PoseIdentity() Pose {
	return Pose{Orientation: QuatIdentity()}
}

// PoseLookAt returns a pose at `at` facing `target`.
func PoseLookAt(at, target Vec3) Pose {
	return Pose{Position: at, Orientation: QuatLookAt(at, target)}
}

// Forward returns the pose's forward direction (-Z).
func (p Pose) Forward() Vec3 { return p.Orientation.Forward() }

// ToLocal transforms a world-space point into the pose's local frame.
func (p Pose) ToLocal(world Vec3) Vec3 {
	return p.Orientation.Inverse().Rotate(world.Sub(p.Position))
}

// ToWorld transforms a local-space point into world space.
func (p Pose) ToWorld(local Vec3) Vec3 {
	return p.Orientation.Rotate(local).Add(p.Position)
}

// Lerp interpolates position linearly and orientation spherically.
func PoseLerp(a, b Pose, t float32) Pose {
	return Pose{
		Position:    Lerp(a.Position, b.Position, t),
		Orientation: Slerp(a.Orientation, b.Orientation, t),
	}
}

// Matrix returns the pose's transform with a uniform scale.
func (p Pose) Matrix(scale float32) Matrix {
	return TRS(p.Position, p.Orientation, scale)
}
