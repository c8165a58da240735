package game

import (
	"math"

	"golang.org/x/image/math/f32"
)

// Matrices are row major: m[4*r+c] is row r, column c.

// Identity returns the 4x4 identity matrix
func Identity() f32.Mat4 {
	return f32.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translate returns a translation matrix
func Translate(v Vec3) f32.Mat4 {
	m := Identity()
	m[3] = float32(v.X)
	m[7] = float32(v.Y)
	m[11] = float32(v.Z)
	return m
}

// ScaleUniform returns a uniform scale matrix
func ScaleUniform(s float64) f32.Mat4 {
	m := Identity()
	m[0] = float32(s)
	m[5] = float32(s)
	m[10] = float32(s)
	return m
}

// RotateY returns a rotation about the world up axis by deg degrees
func RotateY(deg float64) f32.Mat4 {
	s, c := math.Sincos(radians(deg))
	return f32.Mat4{
		float32(c), 0, float32(s), 0,
		0, 1, 0, 0,
		float32(-s), 0, float32(c), 0,
		0, 0, 0, 1,
	}
}

// RotateX returns a rotation about the X axis by rad radians
func RotateX(rad float64) f32.Mat4 {
	s, c := math.Sincos(rad)
	return f32.Mat4{
		1, 0, 0, 0,
		0, float32(c), float32(-s), 0,
		0, float32(s), float32(c), 0,
		0, 0, 0, 1,
	}
}

// Mul4 returns a*b
func Mul4(a, b f32.Mat4) f32.Mat4 {
	var m f32.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[4*r+k] * b[4*k+c]
			}
			m[4*r+c] = sum
		}
	}
	return m
}

// TransformPoint applies m to p (w=1) and returns the resulting xyz and w
func TransformPoint(m f32.Mat4, p Vec3) (Vec3, float64) {
	x, y, z := float32(p.X), float32(p.Y), float32(p.Z)
	out := Vec3{
		float64(m[0]*x + m[1]*y + m[2]*z + m[3]),
		float64(m[4]*x + m[5]*y + m[6]*z + m[7]),
		float64(m[8]*x + m[9]*y + m[10]*z + m[11]),
	}
	w := float64(m[12]*x + m[13]*y + m[14]*z + m[15])
	return out, w
}

// Perspective returns a right-handed perspective projection with clip depth in [-1, 1]
func Perspective(fovyDeg, aspect, near, far float64) f32.Mat4 {
	f := 1 / math.Tan(radians(fovyDeg)/2)
	return f32.Mat4{
		float32(f / aspect), 0, 0, 0,
		0, float32(f), 0, 0,
		0, 0, float32((far + near) / (near - far)), float32(2 * far * near / (near - far)),
		0, 0, -1, 0,
	}
}
