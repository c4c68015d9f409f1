// SPDX-License-Identifier: EPL-2.0

package utils

// Catmull evaluates a Catmull-Rom segment between p[1] and p[2].
// t is the position inside the segment, 0 <= t <= 1.
func Catmull(p [4]float32, t float32) float32 {
	c3 := 0.5 * (-p[0] + 3*p[1] - 3*p[2] + p[3])
	c2 := p[0] - 2.5*p[1] + 2*p[2] - 0.5*p[3]
	c1 := 0.5 * (p[2] - p[0])

	return ((c3*t+c2)*t+c1)*t + p[1]
}
