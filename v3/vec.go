/*
 * vec.go, part of moltraj.
 *
 * Copyright 2025 rmeraaatacademicosdotutadotcl
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package v3 implements the 3-vector primitives shared by the
// trajectory model, the bond engine and external measurement tooling:
// distances, angles, dihedrals, RMSD and Kabsch superposition.
package v3

import (
	"errors"
	"math"
)

// appzero is the tolerance under which a vector norm is considered
// zero and the geometry degenerate.
const appzero = 1e-6

// Vec is a 3-vector. It is a value type: all methods return a new
// vector and never mutate the receiver.
type Vec [3]float64

func (v Vec) Add(w Vec) Vec { return Vec{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }

func (v Vec) Sub(w Vec) Vec { return Vec{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }

func (v Vec) Scale(f float64) Vec { return Vec{v[0] * f, v[1] * f, v[2] * f} }

func (v Vec) Dot(w Vec) float64 { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

func (v Vec) Cross(w Vec) Vec {
	return Vec{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

func (v Vec) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Unit returns v scaled to norm 1. The second return is false for a
// (near) zero vector, in which case the zero vector is returned.
func (v Vec) Unit() (Vec, bool) {
	n := v.Norm()
	if n < appzero {
		return Vec{}, false
	}
	return v.Scale(1 / n), true
}

// Lerp linearly interpolates from v (t=0) to w (t=1).
func Lerp(v, w Vec, t float64) Vec {
	return Vec{
		v[0] + (w[0]-v[0])*t,
		v[1] + (w[1]-v[1])*t,
		v[2] + (w[2]-v[2])*t,
	}
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec) float64 { return a.Sub(b).Norm() }

// Angle returns the a-b-c angle, in radians, b being the vertex.
func Angle(a, b, c Vec) float64 {
	v1 := a.Sub(b)
	v2 := c.Sub(b)
	n := v1.Norm() * v2.Norm()
	if n < appzero {
		return 0
	}
	cos := v1.Dot(v2) / n
	// guard acos against rounding outside [-1,1]
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// Dihedral returns the signed a-b-c-d torsion angle in radians,
// in (-pi, pi]. The second return is false when any of the two plane
// normals is degenerate (collinear backbone), in which case the angle
// is meaningless.
func Dihedral(a, b, c, d Vec) (float64, bool) {
	b1 := b.Sub(a)
	b2 := c.Sub(b)
	b3 := d.Sub(c)
	n1, ok1 := b1.Cross(b2).Unit()
	n2, ok2 := b2.Cross(b3).Unit()
	if !ok1 || !ok2 {
		return 0, false
	}
	b2u, ok := b2.Unit()
	if !ok {
		return 0, false
	}
	x := n1.Dot(n2)
	y := n1.Cross(b2u).Dot(n2)
	return math.Atan2(y, x), true
}

// Centroid returns the unweighted geometric center of ps, the zero
// vector for an empty slice.
func Centroid(ps []Vec) Vec {
	if len(ps) == 0 {
		return Vec{}
	}
	var c Vec
	for _, p := range ps {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(ps)))
}

// RMSD returns the root-mean-square deviation between two equally
// long position sets, pairing them by index.
func RMSD(a, b []Vec) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.New("v3: RMSD needs position sets of equal length")
	}
	if len(a) == 0 {
		return 0, errors.New("v3: RMSD of empty position sets")
	}
	var sum float64
	for i := range a {
		d := a[i].Sub(b[i])
		sum += d.Dot(d)
	}
	return math.Sqrt(sum / float64(len(a))), nil
}

// MinImage returns the minimum-image convention displacement for d
// under an orthorhombic box. Box components <= 0 leave the matching
// component of d untouched.
func MinImage(d Vec, box [3]float64) Vec {
	for i := 0; i < 3; i++ {
		if box[i] > 0 {
			d[i] -= box[i] * math.Round(d[i]/box[i])
		}
	}
	return d
}
