/*
 * kabsch.go, part of moltraj.
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

package v3

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Kabsch computes the least-squares rotation R that aligns the point
// set p onto q, i.e. minimizes the RMSD of R*(p-centroid(p)) against
// q-centroid(q). Both sets must have the same length and at least 3
// non-collinear correspondences; otherwise an error is returned.
// R is always a proper rotation (det = +1), never a reflection.
func Kabsch(p, q []Vec) (*mat.Dense, error) {
	if len(p) != len(q) {
		return nil, errors.New("v3: Kabsch needs position sets of equal length")
	}
	if len(p) < 3 {
		return nil, errors.New("v3: Kabsch needs at least 3 positions")
	}
	pc := Centroid(p)
	qc := Centroid(q)
	cov := mat.NewDense(3, 3, nil)
	for i := range p {
		a := p[i].Sub(pc)
		b := q[i].Sub(qc)
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				cov.Set(r, c, cov.At(r, c)+a[r]*b[c])
			}
		}
	}
	var svd mat.SVD
	if !svd.Factorize(cov, mat.SVDFull) {
		return nil, errors.New("v3: Kabsch SVD did not converge")
	}
	// A collinear point set leaves the covariance with rank <= 1 and
	// the rotation about the common axis undetermined.
	vals := svd.Values(nil)
	if vals[1] < appzero {
		return nil, errors.New("v3: Kabsch positions are collinear")
	}
	var u, v, rot mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	rot.Mul(&v, u.T())
	if mat.Det(&rot) < 0 {
		for i := 0; i < 3; i++ {
			v.Set(i, 2, -v.At(i, 2))
		}
		rot.Mul(&v, u.T())
	}
	return &rot, nil
}

// MulVec applies a 3x3 matrix to a vector.
func MulVec(m mat.Matrix, v Vec) Vec {
	var out Vec
	for i := 0; i < 3; i++ {
		out[i] = m.At(i, 0)*v[0] + m.At(i, 1)*v[1] + m.At(i, 2)*v[2]
	}
	return out
}
