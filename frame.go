/*
 * frame.go, part of moltraj.
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

package moltraj

import (
	"sort"

	v3 "github.com/rmera/moltraj/v3"
)

// Frame is one trajectory snapshot. The position map is sparse: a
// frame that lacks an atom's position simply omits the key, which is
// legal (DCD streams, for instance, may cover a subset). Velocities,
// forces, box and the scalar observables are optional.
type Frame struct {
	Index int
	Time  float64 //fs
	Pos   map[int]v3.Vec
	Vel   map[int]v3.Vec
	Force map[int]v3.Vec
	Box   *[3]float64 //orthorhombic box edges, A

	PotentialEnergy *float64
	KineticEnergy   *float64
	Temperature     *float64
	Pressure        *float64

	Meta map[string]string
}

// NewFrame returns an empty frame at the given index and time.
func NewFrame(index int, time float64) *Frame {
	return &Frame{
		Index: index,
		Time:  time,
		Pos:   make(map[int]v3.Vec),
	}
}

// Position returns the atom's position in this frame, false when the
// frame does not cover the atom.
func (F *Frame) Position(id int) (v3.Vec, bool) {
	p, ok := F.Pos[id]
	return p, ok
}

// AtomIDs returns the ids covered by this frame, sorted.
func (F *Frame) AtomIDs() []int {
	ids := make([]int, 0, len(F.Pos))
	for id := range F.Pos {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// NumAtoms returns how many atoms this frame has positions for.
func (F *Frame) NumAtoms() int { return len(F.Pos) }

func fptr(v float64) *float64 { return &v }

func lerpScalar(a, b *float64, t float64) *float64 {
	if a == nil || b == nil {
		return nil
	}
	return fptr(*a + (*b-*a)*t)
}
