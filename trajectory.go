/*
 * trajectory.go, part of moltraj.
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
	"math"

	v3 "github.com/rmera/moltraj/v3"
)

// Metadata is descriptive information about a trajectory, filled in
// by the parsers as far as each format allows.
type Metadata struct {
	Title          string
	Classification string
	Software       string //producing program, e.g. "GROMACS", "CHARMM"
	ForceField     string
	Ensemble       string //e.g. "NVT"
	Temperature    float64
	Pressure       float64
	NumSteps       int
	StepSize       float64
	CreationDate   string
	Extra          map[string]string
}

// Trajectory is the normalized in-memory representation every parser
// produces: an ordered frame sequence plus the static facts about it.
// Frame order equals index order and frame times are non-decreasing.
type Trajectory struct {
	Path     string
	NumAtoms int
	TimeStep float64 //nominal, fs

	// TotalTime is the time of the last added frame, in fs.
	TotalTime float64
	Meta      Metadata

	frames []*Frame
}

// NewTrajectory returns an empty trajectory.
func NewTrajectory(path string, numAtoms int, timeStep float64) *Trajectory {
	return &Trajectory{
		Path:     path,
		NumAtoms: numAtoms,
		TimeStep: timeStep,
		Meta:     Metadata{Extra: make(map[string]string)},
	}
}

// AddFrame appends a frame. The frame's index is overwritten with its
// sequence position, and the trajectory's total time follows the
// frame's time.
func (T *Trajectory) AddFrame(f *Frame) {
	f.Index = len(T.frames)
	T.frames = append(T.frames, f)
	T.TotalTime = f.Time
}

// Frame returns the i-th frame, false when i is out of range.
func (T *Trajectory) Frame(i int) (*Frame, bool) {
	if i < 0 || i >= len(T.frames) {
		return nil, false
	}
	return T.frames[i], true
}

// NumFrames returns the number of frames.
func (T *Trajectory) NumFrames() int { return len(T.frames) }

// IsEmpty reports whether the trajectory has no frames.
func (T *Trajectory) IsEmpty() bool { return len(T.frames) == 0 }

// Frames returns the frame sequence. The slice is shared, not a
// copy; callers must not reorder it.
func (T *Trajectory) Frames() []*Frame { return T.frames }

// InterpolateFrames blends two frames at alpha in [0,1] (alpha=0
// reproduces a's values). Positions are interpolated per atom, over
// the ids both frames cover; velocities only when both frames carry
// the atom's velocity; potential and kinetic energy only when defined
// on both. Anything absent in either input is omitted from the
// result. The result keeps a's index and box, with the time
// interpolated.
func InterpolateFrames(a, b *Frame, alpha float64) *Frame {
	out := NewFrame(a.Index, a.Time+(b.Time-a.Time)*alpha)
	for id, pa := range a.Pos {
		if pb, ok := b.Pos[id]; ok {
			out.Pos[id] = v3.Lerp(pa, pb, alpha)
		}
	}
	if a.Vel != nil && b.Vel != nil {
		out.Vel = make(map[int]v3.Vec)
		for id, va := range a.Vel {
			if vb, ok := b.Vel[id]; ok {
				out.Vel[id] = v3.Lerp(va, vb, alpha)
			}
		}
	}
	out.PotentialEnergy = lerpScalar(a.PotentialEnergy, b.PotentialEnergy, alpha)
	out.KineticEnergy = lerpScalar(a.KineticEnergy, b.KineticEnergy, alpha)
	if a.Box != nil {
		box := *a.Box
		out.Box = &box
	}
	return out
}

// FrameRMSD returns the root-mean-square deviation between two
// frames over the given atom ids, counting only ids with a position
// in both frames. The second return is false when ids is empty or no
// id is comparable.
func FrameRMSD(a, b *Frame, ids []int) (float64, bool) {
	if len(ids) == 0 {
		return 0, false
	}
	var sum float64
	var n int
	for _, id := range ids {
		pa, oka := a.Pos[id]
		pb, okb := b.Pos[id]
		if !oka || !okb {
			continue
		}
		d := pa.Sub(pb)
		sum += d.Dot(d)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return math.Sqrt(sum / float64(n)), true
}

// CenterOfMass returns the mass-weighted center of the atoms the
// frame covers. Atoms without a position in the frame are skipped.
// The second return is false when nothing is comparable or the total
// mass is zero.
func CenterOfMass(f *Frame, atoms []*Atom) (v3.Vec, bool) {
	var com v3.Vec
	var mass float64
	for _, at := range atoms {
		p, ok := f.Pos[at.ID]
		if !ok {
			continue
		}
		m := at.Mass
		if m <= 0 {
			m = at.Element.Mass()
		}
		com = com.Add(p.Scale(m))
		mass += m
	}
	if mass <= 0 {
		return v3.Vec{}, false
	}
	return com.Scale(1 / mass), true
}
