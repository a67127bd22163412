/*
 * align.go, part of moltraj.
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

// Package align removes global rotation and translation from
// trajectory frames by rigid superposition onto a reference frame.
package align

import (
	"errors"
	"fmt"

	moltraj "github.com/rmera/moltraj"
	v3 "github.com/rmera/moltraj/v3"
)

// Super returns a copy of mobile superposed onto ref: the Kabsch
// rotation and centroid translation computed over ids (which must
// select at least 3 non-collinear positions present in both frames)
// are applied to every position mobile covers.
func Super(mobile, ref *moltraj.Frame, ids []int) (*moltraj.Frame, error) {
	var p, q []v3.Vec
	for _, id := range ids {
		pm, okm := mobile.Pos[id]
		pr, okr := ref.Pos[id]
		if !okm || !okr {
			continue
		}
		p = append(p, pm)
		q = append(q, pr)
	}
	if len(p) < 3 {
		return nil, errors.New("align: need at least 3 shared positions to superpose")
	}
	rot, err := v3.Kabsch(p, q)
	if err != nil {
		return nil, err
	}
	pc := v3.Centroid(p)
	qc := v3.Centroid(q)
	out := moltraj.NewFrame(mobile.Index, mobile.Time)
	for id, pos := range mobile.Pos {
		out.Pos[id] = v3.MulVec(rot, pos.Sub(pc)).Add(qc)
	}
	out.Box = mobile.Box
	out.Meta = mobile.Meta
	return out, nil
}

// Trajectory superposes every frame of traj onto its refIndex frame
// over ids, replacing the frames' positions in place. A nil ids
// aligns over all atoms the reference frame covers.
func Trajectory(traj *moltraj.Trajectory, refIndex int, ids []int) error {
	ref, ok := traj.Frame(refIndex)
	if !ok {
		return fmt.Errorf("align: no frame %d in trajectory", refIndex)
	}
	if ids == nil {
		ids = ref.AtomIDs()
	}
	for _, frame := range traj.Frames() {
		if frame.Index == refIndex {
			continue
		}
		aligned, err := Super(frame, ref, ids)
		if err != nil {
			return fmt.Errorf("align: frame %d: %w", frame.Index, err)
		}
		frame.Pos = aligned.Pos
		if frame.Vel != nil {
			// rotated velocities would need the same rotation; they
			// lose meaning after superposition, so drop them
			frame.Vel = nil
		}
	}
	return nil
}
