/*
 * align_test.go, part of moltraj.
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

package align

import (
	"math"
	"testing"

	moltraj "github.com/rmera/moltraj"
	v3 "github.com/rmera/moltraj/v3"
)

// rigidCopy returns base rotated about z by theta and shifted.
func rigidCopy(base map[int]v3.Vec, theta float64, shift v3.Vec) map[int]v3.Vec {
	s, c := math.Sincos(theta)
	out := make(map[int]v3.Vec, len(base))
	for id, p := range base {
		out[id] = v3.Vec{c*p[0] - s*p[1], s*p[0] + c*p[1], p[2]}.Add(shift)
	}
	return out
}

func testPositions() map[int]v3.Vec {
	return map[int]v3.Vec{
		0: {0, 0, 0},
		1: {1.5, 0, 0},
		2: {0, 2, 0},
		3: {0.3, 0.7, 1.1},
	}
}

func TestSuper(t *testing.T) {
	ref := moltraj.NewFrame(0, 0)
	ref.Pos = testPositions()
	mobile := moltraj.NewFrame(1, 1)
	mobile.Pos = rigidCopy(testPositions(), math.Pi/4, v3.Vec{3, -1, 2})

	ids := []int{0, 1, 2, 3}
	out, err := Super(mobile, ref, ids)
	if err != nil {
		t.Fatal(err)
	}
	r, ok := moltraj.FrameRMSD(out, ref, ids)
	if !ok {
		t.Fatal("frames not comparable after superposition")
	}
	if r > 1e-9 {
		t.Errorf("RMSD after superposition: %v, want ~0", r)
	}
	// the input frame is untouched
	if mobile.Pos[0] == ref.Pos[0] {
		t.Error("Super should not mutate its input")
	}
}

func TestSuperTooFewAtoms(t *testing.T) {
	ref := moltraj.NewFrame(0, 0)
	ref.Pos = testPositions()
	mobile := moltraj.NewFrame(1, 1)
	mobile.Pos = testPositions()
	if _, err := Super(mobile, ref, []int{0, 1}); err == nil {
		t.Error("2 shared positions should not be enough")
	}
	// ids not shared by both frames do not count
	delete(mobile.Pos, 3)
	if _, err := Super(mobile, ref, []int{0, 1, 3}); err == nil {
		t.Error("unshared ids should not count toward the minimum")
	}
}

func TestTrajectoryAlign(t *testing.T) {
	traj := moltraj.NewTrajectory("", 4, 1.0)
	base := testPositions()
	for i := 0; i < 3; i++ {
		f := moltraj.NewFrame(i, float64(i))
		f.Pos = rigidCopy(base, float64(i)*math.Pi/3, v3.Vec{float64(i), -float64(i), 0.5 * float64(i)})
		traj.AddFrame(f)
	}
	if err := Trajectory(traj, 0, nil); err != nil {
		t.Fatal(err)
	}
	ref, _ := traj.Frame(0)
	ids := ref.AtomIDs()
	for _, frame := range traj.Frames() {
		r, ok := moltraj.FrameRMSD(frame, ref, ids)
		if !ok || r > 1e-9 {
			t.Errorf("frame %d after alignment: RMSD %v, ok %v", frame.Index, r, ok)
		}
	}
}

func TestTrajectoryAlignDropsVelocities(t *testing.T) {
	traj := moltraj.NewTrajectory("", 4, 1.0)
	base := testPositions()
	for i := 0; i < 2; i++ {
		f := moltraj.NewFrame(i, float64(i))
		f.Pos = rigidCopy(base, float64(i), v3.Vec{})
		f.Vel = map[int]v3.Vec{0: {1, 0, 0}}
		traj.AddFrame(f)
	}
	if err := Trajectory(traj, 0, nil); err != nil {
		t.Fatal(err)
	}
	ref, _ := traj.Frame(0)
	if ref.Vel == nil {
		t.Error("the reference frame keeps its velocities")
	}
	moved, _ := traj.Frame(1)
	if moved.Vel != nil {
		t.Error("superposed frames should drop their velocities")
	}
}

func TestTrajectoryAlignBadRef(t *testing.T) {
	traj := moltraj.NewTrajectory("", 4, 1.0)
	if err := Trajectory(traj, 0, nil); err == nil {
		t.Error("an empty trajectory has no reference frame")
	}
}
