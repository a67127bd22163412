/*
 * timeline.go, part of moltraj.
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

// Package timeline drives frame-accurate, interpolated playback over
// a trajectory. The State must be advanced from a single logical
// thread; consumers read it in the same tick, after Update.
package timeline

import (
	moltraj "github.com/rmera/moltraj"
)

// State is the mutable playback cursor. It starts paused at frame 0
// with speed 1, looping and interpolation on.
type State struct {
	CurrentFrame int
	TotalFrames  int
	TotalTime    float64 //fs, the owning trajectory's total time
	Playing      bool
	Speed        float64 //playback speed multiplier
	Loop         bool
	Interpolate  bool
	// Factor is the interpolation factor toward the next frame,
	// in [0,1]. Always 0 when Interpolate is off.
	Factor float64

	accumulator float64 //virtual fs not yet consumed by frame advances
}

// New returns a paused state over the given frame count and total
// time. A frame count below 1 is raised to 1.
func New(totalFrames int, totalTime float64) *State {
	s := &State{Speed: 1.0, Loop: true, Interpolate: true}
	s.Reset(totalFrames, totalTime)
	return s
}

// FromTrajectory builds a state sized for a trajectory.
func FromTrajectory(traj *moltraj.Trajectory) *State {
	return New(traj.NumFrames(), traj.TotalTime)
}

// Reset rewinds to frame 0, paused, with a drained accumulator, and
// adopts new totals. Used whenever a new trajectory is loaded.
func (S *State) Reset(totalFrames int, totalTime float64) {
	if totalFrames < 1 {
		totalFrames = 1
	}
	S.TotalFrames = totalFrames
	S.TotalTime = totalTime
	S.CurrentFrame = 0
	S.Playing = false
	S.Factor = 0
	S.accumulator = 0
}

// Play starts playback.
func (S *State) Play() { S.Playing = true }

// Pause stops playback, keeping the accumulator so a later Play
// resumes exactly where it left off.
func (S *State) Pause() { S.Playing = false }

// Toggle flips between playing and paused.
func (S *State) Toggle() { S.Playing = !S.Playing }

// Stop pauses, rewinds to frame 0 and drains the accumulator.
func (S *State) Stop() {
	S.Pause()
	S.GotoFrame(0)
	S.accumulator = 0
}

// NextFrame steps forward one frame, clamped to the last.
func (S *State) NextFrame() { S.GotoFrame(S.CurrentFrame + 1) }

// PrevFrame steps back one frame, clamped to the first.
func (S *State) PrevFrame() { S.GotoFrame(S.CurrentFrame - 1) }

// GotoFrame jumps to a frame, clamped to [0, TotalFrames-1], and
// resets the interpolation factor.
func (S *State) GotoFrame(n int) {
	if n < 0 {
		n = 0
	}
	if n > S.TotalFrames-1 {
		n = S.TotalFrames - 1
	}
	S.CurrentFrame = n
	S.Factor = 0
}

// FrameDuration returns the virtual time one frame lasts:
// TotalTime/(TotalFrames-1) for multi-frame trajectories, 1.0
// otherwise (also when the trajectory carries no time axis, so the
// accumulator can always drain).
func (S *State) FrameDuration() float64 {
	if S.TotalFrames > 1 && S.TotalTime > 0 {
		return S.TotalTime / float64(S.TotalFrames-1)
	}
	return 1.0
}

// Accumulator returns the undrained virtual time, for tests and
// debugging displays.
func (S *State) Accumulator() float64 { return S.accumulator }

// Update advances the timeline by an elapsed wall-clock dt (same
// units as TotalTime). It does nothing while paused. The accumulator
// gains dt*Speed and is fully drained in this one call, advancing as
// many frames as it covers, so an arbitrarily large dt never skips
// interpolation state. Running past the last frame wraps to 0 when
// looping, otherwise clamps there and pauses.
func (S *State) Update(dt float64) {
	if !S.Playing {
		return
	}
	S.accumulator += dt * S.Speed
	fd := S.FrameDuration()
	for S.accumulator >= fd {
		S.accumulator -= fd
		S.CurrentFrame++
		if S.CurrentFrame >= S.TotalFrames {
			if S.Loop {
				S.CurrentFrame = 0
			} else {
				S.CurrentFrame = S.TotalFrames - 1
				S.Pause()
			}
		}
	}
	if S.Interpolate {
		f := S.accumulator / fd
		if f < 0 {
			f = 0
		} else if f > 1 {
			f = 1
		}
		S.Factor = f
	} else {
		S.Factor = 0
	}
}

// Progress returns the playback position in [0,1].
func (S *State) Progress() float64 {
	if S.TotalFrames <= 1 {
		return 0
	}
	p := (float64(S.CurrentFrame) + S.Factor) / float64(S.TotalFrames-1)
	if p > 1 {
		p = 1
	}
	return p
}

// SimulationTime returns the virtual time at the cursor, in fs.
func (S *State) SimulationTime() float64 {
	return (float64(S.CurrentFrame) + S.Factor) * S.FrameDuration()
}

// ResolveFrame returns the positions the renderer should display:
// the current frame, blended toward its successor by Factor when
// interpolating. The successor wraps to frame 0 when looping.
func (S *State) ResolveFrame(traj *moltraj.Trajectory) (*moltraj.Frame, bool) {
	cur, ok := traj.Frame(S.CurrentFrame)
	if !ok {
		return nil, false
	}
	if !S.Interpolate || S.Factor <= 0 {
		return cur, true
	}
	next := S.CurrentFrame + 1
	if next >= traj.NumFrames() {
		if !S.Loop {
			return cur, true
		}
		next = 0
	}
	nf, ok := traj.Frame(next)
	if !ok {
		return cur, true
	}
	return moltraj.InterpolateFrames(cur, nf, S.Factor), true
}
