/*
 * xyz_test.go, part of moltraj.
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
	"bytes"
	"errors"
	"strings"
	"testing"

	v3 "github.com/rmera/moltraj/v3"
)

const xyzWater = `3
water
O 0 0 0
H 0.757 0 0
H -0.757 0 0
`

func TestXYZWater(t *testing.T) {
	traj, atoms, err := XYZRead(strings.NewReader(xyzWater))
	if err != nil {
		t.Fatal(err)
	}
	if traj.NumFrames() != 1 {
		t.Fatalf("frames: %d, want 1", traj.NumFrames())
	}
	if traj.NumAtoms != 3 || len(atoms) != 3 {
		t.Fatalf("atoms: %d in trajectory, %d records", traj.NumAtoms, len(atoms))
	}
	if atoms[0].Element != O || atoms[1].Element != H || atoms[2].Element != H {
		t.Errorf("elements: %v %v %v", atoms[0].Element, atoms[1].Element, atoms[2].Element)
	}
	f, _ := traj.Frame(0)
	if p, ok := f.Position(0); !ok || p != (v3.Vec{0, 0, 0}) {
		t.Errorf("oxygen position: %v, %v", p, ok)
	}
	if p, _ := f.Position(2); p != (v3.Vec{-0.757, 0, 0}) {
		t.Errorf("second hydrogen position: %v", p)
	}
}

func TestXYZMultiFrame(t *testing.T) {
	in := `2
t=0.5 first
C 0 0 0
C 1.54 0 0
2
second
C 0 0 0.1
C 1.54 0 0.1
`
	traj, _, err := XYZRead(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if traj.NumFrames() != 2 {
		t.Fatalf("frames: %d, want 2", traj.NumFrames())
	}
	if traj.TimeStep != 0.5 {
		t.Errorf("time step from comment: %v, want 0.5", traj.TimeStep)
	}
	f1, _ := traj.Frame(1)
	if f1.Time != 0.5 {
		t.Errorf("second frame time: %v", f1.Time)
	}
	if traj.TotalTime != 0.5 {
		t.Errorf("total time: %v", traj.TotalTime)
	}
}

func TestXYZBlankLines(t *testing.T) {
	// a trailing blank line is not a frame
	traj, _, err := XYZRead(strings.NewReader(xyzWater + "\n"))
	if err != nil {
		t.Fatalf("trailing blank line: %v", err)
	}
	if traj.NumFrames() != 1 {
		t.Errorf("trailing blank line: %d frames, want 1", traj.NumFrames())
	}
	// blank separators between frames are tolerated
	in := "1\nfirst\nC 0 0 0\n\n1\nsecond\nC 1 0 0\n\n\n"
	traj, _, err = XYZRead(strings.NewReader(in))
	if err != nil {
		t.Fatalf("blank separators: %v", err)
	}
	if traj.NumFrames() != 2 {
		t.Errorf("blank separators: %d frames, want 2", traj.NumFrames())
	}
	f1, _ := traj.Frame(1)
	if p, ok := f1.Position(0); !ok || p != (v3.Vec{1, 0, 0}) {
		t.Errorf("second frame position: %v, %v", p, ok)
	}
	// blank-only input still has no frames
	if _, _, err = XYZRead(strings.NewReader("\n\n\n")); !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("blank-only input: %v", err)
	}
}

func TestXYZAtomCountMismatch(t *testing.T) {
	in := `2
first
C 0 0 0
C 1 0 0
3
second
C 0 0 0
C 1 0 0
C 2 0 0
`
	_, _, err := XYZRead(strings.NewReader(in))
	if err == nil {
		t.Fatal("varying atom counts should fail")
	}
	if !errors.Is(err, ErrParse) {
		t.Errorf("want a parse error, got %v", err)
	}
}

func TestXYZMalformed(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Error
	}{
		{"empty input", "", ErrInvalidFormat},
		{"garbage count", "two\nc\nC 0 0 0\n", ErrParse},
		{"short atom line", "1\nc\nC 0 0\n", ErrParse},
		{"bad coordinate", "1\nc\nC 0 zero 0\n", ErrParse},
	}
	for _, c := range cases {
		_, _, err := XYZRead(strings.NewReader(c.in))
		if err == nil {
			t.Errorf("%s: parse should fail", c.name)
			continue
		}
		if !errors.Is(err, c.want) {
			t.Errorf("%s: got %v", c.name, err)
		}
	}
}

func TestXYZUnknownElement(t *testing.T) {
	in := "1\nc\nQq 1 2 3\n"
	traj, atoms, err := XYZRead(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if traj.NumFrames() != 1 || atoms[0].Element != Unknown {
		t.Errorf("unknown symbol should degrade, got %v", atoms[0].Element)
	}
	if atoms[0].Name != "Qq" {
		t.Errorf("original symbol should survive as the atom name, got %q", atoms[0].Name)
	}
}

func TestXYZStream(t *testing.T) {
	in := xyzWater + xyzWater + xyzWater
	s := NewXYZStream(strings.NewReader(in), "stream")
	var n int
	for {
		frame, err := s.Next()
		if err != nil {
			if _, ok := err.(LastFrameError); ok {
				break
			}
			t.Fatal(err)
		}
		if frame.NumAtoms() != 3 {
			t.Fatalf("frame %d: %d atoms", n, frame.NumAtoms())
		}
		if frame.Index != n {
			t.Errorf("frame index %d, want %d", frame.Index, n)
		}
		n++
	}
	if n != 3 {
		t.Errorf("streamed %d frames, want 3", n)
	}
	if len(s.Atoms()) != 3 {
		t.Errorf("streamed atom records: %d", len(s.Atoms()))
	}
	// the stream stays terminated
	if _, err := s.Next(); err == nil {
		t.Error("Next after termination should keep returning LastFrameError")
	}
}

func TestXYZWriteReadRoundTrip(t *testing.T) {
	traj, atoms, err := XYZRead(strings.NewReader(xyzWater))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := XYZWrite(&buf, traj, atoms); err != nil {
		t.Fatal(err)
	}
	back, batoms, err := XYZRead(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if back.NumFrames() != traj.NumFrames() || len(batoms) != len(atoms) {
		t.Fatalf("round trip shape: %d frames, %d atoms",
			back.NumFrames(), len(batoms))
	}
	orig, _ := traj.Frame(0)
	got, _ := back.Frame(0)
	for _, id := range orig.AtomIDs() {
		if orig.Pos[id] != got.Pos[id] {
			t.Errorf("atom %d moved across the round trip: %v != %v",
				id, orig.Pos[id], got.Pos[id])
		}
	}
	for i := range atoms {
		if batoms[i].Element != atoms[i].Element {
			t.Errorf("atom %d element changed: %v != %v",
				i, batoms[i].Element, atoms[i].Element)
		}
	}
}
