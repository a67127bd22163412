/*
 * gro_test.go, part of moltraj.
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

func TestGroSingleAtom(t *testing.T) {
	in := "Water in a box\n" +
		"1\n" +
		"    1SOL    OW    1   0.126   0.639   0.322\n" +
		"   1.86206   1.86206   1.86206\n"
	traj, atoms, err := GroRead(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if traj.NumFrames() != 1 || len(atoms) != 1 {
		t.Fatalf("shape: %d frames, %d atoms", traj.NumFrames(), len(atoms))
	}
	at := atoms[0]
	if at.ResID != 1 || at.ResName != "SOL" || at.Name != "OW" {
		t.Errorf("atom fields: resid %d, resname %q, name %q", at.ResID, at.ResName, at.Name)
	}
	if at.Element != O {
		t.Errorf("OW should resolve to oxygen, got %v", at.Element)
	}
	f, _ := traj.Frame(0)
	if p, ok := f.Position(0); !ok || p != (v3.Vec{0.126, 0.639, 0.322}) {
		t.Errorf("position: %v, %v", p, ok)
	}
	if f.Box == nil || f.Box[0] != 1.86206 {
		t.Errorf("box: %v", f.Box)
	}
	if traj.Meta.Title != "Water in a box" || traj.Meta.Software != "GROMACS" {
		t.Errorf("metadata: %+v", traj.Meta)
	}
}

func TestGroVelocities(t *testing.T) {
	in := "MD frame\n" +
		"2\n" +
		"    1SOL    OW    1   0.126   0.639   0.322  0.1000 -0.2000  0.3000\n" +
		"    1SOL   HW1    2   0.190   0.640   0.320\n" +
		"   1.86206   1.86206   1.86206\n"
	traj, atoms, err := GroRead(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	f, _ := traj.Frame(0)
	v, ok := f.Vel[0]
	if !ok || v != (v3.Vec{0.1, -0.2, 0.3}) {
		t.Errorf("velocity of atom 0: %v, %v", v, ok)
	}
	if _, ok := f.Vel[1]; ok {
		t.Error("atom 1 has no velocity columns, none should be stored")
	}
	if atoms[1].Element != H {
		t.Errorf("HW1 should resolve to hydrogen, got %v", atoms[1].Element)
	}
}

func TestGroMalformed(t *testing.T) {
	// unparsable atom count
	_, _, err := GroRead(strings.NewReader("title\nmany\n"))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("bad count: %v", err)
	}
	// corrupt coordinate field fails fast
	in := "title\n1\n    1SOL    OW    1   x.126   0.639   0.322\n"
	_, _, err = GroRead(strings.NewReader(in))
	if !errors.Is(err, ErrParse) {
		t.Errorf("bad coordinate: %v", err)
	}
	// truncated atom line (no coordinates at all)
	in = "title\n1\n    1SOL    OW\n"
	_, _, err = GroRead(strings.NewReader(in))
	if !errors.Is(err, ErrParse) {
		t.Errorf("short line: %v", err)
	}
}

func TestGroMissingBox(t *testing.T) {
	in := "no box here\n1\n    1SOL    OW    1   0.126   0.639   0.322\n"
	traj, _, err := GroRead(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	f, _ := traj.Frame(0)
	if f.Box != nil {
		t.Errorf("absent box line should leave Box nil, got %v", f.Box)
	}
}

func TestGroWriteReadRoundTrip(t *testing.T) {
	in := "round trip\n" +
		"2\n" +
		"    1SOL    OW    1   0.126   0.639   0.322  0.1000 -0.2000  0.3000\n" +
		"    2SOL   HW1    2   0.190   0.640   0.320  0.0500  0.0600  0.0700\n" +
		"   1.86206   1.86206   1.86206\n"
	traj, atoms, err := GroRead(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := GroWrite(&buf, traj, atoms); err != nil {
		t.Fatal(err)
	}
	back, batoms, err := GroRead(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(batoms) != 2 {
		t.Fatalf("round trip atoms: %d", len(batoms))
	}
	of, _ := traj.Frame(0)
	bf, _ := back.Frame(0)
	for i := 0; i < 2; i++ {
		if of.Pos[i] != bf.Pos[i] {
			t.Errorf("atom %d position: %v != %v", i, of.Pos[i], bf.Pos[i])
		}
		if of.Vel[i] != bf.Vel[i] {
			t.Errorf("atom %d velocity: %v != %v", i, of.Vel[i], bf.Vel[i])
		}
		if batoms[i].ResName != atoms[i].ResName || batoms[i].Name != atoms[i].Name {
			t.Errorf("atom %d names: %q/%q != %q/%q", i,
				batoms[i].ResName, batoms[i].Name, atoms[i].ResName, atoms[i].Name)
		}
	}
	if bf.Box == nil || *bf.Box != *of.Box {
		t.Errorf("box: %v != %v", bf.Box, of.Box)
	}
}
