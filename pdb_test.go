/*
 * pdb_test.go, part of moltraj.
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
	"math"
	"strings"
	"testing"

	v3 "github.com/rmera/moltraj/v3"
)

const pdbTwoModels = `HEADER    HYDROLASE                               01-JAN-20   1ABC
TITLE     A TWO MODEL TEST STRUCTURE
CRYST1   10.000   20.000   30.000  90.00  90.00  90.00 P 1           1
MODEL        1
ATOM      1  N   ALA A   1      11.104   6.134  -6.504  1.00 10.00           N
ATOM      2  O   ALA A   1      12.500   6.000  -6.000  0.50 20.00           O
ENDMDL
MODEL        2
ATOM      1  N   ALA A   1      11.204   6.234  -6.404  1.00 10.00           N
ATOM      2  O   ALA A   1      12.600   6.100  -5.900  0.50 20.00           O
ENDMDL
END
`

func TestPDBTwoModels(t *testing.T) {
	traj, atoms, _, err := PDBRead(strings.NewReader(pdbTwoModels))
	if err != nil {
		t.Fatal(err)
	}
	if traj.NumFrames() != 2 {
		t.Fatalf("frames: %d, want one per closed model", traj.NumFrames())
	}
	if len(atoms) != 2 || traj.NumAtoms != 2 {
		t.Fatalf("atoms: %d records, %d in trajectory", len(atoms), traj.NumAtoms)
	}
	// atom metadata comes from the first model only
	n := atoms[0]
	if n.Name != "N" || n.ResName != "ALA" || n.Chain != "A" || n.ResID != 1 {
		t.Errorf("first atom: %+v", n)
	}
	if n.Element != N || atoms[1].Element != O {
		t.Errorf("elements: %v, %v", n.Element, atoms[1].Element)
	}
	if atoms[1].Occupancy != 0.5 || atoms[1].BFactor != 20 {
		t.Errorf("occupancy/bfactor: %v/%v", atoms[1].Occupancy, atoms[1].BFactor)
	}
	f0, _ := traj.Frame(0)
	f1, _ := traj.Frame(1)
	if p, _ := f0.Position(0); p != (v3.Vec{11.104, 6.134, -6.504}) {
		t.Errorf("model 1 position: %v", p)
	}
	if p, _ := f1.Position(0); p != (v3.Vec{11.204, 6.234, -6.404}) {
		t.Errorf("model 2 position: %v", p)
	}
	if f0.Box == nil || f0.Box[1] != 20 {
		t.Errorf("box from CRYST1: %v", f0.Box)
	}
	if traj.Meta.Classification != "HYDROLASE" {
		t.Errorf("classification: %q", traj.Meta.Classification)
	}
	if traj.Meta.Title != "A TWO MODEL TEST STRUCTURE" {
		t.Errorf("title: %q", traj.Meta.Title)
	}
}

func TestPDBNoModels(t *testing.T) {
	in := "ATOM      1  N   ALA A   1      11.104   6.134  -6.504  1.00 10.00           N\n" +
		"ATOM      2  O   ALA A   1      12.500   6.000  -6.000  1.00 10.00           O\n" +
		"END\n"
	traj, atoms, _, err := PDBRead(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if traj.NumFrames() != 1 || len(atoms) != 2 {
		t.Errorf("model-less file: %d frames, %d atoms", traj.NumFrames(), len(atoms))
	}
}

func TestPDBConect(t *testing.T) {
	in := "HETATM    1  O   HOH A   1       0.000   0.000   0.000  1.00  0.00           O\n" +
		"HETATM    2  H1  HOH A   1       0.960   0.000   0.000  1.00  0.00           H\n" +
		"CONECT    1    2\n" +
		"CONECT    2    1\n" + //reverse listing must not duplicate
		"CONECT    1    9\n" + //unknown serial, skipped
		"END\n"
	_, _, bonds, err := PDBRead(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(bonds) != 1 {
		t.Fatalf("CONECT bonds: %d, want 1", len(bonds))
	}
	if bonds[0].A != 0 || bonds[0].B != 1 || bonds[0].Type != BondCovalent {
		t.Errorf("bond: %+v", bonds[0])
	}
}

func TestPDBModelAtomSurplus(t *testing.T) {
	// a later model with more records than the first would mint
	// position ids with no atom behind them
	in := `MODEL        1
ATOM      1  N   ALA A   1      11.104   6.134  -6.504  1.00 10.00           N
ENDMDL
MODEL        2
ATOM      1  N   ALA A   1      11.204   6.234  -6.404  1.00 10.00           N
ATOM      2  O   ALA A   1      12.600   6.100  -5.900  1.00 10.00           O
ENDMDL
END
`
	_, _, _, err := PDBRead(strings.NewReader(in))
	if !errors.Is(err, ErrParse) {
		t.Errorf("surplus record in a later model: %v", err)
	}
	// fewer records than the first model stay legal (sparse frames)
	in = `MODEL        1
ATOM      1  N   ALA A   1      11.104   6.134  -6.504  1.00 10.00           N
ATOM      2  O   ALA A   1      12.500   6.000  -6.000  1.00 10.00           O
ENDMDL
MODEL        2
ATOM      1  N   ALA A   1      11.204   6.234  -6.404  1.00 10.00           N
ENDMDL
END
`
	traj, atoms, _, err := PDBRead(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if traj.NumFrames() != 2 || len(atoms) != 2 {
		t.Fatalf("shape: %d frames, %d atoms", traj.NumFrames(), len(atoms))
	}
	f1, _ := traj.Frame(1)
	if f1.NumAtoms() != 1 {
		t.Errorf("sparse second model: %d positions", f1.NumAtoms())
	}
	for _, frame := range traj.Frames() {
		for id := range frame.Pos {
			if id >= traj.NumAtoms {
				t.Errorf("frame %d carries position id %d beyond the %d atoms",
					frame.Index, id, traj.NumAtoms)
			}
		}
	}
}

func TestPDBMalformed(t *testing.T) {
	// a coordinate record cut off before the z column
	in := "ATOM      1  N   ALA A   1      11.104   6.134\n"
	_, _, _, err := PDBRead(strings.NewReader(in))
	if !errors.Is(err, ErrParse) {
		t.Errorf("short record: %v", err)
	}
	// non-numeric coordinates
	in = "ATOM      1  N   ALA A   1      eleven    6.134  -6.504  1.00 10.00           N\n"
	_, _, _, err = PDBRead(strings.NewReader(in))
	if !errors.Is(err, ErrParse) {
		t.Errorf("bad coordinate: %v", err)
	}
	// no coordinate records at all
	_, _, _, err = PDBRead(strings.NewReader("TITLE     NOTHING HERE\nEND\n"))
	if !errors.Is(err, ErrInvalidFormat) {
		t.Errorf("coordinate-free input: %v", err)
	}
}

func TestPDBWriteReadRoundTrip(t *testing.T) {
	traj, atoms, _, err := PDBRead(strings.NewReader(pdbTwoModels))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := PDBWrite(&buf, traj, atoms); err != nil {
		t.Fatal(err)
	}
	back, batoms, _, err := PDBRead(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if back.NumFrames() != 2 || len(batoms) != 2 {
		t.Fatalf("round trip shape: %d frames, %d atoms", back.NumFrames(), len(batoms))
	}
	of, _ := traj.Frame(1)
	bf, _ := back.Frame(1)
	for _, id := range of.AtomIDs() {
		d := of.Pos[id].Sub(bf.Pos[id])
		if d.Norm() > 1e-9 {
			t.Errorf("atom %d moved: %v != %v", id, of.Pos[id], bf.Pos[id])
		}
	}
	for i := range atoms {
		a, b := atoms[i], batoms[i]
		if a.Name != b.Name || a.ResName != b.ResName || a.Chain != b.Chain ||
			a.ResID != b.ResID || a.Element != b.Element {
			t.Errorf("atom %d metadata changed: %+v != %+v", i, a, b)
		}
		if math.Abs(a.Occupancy-b.Occupancy) > 1e-9 {
			t.Errorf("atom %d occupancy: %v != %v", i, a.Occupancy, b.Occupancy)
		}
	}
	if back.Meta.Title != traj.Meta.Title {
		t.Errorf("title: %q != %q", back.Meta.Title, traj.Meta.Title)
	}
}

func TestElementFromAtomName(t *testing.T) {
	cases := []struct {
		name string
		want Element
		ok   bool
	}{
		{"N", N, true},
		{"OW", O, true},
		{"HW1", H, true},
		{"1HB", H, true}, //leading digits stripped
		{"FE", Fe, true},
		{"ZN", Zn, true},
		{"", Unknown, false},
		{"123", Unknown, false},
	}
	for _, c := range cases {
		got, ok := elementFromAtomName(c.name)
		if got != c.want || ok != c.ok {
			t.Errorf("elementFromAtomName(%q) = %v, %v; want %v, %v",
				c.name, got, ok, c.want, c.ok)
		}
	}
}
