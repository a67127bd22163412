/*
 * atom.go, part of moltraj.
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

// Atom is one atom's static identity within a trajectory. It is
// created by a parser and not modified afterwards; per-frame state
// (position, velocity) lives in Frame, keyed by ID.
type Atom struct {
	ID        int //unique within the trajectory, in [0, NumAtoms)
	Element   Element
	Name      string //atom name, e.g. "CA", "OW"
	ResID     int
	ResName   string //e.g. "ALA", "SOL"
	Chain     string
	Occupancy float64
	BFactor   float64
	Charge    float64
	Mass      float64 //amu, defaults to the element mass
}

// NewAtom returns an Atom with occupancy 1.0 and the element's
// tabulated mass.
func NewAtom(id int, el Element, resid int, resname, chain, name string) *Atom {
	return &Atom{
		ID:        id,
		Element:   el,
		Name:      name,
		ResID:     resid,
		ResName:   resname,
		Chain:     chain,
		Occupancy: 1.0,
		Mass:      el.Mass(),
	}
}

// BondType classifies a bond.
type BondType int

const (
	BondCovalent BondType = iota
	BondHydrogen
	BondIonic
	BondVdw
	BondPi
	BondMetal //metal coordination
	BondDisulfide
	BondPeptide
	BondUnknown
)

func (t BondType) String() string {
	switch t {
	case BondCovalent:
		return "covalent"
	case BondHydrogen:
		return "hydrogen"
	case BondIonic:
		return "ionic"
	case BondVdw:
		return "van der Waals"
	case BondPi:
		return "pi"
	case BondMetal:
		return "metal coordination"
	case BondDisulfide:
		return "disulfide"
	case BondPeptide:
		return "peptide"
	}
	return "unknown"
}

// BondKey is the canonical (min,max) id pair identifying an
// undirected bond.
type BondKey [2]int

// BondKeyFor canonicalizes an id pair.
func BondKeyFor(a, b int) BondKey {
	if a > b {
		a, b = b, a
	}
	return BondKey{a, b}
}

// Bond is an undirected bond between two atoms, with the ids stored
// in canonical (min,max) order. Bonds are produced in one shot by
// DetectBonds or by PDB CONECT records; a re-detection replaces the
// whole list rather than editing it.
type Bond struct {
	A, B   int
	Type   BondType
	Order  int     //1, 2 or 3
	Length float64 //A, cached at detection time
}

// NewBond builds a bond, canonicalizing the id order.
func NewBond(a, b int, t BondType, order int, length float64) *Bond {
	if a > b {
		a, b = b, a
	}
	return &Bond{A: a, B: b, Type: t, Order: order, Length: length}
}

// Key returns the canonical id pair of the bond.
func (b *Bond) Key() BondKey { return BondKey{b.A, b.B} }
