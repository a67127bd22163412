/*
 * bonds.go, part of moltraj.
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
	v3 "github.com/rmera/moltraj/v3"
)

// BondConfig holds the geometric criteria for bond detection.
type BondConfig struct {
	Enabled bool
	// DistMult scales the vdW-radii sum an atom pair must stay
	// within to count as bonded.
	DistMult float64
	MaxDist  float64 //A
	MinDist  float64 //A, rejects overlapping/duplicate positions
	// SameResidueOnly restricts bonds to atoms of the same residue.
	SameResidueOnly bool
}

// DefaultBondConfig returns the standard detection criteria.
func DefaultBondConfig() *BondConfig {
	return &BondConfig{
		Enabled:  true,
		DistMult: 1.2,
		MaxDist:  3.0,
		MinDist:  0.5,
	}
}

// Reference bond lengths in A, keyed by the unordered element pair.
var expectedBondLength = map[[2]Element]float64{
	elPair(H, H):  0.74,
	elPair(H, C):  1.09,
	elPair(H, N):  1.01,
	elPair(H, O):  0.96,
	elPair(C, C):  1.54,
	elPair(C, N):  1.47,
	elPair(C, O):  1.43,
	elPair(C, S):  1.82,
	elPair(N, N):  1.45,
	elPair(N, O):  1.36,
	elPair(O, O):  1.48,
	elPair(S, S):  2.05,
	elPair(Fe, S): 2.30,
	elPair(Zn, S): 2.34,
}

func elPair(a, b Element) [2]Element {
	if a > b {
		a, b = b, a
	}
	return [2]Element{a, b}
}

// ExpectedBondLength returns the reference single-bond length for an
// element pair, falling back to the mean vdW radius scaled by 0.75
// for pairs outside the table.
func ExpectedBondLength(a, b Element) float64 {
	if l, ok := expectedBondLength[elPair(a, b)]; ok {
		return l
	}
	return (a.VdwRadius() + b.VdwRadius()) / 2 * 0.75
}

// A bond clearly shorter than the reference length is taken as a
// higher-order bond.
func bondOrder(dist, expected float64) int {
	switch {
	case dist < expected*0.9:
		return 3
	case dist < expected*0.95:
		return 2
	default:
		return 1
	}
}

func bondTypeFor(a, b Element) BondType {
	p := elPair(a, b)
	switch {
	case a == H || b == H:
		return BondCovalent
	case p == elPair(C, C), p == elPair(C, N), p == elPair(C, O), p == elPair(N, O):
		return BondCovalent
	case p == elPair(S, S):
		return BondDisulfide
	case p == elPair(Fe, S):
		return BondMetal
	case p == elPair(Mg, O), p == elPair(Ca, O):
		return BondIonic
	default:
		return BondCovalent
	}
}

// DetectBonds infers bonds from the atom positions of a single frame.
// Every unordered pair is tested (O(n^2); callers with >10^4 atoms
// should pre-partition with a cell list, the acceptance rule stays
// the same): the pair bonds iff its distance lies within
// [MinDist, MaxDist], within the scaled vdW-radii sum, and, when
// SameResidueOnly is set, both atoms share a residue. Atoms without a
// position in the frame are skipped. The result is keyed
// canonically, one record per undirected pair, and is never an
// error: impossible criteria just yield an empty list. A nil conf
// means DefaultBondConfig.
func DetectBonds(atoms []*Atom, frame *Frame, conf *BondConfig) []*Bond {
	if conf == nil {
		conf = DefaultBondConfig()
	}
	if !conf.Enabled || frame == nil {
		return nil
	}
	var bonds []*Bond
	for i := 0; i < len(atoms); i++ {
		a := atoms[i]
		pa, ok := frame.Pos[a.ID]
		if !ok {
			continue
		}
		for j := i + 1; j < len(atoms); j++ {
			b := atoms[j]
			pb, ok := frame.Pos[b.ID]
			if !ok {
				continue
			}
			d := v3.Dist(pa, pb)
			if d < conf.MinDist || d > conf.MaxDist {
				continue
			}
			if d > (a.Element.VdwRadius()+b.Element.VdwRadius())*conf.DistMult {
				continue
			}
			if conf.SameResidueOnly && a.ResID != b.ResID {
				continue
			}
			exp := ExpectedBondLength(a.Element, b.Element)
			bonds = append(bonds, NewBond(a.ID, b.ID,
				bondTypeFor(a.Element, b.Element), bondOrder(d, exp), d))
		}
	}
	return bonds
}
