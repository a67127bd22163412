/*
 * element.go, part of moltraj.
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

import "strings"

// Element identifies a chemical element. The zero value is Unknown,
// which is what parsers fall back to when a symbol cannot be
// recognized; an Unknown atom still renders and measures, it just
// carries placeholder constants.
type Element uint8

// The enumeration is ordered by atomic number, so int(e) is the
// atomic number for every element except Unknown (which is 0).
const (
	Unknown Element = iota
	H
	He
	Li
	Be
	B
	C
	N
	O
	F
	Ne
	Na
	Mg
	Al
	Si
	P
	S
	Cl
	Ar
	K
	Ca
	Sc
	Ti
	V
	Cr
	Mn
	Fe
	Co
	Ni
	Cu
	Zn
	Ga
	Ge
	As
	Se
	Br
	Kr
	Rb
	Sr
	Y
	Zr
	Nb
	Mo
	Tc
	Ru
	Rh
	Pd
	Ag
	Cd
	In
	Sn
	Sb
	Te
	I
	Xe
	Cs
	Ba
	La
	Ce
	Pr
	Nd
	Pm
	Sm
	Eu
	Gd
	Tb
	Dy
	Ho
	Er
	Tm
	Yb
	Lu
	Hf
	Ta
	W
	Re
	Os
	Ir
	Pt
	Au
	Hg
	Tl
	Pb
	Bi
	Po
	At
	Rn
	Fr
	Ra
	Ac
	Th
	Pa
	U
	Np
	Pu
	Am
	Cm
	Bk
	Cf
	Es
	Fm
	Md
	No
	Lr
	Rf
	Db
	Sg
	Bh
	Hs
	Mt
	Ds
	Rg
	Cn
	Nh
	Fl
	Mc
	Lv
	Ts
	Og
)

var elementSymbols = [...]string{
	"X",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy",
	"Ho", "Er", "Tm", "Yb", "Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt",
	"Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn",
	"Fr", "Ra", "Ac", "Th", "Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf",
	"Es", "Fm", "Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

var symbolToElement = make(map[string]Element, len(elementSymbols))

func init() {
	for i, s := range elementSymbols {
		symbolToElement[strings.ToUpper(s)] = Element(i)
	}
	delete(symbolToElement, "X") //the sentinel does not round-trip
}

// ElementFromSymbol returns the element for a symbol, matching
// case-insensitively. The second return is false, and the element is
// Unknown, when the symbol is not a known element.
func ElementFromSymbol(s string) (Element, bool) {
	e, ok := symbolToElement[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return Unknown, false
	}
	return e, true
}

// Symbol returns the standard one- or two-letter symbol, or "X" for
// Unknown.
func (e Element) Symbol() string {
	if int(e) >= len(elementSymbols) {
		return "X"
	}
	return elementSymbols[e]
}

func (e Element) String() string { return e.Symbol() }

// AtomicNum returns the atomic number, 0 for Unknown.
func (e Element) AtomicNum() int {
	if int(e) >= len(elementSymbols) {
		return 0
	}
	return int(e)
}

// Bondi-style van der Waals radii, in A.
var elementVdw = map[Element]float64{
	H: 1.20, He: 1.40,
	Li: 1.82, Be: 1.53, B: 1.92, C: 1.70, N: 1.55, O: 1.52, F: 1.47, Ne: 1.54,
	Na: 2.27, Mg: 1.73, Al: 1.84, Si: 2.10, P: 1.80, S: 1.80, Cl: 1.75, Ar: 1.88,
	K: 2.75, Ca: 2.31, Sc: 2.15, Ti: 2.11, V: 2.07, Cr: 2.06, Mn: 2.05,
	Fe: 2.04, Co: 2.00, Ni: 1.97, Cu: 1.96, Zn: 2.01,
	Ga: 1.87, Ge: 2.11, As: 1.85, Se: 1.90, Br: 1.85, Kr: 2.02,
	Rb: 3.03, Sr: 2.49, Y: 2.32, Zr: 2.23, Nb: 2.18, Mo: 2.17, Tc: 2.16,
	Ru: 2.13, Rh: 2.10, Pd: 2.10, Ag: 2.11, Cd: 2.18,
	In: 2.20, Sn: 2.17, Sb: 2.06, Te: 2.06, I: 1.98, Xe: 2.16,
}

// Covalent radii, in A, for the elements that matter to bond-length
// heuristics. Everything else gets the 1.0 fallback.
var elementCov = map[Element]float64{
	H: 0.31, C: 0.76, N: 0.71, O: 0.66, F: 0.57,
	P: 1.07, S: 1.05, Cl: 1.02, Br: 1.20, I: 1.39,
	Na: 1.66, Mg: 1.41, K: 2.03, Ca: 1.76, Fe: 1.52, Zn: 1.22,
}

var elementMass = map[Element]float64{
	H: 1.008, He: 4.003,
	Li: 6.941, Be: 9.012, B: 10.811, C: 12.011, N: 14.007, O: 15.999,
	F: 18.998, Ne: 20.180,
	Na: 22.990, Mg: 24.305, Al: 26.982, Si: 28.086, P: 30.974, S: 32.065,
	Cl: 35.453, Ar: 39.948,
	K: 39.098, Ca: 40.078, Sc: 44.956, Ti: 47.867, V: 50.942, Cr: 51.996,
	Mn: 54.938, Fe: 55.845, Co: 58.933, Ni: 58.693, Cu: 63.546, Zn: 65.409,
	Ga: 69.723, Ge: 72.64, As: 74.922, Se: 78.96, Br: 79.904, Kr: 83.798,
	Rb: 85.468, Sr: 87.62, Y: 88.906, Zr: 91.224, Nb: 92.906, Mo: 95.94,
	Tc: 98.0, Ru: 101.07, Rh: 102.91, Pd: 106.42, Ag: 107.87, Cd: 112.41,
	In: 114.82, Sn: 118.71, Sb: 121.76, Te: 127.60, I: 126.90, Xe: 131.29,
	Cs: 132.91, Ba: 137.33, La: 138.91, Ce: 140.12, Pr: 140.91, Nd: 144.24,
	Pm: 145.0, Sm: 150.36, Eu: 151.96, Gd: 157.25, Tb: 158.93, Dy: 162.50,
	Ho: 164.93, Er: 167.26, Tm: 168.93, Yb: 173.04, Lu: 174.97, Hf: 178.49,
	Ta: 180.95, W: 183.84, Re: 186.21, Os: 190.23, Ir: 192.22, Pt: 195.08,
	Au: 196.97, Hg: 200.59, Tl: 204.38, Pb: 207.2, Bi: 208.98,
	Th: 232.04, Pa: 231.04, U: 238.03,
}

// CPK display colors, RGB in [0,1].
var elementCPK = map[Element][3]float64{
	H: {0.9, 0.9, 0.9}, C: {0.2, 0.2, 0.2}, N: {0.1, 0.1, 0.8},
	O: {0.8, 0.1, 0.1}, F: {0.5, 0.8, 0.5}, P: {0.8, 0.5, 0.1},
	S: {0.8, 0.8, 0.1}, Cl: {0.1, 0.8, 0.1}, Br: {0.5, 0.2, 0.2},
	I: {0.4, 0.1, 0.4}, He: {0.9, 0.0, 0.9}, Li: {0.7, 0.0, 0.7},
	Be: {0.5, 0.5, 0.5}, B: {1.0, 0.7, 0.7}, Na: {0.5, 0.5, 0.5},
	Mg: {0.0, 0.0, 0.0}, Al: {0.5, 0.5, 0.5}, Si: {0.9, 0.7, 0.5},
	K: {0.5, 0.5, 0.5}, Ca: {0.2, 0.8, 0.2}, Ti: {0.6, 0.6, 0.6},
	Fe: {0.8, 0.2, 0.2}, Cu: {0.7, 0.4, 0.2}, Zn: {0.4, 0.5, 0.4},
	Ag: {0.7, 0.7, 0.7}, Au: {0.8, 0.7, 0.2},
}

// VdwRadius returns the van der Waals radius in A. Elements without
// tabulated data get the carbon radius, so distance heuristics still
// produce something sensible.
func (e Element) VdwRadius() float64 {
	if r, ok := elementVdw[e]; ok {
		return r
	}
	return 1.70
}

// CovalentRadius returns the covalent radius in A, 1.0 when not
// tabulated.
func (e Element) CovalentRadius() float64 {
	if r, ok := elementCov[e]; ok {
		return r
	}
	return 1.0
}

// Mass returns the atomic mass in amu, 12.0 when not tabulated.
func (e Element) Mass() float64 {
	if m, ok := elementMass[e]; ok {
		return m
	}
	return 12.0
}

// CPKColor returns the conventional display color as RGB in [0,1].
// Elements without an assigned color are mid gray.
func (e Element) CPKColor() [3]float64 {
	if c, ok := elementCPK[e]; ok {
		return c
	}
	return [3]float64{0.5, 0.5, 0.5}
}
