/*
 * pdb.go, part of moltraj.
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
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	v3 "github.com/rmera/moltraj/v3"
)

// elementFromAtomName guesses the element from a PDB/GRO atom name:
// leading digits are stripped, then a 2-letter and a 1-letter symbol
// match are tried in that order. The water names OW/HW go to oxygen
// and hydrogen before the symbol match would misread them.
func elementFromAtomName(name string) (Element, bool) {
	s := strings.TrimLeft(strings.TrimSpace(name), "0123456789")
	if s == "" {
		return Unknown, false
	}
	up := strings.ToUpper(s)
	if strings.HasPrefix(up, "OW") {
		return O, true
	}
	if strings.HasPrefix(up, "HW") {
		return H, true
	}
	if len(s) >= 2 {
		if el, ok := ElementFromSymbol(s[:2]); ok {
			return el, true
		}
	}
	return ElementFromSymbol(s[:1])
}

// pdbParser accumulates state while scanning a PDB stream.
type pdbParser struct {
	name   string
	traj   *Trajectory
	atoms  []*Atom
	bonds  []*Bond
	frame  *Frame //the model being filled, nil outside MODEL blocks
	inMo   bool   //inside an open MODEL
	serial map[int]int
	box    *[3]float64
	title  []string
	nextID int
}

// PDBRead decodes a PDB stream: fixed-column ATOM/HETATM records,
// MODEL/ENDMDL frame delimiting (each closed model is one frame, a
// file without models yields a single frame), CONECT bonds, and
// HEADER/TITLE/CRYST1 metadata.
func PDBRead(r io.Reader) (*Trajectory, []*Atom, []*Bond, error) {
	return pdbBufIORead(bufio.NewReader(r), "")
}

// PDBFileRead reads a PDB file, transparently decompressing .gz and
// .zst inputs.
func PDBFileRead(path string) (*Trajectory, []*Atom, []*Bond, error) {
	f, err := openDecompress(path)
	if err != nil {
		return nil, nil, nil, errDecorate(err, "PDBFileRead")
	}
	defer f.Close()
	traj, atoms, bonds, err := pdbBufIORead(bufio.NewReader(f), path)
	if err != nil {
		return nil, nil, nil, errDecorate(err, "PDBFileRead")
	}
	traj.Path = path
	return traj, atoms, bonds, nil
}

func pdbBufIORead(br *bufio.Reader, name string) (*Trajectory, []*Atom, []*Bond, error) {
	p := &pdbParser{
		name:   name,
		traj:   NewTrajectory(name, 0, 1.0),
		serial: make(map[int]int),
	}
	lineno := 0
	for {
		line, err := br.ReadString('\n')
		lineno++
		if err != nil && err != io.EOF {
			return nil, nil, nil, ioError(err, name, "pdbBufIORead")
		}
		if strings.TrimSpace(line) != "" {
			if perr := p.record(line, lineno); perr != nil {
				return nil, nil, nil, errDecorate(perr, "pdbBufIORead")
			}
		}
		if err == io.EOF {
			break
		}
	}
	// records outside any MODEL become the (last) frame
	if p.frame != nil && p.frame.NumAtoms() > 0 {
		p.closeModel()
	}
	if p.traj.IsEmpty() {
		return nil, nil, nil, invalidFormat("no coordinate records in PDB input", name, "pdbBufIORead")
	}
	p.traj.NumAtoms = len(p.atoms)
	p.traj.Meta.Title = strings.Join(p.title, " ")
	return p.traj, p.atoms, p.bonds, nil
}

func (p *pdbParser) record(line string, lineno int) error {
	rec := line
	if len(rec) > 6 {
		rec = rec[:6]
	}
	switch strings.TrimSpace(rec) {
	case "ATOM", "HETATM":
		return p.coordRecord(line, lineno)
	case "MODEL":
		p.frame = p.newModelFrame()
		p.inMo = true
		p.nextID = 0
	case "ENDMDL":
		if p.frame != nil {
			p.closeModel()
		}
		p.inMo = false
	case "CONECT":
		p.conectRecord(line)
	case "HEADER":
		if len(line) > 10 {
			end := 50
			if end > len(line) {
				end = len(line)
			}
			p.traj.Meta.Classification = strings.TrimSpace(line[10:end])
		}
	case "TITLE":
		if len(line) > 10 {
			if t := strings.TrimSpace(line[10:]); t != "" {
				p.title = append(p.title, t)
			}
		}
	case "CRYST1":
		p.cryst1Record(line, lineno)
	}
	return nil
}

func (p *pdbParser) newModelFrame() *Frame {
	f := NewFrame(p.traj.NumFrames(), float64(p.traj.NumFrames())*p.traj.TimeStep)
	if p.box != nil {
		box := *p.box
		f.Box = &box
	}
	return f
}

func (p *pdbParser) closeModel() {
	p.frame.Time = float64(p.traj.NumFrames()) * p.traj.TimeStep
	p.traj.AddFrame(p.frame)
	p.frame = nil
}

func (p *pdbParser) coordRecord(line string, lineno int) error {
	if len(line) < 54 {
		return parseError(lineno, "ATOM record too short", p.name, "coordRecord")
	}
	if p.frame == nil {
		p.frame = p.newModelFrame()
	}
	var pos v3.Vec
	for k, span := range [3][2]int{{30, 38}, {38, 46}, {46, 54}} {
		f, err := strconv.ParseFloat(strings.TrimSpace(line[span[0]:span[1]]), 64)
		if err != nil {
			return parseError(lineno, "bad coordinate field "+strings.TrimSpace(line[span[0]:span[1]]), p.name, "coordRecord")
		}
		pos[k] = f
	}
	id := p.nextID
	p.nextID++
	if p.traj.NumFrames() > 0 {
		// later models only contribute positions, and every position
		// must map onto an atom from the first model
		if id >= len(p.atoms) {
			return parseError(lineno,
				fmt.Sprintf("model %d has more atom records than the first model (%d)",
					p.traj.NumFrames()+1, len(p.atoms)),
				p.name, "coordRecord")
		}
		p.frame.Pos[id] = pos
		return nil
	}
	p.frame.Pos[id] = pos
	atomName := strings.TrimSpace(line[12:16])
	el, known := elementFromAtomName(atomName)
	if !known {
		log.Printf("moltraj: no element for atom name %q at line %d, using X", atomName, lineno)
	}
	resName := strings.TrimSpace(line[17:20])
	chain := strings.TrimSpace(line[21:22])
	resID, _ := strconv.Atoi(strings.TrimSpace(line[22:26]))
	at := NewAtom(id, el, resID, resName, chain, atomName)
	if len(line) >= 60 {
		if occ, err := strconv.ParseFloat(strings.TrimSpace(line[54:60]), 64); err == nil {
			at.Occupancy = occ
		}
	}
	if len(line) >= 66 {
		if bf, err := strconv.ParseFloat(strings.TrimSpace(line[60:66]), 64); err == nil {
			at.BFactor = bf
		}
	}
	if serial, err := strconv.Atoi(strings.TrimSpace(line[6:11])); err == nil {
		p.serial[serial] = id
	}
	p.atoms = append(p.atoms, at)
	return nil
}

// conectRecord adds one bond per partner serial. Serials that never
// appeared in a coordinate record are skipped.
func (p *pdbParser) conectRecord(line string) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return
	}
	central, err := strconv.Atoi(fields[1])
	if err != nil {
		return
	}
	a, ok := p.serial[central]
	if !ok {
		return
	}
	for _, f := range fields[2:] {
		partner, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		b, ok := p.serial[partner]
		if !ok || b == a {
			continue
		}
		key := BondKeyFor(a, b)
		dup := false
		for _, old := range p.bonds {
			if old.Key() == key {
				dup = true
				break
			}
		}
		if !dup {
			p.bonds = append(p.bonds, NewBond(a, b, BondCovalent, 1, 0))
		}
	}
}

func (p *pdbParser) cryst1Record(line string, lineno int) {
	if len(line) < 33 {
		return
	}
	var box [3]float64
	for k, span := range [3][2]int{{6, 15}, {15, 24}, {24, 33}} {
		f, err := strconv.ParseFloat(strings.TrimSpace(line[span[0]:span[1]]), 64)
		if err != nil {
			return
		}
		box[k] = f
	}
	p.box = &box
}

// PDBWrite writes the trajectory as a PDB file, one MODEL block per
// frame when there is more than one. Atoms missing a position in a
// frame are left out of that model.
func PDBWrite(w io.Writer, traj *Trajectory, atoms []*Atom) error {
	bw := bufio.NewWriter(w)
	if traj.Meta.Classification != "" {
		fmt.Fprintf(bw, "HEADER    %s\n", traj.Meta.Classification)
	}
	if traj.Meta.Title != "" {
		fmt.Fprintf(bw, "TITLE     %s\n", traj.Meta.Title)
	}
	multi := traj.NumFrames() > 1
	for _, frame := range traj.Frames() {
		if frame.Box != nil {
			b := *frame.Box
			fmt.Fprintf(bw, "CRYST1%9.3f%9.3f%9.3f%7.2f%7.2f%7.2f P 1           1\n",
				b[0], b[1], b[2], 90.0, 90.0, 90.0)
		}
		if multi {
			fmt.Fprintf(bw, "MODEL     %4d\n", frame.Index+1)
		}
		for _, at := range atoms {
			p, ok := frame.Pos[at.ID]
			if !ok {
				continue
			}
			fmt.Fprintf(bw, "ATOM  %5d %-4s %-3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
				at.ID+1, at.Name, at.ResName, at.Chain, at.ResID,
				p[0], p[1], p[2], at.Occupancy, at.BFactor, at.Element.Symbol())
		}
		if multi {
			fmt.Fprintf(bw, "ENDMDL\n")
		}
	}
	fmt.Fprintf(bw, "END\n")
	if err := bw.Flush(); err != nil {
		return ioError(err, traj.Path, "PDBWrite")
	}
	return nil
}
