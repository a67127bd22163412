/*
 * pdbx.go, part of moltraj.
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
	"io"
	"log"
	"strconv"
	"strings"

	v3 "github.com/rmera/moltraj/v3"
)

// pdbxScanner is the line-oriented state of an mmCIF scan: the
// current data block, whether we are inside a loop_, the loop's
// category and declared columns, and the accumulated atom_site rows.
type pdbxScanner struct {
	name     string
	block    string
	inLoop   bool
	category string
	columns  []string
	rows     []map[string]string
	meta     map[string]string
}

// PDBxRead decodes an mmCIF stream. Only the atom_site loop becomes
// atoms and positions; struct.title and
// struct_keywords.pdbx_keywords land in the metadata, any other
// single key-value line in the metadata extras. Numeric atom_site
// fields are lenient: a missing or unparsable value degrades to 0.0
// (occupancy to 1.0) instead of failing the parse, since archive
// files routinely carry "?" and "." placeholders. A file without
// atom_site rows yields an empty trajectory, not an error.
func PDBxRead(r io.Reader) (*Trajectory, []*Atom, error) {
	return pdbxBufIORead(bufio.NewReader(r), "")
}

// PDBxFileRead reads an mmCIF file, transparently decompressing .gz
// and .zst inputs.
func PDBxFileRead(path string) (*Trajectory, []*Atom, error) {
	f, err := openDecompress(path)
	if err != nil {
		return nil, nil, errDecorate(err, "PDBxFileRead")
	}
	defer f.Close()
	traj, atoms, err := pdbxBufIORead(bufio.NewReader(f), path)
	if err != nil {
		return nil, nil, errDecorate(err, "PDBxFileRead")
	}
	traj.Path = path
	return traj, atoms, nil
}

func pdbxBufIORead(br *bufio.Reader, name string) (*Trajectory, []*Atom, error) {
	s := &pdbxScanner{name: name, meta: make(map[string]string)}
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, nil, ioError(err, name, "pdbxBufIORead")
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			s.line(trimmed)
		}
		if err == io.EOF {
			break
		}
	}
	return s.build()
}

func (s *pdbxScanner) line(line string) {
	switch {
	case strings.HasPrefix(line, "data_"):
		s.block = line[len("data_"):]
		s.inLoop = false
	case strings.ToLower(line) == "loop_":
		s.inLoop = true
		s.category = ""
		s.columns = nil
	case strings.HasPrefix(line, "_"):
		fields := strings.Fields(line)
		if s.inLoop && len(fields) == 1 {
			// a bare tag inside a loop declares a column; a category
			// switch starts a fresh declaration
			if cat, col, ok := splitTag(line); ok {
				if cat != s.category {
					s.category = cat
					s.columns = nil
				}
				s.columns = append(s.columns, col)
			}
			return
		}
		// single key-value line, ends any running loop
		s.inLoop = false
		if len(fields) >= 2 {
			s.meta[fields[0]] = unquoteCIF(strings.TrimSpace(line[len(fields[0]):]))
		}
	default:
		if s.inLoop && len(s.columns) > 0 && s.category == "_atom_site" {
			fields := strings.Fields(line)
			row := make(map[string]string, len(s.columns))
			for i, col := range s.columns {
				if i < len(fields) {
					row[col] = fields[i]
				}
			}
			s.rows = append(s.rows, row)
		}
	}
}

// splitTag splits "_atom_site.Cartn_x ..." into category and column.
func splitTag(line string) (cat, col string, ok bool) {
	tag := strings.Fields(line)[0]
	dot := strings.IndexByte(tag, '.')
	if dot < 0 {
		return tag, "", false
	}
	return tag[:dot], tag[dot+1:], true
}

// unquoteCIF strips one level of CIF quoting.
func unquoteCIF(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// cifFloat is the lenient numeric read: placeholders and garbage
// become the fallback.
func cifFloat(row map[string]string, col string, fallback float64) float64 {
	v, ok := row[col]
	if !ok || v == "?" || v == "." {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func (s *pdbxScanner) build() (*Trajectory, []*Atom, error) {
	traj := NewTrajectory(s.name, len(s.rows), 1.0)
	if t, ok := s.meta["_struct.title"]; ok {
		traj.Meta.Title = t
	}
	if k, ok := s.meta["_struct_keywords.pdbx_keywords"]; ok {
		traj.Meta.Classification = k
	}
	for k, v := range s.meta {
		if k != "_struct.title" && k != "_struct_keywords.pdbx_keywords" {
			traj.Meta.Extra[k] = v
		}
	}
	if s.block != "" {
		traj.Meta.Extra["data_block"] = s.block
	}
	if len(s.rows) == 0 {
		return traj, nil, nil
	}
	frame := NewFrame(0, 0)
	atoms := make([]*Atom, 0, len(s.rows))
	for i, row := range s.rows {
		frame.Pos[i] = v3.Vec{
			cifFloat(row, "Cartn_x", 0),
			cifFloat(row, "Cartn_y", 0),
			cifFloat(row, "Cartn_z", 0),
		}
		atomName := row["label_atom_id"]
		el, known := Unknown, false
		if sym, ok := row["type_symbol"]; ok {
			el, known = ElementFromSymbol(sym)
		}
		if !known {
			el, known = elementFromAtomName(atomName)
		}
		if !known {
			log.Printf("moltraj: no element for atom_site row %d (%q), using X", i, atomName)
		}
		resID := int(cifFloat(row, "label_seq_id", 0))
		at := NewAtom(i, el, resID, row["label_comp_id"], row["auth_asym_id"], atomName)
		at.Occupancy = cifFloat(row, "occupancy", 1.0)
		at.BFactor = cifFloat(row, "B_iso_or_equiv", 0)
		atoms = append(atoms, at)
	}
	traj.AddFrame(frame)
	return traj, atoms, nil
}
