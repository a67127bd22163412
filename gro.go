/*
 * gro.go, part of moltraj.
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

// GroRead decodes a GROMACS .gro stream: a title line, an atom count
// line, exactly count fixed-column atom lines (positions in nm,
// velocities present when the line is long enough) and an optional
// final box line. GRO columns are absolute, so lines are never
// trimmed before slicing.
func GroRead(r io.Reader) (*Trajectory, []*Atom, error) {
	return groBufIORead(bufio.NewReader(r), "")
}

// GroFileRead reads a .gro file, transparently decompressing .gz and
// .zst inputs.
func GroFileRead(path string) (*Trajectory, []*Atom, error) {
	f, err := openDecompress(path)
	if err != nil {
		return nil, nil, errDecorate(err, "GroFileRead")
	}
	defer f.Close()
	traj, atoms, err := groBufIORead(bufio.NewReader(f), path)
	if err != nil {
		return nil, nil, errDecorate(err, "GroFileRead")
	}
	traj.Path = path
	return traj, atoms, nil
}

func groBufIORead(br *bufio.Reader, name string) (*Trajectory, []*Atom, error) {
	lineno := 0
	readLine := func() (string, error) {
		line, err := br.ReadString('\n')
		lineno++
		if err != nil && err != io.EOF {
			return "", ioError(err, name, "groBufIORead")
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
	title, err := readLine()
	if err != nil {
		return nil, nil, err
	}
	countLine, err := readLine()
	if err != nil {
		return nil, nil, err
	}
	count, aerr := strconv.Atoi(strings.TrimSpace(countLine))
	if aerr != nil || count <= 0 {
		return nil, nil, invalidFormat("expected positive atom count, got "+strings.TrimSpace(countLine), name, "groBufIORead")
	}
	traj := NewTrajectory(name, count, 1.0)
	traj.Meta.Title = strings.TrimSpace(title)
	traj.Meta.Software = "GROMACS"
	frame := NewFrame(0, 0)
	atoms := make([]*Atom, 0, count)
	for i := 0; i < count; i++ {
		line, err := readLine()
		if err != nil {
			return nil, nil, err
		}
		at, pos, vel, hasVel, perr := groAtomLine(line, i, lineno, name)
		if perr != nil {
			return nil, nil, perr
		}
		atoms = append(atoms, at)
		frame.Pos[i] = pos
		if hasVel {
			if frame.Vel == nil {
				frame.Vel = make(map[int]v3.Vec)
			}
			frame.Vel[i] = vel
		}
	}
	// box line, tolerated absent
	if boxLine, err := readLine(); err == nil {
		fields := strings.Fields(boxLine)
		if len(fields) >= 3 {
			var box [3]float64
			ok := true
			for k := 0; k < 3; k++ {
				if box[k], aerr = strconv.ParseFloat(fields[k], 64); aerr != nil {
					ok = false
					break
				}
			}
			if ok {
				frame.Box = &box
			}
		}
	}
	traj.AddFrame(frame)
	return traj, atoms, nil
}

// groField slices a fixed-column field, tolerating lines shorter than
// the nominal 44-column record.
func groField(line string, lo, hi int) string {
	if lo >= len(line) {
		return ""
	}
	if hi > len(line) {
		hi = len(line)
	}
	return strings.TrimSpace(line[lo:hi])
}

func groAtomLine(line string, id, lineno int, name string) (*Atom, v3.Vec, v3.Vec, bool, error) {
	resID, aerr := strconv.Atoi(groField(line, 0, 5))
	if aerr != nil {
		resID = id
	}
	resName := groField(line, 5, 10)
	if resName == "" {
		resName = "UNK"
	}
	atomName := groField(line, 10, 15)
	if atomName == "" {
		atomName = "X"
	}
	var pos v3.Vec
	for k, span := range [3][2]int{{20, 28}, {28, 36}, {36, 44}} {
		field := groField(line, span[0], span[1])
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, v3.Vec{}, v3.Vec{}, false,
				parseError(lineno, "bad coordinate field "+strconv.Quote(field), name, "groAtomLine")
		}
		pos[k] = f
	}
	var vel v3.Vec
	hasVel := false
	if len(line) >= 68 {
		hasVel = true
		for k, span := range [3][2]int{{44, 52}, {52, 60}, {60, 68}} {
			f, err := strconv.ParseFloat(groField(line, span[0], span[1]), 64)
			if err != nil {
				// velocity columns are optional, malformed ones are
				// just dropped
				hasVel = false
				break
			}
			vel[k] = f
		}
	}
	el, known := elementFromAtomName(atomName)
	if !known {
		log.Printf("moltraj: no element for atom name %q at line %d, using X", atomName, lineno)
	}
	return NewAtom(id, el, resID, resName, "", atomName), pos, vel, hasVel, nil
}

// GroWrite writes the trajectory's first frame in .gro fixed-column
// form (GRO is a single-configuration format).
func GroWrite(w io.Writer, traj *Trajectory, atoms []*Atom) error {
	frame, ok := traj.Frame(0)
	if !ok {
		return invalidFormat("cannot write an empty trajectory", traj.Path, "GroWrite")
	}
	bw := bufio.NewWriter(w)
	title := traj.Meta.Title
	if title == "" {
		title = "written by moltraj"
	}
	fmt.Fprintf(bw, "%s\n", title)
	n := 0
	for _, at := range atoms {
		if _, ok := frame.Pos[at.ID]; ok {
			n++
		}
	}
	fmt.Fprintf(bw, "%5d\n", n)
	for _, at := range atoms {
		p, ok := frame.Pos[at.ID]
		if !ok {
			continue
		}
		fmt.Fprintf(bw, "%5d%-5s%5s%5d%8.3f%8.3f%8.3f",
			at.ResID, at.ResName, at.Name, at.ID+1, p[0], p[1], p[2])
		if v, ok := frame.Vel[at.ID]; ok {
			fmt.Fprintf(bw, "%8.4f%8.4f%8.4f", v[0], v[1], v[2])
		}
		fmt.Fprintf(bw, "\n")
	}
	if frame.Box != nil {
		b := *frame.Box
		fmt.Fprintf(bw, "%10.5f%10.5f%10.5f\n", b[0], b[1], b[2])
	} else {
		fmt.Fprintf(bw, "%10.5f%10.5f%10.5f\n", 0.0, 0.0, 0.0)
	}
	if err := bw.Flush(); err != nil {
		return ioError(err, traj.Path, "GroWrite")
	}
	return nil
}
