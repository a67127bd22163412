/*
 * xyz.go, part of moltraj.
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

// XYZRead decodes a (possibly multi-frame) XYZ stream: repeating
// blocks of a count line, a comment line and count atom lines. Every
// block is one frame and must repeat the first block's atom count.
// The comment line may carry a "time=" or "t=" token giving the time
// step in fs; otherwise frame times are index multiples of the
// trajectory's default step. Unknown element symbols degrade to
// Unknown with a logged warning. Atom metadata (elements, names) is
// taken from the first frame.
func XYZRead(r io.Reader) (*Trajectory, []*Atom, error) {
	return xyzBufIORead(bufio.NewReader(r), "")
}

// XYZFileRead reads an XYZ file, transparently decompressing .gz and
// .zst inputs.
func XYZFileRead(path string) (*Trajectory, []*Atom, error) {
	f, err := openDecompress(path)
	if err != nil {
		return nil, nil, errDecorate(err, "XYZFileRead")
	}
	defer f.Close()
	traj, atoms, err := xyzBufIORead(bufio.NewReader(f), path)
	if err != nil {
		return nil, nil, errDecorate(err, "XYZFileRead")
	}
	traj.Path = path
	return traj, atoms, nil
}

func xyzBufIORead(br *bufio.Reader, name string) (*Trajectory, []*Atom, error) {
	traj := NewTrajectory(name, 0, 1.0)
	var atoms []*Atom
	lineno := 0
	for {
		frame, frameAtoms, err := xyzNextBlock(br, &lineno, name, traj)
		if err != nil {
			if _, last := err.(lastFrameError); last {
				break
			}
			return nil, nil, errDecorate(err, "xyzBufIORead")
		}
		if traj.IsEmpty() {
			atoms = frameAtoms
			traj.NumAtoms = len(frameAtoms)
		} else if frame.NumAtoms() != traj.NumAtoms {
			return nil, nil, parseError(lineno,
				fmt.Sprintf("frame %d has %d atoms, first frame has %d",
					traj.NumFrames(), frame.NumAtoms(), traj.NumAtoms),
				name, "xyzBufIORead")
		}
		frame.Time = float64(traj.NumFrames()) * traj.TimeStep
		traj.AddFrame(frame)
	}
	if traj.IsEmpty() {
		return nil, nil, invalidFormat("no frames in XYZ input", name, "xyzBufIORead")
	}
	return traj, atoms, nil
}

// xyzNextBlock reads one XYZ block. Blank lines before the count line
// are skipped (files commonly carry a trailing newline or blank
// separators between frames); a clean EOF before a count line yields a
// lastFrameError.
func xyzNextBlock(br *bufio.Reader, lineno *int, name string, traj *Trajectory) (*Frame, []*Atom, error) {
	countLine, err := br.ReadString('\n')
	*lineno++
	for err == nil && strings.TrimSpace(countLine) == "" {
		countLine, err = br.ReadString('\n')
		*lineno++
	}
	if err == io.EOF && strings.TrimSpace(countLine) == "" {
		return nil, nil, lastFrameError{filename: name}
	}
	if err != nil && err != io.EOF {
		return nil, nil, ioError(err, name, "xyzNextBlock")
	}
	count, aerr := strconv.Atoi(strings.TrimSpace(countLine))
	if aerr != nil || count <= 0 {
		return nil, nil, parseError(*lineno, "expected positive atom count, got "+strings.TrimSpace(countLine), name, "xyzNextBlock")
	}
	comment, err := br.ReadString('\n')
	*lineno++
	if err != nil && err != io.EOF {
		return nil, nil, ioError(err, name, "xyzNextBlock")
	}
	if step, ok := xyzTimeToken(comment); ok {
		traj.TimeStep = step
	}
	frame := NewFrame(0, 0)
	atoms := make([]*Atom, 0, count)
	for i := 0; i < count; i++ {
		line, err := br.ReadString('\n')
		*lineno++
		if err != nil && err != io.EOF {
			return nil, nil, ioError(err, name, "xyzNextBlock")
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, nil, parseError(*lineno, "atom line needs symbol and 3 coordinates", name, "xyzNextBlock")
		}
		el, known := ElementFromSymbol(fields[0])
		if !known {
			log.Printf("moltraj: unknown element %q at line %d, using X", fields[0], *lineno)
		}
		var pos v3.Vec
		for k := 0; k < 3; k++ {
			pos[k], aerr = strconv.ParseFloat(fields[k+1], 64)
			if aerr != nil {
				return nil, nil, parseError(*lineno, "bad coordinate "+fields[k+1], name, "xyzNextBlock")
			}
		}
		frame.Pos[i] = pos
		atoms = append(atoms, NewAtom(i, el, 0, "UNK", "A", fields[0]))
	}
	return frame, atoms, nil
}

// xyzTimeToken scans an XYZ comment line for a "time=" or "t=" token
// and returns its value.
func xyzTimeToken(comment string) (float64, bool) {
	for _, tok := range strings.Fields(comment) {
		var val string
		switch {
		case strings.HasPrefix(tok, "time="):
			val = tok[len("time="):]
		case strings.HasPrefix(tok, "t="):
			val = tok[len("t="):]
		default:
			continue
		}
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// XYZStream reads an XYZ trajectory one frame at a time, for inputs
// too large to hold in memory. Next returns a LastFrameError after
// the final frame.
type XYZStream struct {
	br       *bufio.Reader
	closer   io.Closer
	filename string
	traj     *Trajectory //carries atom count and time step between frames
	atoms    []*Atom
	nread    int
	lineno   int
	done     bool
}

// XYZStreamOpen opens a file for streaming frame reads.
func XYZStreamOpen(path string) (*XYZStream, error) {
	f, err := openDecompress(path)
	if err != nil {
		return nil, errDecorate(err, "XYZStreamOpen")
	}
	s := NewXYZStream(f, path)
	s.closer = f
	return s, nil
}

// NewXYZStream wraps an io.Reader for streaming frame reads.
func NewXYZStream(r io.Reader, name string) *XYZStream {
	return &XYZStream{
		br:       bufio.NewReader(r),
		filename: name,
		traj:     NewTrajectory(name, 0, 1.0),
	}
}

// Next reads the next frame. After the last frame it returns a
// LastFrameError (and closes the underlying file, when there is one).
func (X *XYZStream) Next() (*Frame, error) {
	if X.done {
		return nil, lastFrameError{filename: X.filename}
	}
	frame, atoms, err := xyzNextBlock(X.br, &X.lineno, X.filename, X.traj)
	if err != nil {
		if _, last := err.(lastFrameError); last {
			X.done = true
			X.Close()
			return nil, err
		}
		return nil, errDecorate(err, "Next")
	}
	if X.nread == 0 {
		X.atoms = atoms
		X.traj.NumAtoms = len(atoms)
	} else if frame.NumAtoms() != X.traj.NumAtoms {
		return nil, parseError(X.lineno,
			fmt.Sprintf("frame %d has %d atoms, first frame has %d",
				X.nread, frame.NumAtoms(), X.traj.NumAtoms),
			X.filename, "Next")
	}
	frame.Index = X.nread
	frame.Time = float64(X.nread) * X.traj.TimeStep
	X.nread++
	return frame, nil
}

// Atoms returns the atom metadata gathered from the first frame, nil
// before the first Next call.
func (X *XYZStream) Atoms() []*Atom { return X.atoms }

// Close releases the underlying file, if any.
func (X *XYZStream) Close() error {
	if X.closer == nil {
		return nil
	}
	err := X.closer.Close()
	X.closer = nil
	return err
}

// XYZWrite writes the trajectory in multi-frame XYZ form, one block
// per frame, using the element symbols from atoms. Atoms without a
// position in a frame are left out of that block.
func XYZWrite(w io.Writer, traj *Trajectory, atoms []*Atom) error {
	symbols := make(map[int]string, len(atoms))
	for _, at := range atoms {
		symbols[at.ID] = at.Element.Symbol()
	}
	bw := bufio.NewWriter(w)
	for _, frame := range traj.Frames() {
		ids := frame.AtomIDs()
		fmt.Fprintf(bw, "%d\n", len(ids))
		fmt.Fprintf(bw, "time=%.2f frame=%d\n", frame.Time, frame.Index)
		for _, id := range ids {
			sym, ok := symbols[id]
			if !ok {
				sym = "X"
			}
			p := frame.Pos[id]
			fmt.Fprintf(bw, "%-3s %12.6f %12.6f %12.6f\n", sym, p[0], p[1], p[2])
		}
	}
	if err := bw.Flush(); err != nil {
		return ioError(err, traj.Path, "XYZWrite")
	}
	return nil
}
