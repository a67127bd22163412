/*
 * dcd.go, part of moltraj.
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
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	v3 "github.com/rmera/moltraj/v3"
)

// dcdAKMA converts the header time step to fs (DCD stores AKMA-ish
// 20 fs units).
const dcdAKMA = 20.0

// DCDReader decodes a CHARMM/NAMD binary trajectory one frame at a
// time. Every logical field in the stream is a Fortran unformatted
// record: a 4-byte length, the payload, the same 4-byte length again.
// DCD carries positions only; atom metadata must come from a
// companion format (see DCDFileReadWithAtoms).
type DCDReader struct {
	r        io.Reader
	closer   io.Closer
	filename string
	endian   binary.ByteOrder
	natoms   int32
	charmm   bool
	nframes  int32 //header frame count, 0 means read until EOF
	nsteps   int32
	delta    float64 //header time step, AKMA units
	title    string
	nread    int
	readLast bool
}

// NewDCDReader wraps a reader and decodes the DCD header.
func NewDCDReader(r io.Reader, name string) (*DCDReader, error) {
	D := &DCDReader{r: bufio.NewReader(r), filename: name}
	if err := D.readHeader(); err != nil {
		return nil, errDecorate(err, "NewDCDReader")
	}
	return D, nil
}

// DCDOpen opens a DCD file for streaming frame reads.
func DCDOpen(path string) (*DCDReader, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fileNotFound(path)
		}
		return nil, ioError(err, path, "DCDOpen")
	}
	D, err := NewDCDReader(f, path)
	if err != nil {
		f.Close()
		return nil, err
	}
	D.closer = f
	return D, nil
}

// NAtoms returns the per-frame atom count from the header.
func (D *DCDReader) NAtoms() int { return int(D.natoms) }

// TimeStep returns the frame spacing in fs.
func (D *DCDReader) TimeStep() float64 { return D.delta * dcdAKMA }

// Charmm reports whether the stream announced the CHARMM "CORD" tag.
func (D *DCDReader) Charmm() bool { return D.charmm }

// readHeader follows the fixed 84-byte first record. The leading
// record length doubles as an endianness probe: when 84 only reads
// back under big-endian, the whole stream is big-endian.
func (D *DCDReader) readHeader() error {
	D.endian = binary.LittleEndian
	var magic int32
	if err := binary.Read(D.r, D.endian, &magic); err != nil {
		return ioError(err, D.filename, "readHeader")
	}
	if magic != 84 {
		if magic == 84<<24 { //84 byte-swapped
			D.endian = binary.BigEndian
			magic = 84
		} else {
			return invalidFormat(fmt.Sprintf("first DCD record is %d bytes, want 84", magic), D.filename, "readHeader")
		}
	}
	tag := make([]byte, 4)
	if _, err := io.ReadFull(D.r, tag); err != nil {
		return ioError(err, D.filename, "readHeader")
	}
	D.charmm = string(tag) == "CORD"
	buf := make([]byte, 80)
	if _, err := io.ReadFull(D.r, buf); err != nil {
		return ioError(err, D.filename, "readHeader")
	}
	read32 := func(off int) int32 {
		return int32(D.endian.Uint32(buf[off : off+4]))
	}
	D.nframes = read32(0)
	_ = read32(4) //start step
	_ = read32(8) //save interval
	D.nsteps = read32(12)
	// offsets 16..40: 5 reserved ints plus the free-atom count
	D.delta = math.Float64frombits(D.endian.Uint64(buf[40:48]))
	// offsets 48..80: reserved
	var trailing int32
	if err := binary.Read(D.r, D.endian, &trailing); err != nil {
		return ioError(err, D.filename, "readHeader")
	}
	if trailing != 84 {
		return invalidFormat(fmt.Sprintf("header record closes with %d, want 84", trailing), D.filename, "readHeader")
	}
	if err := D.readTitles(); err != nil {
		return err
	}
	// atom count record, always 4 bytes of payload
	var size int32
	if err := binary.Read(D.r, D.endian, &size); err != nil {
		return ioError(err, D.filename, "readHeader")
	}
	if size != 4 {
		return parseError(0, fmt.Sprintf("atom count record is %d bytes, want 4", size), D.filename, "readHeader")
	}
	if err := binary.Read(D.r, D.endian, &D.natoms); err != nil {
		return ioError(err, D.filename, "readHeader")
	}
	if err := binary.Read(D.r, D.endian, &size); err != nil {
		return ioError(err, D.filename, "readHeader")
	}
	if D.natoms <= 0 {
		return invalidFormat(fmt.Sprintf("DCD header declares %d atoms", D.natoms), D.filename, "readHeader")
	}
	return nil
}

func (D *DCDReader) readTitles() error {
	var size, ntitle int32
	if err := binary.Read(D.r, D.endian, &size); err != nil {
		return ioError(err, D.filename, "readTitles")
	}
	if err := binary.Read(D.r, D.endian, &ntitle); err != nil {
		return ioError(err, D.filename, "readTitles")
	}
	if ntitle < 0 || size != ntitle*80+4 {
		return parseError(0, fmt.Sprintf("title record is %d bytes for %d titles", size, ntitle), D.filename, "readTitles")
	}
	if ntitle > 0 {
		titles := make([]byte, int(ntitle)*80)
		if _, err := io.ReadFull(D.r, titles); err != nil {
			return ioError(err, D.filename, "readTitles")
		}
		D.title = strings.TrimSpace(strings.Trim(string(titles), "\x00 "))
	}
	if err := binary.Read(D.r, D.endian, &size); err != nil {
		return ioError(err, D.filename, "readTitles")
	}
	return nil
}

// Next reads the next frame: the X, Y and Z records, in that order,
// each natoms float32s. After the last frame it returns a
// LastFrameError. A frame count of zero in the header means frames
// are read until a clean EOF at a frame boundary; EOF in the middle
// of a frame is a parse error.
func (D *DCDReader) Next() (*Frame, error) {
	if D.readLast || (D.nframes > 0 && D.nread >= int(D.nframes)) {
		D.readLast = true
		D.Close()
		return nil, lastFrameError{filename: D.filename}
	}
	var blocks [3][]float32
	for k := 0; k < 3; k++ {
		block, err := D.readFloat32Block(k == 0)
		if err != nil {
			if _, last := err.(lastFrameError); last {
				D.readLast = true
				D.Close()
			}
			return nil, err
		}
		blocks[k] = block
	}
	frame := NewFrame(D.nread, float64(D.nread)*D.TimeStep())
	for i := 0; i < int(D.natoms); i++ {
		frame.Pos[i] = v3.Vec{
			float64(blocks[0][i]),
			float64(blocks[1][i]),
			float64(blocks[2][i]),
		}
	}
	D.nread++
	return frame, nil
}

// readFloat32Block reads one length-framed float32 record. When
// atBoundary is set, a clean EOF on the leading length is the normal
// end of the stream.
func (D *DCDReader) readFloat32Block(atBoundary bool) ([]float32, error) {
	var size int32
	if err := binary.Read(D.r, D.endian, &size); err != nil {
		if err == io.EOF && atBoundary {
			return nil, lastFrameError{filename: D.filename}
		}
		return nil, ioError(err, D.filename, "readFloat32Block")
	}
	want := D.natoms * 4
	if size != want {
		return nil, parseError(D.nread+1, fmt.Sprintf("coordinate record is %d bytes, want %d", size, want), D.filename, "readFloat32Block")
	}
	block := make([]float32, D.natoms)
	if err := binary.Read(D.r, D.endian, block); err != nil {
		return nil, ioError(err, D.filename, "readFloat32Block")
	}
	if err := binary.Read(D.r, D.endian, &size); err != nil {
		return nil, ioError(err, D.filename, "readFloat32Block")
	}
	if size != want {
		return nil, parseError(D.nread+1, fmt.Sprintf("coordinate record closes with %d, want %d", size, want), D.filename, "readFloat32Block")
	}
	return block, nil
}

// Close releases the underlying file, if any.
func (D *DCDReader) Close() error {
	if D.closer == nil {
		return nil
	}
	err := D.closer.Close()
	D.closer = nil
	return err
}

func (D *DCDReader) trajectory() (*Trajectory, error) {
	traj := NewTrajectory(D.filename, D.NAtoms(), D.TimeStep())
	traj.Meta.Title = D.title
	if D.charmm {
		traj.Meta.Software = "CHARMM"
	} else {
		traj.Meta.Software = "Unknown"
	}
	traj.Meta.NumSteps = int(D.nsteps)
	traj.Meta.StepSize = D.delta
	for {
		frame, err := D.Next()
		if err != nil {
			if _, last := err.(lastFrameError); last {
				break
			}
			return nil, err
		}
		traj.AddFrame(frame)
	}
	if traj.IsEmpty() {
		return nil, invalidFormat("no frames in DCD input", D.filename, "DCDRead")
	}
	return traj, nil
}

// DCDRead decodes a whole DCD stream into a positions-only
// trajectory.
func DCDRead(r io.Reader) (*Trajectory, error) {
	D, err := NewDCDReader(r, "")
	if err != nil {
		return nil, errDecorate(err, "DCDRead")
	}
	traj, err := D.trajectory()
	return traj, errDecorate(err, "DCDRead")
}

// DCDFileRead reads a whole DCD file into a positions-only
// trajectory.
func DCDFileRead(path string) (*Trajectory, error) {
	D, err := DCDOpen(path)
	if err != nil {
		return nil, errDecorate(err, "DCDFileRead")
	}
	defer D.Close()
	traj, err := D.trajectory()
	return traj, errDecorate(err, "DCDFileRead")
}

// DCDFileReadWithAtoms reads a DCD file and pairs it with atom
// records obtained from another format. The atom list length must
// match the stream's per-frame atom count.
func DCDFileReadWithAtoms(path string, atoms []*Atom) (*Trajectory, error) {
	traj, err := DCDFileRead(path)
	if err != nil {
		return nil, err
	}
	if len(atoms) != traj.NumAtoms {
		return nil, invalidFormat(
			fmt.Sprintf("atom data has %d atoms, DCD frames have %d", len(atoms), traj.NumAtoms),
			path, "DCDFileReadWithAtoms")
	}
	return traj, nil
}

// DCDWriter writes a CHARMM-style DCD stream, reproducing the record
// framing bit for bit.
type DCDWriter struct {
	w        io.Writer
	closer   io.Closer
	filename string
	endian   binary.ByteOrder
	natoms   int32
	fields   [3][]float32
	written  int
}

// NewDCDWriter writes a DCD header for natoms atoms per frame onto w.
// The frame-count field is left 0 (frames follow until EOF), and
// timeStep (fs) lands in the header's time-step slot.
func NewDCDWriter(w io.Writer, natoms int, timeStep float64) (*DCDWriter, error) {
	if natoms <= 0 {
		return nil, invalidFormat("cannot write a DCD for 0 atoms", "", "NewDCDWriter")
	}
	D := &DCDWriter{w: w, endian: binary.LittleEndian, natoms: int32(natoms)}
	if err := D.writeHeader(timeStep); err != nil {
		return nil, errDecorate(err, "NewDCDWriter")
	}
	return D, nil
}

// DCDCreate creates a file and writes the DCD header to it.
func DCDCreate(path string, natoms int, timeStep float64) (*DCDWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, ioError(err, path, "DCDCreate")
	}
	D, err := NewDCDWriter(f, natoms, timeStep)
	if err != nil {
		f.Close()
		return nil, err
	}
	D.filename = path
	D.closer = f
	return D, nil
}

func (D *DCDWriter) writeHeader(timeStep float64) error {
	wrap := func(err error) error {
		if err != nil {
			return ioError(err, D.filename, "writeHeader")
		}
		return nil
	}
	if err := binary.Write(D.w, D.endian, int32(84)); err != nil {
		return wrap(err)
	}
	if _, err := D.w.Write([]byte("CORD")); err != nil {
		return wrap(err)
	}
	buf := make([]byte, 80)
	// frame count stays 0: readers take that as read-until-EOF
	D.endian.PutUint32(buf[8:12], 1) //save interval
	D.endian.PutUint64(buf[40:48], math.Float64bits(timeStep/dcdAKMA))
	if _, err := D.w.Write(buf); err != nil {
		return wrap(err)
	}
	if err := binary.Write(D.w, D.endian, int32(84)); err != nil {
		return wrap(err)
	}
	// one empty 80-byte title
	title := make([]byte, 80)
	for _, v := range []interface{}{int32(84), int32(1), title, int32(84)} {
		if err := binary.Write(D.w, D.endian, v); err != nil {
			return wrap(err)
		}
	}
	for _, v := range []int32{4, D.natoms, 4} {
		if err := binary.Write(D.w, D.endian, v); err != nil {
			return wrap(err)
		}
	}
	return nil
}

// WNext writes one frame. The frame must cover every id in
// [0, natoms).
func (D *DCDWriter) WNext(frame *Frame) error {
	if frame == nil {
		return invalidFormat("got a nil frame", D.filename, "WNext")
	}
	if D.fields[0] == nil {
		for k := range D.fields {
			D.fields[k] = make([]float32, D.natoms)
		}
	}
	for i := 0; i < int(D.natoms); i++ {
		p, ok := frame.Pos[i]
		if !ok {
			return invalidFormat(fmt.Sprintf("frame %d has no position for atom %d", frame.Index, i), D.filename, "WNext")
		}
		D.fields[0][i] = float32(p[0])
		D.fields[1][i] = float32(p[1])
		D.fields[2][i] = float32(p[2])
	}
	for k := 0; k < 3; k++ {
		if err := D.writeFloat32Block(D.fields[k]); err != nil {
			return errDecorate(err, "WNext")
		}
	}
	D.written++
	return nil
}

func (D *DCDWriter) writeFloat32Block(block []float32) error {
	size := int32(len(block)) * 4
	if err := binary.Write(D.w, D.endian, size); err != nil {
		return ioError(err, D.filename, "writeFloat32Block")
	}
	if err := binary.Write(D.w, D.endian, block); err != nil {
		return ioError(err, D.filename, "writeFloat32Block")
	}
	if err := binary.Write(D.w, D.endian, size); err != nil {
		return ioError(err, D.filename, "writeFloat32Block")
	}
	return nil
}

// Close releases the underlying file, if any.
func (D *DCDWriter) Close() error {
	if D.closer == nil {
		return nil
	}
	err := D.closer.Close()
	D.closer = nil
	return err
}

// DCDWrite writes the whole trajectory as a DCD stream.
func DCDWrite(w io.Writer, traj *Trajectory) error {
	D, err := NewDCDWriter(w, traj.NumAtoms, traj.TimeStep)
	if err != nil {
		return errDecorate(err, "DCDWrite")
	}
	for _, frame := range traj.Frames() {
		if err := D.WNext(frame); err != nil {
			return errDecorate(err, "DCDWrite")
		}
	}
	return nil
}
