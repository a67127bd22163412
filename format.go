/*
 * format.go, part of moltraj.
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
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Format tags the supported trajectory file formats.
type Format int

const (
	FormatUnknown Format = iota
	FormatXYZ
	FormatPDB
	FormatGro
	FormatDCD
	FormatPDBx
)

func (f Format) String() string {
	switch f {
	case FormatXYZ:
		return "XYZ"
	case FormatPDB:
		return "PDB"
	case FormatGro:
		return "GRO"
	case FormatDCD:
		return "DCD"
	case FormatPDBx:
		return "mmCIF"
	}
	return "unknown"
}

// stripCompression removes a trailing .gz or .zst suffix so the real
// extension shows.
func stripCompression(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".zst":
		return strings.TrimSuffix(path, filepath.Ext(path))
	}
	return path
}

// FormatFromPath detects the format from the (case-insensitive) file
// extension, looking through .gz/.zst compression suffixes.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(stripCompression(path))) {
	case ".xyz":
		return FormatXYZ
	case ".pdb", ".ent":
		return FormatPDB
	case ".gro":
		return FormatGro
	case ".dcd":
		return FormatDCD
	case ".cif", ".mmcif", ".mcif":
		return FormatPDBx
	}
	return FormatUnknown
}

// pdbKeywords are the record names whose appearance as the first
// token marks a PDB file.
var pdbKeywords = map[string]bool{
	"ATOM": true, "HETATM": true, "HEADER": true, "TITLE": true,
	"CRYST1": true, "REMARK": true, "MODEL": true,
}

// FormatFromContent sniffs a text head when the extension is no
// help: an integer first line means XYZ, a PDB record keyword means
// PDB, a data_ block opener means mmCIF, and a third line shaped
// like GRO fixed coordinate columns means GRO.
func FormatFromContent(head string) Format {
	lines := strings.Split(head, "\n")
	var first string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			first = l
			break
		}
	}
	trimmed := strings.TrimSpace(first)
	if trimmed == "" {
		return FormatUnknown
	}
	if _, err := strconv.Atoi(trimmed); err == nil {
		return FormatXYZ
	}
	if fields := strings.Fields(trimmed); len(fields) > 0 && pdbKeywords[fields[0]] {
		return FormatPDB
	}
	if strings.HasPrefix(trimmed, "data_") {
		return FormatPDBx
	}
	if len(lines) >= 3 && groCoordShape(strings.TrimRight(lines[2], "\r")) {
		return FormatGro
	}
	return FormatUnknown
}

// groCoordShape checks whether a line carries three parseable 8-char
// coordinate fields at the GRO columns.
func groCoordShape(line string) bool {
	for _, span := range [3][2]int{{20, 28}, {28, 36}, {36, 44}} {
		f := groField(line, span[0], span[1])
		if f == "" {
			return false
		}
		if _, err := strconv.ParseFloat(f, 64); err != nil {
			return false
		}
	}
	return true
}

// DetectFormat combines extension and content sniffing for a file on
// disk. Content sniffing reads at most the first few hundred bytes.
func DetectFormat(path string) (Format, error) {
	if f := FormatFromPath(path); f != FormatUnknown {
		return f, nil
	}
	r, err := openDecompress(path)
	if err != nil {
		return FormatUnknown, errDecorate(err, "DetectFormat")
	}
	defer r.Close()
	head := make([]byte, 512)
	n, rerr := io.ReadFull(r, head)
	if rerr != nil && rerr != io.ErrUnexpectedEOF && rerr != io.EOF {
		return FormatUnknown, ioError(rerr, path, "DetectFormat")
	}
	return FormatFromContent(string(head[:n])), nil
}

// decompressReader pairs the decompressing reader with the closers
// it owns.
type decompressReader struct {
	io.Reader
	closers []func() error
}

func (d *decompressReader) Close() error {
	var first error
	for _, c := range d.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openDecompress opens a file, transparently wrapping it in a gzip
// or zstd decompressor when the name says so.
func openDecompress(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fileNotFound(path)
		}
		return nil, ioError(err, path, "openDecompress")
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		gz, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, invalidFormat("not a gzip stream: "+err.Error(), path, "openDecompress")
		}
		return &decompressReader{Reader: gz, closers: []func() error{gz.Close, f.Close}}, nil
	case ".zst":
		zr, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, invalidFormat("not a zstd stream: "+err.Error(), path, "openDecompress")
		}
		return &decompressReader{Reader: zr, closers: []func() error{func() error { zr.Close(); return nil }, f.Close}}, nil
	}
	return f, nil
}

// Load detects the format of a file and parses it, returning the
// trajectory, the atom metadata (nil for DCD, which carries none)
// and any format-native bonds (PDB CONECT). A recognized format
// without a parser gives an UnsupportedFormat error; everything else
// follows the per-parser error contracts.
func Load(path string) (*Trajectory, []*Atom, []*Bond, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, nil, nil, errDecorate(err, "Load")
	}
	switch format {
	case FormatXYZ:
		traj, atoms, err := XYZFileRead(path)
		return traj, atoms, nil, errDecorate(err, "Load")
	case FormatPDB:
		traj, atoms, bonds, err := PDBFileRead(path)
		return traj, atoms, bonds, errDecorate(err, "Load")
	case FormatGro:
		traj, atoms, err := GroFileRead(path)
		return traj, atoms, nil, errDecorate(err, "Load")
	case FormatDCD:
		traj, err := DCDFileRead(path)
		return traj, nil, nil, errDecorate(err, "Load")
	case FormatPDBx:
		traj, atoms, err := PDBxFileRead(path)
		return traj, atoms, nil, errDecorate(err, "Load")
	}
	return nil, nil, nil, unsupportedFormat("no parser for this input", path, "Load")
}

// Dataset is the active, loaded trajectory with its atom and bond
// lists. Load replaces the whole dataset on success and leaves it
// untouched on failure, so a failed load never corrupts what a
// caller is already displaying.
type Dataset struct {
	Trajectory *Trajectory
	Atoms      []*Atom
	Bonds      []*Bond
	Loaded     bool
}

// Load parses path and, on success only, swaps the parsed data in.
// When the file brought no explicit bonds, bonds are inferred from
// the first frame with conf (nil means DefaultBondConfig).
func (d *Dataset) Load(path string, conf *BondConfig) error {
	traj, atoms, bonds, err := Load(path)
	if err != nil {
		return err
	}
	if len(bonds) == 0 && len(atoms) > 0 {
		if frame, ok := traj.Frame(0); ok {
			bonds = DetectBonds(atoms, frame, conf)
		}
	}
	d.Trajectory = traj
	d.Atoms = atoms
	d.Bonds = bonds
	d.Loaded = true
	return nil
}

// Redetect recomputes the bond list from the given frame index,
// replacing it wholesale.
func (d *Dataset) Redetect(frameIndex int, conf *BondConfig) {
	if d.Trajectory == nil {
		return
	}
	frame, ok := d.Trajectory.Frame(frameIndex)
	if !ok {
		return
	}
	d.Bonds = DetectBonds(d.Atoms, frame, conf)
}
