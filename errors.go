/*
 * errors.go, part of moltraj.
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
	"fmt"
	"strings"
)

// ErrKind classifies the errors produced by this package. Parsers
// fail fast: the first error aborts the parse and no partial
// trajectory is returned.
type ErrKind int

const (
	// KindFileNotFound means the named file does not exist.
	KindFileNotFound ErrKind = iota + 1
	// KindIO wraps a low-level I/O fault other than non-existence.
	KindIO
	// KindParse means a malformed, short or non-numeric record at a
	// specific line (or record, for binary formats).
	KindParse
	// KindInvalidFormat means structurally nonsensical input, e.g. a
	// DCD stream without the 84-byte magic record.
	KindInvalidFormat
	// KindUnsupportedFormat means the format was recognized but no
	// parser handles it.
	KindUnsupportedFormat
)

func (k ErrKind) String() string {
	switch k {
	case KindFileNotFound:
		return "file not found"
	case KindIO:
		return "i/o failure"
	case KindParse:
		return "parse error"
	case KindInvalidFormat:
		return "invalid format"
	case KindUnsupportedFormat:
		return "unsupported format"
	}
	return "error"
}

// Error is the concrete error type returned by every operation in
// this package. The deco field accumulates the names of the functions
// the error has passed through.
type Error struct {
	kind     ErrKind
	message  string
	filename string
	line     int //1-based, 0 when not applicable
	deco     []string
	critical bool
}

func (err Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "moltraj: %s: %s", err.kind, err.message)
	if err.line > 0 {
		fmt.Fprintf(&b, " (line %d)", err.line)
	}
	if err.filename != "" {
		fmt.Fprintf(&b, ", file %s", err.filename)
	}
	return b.String()
}

// Kind returns the taxonomy class of the error.
func (err Error) Kind() ErrKind { return err.kind }

// Line returns the 1-based line (or record) number the error refers
// to, 0 when not applicable.
func (err Error) Line() int { return err.line }

// FileName returns the file to which the error refers, or "" when the
// input was an in-memory buffer.
func (err Error) FileName() string { return err.filename }

// Decorate appends the name of the caller to the error's trail and
// returns the trail.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// Critical reports whether the error aborted the operation.
func (err Error) Critical() bool { return err.critical }

// Is lets errors.Is match any Error of the same kind, so callers can
// test against the Err* sentinels below.
func (err Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.kind == err.kind && t.message == ""
}

// Sentinels for errors.Is tests. They carry only a kind.
var (
	ErrFileNotFound      = Error{kind: KindFileNotFound}
	ErrIO                = Error{kind: KindIO}
	ErrParse             = Error{kind: KindParse}
	ErrInvalidFormat     = Error{kind: KindInvalidFormat}
	ErrUnsupportedFormat = Error{kind: KindUnsupportedFormat}
)

func fileNotFound(name string) Error {
	return Error{kind: KindFileNotFound, message: "no such file", filename: name, critical: true}
}

func ioError(inner error, name string, deco ...string) Error {
	return Error{kind: KindIO, message: inner.Error(), filename: name, deco: deco, critical: true}
}

func parseError(line int, message, name string, deco ...string) Error {
	return Error{kind: KindParse, message: message, filename: name, line: line, deco: deco, critical: true}
}

func invalidFormat(message, name string, deco ...string) Error {
	return Error{kind: KindInvalidFormat, message: message, filename: name, deco: deco, critical: true}
}

func unsupportedFormat(message, name string, deco ...string) Error {
	return Error{kind: KindUnsupportedFormat, message: message, filename: name, deco: deco, critical: true}
}

// errDecorate adds the caller's name to the trail of err, if err
// supports decoration, and returns it.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	if d, ok := err.(Error); ok {
		d.deco = append(d.deco, caller)
		return d
	}
	return err
}

// LastFrameError is returned by streaming trajectory readers upon
// normal termination, i.e. when the previous frame read was the last
// one in the stream. It is not a failure.
type LastFrameError interface {
	NormalLastFrameTermination() //just a flag for the type
	FileName() string
	error
}

type lastFrameError struct {
	filename string
}

func (err lastFrameError) NormalLastFrameTermination() {}
func (err lastFrameError) FileName() string            { return err.filename }
func (err lastFrameError) Error() string               { return "EOF" }
