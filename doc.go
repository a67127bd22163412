/*
 * doc.go, part of moltraj.
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

// Package moltraj reads molecular structure and trajectory files
// (XYZ, PDB, GRO, DCD and mmCIF, transparently gzip/zstd
// compressed), normalizes them into a uniform frame-based trajectory
// model, and infers chemical bonds geometrically. The timeline
// subpackage drives interpolated playback over the model; the v3
// subpackage holds the geometric primitives (angles, dihedrals,
// RMSD, Kabsch superposition); align and molplot build on those for
// trajectory superposition and quick-look charts.
//
// Parsers are pure: they fail fast on the first malformed record and
// never return partial trajectories. The one deliberate exception is
// mmCIF, whose numeric fields degrade to 0.0 on archive-style "?"
// placeholders. Unknown element symbols never abort a load; they
// degrade to the Unknown sentinel with a logged warning.
package moltraj
