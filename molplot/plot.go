/*
 * plot.go, part of moltraj.
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

// Package molplot renders quick-look charts of trajectory
// observables: per-frame RMSD against a reference and the energy
// series, as PNG files.
package molplot

import (
	"errors"
	"image/color"

	moltraj "github.com/rmera/moltraj"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// RMSD writes a line chart of the RMSD of every frame against the
// refIndex frame, over ids (nil means all atoms the reference frame
// covers), as a PNG.
func RMSD(traj *moltraj.Trajectory, refIndex int, ids []int, filename string) error {
	ref, ok := traj.Frame(refIndex)
	if !ok {
		return errors.New("molplot: reference frame out of range")
	}
	if ids == nil {
		ids = ref.AtomIDs()
	}
	pts := make(plotter.XYs, 0, traj.NumFrames())
	for _, frame := range traj.Frames() {
		r, ok := moltraj.FrameRMSD(frame, ref, ids)
		if !ok {
			continue
		}
		pts = append(pts, plotter.XY{X: frame.Time, Y: r})
	}
	if len(pts) == 0 {
		return errors.New("molplot: no comparable frames to plot")
	}
	p := plot.New()
	p.Title.Text = "RMSD vs reference"
	p.X.Label.Text = "time (fs)"
	p.Y.Label.Text = "RMSD (A)"
	p.Add(plotter.NewGrid())
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 200, A: 255}
	p.Add(line)
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}

// Energy writes the potential and kinetic energy series over time as
// a PNG. Frames without a value are skipped; an error is returned
// when no frame carries either observable.
func Energy(traj *moltraj.Trajectory, filename string) error {
	var pot, kin plotter.XYs
	for _, frame := range traj.Frames() {
		if frame.PotentialEnergy != nil {
			pot = append(pot, plotter.XY{X: frame.Time, Y: *frame.PotentialEnergy})
		}
		if frame.KineticEnergy != nil {
			kin = append(kin, plotter.XY{X: frame.Time, Y: *frame.KineticEnergy})
		}
	}
	if len(pot) == 0 && len(kin) == 0 {
		return errors.New("molplot: trajectory carries no energies")
	}
	p := plot.New()
	p.Title.Text = "Energy"
	p.X.Label.Text = "time (fs)"
	p.Y.Label.Text = "energy"
	p.Add(plotter.NewGrid())
	if len(pot) > 0 {
		line, err := plotter.NewLine(pot)
		if err != nil {
			return err
		}
		line.Color = color.RGBA{B: 200, A: 255}
		p.Add(line)
		p.Legend.Add("potential", line)
	}
	if len(kin) > 0 {
		line, err := plotter.NewLine(kin)
		if err != nil {
			return err
		}
		line.Color = color.RGBA{R: 200, A: 255}
		p.Add(line)
		p.Legend.Add("kinetic", line)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
