/*
 * plot_test.go, part of moltraj.
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

package molplot

import (
	"os"
	"path/filepath"
	"testing"

	moltraj "github.com/rmera/moltraj"
	v3 "github.com/rmera/moltraj/v3"
)

func plotTrajectory() *moltraj.Trajectory {
	traj := moltraj.NewTrajectory("", 2, 1.0)
	for i := 0; i < 5; i++ {
		f := moltraj.NewFrame(i, float64(i))
		f.Pos[0] = v3.Vec{float64(i) * 0.1, 0, 0}
		f.Pos[1] = v3.Vec{1, float64(i) * 0.2, 0}
		pot := -100.0 + float64(i)
		kin := 10.0 + float64(i)
		f.PotentialEnergy = &pot
		f.KineticEnergy = &kin
		traj.AddFrame(f)
	}
	return traj
}

func TestRMSDPlot(t *testing.T) {
	traj := plotTrajectory()
	path := filepath.Join(t.TempDir(), "rmsd.png")
	if err := RMSD(traj, 0, nil, path); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("plot file: %v, %v", info, err)
	}
	if err := RMSD(traj, 99, nil, path); err == nil {
		t.Error("out-of-range reference should fail")
	}
}

func TestEnergyPlot(t *testing.T) {
	traj := plotTrajectory()
	path := filepath.Join(t.TempDir(), "energy.png")
	if err := Energy(traj, path); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("plot file: %v, %v", info, err)
	}
	bare := moltraj.NewTrajectory("", 1, 1.0)
	f := moltraj.NewFrame(0, 0)
	f.Pos[0] = v3.Vec{0, 0, 0}
	bare.AddFrame(f)
	if err := Energy(bare, path); err == nil {
		t.Error("a trajectory without energies should fail")
	}
}
