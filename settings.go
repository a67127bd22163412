/*
 * settings.go, part of moltraj.
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
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDistMult    = 1.2
	DefaultMaxBondDist = 3.0
	DefaultMinBondDist = 0.5
	DefaultSpeed       = 1.0
)

// Settings holds the user-tunable knobs: bond detection criteria and
// playback defaults. They load from and save to YAML.
type Settings struct {
	Bonds    BondSettings     `yaml:"bonds"`
	Playback PlaybackSettings `yaml:"playback"`
}

type BondSettings struct {
	Enabled         bool    `yaml:"enabled"`
	DistMult        float64 `yaml:"distance_multiplier"`
	MaxDist         float64 `yaml:"max_distance"`
	MinDist         float64 `yaml:"min_distance"`
	SameResidueOnly bool    `yaml:"same_residue_only"`
}

type PlaybackSettings struct {
	Speed       float64 `yaml:"speed"`
	Loop        bool    `yaml:"loop"`
	Interpolate bool    `yaml:"interpolate"`
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() *Settings {
	return &Settings{
		Bonds: BondSettings{
			Enabled:  true,
			DistMult: DefaultDistMult,
			MaxDist:  DefaultMaxBondDist,
			MinDist:  DefaultMinBondDist,
		},
		Playback: PlaybackSettings{
			Speed:       DefaultSpeed,
			Loop:        true,
			Interpolate: true,
		},
	}
}

// LoadSettings reads a YAML settings file, unmarshalling over the
// defaults so missing keys keep their stock values.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fileNotFound(path)
		}
		return nil, ioError(err, path, "LoadSettings")
	}
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, invalidFormat(err.Error(), path, "LoadSettings")
	}
	return s, nil
}

// SaveSettings writes the settings as YAML.
func SaveSettings(path string, s *Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return invalidFormat(err.Error(), path, "SaveSettings")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return ioError(err, path, "SaveSettings")
	}
	return nil
}

// BondConfig converts the bond section into detection criteria.
func (s *Settings) BondConfig() *BondConfig {
	return &BondConfig{
		Enabled:         s.Bonds.Enabled,
		DistMult:        s.Bonds.DistMult,
		MaxDist:         s.Bonds.MaxDist,
		MinDist:         s.Bonds.MinDist,
		SameResidueOnly: s.Bonds.SameResidueOnly,
	}
}
