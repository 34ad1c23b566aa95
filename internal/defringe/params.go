// Copyright (C) 2026 The defringe authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package defringe

import (
	"fmt"
)

// Parameters for chromatic aberration fringe removal.
// JSON tags allow binding from REST requests
type Params struct {
	LHor   int        `json:"lHor"`   // half-window size along rows
	LVer   int        `json:"lVer"`   // half-window size along columns
	Rho    [3]float32 `json:"rho"`    // transient improvement prefilter coefficients for (max, center, min)
	Tau    float32    `json:"tau"`    // chroma magnitude below which sign disagreement is ignored
	AlphaR float32    `json:"alphaR"` // false color regularization for the red channel
	AlphaB float32    `json:"alphaB"` // false color regularization for the blue channel
	BetaR  float32    `json:"betaR"`  // arbitration contrast bias for the red channel
	BetaB  float32    `json:"betaB"`  // arbitration contrast bias for the blue channel
	Gamma1 float32    `json:"gamma1"` // upper envelope normalization bound for arbitration
	Gamma2 float32    `json:"gamma2"` // lower envelope normalization bound for arbitration
}

// Returns parameters tuned for typical purple/green fringing on
// normalized [0,1] images
func NewParams() *Params {
	return &Params{
		LHor:   14,
		LVer:   4,
		Rho:    [3]float32{-0.25, 1.375, -0.125},
		Tau:    15.0 / 255,
		AlphaR: 0.5,
		AlphaB: 1.0,
		BetaR:  1.0,
		BetaB:  0.25,
		Gamma1: 128.0 / 255,
		Gamma2: 64.0 / 255,
	}
}

// Checks parameter invariants against the given image dimensions.
// Rejects malformed configurations before any computation starts
func (p *Params) Verify(width, height int) error {
	if p.LHor < 1 {
		return fmt.Errorf("invalid horizontal half-window %d, must be positive", p.LHor)
	}
	if p.LVer < 1 {
		return fmt.Errorf("invalid vertical half-window %d, must be positive", p.LVer)
	}
	if 2*p.LHor+1 > width {
		return fmt.Errorf("horizontal window %d exceeds image width %d", 2*p.LHor+1, width)
	}
	if 2*p.LVer+1 > height {
		return fmt.Errorf("vertical window %d exceeds image height %d", 2*p.LVer+1, height)
	}
	if p.Tau < 0 {
		return fmt.Errorf("invalid tau %g, must be non-negative", p.Tau)
	}
	if p.AlphaR <= 0 || p.AlphaB <= 0 {
		return fmt.Errorf("invalid alpha (%g, %g), must be positive", p.AlphaR, p.AlphaB)
	}
	if p.BetaR < 0 || p.BetaB < 0 {
		return fmt.Errorf("invalid beta (%g, %g), must be non-negative", p.BetaR, p.BetaB)
	}
	if p.Gamma2 <= 0 {
		return fmt.Errorf("invalid gamma2 %g, must be positive", p.Gamma2)
	}
	if p.Gamma1 < p.Gamma2 {
		return fmt.Errorf("invalid gammas, gamma1 %g must be >= gamma2 %g", p.Gamma1, p.Gamma2)
	}
	return nil
}
