// seehuhn.de/go/tone - tone curves and colour adjustments
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
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

// Package tone implements tone curves and colour adjustments for 8-bit
// RGB images.
//
// All adjustments implement the [Adjuster] interface, which maps one
// 8-bit colour to another.  Adjusters are pure functions and can be
// applied to a whole [Image] with [Apply], which processes rows in
// parallel, or with [ApplyMasked] to restrict the effect to a [Mask].
//
// # Curves
//
// A [Curve] interpolates a list of control points, given either as
// [Point] values or in the "x,y;x,y" text format:
//
//	c := tone.NewCurve(tone.ParseCurveSpec("0,0;128,180;255,255"), tone.CatmullRom)
//	y := c.Evaluate(64)
//
// [ChannelCurves] combines a master curve with per-channel curves, and
// [ToneCurve] adds the four parametric region sliders of [ToneParams].
//
// # Colour Adjustments
//
// [HSLParams] adjusts hue, saturation and lightness in eight hue bands.
// [GradingParams] implements three-way colour grading with colour wheels
// for shadows, midtones and highlights; the graded colour is composited
// with one of the blend modes of [BlendMode].  [LevelsParams] remaps the
// input range of a channel, with optional automatic levels computed from
// the [Histogram] of the image.  [Enhance] boosts detail and local
// contrast with the texture and clarity sliders of [EnhanceParams], and
// removes haze with [Dehaze].
//
// # Errors
//
// Out of range parameters are clamped.  Parameter sets which cannot be
// used at all give an [*InvalidParameterError], and masks of the wrong
// size give a [*DimensionMismatchError].
package tone
