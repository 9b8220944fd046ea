// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg

import "math"

const (
	// MaxDigits is the largest number of digits a Dev drives.
	MaxDigits = 8
	// NumSegments is the number of segment lines, 7 segments and the decimal
	// point.
	NumSegments = 8
	// DecimalPoint is OR'd onto a segment code to light the point.
	DecimalPoint byte = 0x80
)

// Glyph is what a single digit shows once a number has been decomposed.
// Values 0 to 9 are the decimal digits.
type Glyph byte

const (
	Blank Glyph = 10
	Dash  Glyph = 11
)

// glyphCodes maps a Glyph to its segment code.
var glyphCodes = [...]byte{
	// HGFEDCBA
	0x3f, // 0
	0x06, // 1
	0x5b, // 2
	0x4f, // 3
	0x66, // 4
	0x6d, // 5
	0x7d, // 6
	0x07, // 7
	0x7f, // 8
	0x6f, // 9
	0x00, // Blank
	0x40, // Dash
}

var powersOf10 = [...]int64{
	1,
	10,
	100,
	1000,
	10000,
	100000,
	1000000,
	10000000,
	100000000,
	1000000000,
}

// Code returns the segment code of the glyph, without decimal point.
func (g Glyph) Code() byte {
	return glyphCodes[g]
}

func (g Glyph) String() string {
	switch {
	case g <= 9:
		return string(rune('0' + g))
	case g == Blank:
		return " "
	case g == Dash:
		return "-"
	}
	return "?"
}

// Pow10 returns 10^n for n in [0, 9].
func Pow10(n int) int64 {
	return powersOf10[n]
}

// Range returns the smallest and largest integer that fit on digits digits.
// Negative numbers need one digit for the sign.
func Range(digits int) (minValue, maxValue int64) {
	return -(powersOf10[digits-1] - 1), powersOf10[digits] - 1
}

// DecomposeDigits returns the glyphs showing value on digits digits, of which
// decimals are after the decimal point. digits is clamped to MaxDigits.
//
// Values that do not fit are shown as dashes on every digit.
func DecomposeDigits(value int64, decimals, digits int) []Glyph {
	if digits <= 0 {
		return nil
	}
	if digits > MaxDigits {
		digits = MaxDigits
	}
	g := make([]Glyph, digits)
	decompose(g, value, decimals)
	return g
}

// decompose fills dst, one glyph per digit, most significant first.
func decompose(dst []Glyph, value int64, decimals int) {
	n := len(dst)
	minValue, maxValue := Range(n)
	if value > maxValue || value < minValue {
		for i := range dst {
			dst[i] = Dash
		}
		return
	}

	i := 0
	if value < 0 {
		dst[0] = Dash
		i = 1
		value = -value
	}
	for ; i < n; i++ {
		factor := powersOf10[n-1-i]
		dst[i] = Glyph(value / factor)
		value -= int64(dst[i]) * factor
	}

	// Blank the leading zeros up to the decimal point. A leading minus sign
	// doesn't end the scan so "-  5" is shown rather than "-005".
	for i = 0; i < n-1-decimals; i++ {
		if dst[i] == 0 {
			dst[i] = Blank
		} else if dst[i] <= 9 {
			break
		}
	}
}

// EncodeGlyphs converts glyphs to segment codes and lights the decimal point
// of the digit at index len(glyphs)-1-decimals.
//
// The point is lit even when decimals is 0, in which case it lands on the last
// digit. When decimals is larger than the number of digits, no point is lit.
// Glyphs past MaxDigits are ignored.
func EncodeGlyphs(glyphs []Glyph, decimals int) Frame {
	if len(glyphs) > MaxDigits {
		glyphs = glyphs[:MaxDigits]
	}
	dp := len(glyphs) - 1 - decimals
	var f Frame
	for i, g := range glyphs {
		c := glyphCodes[g]
		if i == dp {
			c |= DecimalPoint
		}
		f = f.With(i, c)
	}
	return f
}

// FloatToFixed scales v by 10^decimals and rounds half away from zero, so
// 1.25 with one decimal is 13.
//
// decimals must be in [0, 9]. NaN and values too large for an int64 return
// math.MinInt64 or math.MaxInt64, which are always shown as dashes.
func FloatToFixed(v float64, decimals int) int64 {
	v *= float64(powersOf10[decimals])
	if v >= 0 {
		v += 0.5
	} else {
		v -= 0.5
	}
	switch {
	case v >= math.MaxInt64:
		return math.MaxInt64
	case v <= math.MinInt64 || math.IsNaN(v):
		return math.MinInt64
	}
	return int64(v)
}

// Frame holds the segment codes of up to MaxDigits digits, digit i in bits
// 8*i to 8*i+7. It fits a single atomic word.
type Frame uint64

// Code returns the segment code of digit i.
func (f Frame) Code(i int) byte {
	return byte(f >> (8 * uint(i)))
}

// With returns a copy of f where digit i has code c.
func (f Frame) With(i int, c byte) Frame {
	shift := 8 * uint(i)
	return f&^(0xff<<shift) | Frame(c)<<shift
}

// Bytes returns the codes of the first n digits.
func (f Frame) Bytes(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = f.Code(i)
	}
	return b
}
