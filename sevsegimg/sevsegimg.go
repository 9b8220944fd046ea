// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sevsegimg renders seven-segment codes into an image, e.g. to
// preview a display or document what a driver shows.
package sevsegimg

import (
	"image"
	"image/color"
	"io"
	"os"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// Opts represents the options available for rendering.
type Opts struct {
	// DigitWidth is the width of a digit in pixels. Digits are twice as high.
	// It defaults to 60.
	DigitWidth int
	On         color.NRGBA // Defaults to red.
	Off        color.NRGBA // Defaults to a dark red.
	Background color.NRGBA // Defaults to black.
	// Caption is written under the digits when not empty.
	Caption string

	_ struct{}
}

func (o *Opts) withDefaults() Opts {
	r := Opts{DigitWidth: 60, On: color.NRGBA{255, 32, 16, 255}, Off: color.NRGBA{40, 8, 4, 255}, Background: color.NRGBA{0, 0, 0, 255}}
	if o == nil {
		return r
	}
	if o.DigitWidth > 0 {
		r.DigitWidth = o.DigitWidth
	}
	if o.On.A != 0 {
		r.On = o.On
	}
	if o.Off.A != 0 {
		r.Off = o.Off
	}
	if o.Background.A != 0 {
		r.Background = o.Background
	}
	r.Caption = o.Caption
	return r
}

// geometry is the layout of the image, in pixels. t is the thickness of a
// segment and pitch the distance between two digits.
type geometry struct {
	w, h    float64
	t       float64
	margin  float64
	pitch   float64
	caption float64
	width   int
	height  int
}

func newGeometry(digits int, o *Opts) geometry {
	w := float64(o.DigitWidth)
	g := geometry{w: w, h: 2 * w, t: w / 6, margin: w / 3, pitch: w * 1.5}
	if o.Caption != "" {
		g.caption = w / 2
	}
	g.width = int(2*g.margin + float64(digits)*g.pitch)
	g.height = int(2*g.margin + g.h + g.caption)
	return g
}

// origin returns the top left corner of digit i.
func (g *geometry) origin(i int) (float64, float64) {
	return g.margin + float64(i)*g.pitch, g.margin
}

// center returns the center of segment s of digit i.
func (g *geometry) center(i, s int) (float64, float64) {
	x, y := g.origin(i)
	switch s {
	case 0:
		return x + g.w/2, y
	case 1:
		return x + g.w, y + g.h/4
	case 2:
		return x + g.w, y + 3*g.h/4
	case 3:
		return x + g.w/2, y + g.h
	case 4:
		return x, y + 3*g.h/4
	case 5:
		return x, y + g.h/4
	case 6:
		return x + g.w/2, y + g.h/2
	}
	return x + g.w + g.t*1.5, y + g.h
}

// segment adds the outline of segment s of digit i to the current path.
func (g *geometry) segment(dc *gg.Context, i, s int) {
	cx, cy := g.center(i, s)
	t := g.t / 2
	switch s {
	case 0, 3, 6:
		l := g.w/2 - t
		dc.MoveTo(cx-l, cy)
		dc.LineTo(cx-l+t, cy-t)
		dc.LineTo(cx+l-t, cy-t)
		dc.LineTo(cx+l, cy)
		dc.LineTo(cx+l-t, cy+t)
		dc.LineTo(cx-l+t, cy+t)
	case 7:
		dc.DrawCircle(cx, cy, g.t*0.7)
		return
	default:
		l := g.h/4 - t
		dc.MoveTo(cx, cy-l)
		dc.LineTo(cx+t, cy-l+t)
		dc.LineTo(cx+t, cy+l-t)
		dc.LineTo(cx, cy+l)
		dc.LineTo(cx-t, cy+l-t)
		dc.LineTo(cx-t, cy-l+t)
	}
	dc.ClosePath()
}

var goRegular = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(goregular.TTF)
})

func captionFace(size float64) font.Face {
	f, err := goRegular()
	if err != nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{Size: size})
}

// Render draws one digit per segment code, bit 0 being segment A and bit 7
// the decimal point.
func Render(codes []byte, opts *Opts) image.Image {
	o := opts.withDefaults()
	g := newGeometry(len(codes), &o)
	dc := gg.NewContext(g.width, g.height)
	dc.SetColor(o.Background)
	dc.Clear()
	for i, code := range codes {
		for s := range 8 {
			if code&(1<<uint(s)) != 0 {
				dc.SetColor(o.On)
			} else {
				dc.SetColor(o.Off)
			}
			g.segment(dc, i, s)
			dc.Fill()
		}
	}
	if o.Caption != "" {
		dc.SetFontFace(captionFace(g.caption * 0.6))
		dc.SetColor(o.On)
		dc.DrawStringAnchored(o.Caption, float64(g.width)/2, float64(g.height)-g.margin/2-g.caption/2, 0.5, 0.5)
	}
	return dc.Image()
}

// WritePNG renders the codes and encodes them as PNG to w.
func WritePNG(w io.Writer, codes []byte, opts *Opts) error {
	return gg.NewContextForImage(Render(codes, opts)).EncodePNG(w)
}

// SavePNG renders the codes into a PNG file.
func SavePNG(path string, codes []byte, opts *Opts) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePNG(f, codes, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
