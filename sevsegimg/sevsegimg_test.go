// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevsegimg

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func at(img image.Image, x, y float64) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(int(x), int(y))).(color.NRGBA)
}

func TestRender(t *testing.T) {
	on := color.NRGBA{0, 255, 0, 255}
	off := color.NRGBA{0, 0, 80, 255}
	bg := color.NRGBA{10, 10, 10, 255}
	opts := &Opts{DigitWidth: 60, On: on, Off: off, Background: bg}
	// "1." followed by "-".
	codes := []byte{0x86, 0x40}
	img := Render(codes, opts)

	o := opts.withDefaults()
	g := newGeometry(len(codes), &o)
	if diff := cmp.Diff(image.Rect(0, 0, g.width, g.height), img.Bounds()); diff != "" {
		t.Fatalf("bounds mismatch (-want +got):\n%s", diff)
	}
	for i, code := range codes {
		for s := range 8 {
			want := off
			if code&(1<<uint(s)) != 0 {
				want = on
			}
			x, y := g.center(i, s)
			if got := at(img, x, y); got != want {
				t.Errorf("digit %d segment %d: expected %v, got %v", i, s, want, got)
			}
		}
	}
	if got := at(img, 1, 1); got != bg {
		t.Errorf("background: expected %v, got %v", bg, got)
	}
}

func TestDefaults(t *testing.T) {
	o := (*Opts)(nil).withDefaults()
	if o.DigitWidth != 60 || o.On.A == 0 || o.Off.A == 0 || o.Background.A == 0 {
		t.Errorf("unexpected defaults %+v", o)
	}
	plain := Render([]byte{0x3f}, nil).Bounds()
	captioned := Render([]byte{0x3f}, &Opts{Caption: "0"}).Bounds()
	if captioned.Dy() <= plain.Dy() || captioned.Dx() != plain.Dx() {
		t.Errorf("caption should only add height: %v vs %v", plain, captioned)
	}
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, []byte{0x7f, 0xff}, &Opts{DigitWidth: 20, Caption: "88."}); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	wantW := 2*20/3. + 2*30
	if img.Bounds().Dx() != int(wantW) {
		t.Errorf("unexpected width %d", img.Bounds().Dx())
	}

	path := filepath.Join(t.TempDir(), "display.png")
	if err := SavePNG(path, []byte{0x06}, nil); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Fatal(err)
	}
	if err := SavePNG(filepath.Join(t.TempDir(), "missing", "x.png"), nil, nil); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
