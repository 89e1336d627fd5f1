// cartridge.go - cartridge image helpers: mode detection, RGBA conversion

package ggcore

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
)

// DetectMode guesses Game Gear vs Master System from a cartridge
// filename, following the common `[S]`/`.sms` naming convention used by
// Sega ROM sets. Callers that already know the mode should
// construct System directly instead of relying on this heuristic.
func DetectMode(filename string) Mode {
	lower := strings.ToLower(filename)
	if strings.HasSuffix(lower, ".sms") || strings.Contains(lower, "[s]") {
		return ModeMasterSystem
	}
	return ModeGameGear
}

// FrameImage converts the given frame (as returned by System.Frame) into
// a standard library image.RGBA, for hosts that want to hand frames
// straight to image/png, golang.org/x/image/draw, or similar encoders.
// This is additive to the core's raw []Color contract (spec.md §6);
// nothing in the core itself calls it.
func FrameImage(frame []Color, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := frame[y*width+x]
			img.SetRGBA(x, y, color.RGBA{R: px.R, G: px.G, B: px.B, A: 0xFF})
		}
	}
	return img
}

// ScaleFrame resizes a FrameImage-converted frame to the given output
// size using golang.org/x/image/draw's high-quality scaler, for hosts
// presenting the 160x144 visible frame at a larger window size.
func ScaleFrame(src *image.RGBA, outWidth, outHeight int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, outWidth, outHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}
