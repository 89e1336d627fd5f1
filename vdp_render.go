// vdp_render.go - background/sprite rendering and palette decoding

package ggcore

const (
	internalWidth  = 256
	internalHeight = 224

	visibleWidth  = 160
	visibleHeight = 144
)

// Color is a decoded 8-bit-per-channel RGB pixel, host-consumption format.
type Color struct {
	R, G, B byte
}

// nameTableBase resolves the background name-table base address from R2,
// per spec.md §4.3 (bits 1-3 select a 0x800-aligned block; the same mask
// applies in both Game Gear and Master System mode).
func (v *VDP) nameTableBase() uint16 {
	return uint16(v.R2&0x0E) << 10
}

func (v *VDP) spriteAttrTableBase() uint16 {
	return uint16(v.R5&0x7E) << 7
}

func (v *VDP) spritePatternGeneratorBase() uint16 {
	if v.R6&0x04 != 0 {
		return 0x2000
	}
	return 0x0000
}

func (v *VDP) backgroundEnabled() bool { return v.R1&0x40 != 0 }
func (v *VDP) spritesEnabled() bool    { return true }
func (v *VDP) spritesAreDoubleSize() bool { return v.R1&0x01 != 0 }
func (v *VDP) spritesAre8x16() bool       { return v.R1&0x02 != 0 }

// decodeColor turns a raw CRAM entry into a Color, branching on Mode per
// spec.md §4.3's colour-decoding rules. Game Gear packs 12-bit BGR across
// two latched bytes (4 bits/channel), shifted left 4 bits to fill the
// byte (matching the original's `(nibble) << 4`, e.g. nibble 0xF -> 0xF0,
// not the brighter 0xFF a ×17 replication would give). Master System
// packs 6-bit BGR in a single byte (2 bits/channel), where each 2-bit
// channel is replicated (×0x55) to fill 8 bits.
func (v *VDP) decodeColor(index int) Color {
	if v.mode == ModeGameGear {
		lo := uint16(v.CRAM.Read(uint32(index * 2)))
		hi := uint16(v.CRAM.Read(uint32(index*2 + 1)))
		word := lo | hi<<8
		r4 := byte(word & 0x0F)
		g4 := byte((word >> 4) & 0x0F)
		b4 := byte((word >> 8) & 0x0F)
		return Color{R: r4 << 4, G: g4 << 4, B: b4 << 4}
	}

	data := v.CRAM.Read(uint32(index))
	r2 := data & 0x03
	g2 := (data >> 2) & 0x03
	b2 := (data >> 4) & 0x03
	return Color{R: r2 * 0x55, G: g2 * 0x55, B: b2 * 0x55}
}

// paletteBase returns the base palette index for background tiles (0)
// versus sprites (16), per spec.md §4.3: both chips reserve the upper
// half of the 32-entry palette (32 bytes on SMS, 64 bytes on GG) for sprites.
func paletteBase(useSpritePalette bool) int {
	if useSpritePalette {
		return 16
	}
	return 0
}

type tileEntry struct {
	tileIndex   uint16
	paletteHi   bool
	hFlip       bool
	vFlip       bool
	priority    bool
}

func decodeTileEntry(lo, hi byte) tileEntry {
	return tileEntry{
		tileIndex: uint16(lo) | uint16(hi&0x01)<<8,
		paletteHi: hi&0x08 != 0,
		hFlip:     hi&0x02 != 0,
		vFlip:     hi&0x04 != 0,
		priority:  hi&0x10 != 0,
	}
}

// renderBackgroundLine fills one 256-pixel scanline of v.lastFrame from
// the name table, and records per-pixel priority in v.priority so sprite
// rendering can respect the tile-priority bit.
//
// R8 (h_scroll) and R9 (v_scroll) place the tile grid on screen per
// spec.md §4.3 step 1: screen position is `((h_scroll + col*8) mod 256,
// ((256-v_scroll) + row*8) mod 224)`. original_source/core/src/vdp/mod.rs
// implements that literally as `(INTERNAL_HEIGHT - v_scroll)`, i.e. mod
// 224 rather than spec.md's literal "256" (a typo in the distilled text —
// 224 is what makes the formula well-defined against the 224-line
// internal height, and it's what the Rust ground truth actually computes;
// see DESIGN.md). Since this renderer produces one output scanline at a
// time rather than blitting whole tiles, the formula is inverted: for
// output line `line`, the name-table row/fine-row sampled is
// `(line + v_scroll) mod 224`, and each output pixel's x is
// `(h_scroll + col*8 + px) mod 256` — equivalent to the original's
// per-tile placement, but resolved per-pixel so a tile straddling the
// screen edge wraps cleanly instead of spilling into the next line.
func (v *VDP) renderBackgroundLine(line int) {
	if v.priority == nil || len(v.priority) != internalWidth*internalHeight {
		v.priority = make([]int, internalWidth*internalHeight)
	}

	hScroll := int(v.R8)
	vScroll := int(v.R9)
	srcLine := (line + vScroll) % internalHeight
	row := srcLine / 8
	fineY := srcLine % 8
	base := v.nameTableBase()
	backdrop := v.decodeColor(paletteBase(false))

	for col := 0; col < 32; col++ {
		entryAddr := base + uint16(row*32+col)*2
		lo := v.VRAM.Read(uint32(entryAddr))
		hi := v.VRAM.Read(uint32(entryAddr + 1))
		entry := decodeTileEntry(lo, hi)

		y := fineY
		if entry.vFlip {
			y = 7 - fineY
		}
		patternAddr := uint32(entry.tileIndex)*32 + uint32(y)*4

		for px := 0; px < 8; px++ {
			x := px
			if entry.hFlip {
				x = 7 - px
			}
			colorIdx := readPatternPixel(v.VRAM, patternAddr, x)
			destX := (hScroll + col*8 + px) % internalWidth
			pi := line*internalWidth + destX

			if !v.backgroundEnabled() || colorIdx == 0 {
				v.lastFrame[pi] = backdrop
				v.priority[pi] = 0
				continue
			}

			palBase := paletteBase(entry.paletteHi)
			v.lastFrame[pi] = v.decodeColor(palBase + colorIdx)
			if entry.priority {
				v.priority[pi] = 2
			} else {
				v.priority[pi] = 1
			}
		}
	}
}

// readPatternPixel reads the 4-bitplane-interleaved colour index (0-15)
// for column x (0=leftmost) of the 8x1 pixel row starting at addr.
func readPatternPixel(vram *Memory, addr uint32, x int) int {
	bit := uint(7 - x)
	b0 := (vram.Read(addr) >> bit) & 1
	b1 := (vram.Read(addr+1) >> bit) & 1
	b2 := (vram.Read(addr+2) >> bit) & 1
	b3 := (vram.Read(addr+3) >> bit) & 1
	return int(b0) | int(b1)<<1 | int(b2)<<2 | int(b3)<<3
}

// spriteOnLine is one sprite's resolved geometry for a given scanline,
// used both for rendering and for the 8-sprite-per-line overflow check.
type spriteOnLine struct {
	x, y    int
	tile    uint16
	height  int
	fineRow int
}

// renderSpritesLine overlays up to 8 sprites onto the scanline already
// populated by renderBackgroundLine, setting v.status overflow bit (0x40)
// when more than 8 sprites intersect the line and the collision bit
// (0x20) when two opaque sprite pixels overlap, per spec.md §4.3.
func (v *VDP) renderSpritesLine(line int) {
	base := v.spriteAttrTableBase()
	height := 8
	if v.spritesAre8x16() {
		height = 16
	}
	doubled := 1
	if v.spritesAreDoubleSize() {
		doubled = 2
	}

	var onLine []spriteOnLine
	for i := 0; i < 64; i++ {
		y := int(v.VRAM.Read(uint32(base) + uint32(i)))
		if y == 0xD0 {
			break // sentinel terminator, per spec.md §4.3
		}
		spriteY := y + 1
		spriteHeight := height * doubled
		if line < spriteY || line >= spriteY+spriteHeight {
			continue
		}
		if len(onLine) == 8 {
			v.status |= 0x40
			break
		}

		x := int(v.VRAM.Read(uint32(base) + 0x80 + uint32(i)*2))
		tile := uint16(v.VRAM.Read(uint32(base) + 0x81 + uint32(i)*2))
		if v.R0&0x08 != 0 {
			x -= 8 // early-clock bit shifts all sprites left 8px
		}

		fineRow := (line - spriteY) / doubled
		if height == 16 {
			tile &^= 0x01
		}

		onLine = append(onLine, spriteOnLine{x: x, y: spriteY, tile: tile, height: height, fineRow: fineRow})
	}

	occupied := make([]bool, internalWidth)
	for _, s := range onLine {
		patternAddr := uint32(v.spritePatternGeneratorBase()) + uint32(s.tile)*32 + uint32(s.fineRow)*4
		for px := 0; px < 8*doubled; px++ {
			sx := s.x + px
			if sx < 0 || sx >= internalWidth {
				continue
			}
			srcX := px / doubled
			colorIdx := readPatternPixel(v.VRAM, patternAddr, srcX)
			if colorIdx == 0 {
				continue
			}

			pi := line*internalWidth + sx
			if v.priority[pi] == 2 {
				continue // background tile priority bit wins
			}
			if occupied[sx] {
				v.status |= 0x20
				continue
			}
			occupied[sx] = true
			v.lastFrame[pi] = v.decodeColor(paletteBase(true) + colorIdx)
		}
	}
}

// RenderLine renders one internal scanline (background then sprites).
// System calls this once per visible scanline as V advances (spec.md §4.5).
func (v *VDP) RenderLine(line int) {
	if line < 0 || line >= internalHeight {
		return
	}
	v.renderBackgroundLine(line)
	v.renderSpritesLine(line)
}

// Frame returns the cropped 160x144 visible window of the last-rendered
// internal 256x224 framebuffer, per spec.md §4.3's output contract. It
// clears the dirty flag so System can detect the next VRAM write.
func (v *VDP) Frame() []Color {
	out := make([]Color, visibleWidth*visibleHeight)
	const xOff = (internalWidth - visibleWidth) / 2
	const yOff = (internalHeight - visibleHeight) / 2
	for y := 0; y < visibleHeight; y++ {
		srcRow := (y + yOff) * internalWidth
		dstRow := y * visibleWidth
		copy(out[dstRow:dstRow+visibleWidth], v.lastFrame[srcRow+xOff:srcRow+xOff+visibleWidth])
	}
	v.vramDirty = false
	return out
}
