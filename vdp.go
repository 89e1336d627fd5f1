// vdp.go - video display processor: counters, control/data port protocol

package ggcore

// Mode selects Game Gear (64-byte CRAM, 12-bit BGR) or Master System
// (32-byte CRAM, 6-bit BGR) colour decoding.
type Mode int

const (
	ModeGameGear Mode = iota
	ModeMasterSystem
)

// vdpMode is the data-port mode the control-port protocol last selected.
type vdpMode int

const (
	vdpModeNone vdpMode = iota
	vdpModeVRAMRead
	vdpModeVRAMWrite
	vdpModeCRAMWrite
)

const (
	vdpPortDataControlStart byte = 0x80
	vdpPortDataControlEnd   byte = 0xBF
	vdpPortVHCounterStart   byte = 0x40
	vdpPortVHCounterEnd     byte = 0x7F
)

// VDP owns VRAM, CRAM, display registers, counters and the control-port
// latch. It consumes bytes written to its I/O ports and produces pixels
// via Render.
type VDP struct {
	mode Mode

	V, H byte
	hLoop2 bool
	vLoop2 bool

	R0, R1, R2, R3, R4, R5, R6, R7, R8, R9, R10 byte
	address                                     uint16

	VRAM *Memory
	CRAM *Memory

	dataBuffer byte
	cramLatch  byte
	cramHasLatch bool

	controlBuf    [2]byte
	controlBufLen int

	ioMode vdpMode

	status byte

	scanlineCounter      byte
	scanlineIRQAvailable bool

	vramDirty bool

	lastFrame []Color
	priority  []int
}

func NewVDP(mode Mode) *VDP {
	cramSize := 64
	if mode == ModeMasterSystem {
		cramSize = 32
	}
	v := &VDP{
		mode: mode,
		VRAM: NewMemory(16*1024, 0),
		CRAM: NewMemory(cramSize, 0),
	}
	v.lastFrame = make([]Color, internalWidth*internalHeight)
	return v
}

func (v *VDP) VBlankPending() bool {
	if v.R1&0x20 != 0 {
		return v.status&0x80 != 0
	}
	return false
}

func (v *VDP) ScanlinePending() bool {
	if v.R0&0x10 != 0 {
		return v.scanlineIRQAvailable
	}
	return false
}

func (v *VDP) isVBlank() bool { return v.V == 0 }
func (v *VDP) isHBlank() bool { return v.H == 0 }

// Tick advances the non-linear H/V counter pair one step and updates the
// line/frame interrupt latches, per spec.md §4.3. It returns true once a
// frame has completed (second V loop past the visible area) and VRAM has
// been written to since the last call to Frame.
func (v *VDP) Tick() bool {
	v.advanceCounters()

	if v.V <= 192 {
		v.scanlineCounter--
		if v.scanlineCounter == 0 {
			v.scanlineIRQAvailable = true
			v.scanlineCounter = v.R10
		}
	}

	if v.isVBlank() && v.isHBlank() {
		v.status |= 0x80
	}

	return v.vLoop2 && v.V > byte(internalHeight) && v.vramDirty
}

func (v *VDP) advanceCounters() {
	// H counts 0x00..0xE9 then jumps to 0x93, continuing to 0xFF (342 px/line).
	// V counts 0x00..0xEA then jumps to 0xE5, continuing to 0xFF (262 lines/frame).
	if v.H == 0xE9 && !v.hLoop2 {
		v.H = 0x93
		v.hLoop2 = true
		return
	}
	if v.H == 0xFF && v.hLoop2 {
		v.H = 0x00
		v.hLoop2 = false

		switch {
		case v.V == 0xEA && !v.vLoop2:
			v.V = 0xE5
			v.vLoop2 = true
		case v.V == 0xFF && v.vLoop2:
			v.V = 0x00
			v.vLoop2 = false
		default:
			v.V++
		}
		return
	}
	v.H++
}

func (v *VDP) status_() byte {
	s := v.status
	v.status &= 0x1F
	v.scanlineIRQAvailable = false
	return s
}

func (v *VDP) incrementAddress(boundary uint16) {
	v.address = (v.address + 1) % boundary
}

// ReadIO implements the VDP's two I/O port ranges: the V/H counters
// (0x40-0x7F, even=V odd=H) and the data/control ports (0x80-0xBF,
// even=data odd=control/status).
func (v *VDP) ReadIO(port byte) (byte, error) {
	switch {
	case port >= vdpPortVHCounterStart && port <= vdpPortVHCounterEnd:
		if port%2 == 0 {
			return v.V, nil
		}
		return v.H, nil
	case port >= vdpPortDataControlStart && port <= vdpPortDataControlEnd:
		if port%2 == 0 {
			data := v.VRAM.Read(uint32(v.address))
			v.incrementAddress(0x4000)
			out := v.dataBuffer
			v.dataBuffer = data
			v.controlBufLen = 0
			return out, nil
		}
		return v.status_(), nil
	default:
		return 0, newCoreError("vdp.ReadIO", ErrInvalidPort, uint32(port))
	}
}

// WriteIO implements control-port latching (two bytes accumulate, then
// the second byte's top bits select a command) and data-port dispatch by
// current mode, per spec.md §4.3.
func (v *VDP) WriteIO(port byte, value byte) error {
	if port < vdpPortDataControlStart || port > vdpPortDataControlEnd {
		return newCoreError("vdp.WriteIO", ErrInvalidPort, uint32(port))
	}

	if port%2 == 0 {
		switch v.ioMode {
		case vdpModeVRAMWrite:
			v.vramWrite(value)
		case vdpModeCRAMWrite:
			v.cramWrite(value)
		default:
			return newCoreError("vdp.WriteIO", ErrInvalidVdpMode, uint32(port))
		}
		return nil
	}

	if v.controlBufLen < 2 {
		v.controlBuf[v.controlBufLen] = value
		v.controlBufLen++
	}
	if v.controlBufLen == 2 {
		v.processControlWord()
		v.controlBufLen = 0
	}
	return nil
}

func (v *VDP) processControlWord() {
	low, high := v.controlBuf[0], v.controlBuf[1]

	switch high & 0xC0 {
	case 0x80: // write VDP register
		reg := high & 0x0F
		v.writeRegister(reg, low)
	case 0x00: // VRAM read setup
		addr := (uint16(high&0x3F) << 8) | uint16(low)
		v.address = addr
		v.dataBuffer = v.VRAM.Read(uint32(addr))
		v.incrementAddress(0x4000)
		v.ioMode = vdpModeVRAMRead
	case 0x40: // VRAM write setup
		addr := (uint16(high&0x3F) << 8) | uint16(low)
		v.address = addr
		v.ioMode = vdpModeVRAMWrite
	case 0xC0: // CRAM write setup
		addr := (uint16(high&0x3F) << 8) | uint16(low)
		v.address = addr
		v.ioMode = vdpModeCRAMWrite
	}
}

func (v *VDP) writeRegister(reg byte, value byte) {
	switch reg {
	case 0:
		v.R0 = value
	case 1:
		v.R1 = value
	case 2:
		v.R2 = value
	case 3:
		v.R3 = value
	case 4:
		v.R4 = value
	case 5:
		v.R5 = value
	case 6:
		v.R6 = value
	case 7:
		v.R7 = value
	case 8:
		v.R8 = value
	case 9:
		v.R9 = value
	case 10:
		v.R10 = value
	default:
		// registers 11..15 are inert, per spec.md §4.3
	}
}

func (v *VDP) vramWrite(value byte) {
	v.VRAM.Write(uint32(v.address), value)
	v.incrementAddress(0x4000)
	v.vramDirty = true
}

func (v *VDP) cramWrite(value byte) {
	addr := v.address & 0x7F

	if v.mode == ModeMasterSystem {
		v.CRAM.Write(uint32(addr), value)
	} else if addr%2 == 0 {
		v.cramLatch = value
		v.cramHasLatch = true
	} else if v.cramHasLatch {
		v.CRAM.Write(uint32(addr-1), v.cramLatch)
		v.CRAM.Write(uint32(addr), value)
		v.cramHasLatch = false
	}

	v.incrementAddress(0x40)
	v.vramDirty = true
}

// AddressRegister exposes the current VRAM/CRAM address register, mainly
// for tests and debug introspection.
func (v *VDP) AddressRegister() uint16 { return v.address }
