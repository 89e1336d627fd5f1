// system.go - frame-step orchestrator wiring CPU, Bus and VDP together

package ggcore

// System is the host-facing emulator instance: construct one with New,
// feed it a cartridge and BIOS image, then call Tick in a loop and read
// Frame when ready, per spec.md §6.
type System struct {
	Bus *Bus
	VDP *VDP
	CPU *CPU

	mode Mode

	vdpRatio int // CPU T-states per VDP tick, spec.md §4.5

	frameReady bool

	// Logf receives optional diagnostic lines; nil-checked, never required
	// for correctness (SPEC_FULL.md §10).
	Logf func(format string, args ...any)
}

// New constructs a System for the given cartridge mode (Game Gear or
// Master System), wiring a fresh Bus/VDP/Sound/CPU stack.
func New(mode Mode) *System {
	mapper := NewSegaMapper(0)
	bus := NewBus(mapper)
	vdp := NewVDP(mode)
	sound := newSoundGenerator()
	cpu := NewCPU(bus, vdp, sound)

	s := &System{Bus: bus, VDP: vdp, CPU: cpu, mode: mode, vdpRatio: 1}
	bus.Warnf = func(format string, args ...any) { s.logf(format, args...) }
	return s
}

func (s *System) logf(format string, args ...any) {
	if s.Logf != nil {
		s.Logf(format, args...)
	}
}

// LoadBIOS installs a BIOS image; LoadCartridge installs the cartridge
// ROM image and then calls Reset, per spec.md §6. VDP state and
// BiosEnabled are left as they were.
func (s *System) LoadBIOS(data []byte) { s.Bus.LoadBIOS(data) }

func (s *System) LoadCartridge(data []byte) {
	s.Bus.LoadCartridge(data)
	s.Reset()
}

// Reset restores CPU registers and bank-select state to their cold-boot
// values without reloading ROM contents.
func (s *System) Reset() {
	s.CPU.Reset()
	s.Bus.PowerupResetBanks()
	s.frameReady = false
}

// SetJoystick updates the cached bitmap for player 0 or 1; calls with any
// other player are ignored, per spec.md §6.
func (s *System) SetJoystick(player int, bitmap byte) {
	if player != 0 && player != 1 {
		return
	}
	s.Bus.Joysticks[player].SetBitmap(bitmap)
}

// Tick executes exactly one CPU instruction and advances the VDP by the
// instruction's T-state cost, raising the CPU's IRQ line as the VDP's
// interrupt latches are set, and steps the sound generator once, per
// spec.md §4.5. It returns true once a
// full frame's worth of scanlines has been rendered and Frame is ready
// to be read.
func (s *System) Tick() (bool, error) {
	cycles, err := s.CPU.Step()
	if err != nil {
		return false, err
	}

	frameDone := false
	for i := 0; i < cycles; i += s.vdpRatio {
		if s.VDP.Tick() {
			frameDone = true
		}
		line := int(s.VDP.V)
		if line < internalHeight {
			s.VDP.RenderLine(line)
		}
	}

	s.CPU.Sound.Tick()

	if s.VDP.VBlankPending() {
		s.CPU.RequestIRQ()
	}
	if s.VDP.ScanlinePending() {
		s.CPU.RequestIRQ()
	}

	if frameDone {
		s.frameReady = true
	}
	return frameDone, nil
}

// Frame returns the visible 160x144 frame and clears the frame-ready
// flag. Calling it without a completed frame simply returns the VDP's
// last rendered content (idempotent render, spec.md §8).
func (s *System) Frame() []Color {
	s.frameReady = false
	return s.VDP.Frame()
}

// FrameReady reports whether Tick has produced an unread completed frame.
func (s *System) FrameReady() bool { return s.frameReady }

// SaveSRAM/LoadSRAM expose cartridge battery-backed save state, per
// spec.md §6 and SPEC_FULL.md §12.
func (s *System) SaveSRAM() []byte       { return s.Bus.SaveSRAM() }
func (s *System) LoadSRAM(data []byte)   { s.Bus.LoadSRAM(data) }
