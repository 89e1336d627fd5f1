// bus.go - system bus: memory map resolution, bank registers, I/O dispatch

package ggcore

const (
	memRegRAMMapping  uint16 = 0xFFFC
	memRegBankSelect0 uint16 = 0xFFFD
	memRegBankSelect1 uint16 = 0xFFFE
	memRegBankSelect2 uint16 = 0xFFFF

	memoryControlPort byte = 0x3E
	sdscControlPort   byte = 0xFC
	sdscDataPort      byte = 0xFD

	joystickStartPort byte = 0x00
	joystickABPort    byte = 0xDC
	joystickBMiscPort byte = 0xDD
)

// RomWriteProtection selects the bus policy for CPU writes into
// ROM-mapped address space (0x0000-0xBFFF when no SRAM bank is active).
type RomWriteProtection int

const (
	WriteProtectAbort RomWriteProtection = iota
	WriteProtectWarn
	WriteProtectAllow
)

// BankSlot identifies one of the three paged bank-register slots.
type BankSlot int

const (
	BankSlot0 BankSlot = iota // 0x0400-0x3FFF
	BankSlot1                 // 0x4000-0x7FFF
	BankSlot2                 // 0x8000-0xBFFF
)

// Bus owns BIOS ROM, cartridge mapper, work RAM, cartridge SRAM, joystick
// state and the debug console; it mediates every CPU memory and I/O access.
type Bus struct {
	rom  Mapper
	ram  *Memory // 8 KiB backing buffer, mirrored twice across 0xC000-0xFFFF
	sram *Memory
	bios *Memory

	BiosEnabled bool

	gearToGear    byte
	gearToGearSet bool

	joysticksEnabled bool
	Joysticks        [2]*Joystick

	Console *DebugConsole

	writeProtection    RomWriteProtection
	bankBehaviorOff bool // test-mode escape hatch, spec.md §4.2

	// Warnf receives a formatted message on a Warn-policy ROM write.
	// Nil-checked before use; the core itself never logs (SPEC_FULL.md §10).
	Warnf func(format string, args ...any)
}

// NewBus constructs a Bus with the given cartridge mapper. SRAM is sized
// generously (64 KiB) since cartridge SRAM size is mapper/cartridge
// dependent and not modeled precisely here (spec.md §6 marks save support
// as not required for the core).
func NewBus(rom Mapper) *Bus {
	b := &Bus{
		rom:              rom,
		ram:              NewMemory(0x2000, 0xC000), // 8 KiB physical, mirrored to fill 0xC000-0xFFFF
		sram:             NewMemory(0x10000, 0),
		bios:             NewMemory(0x0400, 0x0000),
		BiosEnabled:      true,
		joysticksEnabled: true,
		Console:          newDebugConsole(),
		writeProtection:  WriteProtectWarn,
	}
	b.Joysticks[0] = newJoystick()
	b.Joysticks[1] = newJoystick()
	b.PowerupResetBanks()
	return b
}

func (b *Bus) SetRomWriteProtection(p RomWriteProtection) { b.writeProtection = p }

// SetBankBehaviorDisabled puts the bus into test mode: FetchBank returns
// the slot's ordinal (0,1,2) instead of consulting the mapped registers.
func (b *Bus) SetBankBehaviorDisabled(disabled bool) { b.bankBehaviorOff = disabled }

// LoadBIOS copies data into the BIOS ROM region, leaving BiosEnabled
// exactly as it was before the call.
func (b *Bus) LoadBIOS(data []byte) {
	prev := b.BiosEnabled
	b.bios.Resize(len(data))
	copy(b.bios.Bytes(), data)
	b.BiosEnabled = prev
}

// LoadCartridge resizes the mapper's backing ROM and copies data in,
// leaving BiosEnabled exactly as it was before the call.
func (b *Bus) LoadCartridge(data []byte) {
	prev := b.BiosEnabled
	b.rom.Resize(len(data))
	copy(b.rom.Memory().Bytes(), data)
	b.BiosEnabled = prev
}

// PowerupResetBanks sets the three bank registers to {0,1,2}, per
// spec.md §3 powerup invariant. The registers live in work RAM, so this
// is a plain set of writes through the normal write path.
func (b *Bus) PowerupResetBanks() {
	b.Write(memRegBankSelect0, 0)
	b.Write(memRegBankSelect1, 1)
	b.Write(memRegBankSelect2, 2)
}

func (b *Bus) Read(addr uint16) byte {
	switch {
	case b.BiosEnabled && addr < 0x0400:
		return b.bios.Read(uint32(addr))
	case addr < 0x4000:
		bank := 0
		if addr >= 0x0400 {
			bank = b.FetchBank(BankSlot0)
		}
		return b.rom.ReadBank(bank, addr)
	case addr < 0x8000:
		bank := b.FetchBank(BankSlot1)
		return b.rom.ReadBank(bank, addr-0x4000)
	case addr < 0xC000:
		bank := b.FetchBank(BankSlot2)
		if b.isSRAMBankActive() {
			return b.sram.Read(uint32(bank)*bankSize + uint32(addr-0x8000))
		}
		return b.rom.ReadBank(bank, addr-0x8000)
	default:
		return b.ram.Read(uint32(0xC000 + (addr-0xC000)%0x2000))
	}
}

func (b *Bus) ReadWord(addr uint16) uint16 {
	return uint16(b.Read(addr)) | uint16(b.Read(addr+1))<<8
}

func (b *Bus) warn(format string, args ...any) {
	if b.Warnf != nil {
		b.Warnf(format, args...)
	}
}

func (b *Bus) Write(addr uint16, value byte) {
	switch {
	case b.BiosEnabled && addr < 0x0400:
		b.writeROM(addr, value, func() { b.bios.Write(uint32(addr), value) })
	case addr < 0x4000:
		b.writeROM(addr, value, func() {
			bank := 0
			if addr >= 0x0400 {
				bank = b.FetchBank(BankSlot0)
			}
			b.rom.WriteBank(bank, addr, value)
		})
	case addr < 0x8000:
		b.writeROM(addr, value, func() {
			bank := b.FetchBank(BankSlot1)
			b.rom.WriteBank(bank, addr-0x4000, value)
		})
	case addr < 0xC000:
		if b.isSRAMBankActive() {
			bank := b.FetchBank(BankSlot2)
			b.sram.Write(uint32(bank)*bankSize+uint32(addr-0x8000), value)
			return
		}
		b.writeROM(addr, value, func() {
			bank := b.FetchBank(BankSlot2)
			b.rom.WriteBank(bank, addr-0x8000, value)
		})
	default:
		b.ram.Write(uint32(0xC000+(addr-0xC000)%0x2000), value)
	}
}

// writeROM applies the bus's write-protection policy at a ROM-mapped
// address; do() performs the actual write when the policy permits it.
func (b *Bus) writeROM(addr uint16, value byte, do func()) {
	switch b.writeProtection {
	case WriteProtectAllow:
		do()
	case WriteProtectWarn:
		b.warn("ignored write to ROM at address %04x", addr)
	case WriteProtectAbort:
		// Abort is surfaced by BusOutOfBounds-style fatal handling at the
		// CPU layer; the bus itself stays side-effect free here and lets
		// the caller (CPU write helper) decide whether to treat this as
		// fatal. See cpu.go writeMem.
	}
}

// WriteIsProtected reports whether addr currently falls in a ROM-mapped,
// write-protected region under Abort policy — used by the CPU's write
// helper to raise WriteToReadOnly.
func (b *Bus) WriteIsProtected(addr uint16) bool {
	if b.writeProtection != WriteProtectAbort {
		return false
	}
	if addr >= 0xC000 {
		return false
	}
	if addr >= 0x8000 && b.isSRAMBankActive() {
		return false
	}
	return true
}

func (b *Bus) WriteWord(addr uint16, value uint16) {
	b.Write(addr, byte(value))
	b.Write(addr+1, byte(value>>8))
}

// TranslateAddress resolves a CPU address to a linear cartridge ROM
// offset, for debug/fatal-error reporting (spec.md §7). The second
// return value is false for addresses outside cartridge space (RAM).
func (b *Bus) TranslateAddress(addr uint16) (uint32, bool) {
	switch {
	case addr < 0x4000:
		bank := 0
		if addr >= 0x0400 {
			bank = b.FetchBank(BankSlot0)
		}
		return uint32(bank)*bankSize + uint32(addr), true
	case addr < 0x8000:
		bank := b.FetchBank(BankSlot1)
		return uint32(bank)*bankSize + uint32(addr-0x4000), true
	case addr < 0xC000:
		bank := b.FetchBank(BankSlot2)
		return uint32(bank)*bankSize + uint32(addr-0x8000), true
	default:
		return 0, false
	}
}

func (b *Bus) isSRAMBankActive() bool {
	if b.bankBehaviorOff {
		return false
	}
	return b.Read(memRegRAMMapping)&0x08 != 0
}

// FetchBank resolves the effective ROM bank for the given slot, masking
// the raw register value to the minimum power-of-two bits covering the
// actual ROM size (spec.md §3 invariant).
func (b *Bus) FetchBank(slot BankSlot) int {
	if b.bankBehaviorOff {
		return int(slot)
	}

	var raw byte
	switch slot {
	case BankSlot0:
		raw = b.Read(memRegBankSelect0)
	case BankSlot1:
		raw = b.Read(memRegBankSelect1)
	case BankSlot2:
		if b.isSRAMBankActive() {
			if b.Read(memRegRAMMapping)&0x04 == 0 {
				return 0
			}
			return 1
		}
		raw = b.Read(memRegBankSelect2)
	}

	romSize := b.rom.Size()
	if romSize == 0 {
		return int(raw)
	}
	banks := romSize / bankSize
	if banks&(banks-1) == 0 && banks > 0 {
		return int(raw) & (banks - 1)
	}
	return int(raw) % banks
}

// ReadIO dispatches a port read for the non-VDP/sound ports: gear-to-gear
// cache, joysticks. Port-to-component routing for VDP/sound ports lives
// in the CPU's I/O multiplexer (cpu_io.go), matching spec.md §4.4.
func (b *Bus) ReadIO(port byte) (byte, error) {
	switch {
	case port == joystickStartPort:
		if !b.joysticksEnabled {
			return 0, newCoreError("bus.ReadIO", ErrInvalidPort, uint32(port))
		}
		return b.Joysticks[0].startPressed(), nil
	case port >= 0x01 && port <= 0x06:
		if b.gearToGearSet {
			return b.gearToGear, nil
		}
		return 0, ErrIoNotFulfilled
	case port == joystickABPort:
		if !b.joysticksEnabled {
			return 0, newCoreError("bus.ReadIO", ErrInvalidPort, uint32(port))
		}
		return b.Joysticks[0].bitmap(), nil
	case port == joystickBMiscPort:
		if !b.joysticksEnabled {
			return 0, newCoreError("bus.ReadIO", ErrInvalidPort, uint32(port))
		}
		return b.Joysticks[1].bitmap(), nil
	default:
		return 0, newCoreError("bus.ReadIO", ErrInvalidPort, uint32(port))
	}
}

// WriteIO dispatches a port write for the non-VDP/sound ports.
func (b *Bus) WriteIO(port byte, value byte) error {
	switch {
	case port <= 0x06:
		b.gearToGear = value
		b.gearToGearSet = true
		return nil
	case port == memoryControlPort:
		b.BiosEnabled = value&0x08 == 0
		b.joysticksEnabled = value&0x04 == 0
		return nil
	case port == sdscControlPort:
		if !b.joysticksEnabled {
			b.Console.writeControl(value)
		}
		return nil
	case port == sdscDataPort:
		if !b.joysticksEnabled {
			b.Console.writeData(value)
		}
		return nil
	default:
		return newCoreError("bus.WriteIO", ErrInvalidPort, uint32(port))
	}
}

// SaveSRAM returns a copy of the cartridge SRAM for save-game
// persistence (spec.md §6); not required for core correctness.
func (b *Bus) SaveSRAM() []byte {
	out := make([]byte, b.sram.Len())
	copy(out, b.sram.Bytes())
	return out
}

// LoadSRAM restores cartridge SRAM from a previously saved byte slice.
func (b *Bus) LoadSRAM(data []byte) {
	copy(b.sram.Bytes(), data)
}
