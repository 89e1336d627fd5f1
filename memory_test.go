package ggcore

import "testing"

func TestMemoryReadWriteRoundTrip(t *testing.T) {
	m := NewMemory(0x100, 0xC000)
	m.Write(0xC010, 0x42)
	if got := m.Read(0xC010); got != 0x42 {
		t.Fatalf("Read after Write = %02X, want 42", got)
	}
}

func TestMemoryWordRoundTrip(t *testing.T) {
	m := NewMemory(0x100, 0xC000)
	m.WriteWord(0xC020, 0xBEEF)
	if got := m.ReadWord(0xC020); got != 0xBEEF {
		t.Fatalf("ReadWord = %04X, want BEEF", got)
	}
}

func TestMemoryOutOfBoundsIsSilent(t *testing.T) {
	m := NewMemory(0x10, 0xC000)
	m.Write(0xFFFF, 0x99) // far outside [0xC000, 0xC010)
	if got := m.Read(0xFFFF); got != 0 {
		t.Fatalf("out-of-range Read = %02X, want 0", got)
	}
}

func TestMemoryResizePreservesContent(t *testing.T) {
	m := NewMemory(0x10, 0)
	m.Write(4, 0x7A)
	m.Resize(0x20)
	if got := m.Read(4); got != 0x7A {
		t.Fatalf("Resize lost existing content: got %02X, want 7A", got)
	}
	if m.Len() != 0x20 {
		t.Fatalf("Len() = %d, want 32", m.Len())
	}
}

func TestMemoryReset(t *testing.T) {
	m := NewMemory(0x10, 0)
	m.Write(0, 0xFF)
	m.Reset()
	if got := m.Read(0); got != 0 {
		t.Fatalf("Reset left nonzero byte: %02X", got)
	}
}
