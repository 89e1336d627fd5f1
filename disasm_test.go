package ggcore

import "testing"

func TestDisassembleJPAnnotatesBranchTarget(t *testing.T) {
	mem := map[uint16]byte{0xC000: 0xC3, 0xC001: 0x00, 0xC002: 0xD0}
	lines := Disassemble(func(a uint16) byte { return mem[a] }, 0xC000, 1)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	line := lines[0]
	if !line.IsBranch || !line.HasBranchTarget || line.BranchTarget != 0xD000 {
		t.Fatalf("JP nn line = %+v, want branch to D000", line)
	}
	if line.Size != 3 {
		t.Fatalf("JP nn size = %d, want 3", line.Size)
	}
}

func TestDisassembleJRRelativeTarget(t *testing.T) {
	mem := map[uint16]byte{0xC000: 0x18, 0xC001: 0xFE} // JR -2 (infinite loop to self)
	lines := Disassemble(func(a uint16) byte { return mem[a] }, 0xC000, 1)
	line := lines[0]
	if line.BranchTarget != 0xC000 {
		t.Fatalf("JR -2 from C000 should target C000, got %04X", line.BranchTarget)
	}
}

func TestDisassembleLDRegisterToRegister(t *testing.T) {
	mem := map[uint16]byte{0xC000: 0x78} // LD A,B
	lines := Disassemble(func(a uint16) byte { return mem[a] }, 0xC000, 1)
	if lines[0].Mnemonic != "LD A,B" {
		t.Fatalf("mnemonic = %q, want LD A,B", lines[0].Mnemonic)
	}
}
