package ggcore

import "testing"

func TestSystemLoadCartridgeResetsCPU(t *testing.T) {
	s := New(ModeGameGear)
	rom := make([]byte, bankSize*2)
	s.LoadCartridge(rom)
	if s.CPU.PC != 0 {
		t.Fatalf("PC after LoadCartridge = %04X, want 0", s.CPU.PC)
	}
}

func TestSystemSetJoystickClampsPlayer(t *testing.T) {
	s := New(ModeGameGear)
	s.SetJoystick(2, 0x00) // out of range, should be ignored
	s.SetJoystick(0, 0xFE)
	if s.Bus.Joysticks[0].bitmap()&JoyUp != 0 {
		t.Fatal("player 0 Up bit should read as pressed after SetJoystick")
	}
}

func TestSystemTickAdvancesWithoutError(t *testing.T) {
	s := New(ModeGameGear)
	rom := make([]byte, bankSize*2)
	s.LoadCartridge(rom)
	s.Bus.BiosEnabled = false

	for i := 0; i < 50; i++ {
		if _, err := s.Tick(); err != nil {
			t.Fatalf("Tick %d error: %v", i, err)
		}
	}
}

func TestSystemFrameIsIdempotentBetweenReads(t *testing.T) {
	s := New(ModeGameGear)
	rom := make([]byte, bankSize*2)
	s.LoadCartridge(rom)
	s.Bus.BiosEnabled = false

	first := s.Frame()
	second := s.Frame()
	if len(first) != len(second) {
		t.Fatalf("Frame length changed between calls: %d vs %d", len(first), len(second))
	}
}
