// sound_stub.go - stub sound generator accepting PSG register writes

package ggcore

// SoundGenerator is modeled only as a stub that records writes, per
// spec.md §1: audio rendering is a host collaborator. It still advances a
// tick counter so System's per-tick cadence (§4.5) has something to drive,
// and keeps the last byte written to port 0x7F for debug introspection.
type SoundGenerator struct {
	lastWrite byte
	ticks     uint64
}

func newSoundGenerator() *SoundGenerator { return &SoundGenerator{} }

func (s *SoundGenerator) WriteIO(value byte) { s.lastWrite = value }

func (s *SoundGenerator) LastWrite() byte { return s.lastWrite }

func (s *SoundGenerator) Tick() { s.ticks++ }

func (s *SoundGenerator) Ticks() uint64 { return s.ticks }
