// cpu_ed.go - ED-prefixed extended instruction dispatch

package ggcore

// executeED handles the ED-prefixed instruction set: 16-bit load/ALU
// extensions, I/R transfer, RRD/RLD, interrupt-mode selection, RETN/RETI
// and the eight block transfer/search/IO instructions. Undefined ED
// opcodes behave as an 8-cycle NOP, matching real Z80 silicon.
func (c *CPU) executeED() (int, error) {
	opcode := c.fetch()

	switch {
	case opcode&0xC7 == 0x40 && opcode != 0x76: // IN r,(C)
		r := int(opcode>>3) & 7
		v, err := c.in(c.C)
		if err != nil {
			return 12, err
		}
		c.setSZ53(v)
		c.setFlag(FlagPV, parity8(v))
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		if r != 6 {
			if err := c.writeReg8(r, v, false, nil, 0); err != nil {
				return 12, err
			}
		}
		return 12, nil

	case opcode&0xC7 == 0x41: // OUT (C),r
		r := int(opcode>>3) & 7
		v := byte(0)
		if r != 6 {
			v = c.readReg8(r, false, c.HL(), 0)
		}
		if err := c.out(c.C, v); err != nil {
			return 12, err
		}
		return 12, nil

	case opcode&0xCF == 0x42: // SBC HL,ss
		idx := int(opcode>>4) & 3
		c.SetHL(c.sbcHL16(c.HL(), c.readReg16SP(idx)))
		return 15, nil
	case opcode&0xCF == 0x4A: // ADC HL,ss
		idx := int(opcode>>4) & 3
		c.SetHL(c.adcHL16(c.HL(), c.readReg16SP(idx)))
		return 15, nil

	case opcode&0xCF == 0x43: // LD (nn),dd
		idx := int(opcode>>4) & 3
		nn := c.fetchWord()
		if err := c.writeMemWord(nn, c.readReg16SP(idx)); err != nil {
			return 20, err
		}
		return 20, nil
	case opcode&0xCF == 0x4B: // LD dd,(nn)
		idx := int(opcode>>4) & 3
		nn := c.fetchWord()
		c.writeReg16SP(idx, c.Bus.ReadWord(nn))
		return 20, nil

	case opcode&0xC7 == 0x44: // NEG
		saved := c.A
		c.A = 0
		c.subA(saved, false)
		return 8, nil

	case opcode == 0x45 || opcode == 0x4D: // RETN / RETI
		c.IFF1 = c.IFF2
		c.PC = c.pop()
		return 14, nil

	case opcode == 0x46 || opcode == 0x4E || opcode == 0x66 || opcode == 0x6E:
		c.SetInterruptMode(0)
		return 8, nil
	case opcode == 0x56 || opcode == 0x76:
		c.SetInterruptMode(1)
		return 8, nil
	case opcode == 0x5E || opcode == 0x7E:
		c.SetInterruptMode(2)
		return 8, nil

	case opcode == 0x47: // LD I,A
		c.I = c.A
		return 9, nil
	case opcode == 0x4F: // LD R,A
		c.R = c.A
		return 9, nil
	case opcode == 0x57: // LD A,I
		c.A = c.I
		c.setSZ53(c.A)
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagPV, c.IFF2)
		return 9, nil
	case opcode == 0x5F: // LD A,R
		c.A = c.R
		c.setSZ53(c.A)
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagPV, c.IFF2)
		return 9, nil

	case opcode == 0x67: // RRD
		mem := c.Bus.Read(c.HL())
		result := (c.A&0x0F)<<4 | mem>>4
		c.A = c.A&0xF0 | mem&0x0F
		if err := c.writeMem(c.HL(), result); err != nil {
			return 18, err
		}
		c.setSZ53(c.A)
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagPV, parity8(c.A))
		return 18, nil
	case opcode == 0x6F: // RLD
		mem := c.Bus.Read(c.HL())
		result := mem<<4 | c.A&0x0F
		c.A = c.A&0xF0 | mem>>4
		if err := c.writeMem(c.HL(), result); err != nil {
			return 18, err
		}
		c.setSZ53(c.A)
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagPV, parity8(c.A))
		return 18, nil

	case opcode == 0xA0:
		return c.ldi()
	case opcode == 0xA8:
		return c.ldd()
	case opcode == 0xB0:
		return c.ldir()
	case opcode == 0xB8:
		return c.lddr()

	case opcode == 0xA1:
		return c.cpi()
	case opcode == 0xA9:
		return c.cpd()
	case opcode == 0xB1:
		return c.cpir()
	case opcode == 0xB9:
		return c.cpdr()

	case opcode == 0xA2:
		return c.ini()
	case opcode == 0xAA:
		return c.ind()
	case opcode == 0xB2:
		return c.inir()
	case opcode == 0xBA:
		return c.indr()

	case opcode == 0xA3:
		return c.outi()
	case opcode == 0xAB:
		return c.outd()
	case opcode == 0xB3:
		return c.otir()
	case opcode == 0xBB:
		return c.otdr()

	default:
		return 8, nil
	}
}
