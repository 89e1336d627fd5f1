// cpu_exec.go - base (unprefixed) instruction dispatch

package ggcore

var baseCycles = [256]int{
	4, 10, 7, 6, 4, 4, 7, 4, 4, 11, 7, 6, 4, 4, 7, 4,
	8, 10, 7, 6, 4, 4, 7, 4, 12, 11, 7, 6, 4, 4, 7, 4,
	7, 10, 16, 6, 4, 4, 7, 4, 7, 11, 16, 6, 4, 4, 7, 4,
	7, 10, 13, 6, 11, 11, 10, 4, 7, 11, 13, 6, 4, 4, 7, 4,
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4,
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4,
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4,
	7, 7, 7, 7, 7, 7, 4, 7, 4, 4, 4, 4, 4, 4, 7, 4,
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4,
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4,
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4,
	4, 4, 4, 4, 4, 4, 7, 4, 4, 4, 4, 4, 4, 4, 7, 4,
	5, 10, 10, 10, 10, 11, 7, 11, 5, 10, 10, 0, 10, 17, 7, 11,
	5, 10, 10, 11, 10, 11, 7, 11, 5, 4, 10, 11, 10, 0, 7, 11,
	5, 10, 10, 19, 10, 11, 7, 11, 5, 4, 10, 4, 10, 0, 7, 11,
	5, 10, 10, 4, 10, 11, 7, 11, 5, 6, 10, 4, 10, 0, 7, 11,
}

func (c *CPU) execute() (int, error) {
	opcode := c.fetch()
	switch opcode {
	case 0xCB:
		return c.executeCB()
	case 0xED:
		return c.executeED()
	case 0xDD:
		return c.executeIndexed(&c.IX)
	case 0xFD:
		return c.executeIndexed(&c.IY)
	default:
		return c.executeMain(opcode, false, nil)
	}
}

// evalCondition implements the 3-bit condition-code encoding shared by
// JP/CALL/RET cc and (the 2-bit subset) JR cc.
func (c *CPU) evalCondition(code int) bool {
	switch code {
	case 0:
		return !c.getFlag(FlagZ)
	case 1:
		return c.getFlag(FlagZ)
	case 2:
		return !c.getFlag(FlagC)
	case 3:
		return c.getFlag(FlagC)
	case 4:
		return !c.getFlag(FlagPV)
	case 5:
		return c.getFlag(FlagPV)
	case 6:
		return !c.getFlag(FlagS)
	default:
		return c.getFlag(FlagS)
	}
}

// executeMain implements the unprefixed opcode table. When useIndexed is
// true, register-field encodings 4/5/6 (H, L, (HL)) are resolved against
// *indexPtr (IX or IY) instead of HL, per the DD/FD prefix rule.
func (c *CPU) executeMain(opcode byte, useIndexed bool, indexPtr *uint16) (int, error) {
	cycles := baseCycles[opcode]

	hlValue := func() uint16 {
		if useIndexed {
			return *indexPtr
		}
		return c.HL()
	}
	setHLValue := func(v uint16) {
		if useIndexed {
			*indexPtr = v
		} else {
			c.SetHL(v)
		}
	}

	switch {
	case opcode == 0x00: // NOP

	case opcode&0xCF == 0x01: // LD dd,nn
		idx := int(opcode>>4) & 3
		nn := c.fetchWord()
		if useIndexed && idx == 2 {
			*indexPtr = nn
		} else {
			c.writeReg16SP(idx, nn)
		}

	case opcode == 0x02: // LD (BC),A
		if err := c.writeMem(c.BC(), c.A); err != nil {
			return cycles, err
		}
	case opcode == 0x12: // LD (DE),A
		if err := c.writeMem(c.DE(), c.A); err != nil {
			return cycles, err
		}

	case opcode&0xCF == 0x03: // INC ss
		idx := int(opcode>>4) & 3
		if useIndexed && idx == 2 {
			*indexPtr++
		} else {
			c.writeReg16SP(idx, c.readReg16SP(idx)+1)
		}
	case opcode&0xCF == 0x0B: // DEC ss
		idx := int(opcode>>4) & 3
		if useIndexed && idx == 2 {
			*indexPtr--
		} else {
			c.writeReg16SP(idx, c.readReg16SP(idx)-1)
		}

	case opcode&0xC7 == 0x04: // INC r
		r := int(opcode>>3) & 7
		disp, cyc := c.indexDisplacement(r, useIndexed)
		cycles += cyc
		v := c.readReg8(r, useIndexed, hlValue(), disp)
		if err := c.writeReg8(r, c.inc8(v), useIndexed, indexPtr, disp); err != nil {
			return cycles, err
		}
	case opcode&0xC7 == 0x05: // DEC r
		r := int(opcode>>3) & 7
		disp, cyc := c.indexDisplacement(r, useIndexed)
		cycles += cyc
		v := c.readReg8(r, useIndexed, hlValue(), disp)
		if err := c.writeReg8(r, c.dec8(v), useIndexed, indexPtr, disp); err != nil {
			return cycles, err
		}
	case opcode&0xC7 == 0x06: // LD r,n
		r := int(opcode>>3) & 7
		disp, cyc := c.indexDisplacement(r, useIndexed)
		cycles += cyc
		n := c.fetch()
		if err := c.writeReg8(r, n, useIndexed, indexPtr, disp); err != nil {
			return cycles, err
		}

	case opcode == 0x07:
		c.rlca()
	case opcode == 0x0F:
		c.rrca()
	case opcode == 0x17:
		c.rla()
	case opcode == 0x1F:
		c.rra()
	case opcode == 0x27:
		c.daa()
	case opcode == 0x2F:
		c.A = ^c.A
		c.setFlag(FlagH, true)
		c.setFlag(FlagN, true)
	case opcode == 0x37:
		c.setFlag(FlagH, false)
		c.setFlag(FlagN, false)
		c.setFlag(FlagC, true)
	case opcode == 0x3F:
		c.setFlag(FlagH, c.getFlag(FlagC))
		c.setFlag(FlagN, false)
		c.setFlag(FlagC, !c.getFlag(FlagC))

	case opcode == 0x08:
		c.ExchangeAF()

	case opcode&0xCF == 0x09: // ADD HL,ss
		idx := int(opcode>>4) & 3
		var operand uint16
		if useIndexed && idx == 2 {
			operand = *indexPtr
		} else {
			operand = c.readReg16SP(idx)
		}
		setHLValue(c.addHL16(hlValue(), operand))

	case opcode == 0x0A:
		c.A = c.Bus.Read(c.BC())
	case opcode == 0x1A:
		c.A = c.Bus.Read(c.DE())

	case opcode == 0x10: // DJNZ e
		e := c.fetchSigned()
		c.B--
		if c.B != 0 {
			c.PC = uint16(int32(c.PC) + int32(e))
			cycles = 13
		} else {
			cycles = 8
		}

	case opcode == 0x18: // JR e
		e := c.fetchSigned()
		c.PC = uint16(int32(c.PC) + int32(e))

	case opcode&0xE7 == 0x20: // JR cc,e (cc in {NZ,Z,NC,C})
		ccIdx := int(opcode>>3) & 3
		e := c.fetchSigned()
		if c.evalCondition(ccIdx) {
			c.PC = uint16(int32(c.PC) + int32(e))
			cycles = 12
		} else {
			cycles = 7
		}

	case opcode == 0x22: // LD (nn),HL
		nn := c.fetchWord()
		if err := c.writeMemWord(nn, hlValue()); err != nil {
			return cycles, err
		}
	case opcode == 0x2A: // LD HL,(nn)
		nn := c.fetchWord()
		setHLValue(c.Bus.ReadWord(nn))

	case opcode == 0x32: // LD (nn),A
		nn := c.fetchWord()
		if err := c.writeMem(nn, c.A); err != nil {
			return cycles, err
		}
	case opcode == 0x3A: // LD A,(nn)
		nn := c.fetchWord()
		c.A = c.Bus.Read(nn)

	case opcode == 0x76: // HALT
		c.Halted = true

	case opcode >= 0x40 && opcode <= 0x7F: // LD r,r'
		dst := int(opcode>>3) & 7
		src := int(opcode) & 7
		var disp int8
		var cyc int
		switch 6 {
		case dst:
			disp, cyc = c.indexDisplacement(dst, useIndexed)
		case src:
			disp, cyc = c.indexDisplacement(src, useIndexed)
		}
		cycles += cyc
		v := c.readReg8(src, useIndexed, hlValue(), disp)
		if err := c.writeReg8(dst, v, useIndexed, indexPtr, disp); err != nil {
			return cycles, err
		}

	case opcode >= 0x80 && opcode <= 0xBF: // ALU a,r
		op := int(opcode>>3) & 7
		r := int(opcode) & 7
		disp, cyc := c.indexDisplacement(r, useIndexed)
		cycles += cyc
		v := c.readReg8(r, useIndexed, hlValue(), disp)
		c.aluOp(op, v)

	case opcode&0xC7 == 0xC0: // RET cc
		ccIdx := int(opcode>>3) & 7
		if c.evalCondition(ccIdx) {
			c.PC = c.pop()
			cycles = 11
		} else {
			cycles = 5
		}

	case opcode&0xCF == 0xC1: // POP qq
		idx := int(opcode>>4) & 3
		v := c.pop()
		if useIndexed && idx == 2 {
			*indexPtr = v
		} else {
			c.writeReg16AF(idx, v)
		}

	case opcode&0xC7 == 0xC2: // JP cc,nn
		ccIdx := int(opcode>>3) & 7
		nn := c.fetchWord()
		if c.evalCondition(ccIdx) {
			c.PC = nn
		}

	case opcode == 0xC3: // JP nn
		c.PC = c.fetchWord()

	case opcode&0xC7 == 0xC4: // CALL cc,nn
		ccIdx := int(opcode>>3) & 7
		nn := c.fetchWord()
		if c.evalCondition(ccIdx) {
			c.push(c.PC)
			c.PC = nn
			cycles = 17
		} else {
			cycles = 10
		}

	case opcode&0xCF == 0xC5: // PUSH qq
		idx := int(opcode>>4) & 3
		var v uint16
		if useIndexed && idx == 2 {
			v = *indexPtr
		} else {
			v = c.readReg16AF(idx)
		}
		c.push(v)

	case opcode&0xC7 == 0xC6: // ALU a,n
		op := int(opcode>>3) & 7
		n := c.fetch()
		c.aluOp(op, n)

	case opcode&0xC7 == 0xC7: // RST p
		p := opcode & 0x38
		c.push(c.PC)
		c.PC = uint16(p)

	case opcode == 0xC9: // RET
		c.PC = c.pop()

	case opcode == 0xCD: // CALL nn
		nn := c.fetchWord()
		c.push(c.PC)
		c.PC = nn

	case opcode == 0xD3: // OUT (n),A
		n := c.fetch()
		if err := c.out(n, c.A); err != nil {
			return cycles, err
		}
	case opcode == 0xDB: // IN A,(n)
		n := c.fetch()
		v, err := c.in(n)
		if err != nil {
			return cycles, err
		}
		c.A = v

	case opcode == 0xD9:
		c.Exx()

	case opcode == 0xE3: // EX (SP),HL
		v := c.Bus.ReadWord(c.SP)
		if err := c.writeMemWord(c.SP, hlValue()); err != nil {
			return cycles, err
		}
		setHLValue(v)

	case opcode == 0xE9: // JP (HL)
		c.PC = hlValue()

	case opcode == 0xEB: // EX DE,HL
		de, hl := c.DE(), hlValue()
		c.SetDE(hl)
		setHLValue(de)

	case opcode == 0xF3:
		c.IFF1, c.IFF2 = false, false
	case opcode == 0xFB:
		c.IFF1, c.IFF2 = true, true

	case opcode == 0xF9: // LD SP,HL
		c.SP = hlValue()

	default:
		return cycles, newCoreError("cpu.execute", ErrOpcodeNotImplemented, uint32(opcode))
	}

	return cycles, nil
}

// indexDisplacement fetches the (IX+d)/(IY+d) displacement byte when the
// register field selects (HL) under an active DD/FD prefix, returning the
// extra cycle cost that displacement fetch adds.
func (c *CPU) indexDisplacement(regField int, useIndexed bool) (int8, int) {
	if useIndexed && regField == 6 {
		return c.fetchSigned(), 8
	}
	return 0, 0
}

func (c *CPU) writeMemWord(addr uint16, value uint16) error {
	if err := c.writeMem(addr, byte(value)); err != nil {
		return err
	}
	return c.writeMem(addr+1, byte(value>>8))
}

func (c *CPU) aluOp(op int, value byte) {
	switch op {
	case 0:
		c.addA(value, false)
	case 1:
		c.addA(value, true)
	case 2:
		c.subA(value, false)
	case 3:
		c.subA(value, true)
	case 4:
		c.andA(value)
	case 5:
		c.xorA(value)
	case 6:
		c.orA(value)
	case 7:
		c.cpA(value)
	}
}

func (c *CPU) daa() {
	a := c.A
	correction := byte(0)
	carry := c.getFlag(FlagC)

	if c.getFlag(FlagH) || a&0x0F > 9 {
		correction |= 0x06
	}
	if carry || a > 0x99 {
		correction |= 0x60
		carry = true
	}

	if c.getFlag(FlagN) {
		a -= correction
	} else {
		a += correction
	}

	c.setFlag(FlagH, false)
	c.A = a
	c.setSZ53(a)
	c.setFlag(FlagPV, parity8(a))
	c.setFlag(FlagC, carry)
}
