// cpu_block.go - block transfer, search and I/O repeat instructions

package ggcore

func (c *CPU) ldi() (int, error) {
	value := c.Bus.Read(c.HL())
	if err := c.writeMem(c.DE(), value); err != nil {
		return 16, err
	}
	c.SetHL(c.HL() + 1)
	c.SetDE(c.DE() + 1)
	c.SetBC(c.BC() - 1)
	c.setFlag(FlagH, false)
	c.setFlag(FlagN, false)
	c.setFlag(FlagPV, c.BC() != 0)
	n := value + c.A
	c.setFlag(FlagF3, n&0x08 != 0)
	c.setFlag(FlagF5, n&0x02 != 0)
	return 16, nil
}

func (c *CPU) ldd() (int, error) {
	value := c.Bus.Read(c.HL())
	if err := c.writeMem(c.DE(), value); err != nil {
		return 16, err
	}
	c.SetHL(c.HL() - 1)
	c.SetDE(c.DE() - 1)
	c.SetBC(c.BC() - 1)
	c.setFlag(FlagH, false)
	c.setFlag(FlagN, false)
	c.setFlag(FlagPV, c.BC() != 0)
	n := value + c.A
	c.setFlag(FlagF3, n&0x08 != 0)
	c.setFlag(FlagF5, n&0x02 != 0)
	return 16, nil
}

func (c *CPU) ldir() (int, error) {
	cycles, err := c.ldi()
	if err != nil {
		return cycles, err
	}
	if c.BC() != 0 {
		c.PC -= 2
		return 21, nil
	}
	return 16, nil
}

func (c *CPU) lddr() (int, error) {
	cycles, err := c.ldd()
	if err != nil {
		return cycles, err
	}
	if c.BC() != 0 {
		c.PC -= 2
		return 21, nil
	}
	return 16, nil
}

func (c *CPU) cpi() (int, error) {
	value := c.Bus.Read(c.HL())
	result := c.A - value
	halfCarry := (c.A & 0x0F) < (value & 0x0F)
	c.SetHL(c.HL() + 1)
	c.SetBC(c.BC() - 1)
	c.setFlag(FlagS, result&0x80 != 0)
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagH, halfCarry)
	c.setFlag(FlagPV, c.BC() != 0)
	c.setFlag(FlagN, true)
	n := result
	if halfCarry {
		n--
	}
	c.setFlag(FlagF3, n&0x08 != 0)
	c.setFlag(FlagF5, n&0x02 != 0)
	return 16, nil
}

func (c *CPU) cpd() (int, error) {
	value := c.Bus.Read(c.HL())
	result := c.A - value
	halfCarry := (c.A & 0x0F) < (value & 0x0F)
	c.SetHL(c.HL() - 1)
	c.SetBC(c.BC() - 1)
	c.setFlag(FlagS, result&0x80 != 0)
	c.setFlag(FlagZ, result == 0)
	c.setFlag(FlagH, halfCarry)
	c.setFlag(FlagPV, c.BC() != 0)
	c.setFlag(FlagN, true)
	n := result
	if halfCarry {
		n--
	}
	c.setFlag(FlagF3, n&0x08 != 0)
	c.setFlag(FlagF5, n&0x02 != 0)
	return 16, nil
}

func (c *CPU) cpir() (int, error) {
	cycles, err := c.cpi()
	if err != nil {
		return cycles, err
	}
	if c.BC() != 0 && !c.getFlag(FlagZ) {
		c.PC -= 2
		return 21, nil
	}
	return 16, nil
}

func (c *CPU) cpdr() (int, error) {
	cycles, err := c.cpd()
	if err != nil {
		return cycles, err
	}
	if c.BC() != 0 && !c.getFlag(FlagZ) {
		c.PC -= 2
		return 21, nil
	}
	return 16, nil
}

func (c *CPU) ini() (int, error) {
	value, err := c.in(c.C)
	if err != nil {
		return 16, err
	}
	if werr := c.writeMem(c.HL(), value); werr != nil {
		return 16, werr
	}
	c.SetHL(c.HL() + 1)
	c.B--
	c.setFlag(FlagZ, c.B == 0)
	c.setFlag(FlagN, true)
	return 16, nil
}

func (c *CPU) ind() (int, error) {
	value, err := c.in(c.C)
	if err != nil {
		return 16, err
	}
	if werr := c.writeMem(c.HL(), value); werr != nil {
		return 16, werr
	}
	c.SetHL(c.HL() - 1)
	c.B--
	c.setFlag(FlagZ, c.B == 0)
	c.setFlag(FlagN, true)
	return 16, nil
}

func (c *CPU) inir() (int, error) {
	cycles, err := c.ini()
	if err != nil {
		return cycles, err
	}
	if c.B != 0 {
		c.PC -= 2
		return 21, nil
	}
	return 16, nil
}

func (c *CPU) indr() (int, error) {
	cycles, err := c.ind()
	if err != nil {
		return cycles, err
	}
	if c.B != 0 {
		c.PC -= 2
		return 21, nil
	}
	return 16, nil
}

func (c *CPU) outi() (int, error) {
	value := c.Bus.Read(c.HL())
	c.SetHL(c.HL() + 1)
	c.B--
	if err := c.out(c.C, value); err != nil {
		return 16, err
	}
	c.setFlag(FlagZ, c.B == 0)
	c.setFlag(FlagN, true)
	return 16, nil
}

func (c *CPU) outd() (int, error) {
	value := c.Bus.Read(c.HL())
	c.SetHL(c.HL() - 1)
	c.B--
	if err := c.out(c.C, value); err != nil {
		return 16, err
	}
	c.setFlag(FlagZ, c.B == 0)
	c.setFlag(FlagN, true)
	return 16, nil
}

func (c *CPU) otir() (int, error) {
	cycles, err := c.outi()
	if err != nil {
		return cycles, err
	}
	if c.B != 0 {
		c.PC -= 2
		return 21, nil
	}
	return 16, nil
}

func (c *CPU) otdr() (int, error) {
	cycles, err := c.outd()
	if err != nil {
		return cycles, err
	}
	if c.B != 0 {
		c.PC -= 2
		return 21, nil
	}
	return 16, nil
}
