// cpu_cb.go - CB-prefixed bit/rotate/shift instruction dispatch

package ggcore

// executeCB handles a plain (non-indexed) CB-prefixed opcode: rotate/
// shift r, BIT n,r, RES n,r, SET n,r.
func (c *CPU) executeCB() (int, error) {
	opcode := c.fetch()
	group := opcode >> 6
	n := int(opcode>>3) & 7
	r := int(opcode) & 7

	cycles := 8
	if r == 6 {
		cycles = 15
		if group == 1 {
			cycles = 12
		}
	}

	v := c.readReg8(r, false, c.HL(), 0)

	switch group {
	case 0:
		result := c.rotateOrShift(n, v)
		if err := c.writeReg8(r, result, false, nil, 0); err != nil {
			return cycles, err
		}
	case 1:
		c.bit(n, v)
	case 2:
		if err := c.writeReg8(r, res(n, v), false, nil, 0); err != nil {
			return cycles, err
		}
	default:
		if err := c.writeReg8(r, set(n, v), false, nil, 0); err != nil {
			return cycles, err
		}
	}
	return cycles, nil
}

// executeIndexedCB handles DDCB/FDCB: the operand is always (IX+d)/(IY+d);
// the undocumented "also store into register r" side effect of real
// silicon is not modeled (spec.md §1 excludes undocumented flag/quirk
// fidelity beyond what §4.4 explicitly calls out).
func (c *CPU) executeIndexedCB(indexBase uint16, disp int8, opcode byte) (int, error) {
	group := opcode >> 6
	n := int(opcode>>3) & 7

	addr := uint16(int32(indexBase) + int32(disp))
	v := c.Bus.Read(addr)

	switch group {
	case 0:
		result := c.rotateOrShift(n, v)
		if err := c.writeMem(addr, result); err != nil {
			return 23, err
		}
	case 1:
		c.bit(n, v)
		return 20, nil
	case 2:
		if err := c.writeMem(addr, res(n, v)); err != nil {
			return 23, err
		}
	default:
		if err := c.writeMem(addr, set(n, v)); err != nil {
			return 23, err
		}
	}
	return 23, nil
}

func (c *CPU) rotateOrShift(op int, v byte) byte {
	switch op {
	case 0:
		return c.rlc(v)
	case 1:
		return c.rrc(v)
	case 2:
		return c.rl(v)
	case 3:
		return c.rr(v)
	case 4:
		return c.sla(v)
	case 5:
		return c.sra(v)
	case 6:
		return c.sll(v)
	default:
		return c.srl(v)
	}
}
