// cpu_idx.go - DD/FD prefix dispatch (IX/IY substitution for HL)

package ggcore

// executeIndexed handles one DD- or FD-prefixed instruction. A second
// 0xCB byte signals the DDCB/FDCB indexed bit-op form, which carries its
// displacement before the final opcode byte rather than after it.
func (c *CPU) executeIndexed(indexPtr *uint16) (int, error) {
	opcode := c.fetch()
	if opcode == 0xCB {
		disp := c.fetchSigned()
		finalOpcode := c.fetch()
		return c.executeIndexedCB(*indexPtr, disp, finalOpcode)
	}
	if opcode == 0xDD || opcode == 0xFD {
		// A repeated prefix byte is a documented no-op wait state; the
		// CPU simply re-reads the next opcode under the new prefix.
		if opcode == 0xDD {
			return c.executeIndexed(&c.IX)
		}
		return c.executeIndexed(&c.IY)
	}
	cycles, err := c.executeMain(opcode, true, indexPtr)
	return cycles + 4, err
}
