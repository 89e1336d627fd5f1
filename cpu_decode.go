// cpu_decode.go - generalized operand/immediate decode structures (spec.md §4.4)

package ggcore

// ImmediateWidth distinguishes the three immediate shapes the Z80 encodes:
// an 8-bit unsigned byte, a 16-bit little-endian word, or an 8-bit signed
// relative displacement.
type ImmediateWidth int

const (
	ImmU8 ImmediateWidth = iota
	ImmU16
	ImmS8
)

// Immediate is a decoded immediate operand: its width tags which of the
// U8, U16 or S8 fields is meaningful.
type Immediate struct {
	Width ImmediateWidth
	U8    byte
	U16   uint16
	S8    int8
}

// RegKind distinguishes 8-bit single registers from 16-bit register pairs
// so Operand can name either with one shared shape.
type RegKind int

const (
	Reg8 RegKind = iota
	Reg16
)

// Reg identifies a register operand; Name is one of the conventional Z80
// mnemonics ("A","B","C","D","E","H","L","IX","IY","SP","BC","DE","HL","AF").
type Reg struct {
	Kind RegKind
	Name string
}

// Operand is either a register or an immediate, optionally dereferenced
// (Indirect) as in `(HL)` or `(nn)`, per spec.md §4.4.
type Operand struct {
	Reg       *Reg
	Imm       *Immediate
	Indirect  bool
	Index     *Reg // IX/IY when this operand is (IX+d)/(IY+d)
	Displace  int8
}

// Instruction is the generalized decode result: mnemonic, operands, the
// raw bytes consumed and its base T-state cost (before any taken-branch
// adjustment applied at execute time).
type Instruction struct {
	Mnemonic string
	Operands []Operand
	Bytes    []byte
	Cycles   int
	Address  uint16
	IsBranch bool
	BranchTarget uint16
	HasBranchTarget bool
}

// reg8Names indexes the 3-bit register-field encoding shared by LD r,r'
// and the ALU a,r block: B,C,D,E,H,L,(HL),A.
var reg8Names = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// reg16NamesSP indexes the 2-bit register-pair encoding used by LD
// dd,nn / INC ss / DEC ss / ADD HL,ss.
var reg16NamesSP = [4]string{"BC", "DE", "HL", "SP"}

// reg16NamesAF indexes the 2-bit register-pair encoding used by PUSH/POP,
// which substitutes AF for SP in slot 3.
var reg16NamesAF = [4]string{"BC", "DE", "HL", "AF"}

func (c *CPU) readReg8(index int, useIndexed bool, indexBase uint16, disp int8) byte {
	switch index {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		if useIndexed {
			return byte(indexBase >> 8) // IXh/IYh, undocumented but widely emulated
		}
		return c.H
	case 5:
		if useIndexed {
			return byte(indexBase)
		}
		return c.L
	case 6:
		if useIndexed {
			return c.Bus.Read(uint16(int32(indexBase) + int32(disp)))
		}
		return c.Bus.Read(c.HL())
	default:
		return c.A
	}
}

func (c *CPU) writeReg8(index int, value byte, useIndexed bool, indexPtr *uint16, disp int8) error {
	switch index {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		if useIndexed {
			*indexPtr = uint16(value)<<8 | (*indexPtr & 0x00FF)
			return nil
		}
		c.H = value
	case 5:
		if useIndexed {
			*indexPtr = (*indexPtr & 0xFF00) | uint16(value)
			return nil
		}
		c.L = value
	case 6:
		if useIndexed {
			return c.writeMem(uint16(int32(*indexPtr)+int32(disp)), value)
		}
		return c.writeMem(c.HL(), value)
	default:
		c.A = value
	}
	return nil
}

func (c *CPU) readReg16SP(index int) uint16 {
	switch index {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *CPU) writeReg16SP(index int, value uint16) {
	switch index {
	case 0:
		c.SetBC(value)
	case 1:
		c.SetDE(value)
	case 2:
		c.SetHL(value)
	default:
		c.SP = value
	}
}

func (c *CPU) readReg16AF(index int) uint16 {
	switch index {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.AF()
	}
}

func (c *CPU) writeReg16AF(index int, value uint16) {
	switch index {
	case 0:
		c.SetBC(value)
	case 1:
		c.SetDE(value)
	case 2:
		c.SetHL(value)
	default:
		c.SetAF(value)
	}
}
