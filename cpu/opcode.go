package cpu

import (
	"fmt"
)

// OperandMode is an instruction addressing mode.
type OperandMode int

//go:generate go tool stringer -linecomment -type=OperandMode
const (
	MODE_IMPLIED     = OperandMode(0)  // implied
	MODE_ACCUMULATOR = OperandMode(1)  // accumulator
	MODE_IMMEDIATE   = OperandMode(2)  // immediate
	MODE_ZERO_PAGE   = OperandMode(3)  // zeropage
	MODE_ZERO_PAGE_X = OperandMode(4)  // zeropage,x
	MODE_ZERO_PAGE_Y = OperandMode(5)  // zeropage,y
	MODE_ABSOLUTE    = OperandMode(6)  // absolute
	MODE_ABSOLUTE_X  = OperandMode(7)  // absolute,x
	MODE_ABSOLUTE_Y  = OperandMode(8)  // absolute,y
	MODE_INDIRECT    = OperandMode(9)  // indirect
	MODE_INDIRECT_X  = OperandMode(10) // indirect,x
	MODE_INDIRECT_Y  = OperandMode(11) // indirect,y
)

// Width returns the number of operand bytes the mode encodes after the
// opcode byte, which is how far the program counter advances during
// operand resolution.
func (mode OperandMode) Width() int {
	switch mode {
	case MODE_IMPLIED, MODE_ACCUMULATOR:
		return 0
	case MODE_IMMEDIATE, MODE_ZERO_PAGE, MODE_ZERO_PAGE_X, MODE_ZERO_PAGE_Y,
		MODE_INDIRECT_X, MODE_INDIRECT_Y:
		return 1
	default:
		return 2
	}
}

// Operation is an architectural operation mnemonic. Its semantics are
// independent of addressing mode.
type Operation int

//go:generate go tool stringer -linecomment -type=Operation
const (
	OP_ILLEGAL = Operation(iota) // ???
	OP_ADC                       // ADC
	OP_AND                       // AND
	OP_ASL                       // ASL
	OP_BCC                       // BCC
	OP_BCS                       // BCS
	OP_BEQ                       // BEQ
	OP_BIT                       // BIT
	OP_BMI                       // BMI
	OP_BNE                       // BNE
	OP_BPL                       // BPL
	OP_BRK                       // BRK
	OP_BVC                       // BVC
	OP_BVS                       // BVS
	OP_CLC                       // CLC
	OP_CLD                       // CLD
	OP_CLI                       // CLI
	OP_CLV                       // CLV
	OP_CMP                       // CMP
	OP_CPX                       // CPX
	OP_CPY                       // CPY
	OP_DEC                       // DEC
	OP_DEX                       // DEX
	OP_DEY                       // DEY
	OP_EOR                       // EOR
	OP_INC                       // INC
	OP_INX                       // INX
	OP_INY                       // INY
	OP_JMP                       // JMP
	OP_JSR                       // JSR
	OP_LDA                       // LDA
	OP_LDX                       // LDX
	OP_LDY                       // LDY
	OP_LSR                       // LSR
	OP_NOP                       // NOP
	OP_ORA                       // ORA
	OP_PHA                       // PHA
	OP_PHP                       // PHP
	OP_PLA                       // PLA
	OP_PLP                       // PLP
	OP_ROL                       // ROL
	OP_ROR                       // ROR
	OP_RTI                       // RTI
	OP_RTS                       // RTS
	OP_SBC                       // SBC
	OP_SEC                       // SEC
	OP_SED                       // SED
	OP_SEI                       // SEI
	OP_STA                       // STA
	OP_STX                       // STX
	OP_STY                       // STY
	OP_TAX                       // TAX
	OP_TAY                       // TAY
	OP_TSX                       // TSX
	OP_TXA                       // TXA
	OP_TXS                       // TXS
	OP_TYA                       // TYA
)

// isBranch reports whether the operation is a conditional branch, whose
// single operand byte is a signed displacement rather than a value.
func (op Operation) isBranch() bool {
	switch op {
	case OP_BCC, OP_BCS, OP_BEQ, OP_BMI, OP_BNE, OP_BPL, OP_BVC, OP_BVS:
		return true
	}
	return false
}

// Instruction is the fixed (Operation, OperandMode) pairing an opcode
// byte decodes to. It is looked up, never constructed.
type Instruction struct {
	Operation Operation
	Mode      OperandMode
}

// String returns the assembly language representation of the instruction.
func (inst Instruction) String() string {
	return fmt.Sprintf("%v.%v", inst.Operation.String(), inst.Mode.String())
}

// opcodeEntry binds one opcode byte to its instruction.
type opcodeEntry struct {
	opcode    uint8
	operation Operation
	mode      OperandMode
}

// The architecture's opcode table. Branch operations carry their signed
// displacement as a single operand byte and decode as immediate; the
// executor interprets the value as a two's-complement offset.
var opcodeTable = []opcodeEntry{
	{0xa9, OP_LDA, MODE_IMMEDIATE},
	{0xa5, OP_LDA, MODE_ZERO_PAGE},
	{0xb5, OP_LDA, MODE_ZERO_PAGE_X},
	{0xad, OP_LDA, MODE_ABSOLUTE},
	{0xbd, OP_LDA, MODE_ABSOLUTE_X},
	{0xb9, OP_LDA, MODE_ABSOLUTE_Y},
	{0xa1, OP_LDA, MODE_INDIRECT_X},
	{0xb1, OP_LDA, MODE_INDIRECT_Y},

	{0xa2, OP_LDX, MODE_IMMEDIATE},
	{0xa6, OP_LDX, MODE_ZERO_PAGE},
	{0xb6, OP_LDX, MODE_ZERO_PAGE_Y},
	{0xae, OP_LDX, MODE_ABSOLUTE},
	{0xbe, OP_LDX, MODE_ABSOLUTE_Y},

	{0xa0, OP_LDY, MODE_IMMEDIATE},
	{0xa4, OP_LDY, MODE_ZERO_PAGE},
	{0xb4, OP_LDY, MODE_ZERO_PAGE_X},
	{0xac, OP_LDY, MODE_ABSOLUTE},
	{0xbc, OP_LDY, MODE_ABSOLUTE_X},

	{0x85, OP_STA, MODE_ZERO_PAGE},
	{0x95, OP_STA, MODE_ZERO_PAGE_X},
	{0x8d, OP_STA, MODE_ABSOLUTE},
	{0x9d, OP_STA, MODE_ABSOLUTE_X},
	{0x99, OP_STA, MODE_ABSOLUTE_Y},
	{0x81, OP_STA, MODE_INDIRECT_X},
	{0x91, OP_STA, MODE_INDIRECT_Y},

	{0x86, OP_STX, MODE_ZERO_PAGE},
	{0x96, OP_STX, MODE_ZERO_PAGE_Y},
	{0x8e, OP_STX, MODE_ABSOLUTE},

	{0x84, OP_STY, MODE_ZERO_PAGE},
	{0x94, OP_STY, MODE_ZERO_PAGE_X},
	{0x8c, OP_STY, MODE_ABSOLUTE},

	{0x69, OP_ADC, MODE_IMMEDIATE},
	{0x65, OP_ADC, MODE_ZERO_PAGE},
	{0x75, OP_ADC, MODE_ZERO_PAGE_X},
	{0x6d, OP_ADC, MODE_ABSOLUTE},
	{0x7d, OP_ADC, MODE_ABSOLUTE_X},
	{0x79, OP_ADC, MODE_ABSOLUTE_Y},
	{0x61, OP_ADC, MODE_INDIRECT_X},
	{0x71, OP_ADC, MODE_INDIRECT_Y},

	{0xe9, OP_SBC, MODE_IMMEDIATE},
	{0xe5, OP_SBC, MODE_ZERO_PAGE},
	{0xf5, OP_SBC, MODE_ZERO_PAGE_X},
	{0xed, OP_SBC, MODE_ABSOLUTE},
	{0xfd, OP_SBC, MODE_ABSOLUTE_X},
	{0xf9, OP_SBC, MODE_ABSOLUTE_Y},
	{0xe1, OP_SBC, MODE_INDIRECT_X},
	{0xf1, OP_SBC, MODE_INDIRECT_Y},

	{0xc9, OP_CMP, MODE_IMMEDIATE},
	{0xc5, OP_CMP, MODE_ZERO_PAGE},
	{0xd5, OP_CMP, MODE_ZERO_PAGE_X},
	{0xcd, OP_CMP, MODE_ABSOLUTE},
	{0xdd, OP_CMP, MODE_ABSOLUTE_X},
	{0xd9, OP_CMP, MODE_ABSOLUTE_Y},
	{0xc1, OP_CMP, MODE_INDIRECT_X},
	{0xd1, OP_CMP, MODE_INDIRECT_Y},

	{0xe0, OP_CPX, MODE_IMMEDIATE},
	{0xe4, OP_CPX, MODE_ZERO_PAGE},
	{0xec, OP_CPX, MODE_ABSOLUTE},

	{0xc0, OP_CPY, MODE_IMMEDIATE},
	{0xc4, OP_CPY, MODE_ZERO_PAGE},
	{0xcc, OP_CPY, MODE_ABSOLUTE},

	{0x24, OP_BIT, MODE_ZERO_PAGE},
	{0x2c, OP_BIT, MODE_ABSOLUTE},

	{0x29, OP_AND, MODE_IMMEDIATE},
	{0x25, OP_AND, MODE_ZERO_PAGE},
	{0x35, OP_AND, MODE_ZERO_PAGE_X},
	{0x2d, OP_AND, MODE_ABSOLUTE},
	{0x3d, OP_AND, MODE_ABSOLUTE_X},
	{0x39, OP_AND, MODE_ABSOLUTE_Y},
	{0x21, OP_AND, MODE_INDIRECT_X},
	{0x31, OP_AND, MODE_INDIRECT_Y},

	{0x09, OP_ORA, MODE_IMMEDIATE},
	{0x05, OP_ORA, MODE_ZERO_PAGE},
	{0x15, OP_ORA, MODE_ZERO_PAGE_X},
	{0x0d, OP_ORA, MODE_ABSOLUTE},
	{0x1d, OP_ORA, MODE_ABSOLUTE_X},
	{0x19, OP_ORA, MODE_ABSOLUTE_Y},
	{0x01, OP_ORA, MODE_INDIRECT_X},
	{0x11, OP_ORA, MODE_INDIRECT_Y},

	{0x49, OP_EOR, MODE_IMMEDIATE},
	{0x45, OP_EOR, MODE_ZERO_PAGE},
	{0x55, OP_EOR, MODE_ZERO_PAGE_X},
	{0x4d, OP_EOR, MODE_ABSOLUTE},
	{0x5d, OP_EOR, MODE_ABSOLUTE_X},
	{0x59, OP_EOR, MODE_ABSOLUTE_Y},
	{0x41, OP_EOR, MODE_INDIRECT_X},
	{0x51, OP_EOR, MODE_INDIRECT_Y},

	{0xe6, OP_INC, MODE_ZERO_PAGE},
	{0xf6, OP_INC, MODE_ZERO_PAGE_X},
	{0xee, OP_INC, MODE_ABSOLUTE},
	{0xfe, OP_INC, MODE_ABSOLUTE_X},

	{0xc6, OP_DEC, MODE_ZERO_PAGE},
	{0xd6, OP_DEC, MODE_ZERO_PAGE_X},
	{0xce, OP_DEC, MODE_ABSOLUTE},
	{0xde, OP_DEC, MODE_ABSOLUTE_X},

	{0xe8, OP_INX, MODE_IMPLIED},
	{0xc8, OP_INY, MODE_IMPLIED},
	{0xca, OP_DEX, MODE_IMPLIED},
	{0x88, OP_DEY, MODE_IMPLIED},

	{0x0a, OP_ASL, MODE_ACCUMULATOR},
	{0x06, OP_ASL, MODE_ZERO_PAGE},
	{0x16, OP_ASL, MODE_ZERO_PAGE_X},
	{0x0e, OP_ASL, MODE_ABSOLUTE},
	{0x1e, OP_ASL, MODE_ABSOLUTE_X},

	{0x4a, OP_LSR, MODE_ACCUMULATOR},
	{0x46, OP_LSR, MODE_ZERO_PAGE},
	{0x56, OP_LSR, MODE_ZERO_PAGE_X},
	{0x4e, OP_LSR, MODE_ABSOLUTE},
	{0x5e, OP_LSR, MODE_ABSOLUTE_X},

	{0x2a, OP_ROL, MODE_ACCUMULATOR},
	{0x26, OP_ROL, MODE_ZERO_PAGE},
	{0x36, OP_ROL, MODE_ZERO_PAGE_X},
	{0x2e, OP_ROL, MODE_ABSOLUTE},
	{0x3e, OP_ROL, MODE_ABSOLUTE_X},

	{0x6a, OP_ROR, MODE_ACCUMULATOR},
	{0x66, OP_ROR, MODE_ZERO_PAGE},
	{0x76, OP_ROR, MODE_ZERO_PAGE_X},
	{0x6e, OP_ROR, MODE_ABSOLUTE},
	{0x7e, OP_ROR, MODE_ABSOLUTE_X},

	{0x4c, OP_JMP, MODE_ABSOLUTE},
	{0x6c, OP_JMP, MODE_INDIRECT},
	{0x20, OP_JSR, MODE_ABSOLUTE},
	{0x60, OP_RTS, MODE_IMPLIED},

	{0x90, OP_BCC, MODE_IMMEDIATE},
	{0xb0, OP_BCS, MODE_IMMEDIATE},
	{0xf0, OP_BEQ, MODE_IMMEDIATE},
	{0xd0, OP_BNE, MODE_IMMEDIATE},
	{0x30, OP_BMI, MODE_IMMEDIATE},
	{0x10, OP_BPL, MODE_IMMEDIATE},
	{0x50, OP_BVC, MODE_IMMEDIATE},
	{0x70, OP_BVS, MODE_IMMEDIATE},

	{0x18, OP_CLC, MODE_IMPLIED},
	{0x38, OP_SEC, MODE_IMPLIED},
	{0x58, OP_CLI, MODE_IMPLIED},
	{0x78, OP_SEI, MODE_IMPLIED},
	{0xd8, OP_CLD, MODE_IMPLIED},
	{0xf8, OP_SED, MODE_IMPLIED},
	{0xb8, OP_CLV, MODE_IMPLIED},

	{0xaa, OP_TAX, MODE_IMPLIED},
	{0x8a, OP_TXA, MODE_IMPLIED},
	{0xa8, OP_TAY, MODE_IMPLIED},
	{0x98, OP_TYA, MODE_IMPLIED},
	{0x9a, OP_TXS, MODE_IMPLIED},
	{0xba, OP_TSX, MODE_IMPLIED},

	{0x48, OP_PHA, MODE_IMPLIED},
	{0x68, OP_PLA, MODE_IMPLIED},
	{0x08, OP_PHP, MODE_IMPLIED},
	{0x28, OP_PLP, MODE_IMPLIED},

	{0x00, OP_BRK, MODE_IMPLIED},
	{0x40, OP_RTI, MODE_IMPLIED},
	{0xea, OP_NOP, MODE_IMPLIED},
}

// instructionSet is the total static decode table, shared read-only by
// every ComputerState. Undefined opcodes hold OP_ILLEGAL.
var instructionSet [256]Instruction

// encodingSet is the reverse table, used by the assembler to select an
// opcode byte for an (operation, mode) pair.
var encodingSet map[Instruction]uint8

func init() {
	encodingSet = make(map[Instruction]uint8, len(opcodeTable))

	for _, entry := range opcodeTable {
		inst := Instruction{Operation: entry.operation, Mode: entry.mode}
		if instructionSet[entry.opcode].Operation != OP_ILLEGAL {
			panic(fmt.Sprintf("duplicate opcode 0x%02x", entry.opcode))
		}
		instructionSet[entry.opcode] = inst
		encodingSet[inst] = entry.opcode
	}
}

// Decode maps an opcode byte to its instruction. Undefined opcodes fail
// with ErrUndefinedOpcode.
func Decode(opcode uint8) (inst Instruction, err error) {
	inst = instructionSet[opcode]
	if inst.Operation == OP_ILLEGAL {
		err = ErrUndefinedOpcode(opcode)
	}

	return
}

// Encode maps an (operation, mode) pair back to its opcode byte. Pairs
// absent from the architecture table fail with ErrModeInvalid.
func Encode(operation Operation, mode OperandMode) (opcode uint8, err error) {
	opcode, ok := encodingSet[Instruction{Operation: operation, Mode: mode}]
	if !ok {
		err = ErrModeInvalid
	}

	return
}
