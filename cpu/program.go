package cpu

// Statement is one assembled source statement: an instruction with its
// resolved operand, or a raw data block from a data directive.
type Statement struct {
	LineNo    int      // Source line number.
	Addr      int      // Address assigned by the location counter.
	Words     []string // Source words, for diagnostics.
	Operation Operation
	Mode      OperandMode
	Operand   uint16
	LinkLabel string // Unresolved label reference, if any.
	Data      []byte // Raw bytes for data directives; nil for instructions.
}

// Size returns the number of memory bytes the statement occupies.
func (st *Statement) Size() int {
	if st.Data != nil {
		return len(st.Data)
	}

	return 1 + st.Mode.Width()
}

// Program is an assembled program: an ordered sequence of statements
// with an origin address.
type Program struct {
	Origin     uint16
	Statements []Statement
}

// Debug finds the statement covering an address, for source mapping.
func (prog *Program) Debug(pc uint16) (st *Statement) {
	for n := range prog.Statements {
		candidate := &prog.Statements[n]
		if int(pc) >= candidate.Addr && int(pc) < candidate.Addr+candidate.Size() {
			st = candidate
			break
		}
	}

	return
}

// Size returns the end address of the program image.
func (prog *Program) Size() (size int) {
	for n := range prog.Statements {
		st := &prog.Statements[n]
		if end := st.Addr + st.Size(); end > size {
			size = end
		}
	}

	return
}

// Image lowers the program to the byte image consumed by FromImage.
// Addresses below the origin are zero filled.
func (prog *Program) Image() (image []byte, err error) {
	image = make([]byte, prog.Size())

	for n := range prog.Statements {
		st := &prog.Statements[n]

		if st.Data != nil {
			copy(image[st.Addr:], st.Data)
			continue
		}

		var opcode uint8
		opcode, err = Encode(st.Operation, st.Mode)
		if err != nil {
			return
		}

		image[st.Addr] = opcode
		switch st.Mode.Width() {
		case 1:
			if st.Operand > 0xff {
				err = ErrOperandRange
				return
			}
			image[st.Addr+1] = uint8(st.Operand)
		case 2:
			image[st.Addr+1] = uint8(st.Operand & 0xff)
			image[st.Addr+2] = uint8(st.Operand >> 8)
		}
	}

	return
}
