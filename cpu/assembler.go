package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

func init() {
	for attr, val := range Defines() {
		sysEquate[attr] = val
	}
}

// Assembler is a single pass assembler for the accumulator machine.
type Assembler struct {
	Verbose   bool        // If set, verbosely logs the assembler actions.
	Statement []Statement // List of generated statements.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	origin  int // Address of the first .org directive.
	counter int // Location counter.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// operationByName maps mnemonic text to operations.
var operationByName = map[string]Operation{}

func init() {
	for op := OP_ADC; op <= OP_TYA; op++ {
		operationByName[op.String()] = op
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	v64, err := strconv.ParseInt(word, 0, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if v64 < -0x8000 || v64 > 0xffff {
		err = ErrOperandRange
		return
	}

	value = uint16(v64)

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value16 uint16
		value16, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(addr)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	if st_int64 < -0x8000 || st_int64 > 0xffff {
		err = ErrOperandRange
		return
	}
	value = uint16(st_int64)
	return
}

// resolve returns the value of an operand token. Identifiers that are
// neither equates nor already-seen labels come back as a link label
// for the final linking pass.
func (asm *Assembler) resolve(tok Token) (value uint16, link string, err error) {
	switch tok.Name {
	case TOKEN_NUMBER:
		value, err = asm.valueOf(tok.Text)
	case TOKEN_EXPR:
		value, err = asm.parenEval(tok.Text)
	case TOKEN_IDENT:
		equate, ok := asm.Equate[tok.Text]
		if ok {
			value, err = asm.valueOf(equate)
			return
		}
		addr, ok := asm.Label[tok.Text]
		if ok {
			value = uint16(addr)
			return
		}
		link = tok.Text
	default:
		err = ErrOperandSyntax
	}

	return
}

// isValue reports whether a token can stand for an operand value.
func isValue(tok Token) bool {
	switch tok.Name {
	case TOKEN_NUMBER, TOKEN_EXPR, TOKEN_IDENT:
		return true
	}
	return false
}

// isRegister reports whether a token names the given index register.
func isRegister(tok Token, name string) bool {
	return tok.Name == TOKEN_IDENT && strings.EqualFold(tok.Text, name)
}

// zeroOrAbsolute selects the zero page form when the operand fits and
// the operation encodes it, and the absolute form otherwise.
func zeroOrAbsolute(operation Operation, zp, abs OperandMode, value uint16, link string) (mode OperandMode) {
	if len(link) == 0 && value <= 0xff {
		_, err := Encode(operation, zp)
		if err == nil {
			mode = zp
			return
		}
	}

	mode = abs

	return
}

// parseData assembles the value list of a .byte or .word directive.
func (asm *Assembler) parseData(tokens []Token, width int) (data []byte, err error) {
	for len(tokens) > 0 {
		if !isValue(tokens[0]) {
			err = ErrDataSyntax
			return
		}

		var value uint16
		var link string
		value, link, err = asm.resolve(tokens[0])
		if err != nil {
			return
		}
		if len(link) > 0 {
			// Forward references are not linkable in data.
			err = ErrLabelMissing(link)
			return
		}

		if width == 1 {
			if value > 0xff {
				err = ErrOperandRange
				return
			}
			data = append(data, uint8(value))
		} else {
			data = append(data, uint8(value&0xff), uint8(value>>8))
		}

		tokens = tokens[1:]
		if len(tokens) == 0 {
			break
		}
		if tokens[0].Name != TOKEN_COMMA {
			err = ErrDataSyntax
			return
		}
		tokens = tokens[1:]
		if len(tokens) == 0 {
			err = ErrDataSyntax
			return
		}
	}

	if len(data) == 0 {
		err = ErrDataSyntax
	}

	return
}

// parseOperand determines the operand mode, value, and link label from
// the tokens following a mnemonic.
func (asm *Assembler) parseOperand(operation Operation, tokens []Token) (mode OperandMode, value uint16, link string, err error) {
	switch {
	case len(tokens) == 0:
		mode = MODE_IMPLIED
		_, err = Encode(operation, mode)
		if err != nil {
			mode = MODE_ACCUMULATOR
			_, err = Encode(operation, mode)
		}
		return

	case len(tokens) == 1 && isRegister(tokens[0], "a"):
		mode = MODE_ACCUMULATOR

	case tokens[0].Name == TOKEN_HASH:
		if len(tokens) != 2 || !isValue(tokens[1]) {
			err = ErrOperandSyntax
			return
		}
		mode = MODE_IMMEDIATE
		value, link, err = asm.resolve(tokens[1])

	case tokens[0].Name == TOKEN_LPAREN:
		if len(tokens) < 3 || !isValue(tokens[1]) {
			err = ErrOperandSyntax
			return
		}
		value, link, err = asm.resolve(tokens[1])
		if err != nil {
			return
		}

		rest := tokens[2:]
		switch {
		case len(rest) == 1 && rest[0].Name == TOKEN_RPAREN:
			mode = MODE_INDIRECT
		case len(rest) == 3 && rest[0].Name == TOKEN_COMMA &&
			isRegister(rest[1], "x") && rest[2].Name == TOKEN_RPAREN:
			mode = MODE_INDIRECT_X
		case len(rest) == 3 && rest[0].Name == TOKEN_RPAREN &&
			rest[1].Name == TOKEN_COMMA && isRegister(rest[2], "y"):
			mode = MODE_INDIRECT_Y
		default:
			err = ErrOperandSyntax
			return
		}

	case isValue(tokens[0]):
		value, link, err = asm.resolve(tokens[0])
		if err != nil {
			return
		}

		if operation.isBranch() {
			// Branch targets become displacements at link time.
			if len(tokens) != 1 {
				err = ErrOperandSyntax
			}
			mode = MODE_IMMEDIATE
			return
		}

		switch {
		case len(tokens) == 1:
			mode = zeroOrAbsolute(operation, MODE_ZERO_PAGE, MODE_ABSOLUTE, value, link)
		case len(tokens) == 3 && tokens[1].Name == TOKEN_COMMA && isRegister(tokens[2], "x"):
			mode = zeroOrAbsolute(operation, MODE_ZERO_PAGE_X, MODE_ABSOLUTE_X, value, link)
		case len(tokens) == 3 && tokens[1].Name == TOKEN_COMMA && isRegister(tokens[2], "y"):
			mode = zeroOrAbsolute(operation, MODE_ZERO_PAGE_Y, MODE_ABSOLUTE_Y, value, link)
		default:
			err = ErrOperandSyntax
			return
		}

	default:
		err = ErrOperandSyntax
		return
	}
	if err != nil {
		return
	}

	_, err = Encode(operation, mode)
	if err != nil {
		return
	}

	if mode.Width() == 1 && len(link) == 0 && value > 0xff && !operation.isBranch() {
		err = ErrOperandRange
	}

	return
}

// parseTokens evaluates the tokens of a line of assembly text.
func (asm *Assembler) parseTokens(tokens []Token, lineno int) (err error) {
	// no-op
	if len(tokens) == 0 {
		return
	}

	// Label definitions prefix the statement.
	for len(tokens) >= 2 && tokens[0].Name == TOKEN_IDENT && tokens[1].Name == TOKEN_COLON {
		label := tokens[0].Text
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}

		if asm.Label == nil {
			asm.Label = make(map[string]int, 16)
		}
		asm.Label[label] = asm.counter
		tokens = tokens[2:]
	}

	if len(tokens) == 0 {
		return
	}

	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		words = append(words, tok.Text)
	}

	if tokens[0].Name == TOKEN_DIRECTIVE {
		return asm.parseDirective(tokens, lineno, words)
	}

	if tokens[0].Name != TOKEN_IDENT {
		err = ErrOpcodeMissing
		return
	}

	operation, ok := operationByName[strings.ToUpper(tokens[0].Text)]
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	mode, value, link, err := asm.parseOperand(operation, tokens[1:])
	if err != nil {
		return
	}

	st := Statement{
		LineNo:    lineno,
		Addr:      asm.counter,
		Words:     words,
		Operation: operation,
		Mode:      mode,
		Operand:   value,
		LinkLabel: link,
	}
	asm.Statement = append(asm.Statement, st)
	asm.counter += st.Size()

	return
}

// parseDirective evaluates a directive statement.
func (asm *Assembler) parseDirective(tokens []Token, lineno int, words []string) (err error) {
	switch tokens[0].Text {
	case ".equ":
		if len(tokens) != 3 || tokens[1].Name != TOKEN_IDENT || !isValue(tokens[2]) {
			err = ErrEquateSyntax
			return
		}
		name := tokens[1].Text
		_, ok := asm.Equate[name]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		if tokens[2].Name == TOKEN_EXPR {
			var value uint16
			value, err = asm.parenEval(tokens[2].Text)
			if err != nil {
				return
			}
			asm.Equate[name] = fmt.Sprintf("%#v", value)
		} else {
			asm.Equate[name] = tokens[2].Text
		}

	case ".org":
		if len(tokens) != 2 || !isValue(tokens[1]) {
			err = ErrOriginSyntax
			return
		}
		var value uint16
		var link string
		value, link, err = asm.resolve(tokens[1])
		if err != nil {
			return
		}
		if len(link) > 0 {
			err = ErrOriginSyntax
			return
		}
		if len(asm.Statement) == 0 {
			asm.origin = int(value)
		}
		asm.counter = int(value)

	case ".byte", ".word":
		width := 1
		if tokens[0].Text == ".word" {
			width = 2
		}
		var data []byte
		data, err = asm.parseData(tokens[1:], width)
		if err != nil {
			return
		}
		st := Statement{
			LineNo: lineno,
			Addr:   asm.counter,
			Words:  words,
			Data:   data,
		}
		asm.Statement = append(asm.Statement, st)
		asm.counter += st.Size()

	default:
		err = ErrOpcodeInvalid
	}

	return
}

// Parse parses an input stream into a Program containing statements.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	clear(asm.Label)
	asm.Statement = asm.Statement[:0]
	asm.origin = 0
	asm.counter = 0
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		line = scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, line)
		}

		// Set line number.
		asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

		var tokens []Token
		tokens, err = Tokenize(line)
		if err != nil {
			return
		}

		err = asm.parseTokens(tokens, lineno)
		if err != nil {
			return
		}
	}

	// Final linking of labels and branch displacements.
	for n := range asm.Statement {
		st := &asm.Statement[n]

		if st.Data != nil {
			continue
		}

		target := int(st.Operand)
		if len(st.LinkLabel) > 0 {
			addr, ok := asm.Label[st.LinkLabel]
			if !ok {
				lineno, line = st.LineNo, strings.Join(st.Words, " ")
				err = ErrLabelMissing(st.LinkLabel)
				return
			}
			target = addr
		} else if !st.Operation.isBranch() {
			continue
		}

		if st.Operation.isBranch() {
			offset := target - (st.Addr + 2)
			if offset < -128 || offset > 127 {
				lineno, line = st.LineNo, strings.Join(st.Words, " ")
				err = ErrBranchRange
				return
			}
			st.Operand = uint16(uint8(int8(offset)))
		} else {
			st.Operand = uint16(target)
		}
	}

	prog = &Program{
		Origin:     uint16(asm.origin),
		Statements: slices.Clone(asm.Statement),
	}

	return
}
