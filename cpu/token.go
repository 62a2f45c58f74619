package cpu

import (
	"strings"
	"unicode"
)

// Token is a single lexical element of an assembly source line.
type Token struct {
	Name string // Lexical category.
	Text string // Raw lexeme.
}

// Token categories produced by Tokenize.
const (
	TOKEN_IDENT     = "Ident"
	TOKEN_NUMBER    = "Number"
	TOKEN_DIRECTIVE = "Directive"
	TOKEN_EXPR      = "Expr"
	TOKEN_HASH      = "Hash"
	TOKEN_COLON     = "Colon"
	TOKEN_COMMA     = "Comma"
	TOKEN_LPAREN    = "LParen"
	TOKEN_RPAREN    = "RParen"
)

func isIdentRune(r rune, first bool) bool {
	if unicode.IsLetter(r) || r == '_' {
		return true
	}

	return !first && unicode.IsDigit(r)
}

// Tokenize splits one line of assembly source into tokens. Comments
// (';' to end of line) are dropped. '$(...)' spans become a single Expr
// token holding the inner text for compile-time evaluation.
func Tokenize(line string) (tokens []Token, err error) {
	line, _, _ = strings.Cut(line, ";")
	runes := []rune(line)

	for n := 0; n < len(runes); {
		r := runes[n]

		switch {
		case unicode.IsSpace(r):
			n += 1

		case r == '$' && n+1 < len(runes) && runes[n+1] == '(':
			depth := 0
			start := n + 2
			end := -1
			for m := n + 1; m < len(runes); m++ {
				if runes[m] == '(' {
					depth += 1
				}
				if runes[m] == ')' {
					depth -= 1
					if depth == 0 {
						end = m
						break
					}
				}
			}
			if end < 0 {
				err = ErrParseExpression(string(runes[start:]))
				return
			}
			tokens = append(tokens, Token{Name: TOKEN_EXPR, Text: string(runes[start:end])})
			n = end + 1

		case r == '.' || isIdentRune(r, true) || unicode.IsDigit(r):
			start := n
			name := TOKEN_IDENT
			if r == '.' {
				name = TOKEN_DIRECTIVE
				n += 1
			} else if unicode.IsDigit(r) {
				name = TOKEN_NUMBER
			}
			for n < len(runes) && isIdentRune(runes[n], false) {
				n += 1
			}
			tokens = append(tokens, Token{Name: name, Text: string(runes[start:n])})

		case r == '#':
			tokens = append(tokens, Token{Name: TOKEN_HASH, Text: "#"})
			n += 1
		case r == ':':
			tokens = append(tokens, Token{Name: TOKEN_COLON, Text: ":"})
			n += 1
		case r == ',':
			tokens = append(tokens, Token{Name: TOKEN_COMMA, Text: ","})
			n += 1
		case r == '(':
			tokens = append(tokens, Token{Name: TOKEN_LPAREN, Text: "("})
			n += 1
		case r == ')':
			tokens = append(tokens, Token{Name: TOKEN_RPAREN, Text: ")"})
			n += 1

		default:
			err = ErrCharacter(r)
			return
		}
	}

	return
}
