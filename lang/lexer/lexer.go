// Package lexer splits quill source text into the ordered token stream the
// annotator consumes. The stream is always terminated by an EOF token.
package lexer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/quill-lang/quill/lang/token"
)

// ErrUnexpectedRune is returned when the input contains a character that
// starts no valid token.
var ErrUnexpectedRune = errors.New("unexpected character")

// ErrUnterminatedString is returned when a string literal is missing its
// closing quote before the end of the line.
var ErrUnterminatedString = errors.New("unterminated string literal")

// keywords maps reserved words to their token kinds.
//
//nolint:gochecknoglobals
var keywords = map[string]token.Kind{
	"muta":  token.Muta,
	"temp":  token.Temp,
	"const": token.Const,

	"true":  token.BoolLit,
	"false": token.BoolLit,

	"int":    token.TypeName,
	"float":  token.TypeName,
	"string": token.TypeName,
	"bool":   token.TypeName,
}

// Lexer holds the scanning state for a single source text.
type Lexer struct {
	input  []byte
	pos    int
	line   int
	col    int
	tokens []token.Token
}

// New creates a Lexer over the given source text.
func New(input string) *Lexer {
	return &Lexer{
		input: []byte(input),
		line:  1,
		col:   1,
	}
}

// LexString tokenizes source text in one call.
func LexString(input string) ([]token.Token, error) {
	return New(input).Lex()
}

// Lex scans the entire input and returns the token stream, terminated by an
// EOF token. The first lexical error aborts the scan.
func (l *Lexer) Lex() ([]token.Token, error) {
	for !l.eof() {
		ch := l.peek()

		switch {
		case ch == '#':
			l.skipLineComment()

		case ch == '\n':
			l.emit(token.Newline, "\n")
			l.advance()

		case ch == ' ' || ch == '\t' || ch == '\r':
			l.advance()

		case ch == '-':
			l.lexMinus()

		case isIdentStart(ch):
			l.lexWord()

		case ch >= '0' && ch <= '9':
			l.lexNumber(false)

		case ch == '"':
			err := l.lexString()
			if err != nil {
				return nil, err
			}

		default:
			ok := l.lexPunct(ch)
			if !ok {
				return nil, fmt.Errorf(
					"%w %q at line %d, column %d",
					ErrUnexpectedRune, string(ch), l.line, l.col,
				)
			}
		}
	}

	l.emit(token.EOF, "")

	return l.tokens, nil
}

// lexMinus disambiguates the group arrow and the subtraction operator from
// a negative numeric literal. "->" is always an arrow. Otherwise a '-'
// directly followed by a digit begins a literal unless the previous token
// could end an operand.
func (l *Lexer) lexMinus() {
	next := l.peekAt(1)

	if next == '>' {
		l.emit(token.Arrow, "->")
		l.advance()
		l.advance()

		return
	}

	if next >= '0' && next <= '9' && !l.prevEndsOperand() {
		l.lexNumber(true)

		return
	}

	l.emit(token.Minus, "-")
	l.advance()
}

// prevEndsOperand reports whether the most recent token can terminate an
// operand, which makes a following '-' a binary operator.
func (l *Lexer) prevEndsOperand() bool {
	if len(l.tokens) == 0 {
		return false
	}

	prev := l.tokens[len(l.tokens)-1]
	if prev.IsLiteral() {
		return true
	}

	switch prev.Kind {
	case token.Identifier, token.CloseParen:
		return true
	default:
		return false
	}
}

func (l *Lexer) lexPunct(ch rune) bool {
	line, col := l.line, l.col

	switch ch {
	case ':':
		l.advance()
		l.tokens = append(l.tokens, token.Make(token.Colon, ":", line, col))

	case '=':
		l.advance()
		l.tokens = append(l.tokens, token.Make(token.Assign, "=", line, col))

	case '?':
		l.advance()
		l.tokens = append(l.tokens, token.Make(token.Inspect, "?", line, col))

	case '{':
		l.advance()
		l.tokens = append(l.tokens, token.Make(token.OpenBrace, "{", line, col))

	case '}':
		l.advance()
		l.tokens = append(l.tokens, token.Make(token.CloseBrace, "}", line, col))

	case '(':
		l.advance()
		l.tokens = append(l.tokens, token.Make(token.OpenParen, "(", line, col))

	case ')':
		l.advance()
		l.tokens = append(l.tokens, token.Make(token.CloseParen, ")", line, col))

	case '+':
		l.advance()
		l.tokens = append(l.tokens, token.Make(token.Plus, "+", line, col))

	case '*':
		l.advance()
		l.tokens = append(l.tokens, token.Make(token.Star, "*", line, col))

	case '/':
		l.advance()
		l.tokens = append(l.tokens, token.Make(token.Slash, "/", line, col))

	case '%':
		l.advance()
		l.tokens = append(l.tokens, token.Make(token.Percent, "%", line, col))

	case '^':
		l.advance()
		l.tokens = append(l.tokens, token.Make(token.Caret, "^", line, col))

	default:
		return false
	}

	return true
}

// lexWord scans an identifier or keyword.
func (l *Lexer) lexWord() {
	line, col := l.line, l.col
	start := l.pos

	for !l.eof() && isIdentContinue(l.peek()) {
		l.advance()
	}

	word := string(l.input[start:l.pos])

	kind, ok := keywords[word]
	if !ok {
		kind = token.Identifier
	}

	l.tokens = append(l.tokens, token.Make(kind, word, line, col))
}

// lexNumber scans an integer or float literal.
// The negative flag indicates a leading '-' is part of the literal.
func (l *Lexer) lexNumber(negative bool) {
	line, col := l.line, l.col
	start := l.pos

	if negative {
		l.advance() // '-'
	}

	isFloat := false

	for !l.eof() {
		ch := l.peek()
		if ch >= '0' && ch <= '9' {
			l.advance()

			continue
		}

		// A '.' followed by a digit continues the literal as a float.
		if ch == '.' && !isFloat {
			next := l.peekAt(1)
			if next >= '0' && next <= '9' {
				isFloat = true

				l.advance()

				continue
			}
		}

		break
	}

	kind := token.IntLit
	if isFloat {
		kind = token.FloatLit
	}

	l.tokens = append(l.tokens, token.Make(
		kind, string(l.input[start:l.pos]), line, col,
	))
}

// lexString scans a double-quoted string literal. The stored literal is the
// unescaped content without the surrounding quotes.
func (l *Lexer) lexString() error {
	line, col := l.line, l.col

	l.advance() // opening quote

	var sb strings.Builder

	for {
		if l.eof() || l.peek() == '\n' {
			return fmt.Errorf(
				"%w at line %d, column %d",
				ErrUnterminatedString, line, col,
			)
		}

		ch := l.peek()

		if ch == '"' {
			l.advance()

			break
		}

		if ch == '\\' {
			l.advance()

			if l.eof() {
				return fmt.Errorf(
					"%w at line %d, column %d",
					ErrUnterminatedString, line, col,
				)
			}

			switch l.peek() {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			default:
				sb.WriteRune(l.peek())
			}

			l.advance()

			continue
		}

		sb.WriteRune(ch)
		l.advance()
	}

	l.tokens = append(l.tokens, token.Make(
		token.StringLit, sb.String(), line, col,
	))

	return nil
}

func (l *Lexer) skipLineComment() {
	for !l.eof() && l.peek() != '\n' {
		l.advance()
	}
}

// emit appends a token at the current position.
func (l *Lexer) emit(kind token.Kind, literal string) {
	l.tokens = append(l.tokens, token.Make(kind, literal, l.line, l.col))
}

func (l *Lexer) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(l.input[l.pos:])

	return r
}

// peekAt returns the rune n bytes ahead of the current position.
// Only safe for ASCII lookahead, which covers every quill delimiter.
func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}

	return rune(l.input[l.pos+n])
}

func (l *Lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRune(l.input[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
