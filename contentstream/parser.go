package contentstream

import (
	"bytes"
	"fmt"
	"strconv"
)

// Object is a content stream operand. The concrete types are Number, Name,
// String, Bool, Null, Array, and Dict.
type Object interface{}

// Number is an integer or real operand. Content stream geometry never
// needs the int/real distinction, so both are folded into float64.
type Number float64

// Name is a /Name operand with the leading slash stripped
type Name string

// String is a literal or hex string operand
type String []byte

// Bool is a boolean operand
type Bool bool

// Null is the null operand
type Null struct{}

// Array is an array operand
type Array []Object

// Dict is an inline dictionary operand
type Dict map[string]Object

// Operation is one content stream operation: an operator and the operands
// that preceded it.
type Operation struct {
	Operator string
	Operands []Object
}

// Float returns the operand at index i as a float64. Missing or non-numeric
// operands yield 0, which matches how PDF viewers treat malformed operands.
func (op Operation) Float(i int) float64 {
	if i < 0 || i >= len(op.Operands) {
		return 0
	}
	if n, ok := op.Operands[i].(Number); ok {
		return float64(n)
	}
	return 0
}

// NameArg returns the operand at index i as a name, or "" when it is not one
func (op Operation) NameArg(i int) string {
	if i < 0 || i >= len(op.Operands) {
		return ""
	}
	if n, ok := op.Operands[i].(Name); ok {
		return string(n)
	}
	return ""
}

// Parser tokenizes a decoded content stream into operations
type Parser struct {
	data     []byte
	pos      int
	operands []Object
}

// NewParser creates a parser over decoded stream data
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Parse returns the stream's operations in order. Unknown operators are
// returned like any other so the caller decides what to ignore. Inline
// images (BI ... ID <binary> EI) are skipped entirely because their payload
// is raw binary that would derail tokenizing.
func (p *Parser) Parse() ([]Operation, error) {
	var ops []Operation

	for {
		p.skipWhitespaceAndComments()
		if p.pos >= len(p.data) {
			break
		}

		c := p.data[p.pos]
		if isOperatorStart(c) {
			name, err := p.readOperator()
			if err != nil {
				return nil, err
			}

			if name == "BI" {
				if err := p.skipInlineImage(); err != nil {
					return nil, err
				}
				p.operands = p.operands[:0]
				continue
			}

			op := Operation{Operator: name}
			if len(p.operands) > 0 {
				op.Operands = make([]Object, len(p.operands))
				copy(op.Operands, p.operands)
				p.operands = p.operands[:0]
			}
			ops = append(ops, op)
			continue
		}

		obj, err := p.readObject()
		if err != nil {
			return nil, err
		}
		p.operands = append(p.operands, obj)
	}

	return ops, nil
}

// readOperator consumes an operator token. true/false/null look like
// operators to the first-byte check, so they are intercepted here and
// pushed as operands instead.
func (p *Parser) readOperator() (string, error) {
	start := p.pos
	for p.pos < len(p.data) && isOperatorByte(p.data[p.pos]) {
		p.pos++
	}
	tok := string(p.data[start:p.pos])
	if tok == "" {
		return "", fmt.Errorf("empty operator at offset %d", start)
	}

	switch tok {
	case "true":
		p.operands = append(p.operands, Bool(true))
		return p.nextOperatorAfterKeyword()
	case "false":
		p.operands = append(p.operands, Bool(false))
		return p.nextOperatorAfterKeyword()
	case "null":
		p.operands = append(p.operands, Null{})
		return p.nextOperatorAfterKeyword()
	}
	return tok, nil
}

// nextOperatorAfterKeyword resumes scanning after a keyword operand was
// pushed where an operator was expected.
func (p *Parser) nextOperatorAfterKeyword() (string, error) {
	p.skipWhitespaceAndComments()
	if p.pos >= len(p.data) {
		return "", fmt.Errorf("stream ends after keyword operand")
	}
	if !isOperatorStart(p.data[p.pos]) {
		obj, err := p.readObject()
		if err != nil {
			return "", err
		}
		p.operands = append(p.operands, obj)
		return p.nextOperatorAfterKeyword()
	}
	return p.readOperator()
}

func (p *Parser) readObject() (Object, error) {
	p.skipWhitespaceAndComments()
	if p.pos >= len(p.data) {
		return nil, fmt.Errorf("unexpected end of stream")
	}

	switch c := p.data[p.pos]; {
	case c == '/':
		return p.readName(), nil
	case c == '(':
		return p.readLiteralString()
	case c == '[':
		return p.readArray()
	case c == '<':
		if p.pos+1 < len(p.data) && p.data[p.pos+1] == '<' {
			return p.readDict()
		}
		return p.readHexString()
	case c == '+' || c == '-' || c == '.' || (c >= '0' && c <= '9'):
		return p.readNumber()
	default:
		return nil, fmt.Errorf("unexpected byte %q at offset %d", c, p.pos)
	}
}

func (p *Parser) readNumber() (Object, error) {
	start := p.pos
	if c := p.data[p.pos]; c == '+' || c == '-' {
		p.pos++
	}
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if (c >= '0' && c <= '9') || c == '.' {
			p.pos++
			continue
		}
		break
	}

	tok := string(p.data[start:p.pos])
	val, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return nil, fmt.Errorf("bad number %q at offset %d", tok, start)
	}
	return Number(val), nil
}

func (p *Parser) readName() Name {
	p.pos++ // '/'
	var buf bytes.Buffer
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isWhitespace(c) || isDelimiter(c) {
			break
		}
		if c == '#' && p.pos+2 < len(p.data) &&
			isHexDigit(p.data[p.pos+1]) && isHexDigit(p.data[p.pos+2]) {
			buf.WriteByte(hexValue(p.data[p.pos+1])<<4 | hexValue(p.data[p.pos+2]))
			p.pos += 3
			continue
		}
		buf.WriteByte(c)
		p.pos++
	}
	return Name(buf.String())
}

func (p *Parser) readLiteralString() (Object, error) {
	p.pos++ // '('
	var buf bytes.Buffer
	depth := 1

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++

		switch c {
		case '\\':
			if p.pos >= len(p.data) {
				return nil, fmt.Errorf("string escape at end of stream")
			}
			esc := p.data[p.pos]
			p.pos++
			switch esc {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case 'b':
				buf.WriteByte('\b')
			case 'f':
				buf.WriteByte('\f')
			case '(', ')', '\\':
				buf.WriteByte(esc)
			case '\r':
				if p.pos < len(p.data) && p.data[p.pos] == '\n' {
					p.pos++
				}
			case '\n':
				// line continuation
			default:
				if esc >= '0' && esc <= '7' {
					v := int(esc - '0')
					for i := 0; i < 2 && p.pos < len(p.data); i++ {
						d := p.data[p.pos]
						if d < '0' || d > '7' {
							break
						}
						v = v*8 + int(d-'0')
						p.pos++
					}
					buf.WriteByte(byte(v))
				} else {
					buf.WriteByte(esc)
				}
			}
		case '(':
			depth++
			buf.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return String(buf.Bytes()), nil
			}
			buf.WriteByte(c)
		default:
			buf.WriteByte(c)
		}
	}
	return nil, fmt.Errorf("unterminated string")
}

func (p *Parser) readHexString() (Object, error) {
	p.pos++ // '<'
	var buf bytes.Buffer
	var pending byte
	havePending := false

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++

		if c == '>' {
			if havePending {
				buf.WriteByte(pending << 4) // odd count: implicit trailing 0
			}
			return String(buf.Bytes()), nil
		}
		if isWhitespace(c) {
			continue
		}
		if !isHexDigit(c) {
			return nil, fmt.Errorf("bad hex digit %q at offset %d", c, p.pos-1)
		}
		if havePending {
			buf.WriteByte(pending<<4 | hexValue(c))
			havePending = false
		} else {
			pending = hexValue(c)
			havePending = true
		}
	}
	return nil, fmt.Errorf("unterminated hex string")
}

func (p *Parser) readArray() (Object, error) {
	p.pos++ // '['
	var arr Array
	for {
		p.skipWhitespaceAndComments()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unterminated array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.readObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (p *Parser) readDict() (Object, error) {
	p.pos += 2 // '<<'
	dict := make(Dict)
	for {
		p.skipWhitespaceAndComments()
		if p.pos+1 < len(p.data) && p.data[p.pos] == '>' && p.data[p.pos+1] == '>' {
			p.pos += 2
			return dict, nil
		}
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unterminated dictionary")
		}
		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("dictionary key at offset %d is not a name", p.pos)
		}
		key := p.readName()
		val, err := p.readObject()
		if err != nil {
			return nil, err
		}
		dict[string(key)] = val
	}
}

// skipInlineImage consumes everything through the EI that closes a BI
// block. The image payload after ID is raw binary, so EI is found by
// scanning for the delimiter with whitespace on both sides.
func (p *Parser) skipInlineImage() error {
	// skip the parameter dictionary up to ID
	for p.pos < len(p.data) {
		p.skipWhitespaceAndComments()
		if p.pos+1 < len(p.data) && p.data[p.pos] == 'I' && p.data[p.pos+1] == 'D' {
			p.pos += 2
			break
		}
		if _, err := p.readObject(); err != nil {
			// parameter dicts can hold abbreviated names that read fine;
			// anything else means the stream is damaged
			return fmt.Errorf("inline image parameters: %w", err)
		}
	}
	if p.pos < len(p.data) && isWhitespace(p.data[p.pos]) {
		p.pos++
	}

	for p.pos+1 < len(p.data) {
		if p.data[p.pos] == 'E' && p.data[p.pos+1] == 'I' {
			after := p.pos + 2
			if (p.pos == 0 || isWhitespace(p.data[p.pos-1])) &&
				(after >= len(p.data) || isWhitespace(p.data[after]) || isDelimiter(p.data[after])) {
				p.pos = after
				return nil
			}
		}
		p.pos++
	}
	return fmt.Errorf("unterminated inline image")
}

func (p *Parser) skipWhitespaceAndComments() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if isWhitespace(c) {
			p.pos++
			continue
		}
		if c == '%' {
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		break
	}
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isOperatorStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '\'' || c == '"'
}

func isOperatorByte(c byte) bool {
	return isOperatorStart(c) || c == '*'
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
