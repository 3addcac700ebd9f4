package expression_parser

import (
	"fmt"

	"markup-go/packages/markup/src/core"
)

// ParserError describes why an expression could not be parsed. Offset is
// absolute, i.e. already shifted by the base offset given to ParseExpression.
type ParserError struct {
	Message string
	Input   string
	Offset  int
}

// Error implements the error interface
func (e *ParserError) Error() string {
	return fmt.Sprintf("Parser Error: %s [%s]", e.Message, e.Input)
}

// Parser parses the text found between `{{` and `}}`.
type Parser struct {
	lexer *Lexer
}

// NewParser creates a new Parser
func NewParser(lexer *Lexer) *Parser {
	if lexer == nil {
		lexer = NewLexer()
	}
	return &Parser{lexer: lexer}
}

// ParseExpression parses input as a single expression. baseOffset is the
// absolute source offset of input[0]; every span in the result is shifted
// by it. On failure the returned error is a *ParserError.
func (p *Parser) ParseExpression(input string, baseOffset int) (ast AST, err error) {
	tokens := p.lexer.Tokenize(input)
	parser := &parseAST{
		input:          input,
		absoluteOffset: baseOffset,
		tokens:         tokens,
	}
	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(*ParserError)
			if !ok {
				panic(r)
			}
			ast, err = nil, perr
		}
	}()
	return parser.parse(), nil
}

var eofToken = NewToken(-1, -1, TokenTypeCharacter, 0, "")

type parseAST struct {
	input          string
	absoluteOffset int
	tokens         []*Token
	index          int
}

func (p *parseAST) parse() AST {
	if len(p.tokens) == 0 {
		p.error("Blank expressions are not allowed")
	}
	ast := p.parsePipe()
	if !p.atEOF() {
		p.error(fmt.Sprintf("Unexpected %s", p.prettyPrintToken(p.next())))
	}
	return ast
}

func (p *parseAST) peek(offset int) *Token {
	i := p.index + offset
	if i >= 0 && i < len(p.tokens) {
		return p.tokens[i]
	}
	return eofToken
}

func (p *parseAST) next() *Token {
	tok := p.peek(0)
	if tok.IsError() {
		p.errorAt(tok.StrValue, tok.Index)
	}
	return tok
}

func (p *parseAST) atEOF() bool {
	return p.index >= len(p.tokens)
}

func (p *parseAST) advance() {
	p.index++
}

// inputIndex returns the index of the next token to be processed
func (p *parseAST) inputIndex() int {
	if p.atEOF() {
		return p.currentEndIndex()
	}
	return p.next().Index
}

// currentEndIndex returns the end index of the last processed token
func (p *parseAST) currentEndIndex() int {
	if p.index > 0 {
		return p.peek(-1).End
	}
	if len(p.tokens) == 0 {
		return len(p.input)
	}
	return p.next().Index
}

func (p *parseAST) span(start int) *ParseSpan {
	return NewParseSpan(start, p.currentEndIndex())
}

func (p *parseAST) sourceSpan(start int) *AbsoluteSourceSpan {
	return p.span(start).ToAbsolute(p.absoluteOffset)
}

func (p *parseAST) consumeOptionalCharacter(code int) bool {
	if p.next().IsCharacter(code) {
		p.advance()
		return true
	}
	return false
}

func (p *parseAST) expectCharacter(code int) {
	if !p.consumeOptionalCharacter(code) {
		p.error(fmt.Sprintf("Missing expected %c", rune(code)))
	}
}

func (p *parseAST) consumeOptionalOperator(op string) bool {
	if p.next().IsOperator(op) {
		p.advance()
		return true
	}
	return false
}

func (p *parseAST) expectIdentifier() string {
	n := p.next()
	if !n.IsIdentifier() && n.Type != TokenTypeKeyword {
		p.error(fmt.Sprintf("Unexpected %s, expected identifier or keyword", p.prettyPrintToken(n)))
	}
	p.advance()
	return n.String()
}

func (p *parseAST) prettyPrintToken(tok *Token) string {
	if tok == eofToken {
		return "end of input"
	}
	return fmt.Sprintf("token %s", tok.String())
}

func (p *parseAST) parsePipe() AST {
	start := p.inputIndex()
	result := p.parseConditional()
	for p.consumeOptionalOperator("|") {
		name := p.expectIdentifier()
		var args []AST
		for p.consumeOptionalCharacter(core.CharCOLON) {
			args = append(args, p.parseConditional())
		}
		result = NewPipe(p.span(start), p.sourceSpan(start), result, name, args)
	}
	return result
}

func (p *parseAST) parseConditional() AST {
	start := p.inputIndex()
	result := p.parseLogicalOr()
	if p.consumeOptionalOperator("?") {
		yes := p.parsePipe()
		if !p.consumeOptionalCharacter(core.CharCOLON) {
			p.error("Conditional expression requires all 3 expressions")
		}
		no := p.parsePipe()
		return NewConditional(p.span(start), p.sourceSpan(start), result, yes, no)
	}
	return result
}

func (p *parseAST) parseBinaryLevel(operators []string, operand func() AST) AST {
	start := p.inputIndex()
	result := operand()
	for {
		matched := ""
		for _, op := range operators {
			if p.next().IsOperator(op) {
				matched = op
				break
			}
		}
		if matched == "" {
			return result
		}
		p.advance()
		right := operand()
		result = NewBinary(p.span(start), p.sourceSpan(start), matched, result, right)
	}
}

func (p *parseAST) parseLogicalOr() AST {
	return p.parseBinaryLevel([]string{"||"}, p.parseLogicalAnd)
}

func (p *parseAST) parseLogicalAnd() AST {
	return p.parseBinaryLevel([]string{"&&"}, p.parseEquality)
}

func (p *parseAST) parseEquality() AST {
	return p.parseBinaryLevel([]string{"==", "!=", "===", "!=="}, p.parseRelational)
}

func (p *parseAST) parseRelational() AST {
	return p.parseBinaryLevel([]string{"<", ">", "<=", ">="}, p.parseAdditive)
}

func (p *parseAST) parseAdditive() AST {
	return p.parseBinaryLevel([]string{"+", "-"}, p.parseMultiplicative)
}

func (p *parseAST) parseMultiplicative() AST {
	return p.parseBinaryLevel([]string{"*", "/", "%"}, p.parsePrefix)
}

func (p *parseAST) parsePrefix() AST {
	n := p.next()
	if n.Type == TokenTypeOperator && (n.StrValue == "!" || n.StrValue == "-" || n.StrValue == "+") {
		start := p.inputIndex()
		p.advance()
		expr := p.parsePrefix()
		return NewUnary(p.span(start), p.sourceSpan(start), n.StrValue, expr)
	}
	return p.parseCallChain()
}

func (p *parseAST) parseCallChain() AST {
	start := p.inputIndex()
	result := p.parsePrimary()
	for {
		switch {
		case p.consumeOptionalCharacter(core.CharPERIOD):
			name := p.expectIdentifier()
			result = NewPropertyRead(p.span(start), p.sourceSpan(start), result, name)
		case p.consumeOptionalCharacter(core.CharLBRACKET):
			key := p.parsePipe()
			p.expectCharacter(core.CharRBRACKET)
			result = NewKeyedRead(p.span(start), p.sourceSpan(start), result, key)
		case p.consumeOptionalCharacter(core.CharLPAREN):
			args := p.parseCallArguments()
			p.expectCharacter(core.CharRPAREN)
			result = NewCall(p.span(start), p.sourceSpan(start), result, args)
		default:
			return result
		}
	}
}

func (p *parseAST) parseCallArguments() []AST {
	if p.next().IsCharacter(core.CharRPAREN) {
		return nil
	}
	var args []AST
	for {
		args = append(args, p.parsePipe())
		if !p.consumeOptionalCharacter(core.CharCOMMA) {
			return args
		}
	}
}

func (p *parseAST) parsePrimary() AST {
	start := p.inputIndex()
	n := p.next()
	switch {
	case n.IsCharacter(core.CharLPAREN):
		p.advance()
		result := p.parsePipe()
		p.expectCharacter(core.CharRPAREN)
		return result
	case n.IsKeyword("null"):
		p.advance()
		return NewLiteralPrimitive(p.span(start), p.sourceSpan(start), nil)
	case n.IsKeyword("true"), n.IsKeyword("false"):
		p.advance()
		return NewLiteralPrimitive(p.span(start), p.sourceSpan(start), n.StrValue == "true")
	case n.IsKeyword("this"), n.IsIdentifier():
		p.advance()
		return NewSimpleIdentifier(p.span(start), p.sourceSpan(start), n.StrValue)
	case n.IsNumber():
		p.advance()
		return NewLiteralPrimitive(p.span(start), p.sourceSpan(start), n.NumValue)
	case n.IsString():
		p.advance()
		return NewLiteralPrimitive(p.span(start), p.sourceSpan(start), n.StrValue)
	case p.atEOF():
		p.error("Unexpected end of expression")
	default:
		p.error(fmt.Sprintf("Unexpected %s", p.prettyPrintToken(n)))
	}
	return nil
}

func (p *parseAST) error(message string) {
	index := len(p.input)
	if !p.atEOF() {
		index = p.tokens[p.index].Index
	}
	p.errorAt(message, index)
}

func (p *parseAST) errorAt(message string, index int) {
	location := "at the end of the expression"
	if index < len(p.input) {
		location = fmt.Sprintf("at column %d in", index+1)
	}
	panic(&ParserError{
		Message: message + " " + location,
		Input:   p.input,
		Offset:  p.absoluteOffset + index,
	})
}
