package expression_parser

import (
	"strconv"
	"strings"
)

// ParseSpan represents a span within an expression
type ParseSpan struct {
	Start int
	End   int
}

// NewParseSpan creates a new ParseSpan
func NewParseSpan(start, end int) *ParseSpan {
	return &ParseSpan{Start: start, End: end}
}

// ToAbsolute converts a ParseSpan to an AbsoluteSourceSpan
func (ps *ParseSpan) ToAbsolute(absoluteOffset int) *AbsoluteSourceSpan {
	return NewAbsoluteSourceSpan(absoluteOffset+ps.Start, absoluteOffset+ps.End)
}

// AbsoluteSourceSpan records the absolute position of a text span in a source file
type AbsoluteSourceSpan struct {
	Start int
	End   int
}

// NewAbsoluteSourceSpan creates a new AbsoluteSourceSpan
func NewAbsoluteSourceSpan(start, end int) *AbsoluteSourceSpan {
	return &AbsoluteSourceSpan{Start: start, End: end}
}

// AST is the base interface for all AST nodes
type AST interface {
	Span() *ParseSpan
	SourceSpan() *AbsoluteSourceSpan
	Visit(visitor AstVisitor, context interface{}) interface{}
	String() string
}

type astBase struct {
	span       *ParseSpan
	sourceSpan *AbsoluteSourceSpan
}

// Span returns the span relative to the start of the expression text
func (a *astBase) Span() *ParseSpan {
	return a.span
}

// SourceSpan returns the absolute source span
func (a *astBase) SourceSpan() *AbsoluteSourceSpan {
	return a.sourceSpan
}

// SimpleIdentifier is a bare name such as `bar`
type SimpleIdentifier struct {
	astBase
	Name string
}

// NewSimpleIdentifier creates a new SimpleIdentifier
func NewSimpleIdentifier(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, name string) *SimpleIdentifier {
	return &SimpleIdentifier{astBase: astBase{span, sourceSpan}, Name: name}
}

// Visit implements the AST interface
func (s *SimpleIdentifier) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitSimpleIdentifier(s, context)
}

func (s *SimpleIdentifier) String() string {
	return s.Name
}

// PropertyRead is `receiver.name`
type PropertyRead struct {
	astBase
	Receiver AST
	Name     string
}

// NewPropertyRead creates a new PropertyRead
func NewPropertyRead(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, receiver AST, name string) *PropertyRead {
	return &PropertyRead{astBase: astBase{span, sourceSpan}, Receiver: receiver, Name: name}
}

// Visit implements the AST interface
func (p *PropertyRead) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitPropertyRead(p, context)
}

func (p *PropertyRead) String() string {
	return p.Receiver.String() + "." + p.Name
}

// KeyedRead is `receiver[key]`
type KeyedRead struct {
	astBase
	Receiver AST
	Key      AST
}

// NewKeyedRead creates a new KeyedRead
func NewKeyedRead(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, receiver, key AST) *KeyedRead {
	return &KeyedRead{astBase: astBase{span, sourceSpan}, Receiver: receiver, Key: key}
}

// Visit implements the AST interface
func (k *KeyedRead) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitKeyedRead(k, context)
}

func (k *KeyedRead) String() string {
	return k.Receiver.String() + "[" + k.Key.String() + "]"
}

// Call is `receiver(args...)`
type Call struct {
	astBase
	Receiver AST
	Args     []AST
}

// NewCall creates a new Call
func NewCall(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, receiver AST, args []AST) *Call {
	return &Call{astBase: astBase{span, sourceSpan}, Receiver: receiver, Args: args}
}

// Visit implements the AST interface
func (c *Call) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitCall(c, context)
}

func (c *Call) String() string {
	return c.Receiver.String() + "(" + joinAST(c.Args, ", ") + ")"
}

// Pipe is a filter application `exp | name:arg1:arg2`
type Pipe struct {
	astBase
	Exp  AST
	Name string
	Args []AST
}

// NewPipe creates a new Pipe
func NewPipe(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, exp AST, name string, args []AST) *Pipe {
	return &Pipe{astBase: astBase{span, sourceSpan}, Exp: exp, Name: name, Args: args}
}

// Visit implements the AST interface
func (p *Pipe) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitPipe(p, context)
}

func (p *Pipe) String() string {
	var sb strings.Builder
	sb.WriteString("(" + p.Exp.String() + " | " + p.Name)
	for _, arg := range p.Args {
		sb.WriteString(":" + arg.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// LiteralPrimitive is a string, number, boolean or null literal. Value holds
// a string, float64, bool or nil.
type LiteralPrimitive struct {
	astBase
	Value interface{}
}

// NewLiteralPrimitive creates a new LiteralPrimitive
func NewLiteralPrimitive(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, value interface{}) *LiteralPrimitive {
	return &LiteralPrimitive{astBase: astBase{span, sourceSpan}, Value: value}
}

// Visit implements the AST interface
func (l *LiteralPrimitive) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitLiteralPrimitive(l, context)
}

func (l *LiteralPrimitive) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return "?"
	}
}

// Binary is `left op right`
type Binary struct {
	astBase
	Operation string
	Left      AST
	Right     AST
}

// NewBinary creates a new Binary
func NewBinary(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, operation string, left, right AST) *Binary {
	return &Binary{astBase: astBase{span, sourceSpan}, Operation: operation, Left: left, Right: right}
}

// Visit implements the AST interface
func (b *Binary) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitBinary(b, context)
}

func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Operation + " " + b.Right.String() + ")"
}

// Unary is a prefix `!`, `-` or `+` applied to an operand
type Unary struct {
	astBase
	Operator string
	Expr     AST
}

// NewUnary creates a new Unary
func NewUnary(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, operator string, expr AST) *Unary {
	return &Unary{astBase: astBase{span, sourceSpan}, Operator: operator, Expr: expr}
}

// Visit implements the AST interface
func (u *Unary) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitUnary(u, context)
}

func (u *Unary) String() string {
	return u.Operator + u.Expr.String()
}

// Conditional is `condition ? trueExp : falseExp`
type Conditional struct {
	astBase
	Condition AST
	TrueExp   AST
	FalseExp  AST
}

// NewConditional creates a new Conditional
func NewConditional(span *ParseSpan, sourceSpan *AbsoluteSourceSpan, condition, trueExp, falseExp AST) *Conditional {
	return &Conditional{astBase: astBase{span, sourceSpan}, Condition: condition, TrueExp: trueExp, FalseExp: falseExp}
}

// Visit implements the AST interface
func (c *Conditional) Visit(visitor AstVisitor, context interface{}) interface{} {
	return visitor.VisitConditional(c, context)
}

func (c *Conditional) String() string {
	return "(" + c.Condition.String() + " ? " + c.TrueExp.String() + " : " + c.FalseExp.String() + ")"
}

// AstVisitor visits expression nodes
type AstVisitor interface {
	VisitSimpleIdentifier(ast *SimpleIdentifier, context interface{}) interface{}
	VisitPropertyRead(ast *PropertyRead, context interface{}) interface{}
	VisitKeyedRead(ast *KeyedRead, context interface{}) interface{}
	VisitCall(ast *Call, context interface{}) interface{}
	VisitPipe(ast *Pipe, context interface{}) interface{}
	VisitLiteralPrimitive(ast *LiteralPrimitive, context interface{}) interface{}
	VisitBinary(ast *Binary, context interface{}) interface{}
	VisitUnary(ast *Unary, context interface{}) interface{}
	VisitConditional(ast *Conditional, context interface{}) interface{}
}

// RecursiveAstVisitor walks every sub-expression. Embed it and override the
// methods of interest; set Self to the outer visitor so overrides are seen
// during recursion.
type RecursiveAstVisitor struct {
	Self AstVisitor
}

func (r *RecursiveAstVisitor) self() AstVisitor {
	if r.Self != nil {
		return r.Self
	}
	return r
}

func (r *RecursiveAstVisitor) visit(ast AST, context interface{}) {
	if ast != nil {
		ast.Visit(r.self(), context)
	}
}

func (r *RecursiveAstVisitor) VisitSimpleIdentifier(ast *SimpleIdentifier, context interface{}) interface{} {
	return nil
}

func (r *RecursiveAstVisitor) VisitPropertyRead(ast *PropertyRead, context interface{}) interface{} {
	r.visit(ast.Receiver, context)
	return nil
}

func (r *RecursiveAstVisitor) VisitKeyedRead(ast *KeyedRead, context interface{}) interface{} {
	r.visit(ast.Receiver, context)
	r.visit(ast.Key, context)
	return nil
}

func (r *RecursiveAstVisitor) VisitCall(ast *Call, context interface{}) interface{} {
	r.visit(ast.Receiver, context)
	for _, arg := range ast.Args {
		r.visit(arg, context)
	}
	return nil
}

func (r *RecursiveAstVisitor) VisitPipe(ast *Pipe, context interface{}) interface{} {
	r.visit(ast.Exp, context)
	for _, arg := range ast.Args {
		r.visit(arg, context)
	}
	return nil
}

func (r *RecursiveAstVisitor) VisitLiteralPrimitive(ast *LiteralPrimitive, context interface{}) interface{} {
	return nil
}

func (r *RecursiveAstVisitor) VisitBinary(ast *Binary, context interface{}) interface{} {
	r.visit(ast.Left, context)
	r.visit(ast.Right, context)
	return nil
}

func (r *RecursiveAstVisitor) VisitUnary(ast *Unary, context interface{}) interface{} {
	r.visit(ast.Expr, context)
	return nil
}

func (r *RecursiveAstVisitor) VisitConditional(ast *Conditional, context interface{}) interface{} {
	r.visit(ast.Condition, context)
	r.visit(ast.TrueExp, context)
	r.visit(ast.FalseExp, context)
	return nil
}

func joinAST(asts []AST, sep string) string {
	parts := make([]string, len(asts))
	for i, a := range asts {
		parts[i] = a.String()
	}
	return strings.Join(parts, sep)
}
