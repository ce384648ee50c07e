package ast

// Position is a source location reported by the parser
type Position struct {
	Line   int
	Column int
}

// Node is the base interface for all AST nodes
type Node interface {
	Position() Position
}

// Expr represents an expression node
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node
type Stmt interface {
	Node
	stmtNode()
}

// Pattern represents a binding target
type Pattern interface {
	Node
	patternNode()
}

// Operator names a unary or binary operator
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
	OpMod Operator = "%"
	OpPow Operator = "^"
	OpEq  Operator = "=="
	OpNe  Operator = "!="
	OpLt  Operator = "<"
	OpLe  Operator = "<="
	OpGt  Operator = ">"
	OpGe  Operator = ">="
	OpAnd Operator = "&&"
	OpOr  Operator = "||"
	OpIn  Operator = "in"
	OpNot Operator = "!"
	OpNeg Operator = "neg"
)

// BindKind selects let/const/plain-reassignment binding semantics
type BindKind string

const (
	BindNone  BindKind = ""
	BindLet   BindKind = "let"
	BindConst BindKind = "const"
)

// ElementKind distinguishes required, optional and rest elements of
// list patterns and parameter lists
type ElementKind string

const (
	ElemSimple   ElementKind = ""
	ElemOptional ElementKind = "optional"
	ElemRest     ElementKind = "rest"
)

// LiteralKind is the kind of a literal value
type LiteralKind string

const (
	LitNull  LiteralKind = "null"
	LitBool  LiteralKind = "bool"
	LitInt   LiteralKind = "int"
	LitFloat LiteralKind = "float"
	LitStr   LiteralKind = "str"
)

// Program is a top-level statement sequence
type Program struct {
	Pos  Position `yaml:"-"`
	Body []Stmt   `yaml:"body"`
}

func (p *Program) Position() Position { return p.Pos }

// ============================================================================
// EXPRESSIONS
// ============================================================================

// LiteralExpr holds a scalar constant
type LiteralExpr struct {
	Pos   Position `yaml:"-"`
	Kind  LiteralKind
	Bool  bool
	Int   int64
	Float float64
	Str   string
}

func (e *LiteralExpr) Position() Position { return e.Pos }
func (e *LiteralExpr) exprNode()          {}

// IdentifierExpr represents a variable reference
type IdentifierExpr struct {
	Pos  Position `yaml:"-"`
	Name string   `yaml:"name"`
}

func (e *IdentifierExpr) Position() Position { return e.Pos }
func (e *IdentifierExpr) exprNode()          {}

// SysPropExpr represents $name, a property of the system object
type SysPropExpr struct {
	Pos  Position `yaml:"-"`
	Name string   `yaml:"name"`
}

func (e *SysPropExpr) Position() Position { return e.Pos }
func (e *SysPropExpr) exprNode()          {}

// ObjectRefExpr represents a numeric object reference: #n
type ObjectRefExpr struct {
	Pos Position `yaml:"-"`
	Num int64    `yaml:"num"`
}

func (e *ObjectRefExpr) Position() Position { return e.Pos }
func (e *ObjectRefExpr) exprNode()          {}

// UnaryExpr represents a unary operation (OpNot, OpNeg)
type UnaryExpr struct {
	Pos     Position `yaml:"-"`
	Op      Operator `yaml:"op"`
	Operand Expr     `yaml:"operand"`
}

func (e *UnaryExpr) Position() Position { return e.Pos }
func (e *UnaryExpr) exprNode()          {}

// BinaryExpr represents a binary operation, including && || and in
type BinaryExpr struct {
	Pos   Position `yaml:"-"`
	Op    Operator `yaml:"op"`
	Left  Expr     `yaml:"left"`
	Right Expr     `yaml:"right"`
}

func (e *BinaryExpr) Position() Position { return e.Pos }
func (e *BinaryExpr) exprNode()          {}

// TernaryExpr represents cond ? then : else
type TernaryExpr struct {
	Pos  Position `yaml:"-"`
	Cond Expr     `yaml:"cond"`
	Then Expr     `yaml:"then"`
	Else Expr     `yaml:"else"`
}

func (e *TernaryExpr) Position() Position { return e.Pos }
func (e *TernaryExpr) exprNode()          {}

// IndexExpr represents expr[index]
type IndexExpr struct {
	Pos   Position `yaml:"-"`
	Expr  Expr     `yaml:"expr"`
	Index Expr     `yaml:"index"`
}

func (e *IndexExpr) Position() Position { return e.Pos }
func (e *IndexExpr) exprNode()          {}

// PropertyExpr represents property access: expr.property
type PropertyExpr struct {
	Pos      Position `yaml:"-"`
	Expr     Expr     `yaml:"expr"`
	Property string   `yaml:"property"`
}

func (e *PropertyExpr) Position() Position { return e.Pos }
func (e *PropertyExpr) exprNode()          {}

// VerbCallExpr represents a method call: expr:verb(args)
type VerbCallExpr struct {
	Pos  Position `yaml:"-"`
	Expr Expr     `yaml:"expr"`
	Verb string   `yaml:"verb"`
	Args []Expr   `yaml:"args"`
}

func (e *VerbCallExpr) Position() Position { return e.Pos }
func (e *VerbCallExpr) exprNode()          {}

// CallExpr represents a function call. An identifier callee names either a
// variable holding a lambda or a builtin function.
type CallExpr struct {
	Pos    Position `yaml:"-"`
	Callee Expr     `yaml:"callee"`
	Args   []Expr   `yaml:"args"`
}

func (e *CallExpr) Position() Position { return e.Pos }
func (e *CallExpr) exprNode()          {}

// ListExpr represents a list literal: [a, b, c]
type ListExpr struct {
	Pos      Position `yaml:"-"`
	Elements []Expr   `yaml:"elements"`
}

func (e *ListExpr) Position() Position { return e.Pos }
func (e *ListExpr) exprNode()          {}

// MapExpr represents a map literal: {"k": v, ...}
type MapExpr struct {
	Pos     Position   `yaml:"-"`
	Entries []MapEntry `yaml:"entries"`
}

// MapEntry is one key/value pair of a map literal. Keys must evaluate to strings.
type MapEntry struct {
	Key   Expr `yaml:"key"`
	Value Expr `yaml:"value"`
}

func (e *MapExpr) Position() Position { return e.Pos }
func (e *MapExpr) exprNode()          {}

// LambdaExpr represents fn {params} body endfn. Exactly one of Body (an
// expression body) or Stmts (a statement body) is set.
type LambdaExpr struct {
	Pos    Position `yaml:"-"`
	Params []Param  `yaml:"params"`
	Body   Expr     `yaml:"body"`
	Stmts  []Stmt   `yaml:"stmts"`
}

func (e *LambdaExpr) Position() Position { return e.Pos }
func (e *LambdaExpr) exprNode()          {}

// AssignExpr represents plain reassignment: target = value
// Target is an IdentifierExpr, PropertyExpr, SysPropExpr, or IndexExpr.
type AssignExpr struct {
	Pos    Position `yaml:"-"`
	Target Expr     `yaml:"target"`
	Value  Expr     `yaml:"value"`
}

func (e *AssignExpr) Position() Position { return e.Pos }
func (e *AssignExpr) exprNode()          {}

// Param is one declared parameter of a verb, lambda, or event handler
type Param struct {
	Name    string      `yaml:"name"`
	Kind    ElementKind `yaml:"kind"`
	Default Expr        `yaml:"default"`
}

// ============================================================================
// PATTERNS
// ============================================================================

// IdentPattern binds a single name
type IdentPattern struct {
	Pos  Position `yaml:"-"`
	Name string   `yaml:"name"`
}

func (p *IdentPattern) Position() Position { return p.Pos }
func (p *IdentPattern) patternNode()       {}

// ListPattern destructures a list: {a, ?b = 1, @rest}
type ListPattern struct {
	Pos      Position         `yaml:"-"`
	Elements []PatternElement `yaml:"elements"`
}

func (p *ListPattern) Position() Position { return p.Pos }
func (p *ListPattern) patternNode()       {}

// PatternElement is one element of a list pattern. Simple elements carry a
// nested Pattern; Optional and Rest elements bind Name.
type PatternElement struct {
	Kind    ElementKind `yaml:"kind"`
	Pattern Pattern     `yaml:"pattern"`
	Name    string      `yaml:"name"`
	Default Expr        `yaml:"default"`
}

// IgnorePattern discards the value: _
type IgnorePattern struct {
	Pos Position `yaml:"-"`
}

func (p *IgnorePattern) Position() Position { return p.Pos }
func (p *IgnorePattern) patternNode()       {}

// ============================================================================
// STATEMENTS
// ============================================================================

// ExprStmt represents an expression used as a statement
type ExprStmt struct {
	Pos  Position `yaml:"-"`
	Expr Expr     `yaml:"expr"`
}

func (s *ExprStmt) Position() Position { return s.Pos }
func (s *ExprStmt) stmtNode()          {}

// BindStmt represents let/const declarations and destructuring reassignment
type BindStmt struct {
	Pos     Position `yaml:"-"`
	Kind    BindKind `yaml:"kind"`
	Pattern Pattern  `yaml:"pattern"`
	Value   Expr     `yaml:"value"`
}

func (s *BindStmt) Position() Position { return s.Pos }
func (s *BindStmt) stmtNode()          {}

// BlockStmt groups statements. Blocks do not introduce a new scope.
type BlockStmt struct {
	Pos  Position `yaml:"-"`
	Body []Stmt   `yaml:"body"`
}

func (s *BlockStmt) Position() Position { return s.Pos }
func (s *BlockStmt) stmtNode()          {}

// IfStmt represents if/else
type IfStmt struct {
	Pos  Position `yaml:"-"`
	Cond Expr     `yaml:"cond"`
	Then []Stmt   `yaml:"then"`
	Else []Stmt   `yaml:"else"`
}

func (s *IfStmt) Position() Position { return s.Pos }
func (s *IfStmt) stmtNode()          {}

// WhileStmt represents while loops
type WhileStmt struct {
	Pos   Position `yaml:"-"`
	Label string   `yaml:"label"`
	Cond  Expr     `yaml:"cond"`
	Body  []Stmt   `yaml:"body"`
}

func (s *WhileStmt) Position() Position { return s.Pos }
func (s *WhileStmt) stmtNode()          {}

// ForStmt represents for (var in iterable) loops
type ForStmt struct {
	Pos      Position `yaml:"-"`
	Label    string   `yaml:"label"`
	Var      string   `yaml:"var"`
	Iterable Expr     `yaml:"iterable"`
	Body     []Stmt   `yaml:"body"`
}

func (s *ForStmt) Position() Position { return s.Pos }
func (s *ForStmt) stmtNode()          {}

// BreakStmt represents break statement
type BreakStmt struct {
	Pos   Position `yaml:"-"`
	Label string   `yaml:"label"`
}

func (s *BreakStmt) Position() Position { return s.Pos }
func (s *BreakStmt) stmtNode()          {}

// ContinueStmt represents continue statement
type ContinueStmt struct {
	Pos   Position `yaml:"-"`
	Label string   `yaml:"label"`
}

func (s *ContinueStmt) Position() Position { return s.Pos }
func (s *ContinueStmt) stmtNode()          {}

// ReturnStmt represents return statement
type ReturnStmt struct {
	Pos   Position `yaml:"-"`
	Value Expr     `yaml:"value"` // Can be nil (returns null)
}

func (s *ReturnStmt) Position() Position { return s.Pos }
func (s *ReturnStmt) stmtNode()          {}

// EmitStmt represents emit name(args)
type EmitStmt struct {
	Pos   Position `yaml:"-"`
	Event string   `yaml:"event"`
	Args  []Expr   `yaml:"args"`
}

func (s *EmitStmt) Position() Position { return s.Pos }
func (s *EmitStmt) stmtNode()          {}

// TryStmt represents try/catch/finally
type TryStmt struct {
	Pos      Position `yaml:"-"`
	Body     []Stmt   `yaml:"body"`
	CatchVar string   `yaml:"catch_var"`
	Catch    []Stmt   `yaml:"catch"`
	Finally  []Stmt   `yaml:"finally"`
}

func (s *TryStmt) Position() Position { return s.Pos }
func (s *TryStmt) stmtNode()          {}

// ObjectStmt defines a named object
type ObjectStmt struct {
	Pos        Position      `yaml:"-"`
	Name       string        `yaml:"name"`
	Parent     string        `yaml:"parent"`
	Properties []PropertyDef `yaml:"properties"`
	Verbs      []VerbDef     `yaml:"verbs"`
	Handlers   []HandlerDef  `yaml:"handlers"`
}

func (s *ObjectStmt) Position() Position { return s.Pos }
func (s *ObjectStmt) stmtNode()          {}

// PropertyDef declares a property and its initial value
type PropertyDef struct {
	Name  string `yaml:"name"`
	Value Expr   `yaml:"value"`
}

// VerbDef declares a verb. Perms is a subset of "rwx"; empty means "rx".
type VerbDef struct {
	Name   string  `yaml:"name"`
	Params []Param `yaml:"params"`
	Perms  string  `yaml:"perms"`
	Body   []Stmt  `yaml:"body"`
}

// HandlerDef declares an event handler
type HandlerDef struct {
	Event    string  `yaml:"event"`
	Params   []Param `yaml:"params"`
	Priority int     `yaml:"priority"`
	Body     []Stmt  `yaml:"body"`
}
