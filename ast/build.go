package ast

// Constructors for building trees without a parser. Embedders and tests use
// these; positions are left zero.

func Null() *LiteralExpr { return &LiteralExpr{Kind: LitNull} }
func Bool(b bool) *LiteralExpr { return &LiteralExpr{Kind: LitBool, Bool: b} }
func Int(i int64) *LiteralExpr { return &LiteralExpr{Kind: LitInt, Int: i} }
func Float(f float64) *LiteralExpr { return &LiteralExpr{Kind: LitFloat, Float: f} }
func Str(s string) *LiteralExpr { return &LiteralExpr{Kind: LitStr, Str: s} }
func Ident(name string) *IdentifierExpr { return &IdentifierExpr{Name: name} }
func SysProp(name string) *SysPropExpr { return &SysPropExpr{Name: name} }
func ObjRef(n int64) *ObjectRefExpr { return &ObjectRefExpr{Num: n} }

func Bin(op Operator, left, right Expr) *BinaryExpr {
	return &BinaryExpr{Op: op, Left: left, Right: right}
}

func Not(operand Expr) *UnaryExpr { return &UnaryExpr{Op: OpNot, Operand: operand} }
func Neg(operand Expr) *UnaryExpr { return &UnaryExpr{Op: OpNeg, Operand: operand} }

func List(elems ...Expr) *ListExpr { return &ListExpr{Elements: elems} }

func Prop(expr Expr, name string) *PropertyExpr {
	return &PropertyExpr{Expr: expr, Property: name}
}

func VerbCall(expr Expr, verb string, args ...Expr) *VerbCallExpr {
	return &VerbCallExpr{Expr: expr, Verb: verb, Args: args}
}

func Call(name string, args ...Expr) *CallExpr {
	return &CallExpr{Callee: Ident(name), Args: args}
}

func Assign(target, value Expr) *AssignExpr {
	return &AssignExpr{Target: target, Value: value}
}

func ExprS(e Expr) *ExprStmt { return &ExprStmt{Expr: e} }

func Let(name string, value Expr) *BindStmt {
	return &BindStmt{Kind: BindLet, Pattern: &IdentPattern{Name: name}, Value: value}
}

func Const(name string, value Expr) *BindStmt {
	return &BindStmt{Kind: BindConst, Pattern: &IdentPattern{Name: name}, Value: value}
}

func Return(value Expr) *ReturnStmt { return &ReturnStmt{Value: value} }

// P declares a required parameter
func P(name string) Param { return Param{Name: name} }

// Opt declares an optional parameter with a default (which may be nil)
func Opt(name string, def Expr) Param { return Param{Name: name, Kind: ElemOptional, Default: def} }

// Rest declares a rest parameter
func Rest(name string) Param { return Param{Name: name, Kind: ElemRest} }

// Prog wraps statements in a Program
func Prog(stmts ...Stmt) *Program { return &Program{Body: stmts} }
