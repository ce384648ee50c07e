package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator precedence levels (higher = tighter binding)
const (
	precedenceLowest = iota
	precedenceAssign     // =
	precedenceTernary    // ? :
	precedenceOr         // ||
	precedenceAnd        // &&
	precedenceEquality   // == !=
	precedenceComparison // < <= > >= in
	precedenceAdditive   // + -
	precedenceMultiply   // * / %
	precedenceExponent   // ^
	precedenceUnary      // - !
	precedenceProperty   // . : [] ()
)

// Unparse reconstructs readable source text for a statement sequence. It is
// used to keep a verb's source alongside its body for introspection.
func Unparse(stmts []Stmt) string {
	lines := UnparseLines(stmts)
	return strings.Join(lines, "\n")
}

// UnparseLines converts statements back to source code lines
func UnparseLines(stmts []Stmt) []string {
	if len(stmts) == 0 {
		return []string{}
	}

	var lines []string
	for _, stmt := range stmts {
		lines = append(lines, strings.Split(unparseStmt(stmt, 0), "\n")...)
	}
	return lines
}

// UnparseExpr converts a single expression to source text
func UnparseExpr(expr Expr) string {
	return unparseExpr(expr, precedenceLowest)
}

// UnparseParams renders a parameter list as {a, ?b = 1, @rest}
func UnparseParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		switch p.Kind {
		case ElemOptional:
			parts[i] = "?" + p.Name
			if p.Default != nil {
				parts[i] += " = " + unparseExpr(p.Default, precedenceAssign)
			}
		case ElemRest:
			parts[i] = "@" + p.Name
		default:
			parts[i] = p.Name
		}
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func unparseBlock(sb *strings.Builder, stmts []Stmt, indent int) {
	for _, s := range stmts {
		sb.WriteString(unparseStmt(s, indent) + "\n")
	}
}

// unparseStmt converts a statement to source code
func unparseStmt(stmt Stmt, indent int) string {
	indentStr := strings.Repeat("  ", indent)

	switch s := stmt.(type) {
	case *ExprStmt:
		return indentStr + unparseExpr(s.Expr, precedenceLowest) + ";"

	case *BindStmt:
		prefix := ""
		if s.Kind != BindNone {
			prefix = string(s.Kind) + " "
		}
		return indentStr + prefix + unparsePattern(s.Pattern) + " = " + unparseExpr(s.Value, precedenceAssign) + ";"

	case *ReturnStmt:
		if s.Value == nil {
			return indentStr + "return;"
		}
		return indentStr + "return " + unparseExpr(s.Value, precedenceLowest) + ";"

	case *BreakStmt:
		if s.Label != "" {
			return indentStr + "break " + s.Label + ";"
		}
		return indentStr + "break;"

	case *ContinueStmt:
		if s.Label != "" {
			return indentStr + "continue " + s.Label + ";"
		}
		return indentStr + "continue;"

	case *BlockStmt:
		var sb strings.Builder
		sb.WriteString(indentStr + "begin\n")
		unparseBlock(&sb, s.Body, indent+1)
		sb.WriteString(indentStr + "end")
		return sb.String()

	case *IfStmt:
		var sb strings.Builder
		sb.WriteString(indentStr + "if (" + unparseExpr(s.Cond, precedenceLowest) + ")\n")
		unparseBlock(&sb, s.Then, indent+1)
		if len(s.Else) > 0 {
			sb.WriteString(indentStr + "else\n")
			unparseBlock(&sb, s.Else, indent+1)
		}
		sb.WriteString(indentStr + "endif")
		return sb.String()

	case *WhileStmt:
		var sb strings.Builder
		sb.WriteString(indentStr + "while ")
		if s.Label != "" {
			sb.WriteString(s.Label + " ")
		}
		sb.WriteString("(" + unparseExpr(s.Cond, precedenceLowest) + ")\n")
		unparseBlock(&sb, s.Body, indent+1)
		sb.WriteString(indentStr + "endwhile")
		return sb.String()

	case *ForStmt:
		var sb strings.Builder
		sb.WriteString(indentStr + "for ")
		if s.Label != "" {
			sb.WriteString(s.Label + " ")
		}
		sb.WriteString(s.Var + " in (" + unparseExpr(s.Iterable, precedenceLowest) + ")\n")
		unparseBlock(&sb, s.Body, indent+1)
		sb.WriteString(indentStr + "endfor")
		return sb.String()

	case *EmitStmt:
		return indentStr + "emit " + s.Event + "(" + unparseArgs(s.Args) + ");"

	case *TryStmt:
		var sb strings.Builder
		sb.WriteString(indentStr + "try\n")
		unparseBlock(&sb, s.Body, indent+1)
		if s.CatchVar != "" || len(s.Catch) > 0 {
			if s.CatchVar != "" {
				sb.WriteString(indentStr + "catch (" + s.CatchVar + ")\n")
			} else {
				sb.WriteString(indentStr + "catch\n")
			}
			unparseBlock(&sb, s.Catch, indent+1)
		}
		if len(s.Finally) > 0 {
			sb.WriteString(indentStr + "finally\n")
			unparseBlock(&sb, s.Finally, indent+1)
		}
		sb.WriteString(indentStr + "endtry")
		return sb.String()

	case *ObjectStmt:
		var sb strings.Builder
		sb.WriteString(indentStr + "object " + s.Name)
		if s.Parent != "" {
			sb.WriteString(" extends " + s.Parent)
		}
		sb.WriteString("\n")
		inner := strings.Repeat("  ", indent+1)
		for _, p := range s.Properties {
			sb.WriteString(inner + "property " + p.Name + " = " + unparseExpr(p.Value, precedenceAssign) + ";\n")
		}
		for _, v := range s.Verbs {
			sb.WriteString(inner + "verb " + v.Name + UnparseParams(v.Params) + "\n")
			unparseBlock(&sb, v.Body, indent+2)
			sb.WriteString(inner + "endverb\n")
		}
		for _, h := range s.Handlers {
			sb.WriteString(inner + "on " + h.Event + UnparseParams(h.Params))
			if h.Priority != 0 {
				sb.WriteString(" priority " + strconv.Itoa(h.Priority))
			}
			sb.WriteString("\n")
			unparseBlock(&sb, h.Body, indent+2)
			sb.WriteString(inner + "endon\n")
		}
		sb.WriteString(indentStr + "endobject")
		return sb.String()

	default:
		return indentStr + fmt.Sprintf("<unknown stmt: %T>", stmt)
	}
}

func unparsePattern(p Pattern) string {
	switch p := p.(type) {
	case *IdentPattern:
		return p.Name
	case *IgnorePattern:
		return "_"
	case *ListPattern:
		parts := make([]string, len(p.Elements))
		for i, el := range p.Elements {
			switch el.Kind {
			case ElemOptional:
				parts[i] = "?" + el.Name
				if el.Default != nil {
					parts[i] += " = " + unparseExpr(el.Default, precedenceAssign)
				}
			case ElemRest:
				parts[i] = "@" + el.Name
			default:
				parts[i] = unparsePattern(el.Pattern)
			}
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("<unknown pattern: %T>", p)
	}
}

func unparseExpr(expr Expr, parentPrecedence int) string {
	switch e := expr.(type) {
	case nil:
		return "null"

	case *LiteralExpr:
		return unparseLiteral(e)

	case *IdentifierExpr:
		return e.Name

	case *SysPropExpr:
		return "$" + e.Name

	case *ObjectRefExpr:
		return "#" + strconv.FormatInt(e.Num, 10)

	case *UnaryExpr:
		op := "!"
		if e.Op == OpNeg {
			op = "-"
		}
		return op + unparseExpr(e.Operand, precedenceUnary)

	case *BinaryExpr:
		prec := binaryPrecedence(e.Op)
		result := unparseExpr(e.Left, prec) + " " + string(e.Op) + " " + unparseExpr(e.Right, prec+1)
		if prec < parentPrecedence {
			return "(" + result + ")"
		}
		return result

	case *TernaryExpr:
		result := unparseExpr(e.Cond, precedenceOr) + " ? " +
			unparseExpr(e.Then, precedenceTernary) + " : " + unparseExpr(e.Else, precedenceTernary)
		if precedenceTernary < parentPrecedence {
			return "(" + result + ")"
		}
		return result

	case *IndexExpr:
		return unparseExpr(e.Expr, precedenceProperty) + "[" + unparseExpr(e.Index, precedenceLowest) + "]"

	case *PropertyExpr:
		return unparseExpr(e.Expr, precedenceProperty) + "." + e.Property

	case *VerbCallExpr:
		return unparseExpr(e.Expr, precedenceProperty) + ":" + e.Verb + "(" + unparseArgs(e.Args) + ")"

	case *CallExpr:
		return unparseExpr(e.Callee, precedenceProperty) + "(" + unparseArgs(e.Args) + ")"

	case *ListExpr:
		return "[" + unparseArgs(e.Elements) + "]"

	case *MapExpr:
		pairs := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			pairs[i] = unparseExpr(entry.Key, precedenceLowest) + ": " + unparseExpr(entry.Value, precedenceLowest)
		}
		return "{" + strings.Join(pairs, ", ") + "}"

	case *LambdaExpr:
		parts := []string{"fn", UnparseParams(e.Params)}
		if e.Body != nil {
			parts = append(parts, unparseExpr(e.Body, precedenceLowest))
		}
		for _, s := range e.Stmts {
			parts = append(parts, unparseStmt(s, 0))
		}
		return strings.Join(append(parts, "endfn"), " ")

	case *AssignExpr:
		result := unparseExpr(e.Target, precedenceAssign) + " = " + unparseExpr(e.Value, precedenceAssign)
		if precedenceAssign < parentPrecedence {
			return "(" + result + ")"
		}
		return result

	default:
		return fmt.Sprintf("<unknown expr: %T>", expr)
	}
}

// binaryPrecedence returns the precedence level for a binary operator
func binaryPrecedence(op Operator) int {
	switch op {
	case OpOr:
		return precedenceOr
	case OpAnd:
		return precedenceAnd
	case OpEq, OpNe:
		return precedenceEquality
	case OpLt, OpLe, OpGt, OpGe, OpIn:
		return precedenceComparison
	case OpAdd, OpSub:
		return precedenceAdditive
	case OpMul, OpDiv, OpMod:
		return precedenceMultiply
	case OpPow:
		return precedenceExponent
	default:
		return precedenceLowest
	}
}

func unparseLiteral(lit *LiteralExpr) string {
	switch lit.Kind {
	case LitBool:
		return strconv.FormatBool(lit.Bool)
	case LitInt:
		return strconv.FormatInt(lit.Int, 10)
	case LitFloat:
		s := strconv.FormatFloat(lit.Float, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEIN") {
			s += ".0"
		}
		return s
	case LitStr:
		return strconv.Quote(lit.Str)
	default:
		return "null"
	}
}

func unparseArgs(args []Expr) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = unparseExpr(arg, precedenceLowest)
	}
	return strings.Join(parts, ", ")
}
