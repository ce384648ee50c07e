package eval

import (
	"fmt"
	"sync"

	"echo/ast"
	"echo/builtins"
	"echo/config"
	"echo/db"
	"echo/events"
	"echo/task"
	"echo/types"
)

// Evaluator walks the AST and evaluates expressions/statements.
// It owns the per-actor environments, the event registry and the builtin
// table; objects live in the store it was created with.
type Evaluator struct {
	store    db.Store
	events   *events.Registry
	builtins *builtins.Registry
	envs     *Environments
	tasks    *task.Manager
	cfg      config.Config

	mu      sync.Mutex
	current types.ObjID // actor used by Eval
}

// NewEvaluator creates an evaluator over store. The system and root objects
// are created if the store does not have them yet.
func NewEvaluator(store db.Store, cfg config.Config) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := db.Bootstrap(store); err != nil {
		return nil, fmt.Errorf("bootstrap store: %w", err)
	}

	e := &Evaluator{
		store:    store,
		events:   events.NewRegistry(),
		builtins: builtins.NewRegistry(),
		envs:     NewEnvironments(),
		tasks:    task.NewManager(),
		cfg:      cfg,
		current:  types.SystemObject,
	}
	e.builtins.RegisterObjectBuiltins(store)
	e.builtins.RegisterPlayerBuiltins(store, e)
	e.builtins.RegisterEventBuiltins(e)
	e.registerEvalBuiltins()

	e.ResetPlayer(types.SystemObject)
	return e, nil
}

// Eval runs a program as the current player
func (e *Evaluator) Eval(prog *ast.Program) (types.Value, error) {
	return e.EvalWithPlayer(prog, e.CurrentPlayer())
}

// EvalWithPlayer runs a program in player's environment. Bindings made by
// the program persist in that environment for later evaluations.
func (e *Evaluator) EvalWithPlayer(prog *ast.Program, player types.ObjID) (types.Value, error) {
	if prog == nil {
		return types.Null, nil
	}
	if _, ok := e.envs.Get(player); !ok {
		e.ResetPlayer(player)
	}

	t := e.tasks.CreateTask(player, e.cfg.MaxDepth, e.cfg.TickLimit)
	defer e.tasks.RemoveTask(t.ID)
	t.SetState(task.TaskRunning)

	res := e.EvalStatements(prog.Body, t.Context)
	if res.IsReturn() || res.IsBreak() || res.IsContinue() {
		res = flowError(res)
	}
	t.Finish(res)

	if res.IsError() {
		return nil, newError(res, player)
	}
	return valueOrNull(res.Val), nil
}

// evalExpr evaluates an expression node
// All evaluation methods follow this pattern:
// - Accept *TaskContext for depth tracking and the current actor
// - Return Result (not raw Value) to unify error handling and control flow
func (e *Evaluator) evalExpr(node ast.Expr, ctx *types.TaskContext) types.Result {
	switch n := node.(type) {
	case nil:
		return types.Ok(types.Null)
	case *ast.LiteralExpr:
		return evalLiteral(n)
	case *ast.IdentifierExpr:
		return e.evalIdentifier(n, ctx)
	case *ast.SysPropExpr:
		return e.readProperty(types.SystemObject, n.Name)
	case *ast.ObjectRefExpr:
		return e.resolveObjectRef(n.Num, ctx)
	case *ast.UnaryExpr:
		return e.evalUnary(n, ctx)
	case *ast.BinaryExpr:
		return e.evalBinary(n, ctx)
	case *ast.TernaryExpr:
		return e.evalTernary(n, ctx)
	case *ast.IndexExpr:
		return e.evalIndex(n, ctx)
	case *ast.PropertyExpr:
		return e.evalProperty(n, ctx)
	case *ast.VerbCallExpr:
		return e.evalVerbCall(n, ctx)
	case *ast.CallExpr:
		return e.evalCall(n, ctx)
	case *ast.ListExpr:
		return e.evalList(n, ctx)
	case *ast.MapExpr:
		return e.evalMap(n, ctx)
	case *ast.LambdaExpr:
		return e.evalLambda(n, ctx)
	case *ast.AssignExpr:
		return e.evalAssign(n, ctx)
	default:
		return types.Errf(types.E_TYPE, "cannot evaluate %T", node)
	}
}

// evalLiteral evaluates a literal expression
func evalLiteral(node *ast.LiteralExpr) types.Result {
	switch node.Kind {
	case ast.LitBool:
		return types.Ok(types.NewBool(node.Bool))
	case ast.LitInt:
		return types.Ok(types.NewInt(node.Int))
	case ast.LitFloat:
		return types.Ok(types.NewFloat(node.Float))
	case ast.LitStr:
		return types.Ok(types.NewStr(node.Str))
	default:
		return types.Ok(types.Null)
	}
}

// evalIdentifier looks up a variable in the actor's environment, then in
// the system object's properties (the global name table)
func (e *Evaluator) evalIdentifier(node *ast.IdentifierExpr, ctx *types.TaskContext) types.Result {
	if val, ok := e.env(ctx).Get(node.Name); ok {
		return types.Ok(val)
	}

	sys, res := e.getObject(types.SystemObject)
	if sys == nil {
		return res
	}
	if val, ok := sys.Property(node.Name); ok {
		return types.Ok(val)
	}
	return types.Errf(types.E_VARNF, "undefined variable %s", node.Name)
}

// evalUnary evaluates ! and unary -
func (e *Evaluator) evalUnary(node *ast.UnaryExpr, ctx *types.TaskContext) types.Result {
	operandResult := e.evalExpr(node.Operand, ctx)
	if !operandResult.IsNormal() {
		return operandResult // Propagate error/control flow
	}

	switch node.Op {
	case ast.OpNeg:
		return evalUnaryMinus(operandResult.Val)
	case ast.OpNot:
		return evalUnaryNot(operandResult.Val)
	default:
		return types.Errf(types.E_TYPE, "unknown unary operator %s", node.Op)
	}
}

// evalBinary evaluates a binary expression
// Handles arithmetic, comparison, membership and logical operators
func (e *Evaluator) evalBinary(node *ast.BinaryExpr, ctx *types.TaskContext) types.Result {
	// Short-circuit evaluation for && and ||
	if node.Op == ast.OpAnd || node.Op == ast.OpOr {
		return e.evalLogical(node, ctx)
	}

	leftResult := e.evalExpr(node.Left, ctx)
	if !leftResult.IsNormal() {
		return leftResult
	}
	rightResult := e.evalExpr(node.Right, ctx)
	if !rightResult.IsNormal() {
		return rightResult
	}

	return binaryOp(node.Op, leftResult.Val, rightResult.Val)
}

// evalLogical evaluates && and || with short-circuit semantics. Both
// operands must be booleans.
func (e *Evaluator) evalLogical(node *ast.BinaryExpr, ctx *types.TaskContext) types.Result {
	leftResult := e.evalExpr(node.Left, ctx)
	if !leftResult.IsNormal() {
		return leftResult
	}
	left, ok := leftResult.Val.(types.BoolValue)
	if !ok {
		return types.Errf(types.E_TYPE, "operator %s requires boolean operands, got %s", node.Op, types.TypeName(leftResult.Val))
	}

	if node.Op == ast.OpAnd && !left.Val {
		return types.Ok(left)
	}
	if node.Op == ast.OpOr && left.Val {
		return types.Ok(left)
	}

	rightResult := e.evalExpr(node.Right, ctx)
	if !rightResult.IsNormal() {
		return rightResult
	}
	right, ok := rightResult.Val.(types.BoolValue)
	if !ok {
		return types.Errf(types.E_TYPE, "operator %s requires boolean operands, got %s", node.Op, types.TypeName(rightResult.Val))
	}
	return types.Ok(right)
}

// evalTernary evaluates cond ? then : else
func (e *Evaluator) evalTernary(node *ast.TernaryExpr, ctx *types.TaskContext) types.Result {
	cond, res := e.evalCondition(node.Cond, ctx)
	if !res.IsNormal() {
		return res
	}
	if cond {
		return e.evalExpr(node.Then, ctx)
	}
	return e.evalExpr(node.Else, ctx)
}

// evalCondition evaluates an expression that must yield a boolean
func (e *Evaluator) evalCondition(expr ast.Expr, ctx *types.TaskContext) (bool, types.Result) {
	res := e.evalExpr(expr, ctx)
	if !res.IsNormal() {
		return false, res
	}
	b, ok := res.Val.(types.BoolValue)
	if !ok {
		return false, types.Errf(types.E_TYPE, "condition must be boolean, got %s", types.TypeName(res.Val))
	}
	return b.Val, res
}

// evalList evaluates a list literal left to right
func (e *Evaluator) evalList(node *ast.ListExpr, ctx *types.TaskContext) types.Result {
	elems, res := e.evalArgs(node.Elements, ctx)
	if elems == nil {
		return res
	}
	return types.Ok(types.NewList(elems))
}

// evalMap evaluates a map literal; keys must be strings
func (e *Evaluator) evalMap(node *ast.MapExpr, ctx *types.TaskContext) types.Result {
	pairs := make(map[string]types.Value, len(node.Entries))
	for _, entry := range node.Entries {
		keyResult := e.evalExpr(entry.Key, ctx)
		if !keyResult.IsNormal() {
			return keyResult
		}
		key, ok := keyResult.Val.(types.StrValue)
		if !ok {
			return types.Errf(types.E_TYPE, "map keys must be strings, got %s", types.TypeName(keyResult.Val))
		}
		valResult := e.evalExpr(entry.Value, ctx)
		if !valResult.IsNormal() {
			return valResult
		}
		pairs[key.Value()] = valResult.Val
	}
	return types.Ok(types.NewMap(pairs))
}

// evalArgs evaluates expressions left to right. On failure the slice is
// nil and the result carries the error or control flow.
func (e *Evaluator) evalArgs(exprs []ast.Expr, ctx *types.TaskContext) ([]types.Value, types.Result) {
	vals := make([]types.Value, len(exprs))
	for i, expr := range exprs {
		res := e.evalExpr(expr, ctx)
		if !res.IsNormal() {
			return nil, res
		}
		vals[i] = res.Val
	}
	return vals, types.Ok(types.Null)
}

// evalCall evaluates f(args). An identifier bound to a lambda is called;
// an unbound identifier names a builtin.
func (e *Evaluator) evalCall(node *ast.CallExpr, ctx *types.TaskContext) types.Result {
	if ident, ok := node.Callee.(*ast.IdentifierExpr); ok {
		if v, bound := e.env(ctx).Get(ident.Name); bound {
			lambda, ok := v.(types.LambdaValue)
			if !ok {
				return types.Errf(types.E_TYPE, "%s is %s, not a lambda", ident.Name, types.TypeName(v))
			}
			args, res := e.evalArgs(node.Args, ctx)
			if args == nil {
				return res
			}
			return e.callLambda(lambda, args, ctx)
		}

		fn, ok := e.builtins.Get(ident.Name)
		if !ok {
			return types.Errf(types.E_VERBNF, "unknown function %s", ident.Name)
		}
		args, res := e.evalArgs(node.Args, ctx)
		if args == nil {
			return res
		}
		return fn(ctx, args)
	}

	calleeResult := e.evalExpr(node.Callee, ctx)
	if !calleeResult.IsNormal() {
		return calleeResult
	}
	lambda, ok := calleeResult.Val.(types.LambdaValue)
	if !ok {
		return types.Errf(types.E_TYPE, "cannot call %s", types.TypeName(calleeResult.Val))
	}
	args, res := e.evalArgs(node.Args, ctx)
	if args == nil {
		return res
	}
	return e.callLambda(lambda, args, ctx)
}

// env returns the environment of the actor ctx runs as
func (e *Evaluator) env(ctx *types.TaskContext) *Environment {
	return e.envs.Ensure(ctx.Player)
}

// getObject loads a record, mapping a missing object to E_INVIND and any
// other store failure to E_STORE. The record is nil on failure.
func (e *Evaluator) getObject(id types.ObjID) (*db.Object, types.Result) {
	obj, err := e.store.Get(id)
	if err != nil {
		return nil, storeError(err, id)
	}
	return obj, types.Ok(types.Null)
}

// putObject writes a record back, mapping failures to E_STORE
func (e *Evaluator) putObject(obj *db.Object) types.Result {
	if err := e.store.Put(obj); err != nil {
		return types.Errf(types.E_STORE, "store %s: %v", obj.ID, err)
	}
	return types.Ok(types.NewObj(obj.ID))
}

// Store returns the object store
func (e *Evaluator) Store() db.Store {
	return e.store
}

// Events returns the event handler registry
func (e *Evaluator) Events() *events.Registry {
	return e.events
}

// Environments returns the per-actor environment table
func (e *Evaluator) Environments() *Environments {
	return e.envs
}

// Tasks returns the manager tracking running evaluations
func (e *Evaluator) Tasks() *task.Manager {
	return e.tasks
}

// BuiltinNames lists the callable builtin functions
func (e *Evaluator) BuiltinNames() []string {
	return e.builtins.Names()
}

// SetUICallback installs the callback the ui_* builtins forward to
func (e *Evaluator) SetUICallback(cb builtins.UICallback) {
	e.builtins.SetUICallback(cb)
}

func valueOrNull(v types.Value) types.Value {
	if v == nil {
		return types.Null
	}
	return v
}
