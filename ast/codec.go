package ast

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// The YAML wire form writes every node as a single-key mapping whose key
// names the node kind:
//
//	- let: {pattern: {name: x}, value: {int: 1}}
//	- expr: {binary: {op: "+", left: {ident: x}, right: {int: 2}}}
//
// A node whose value is not a mapping of its own field names is decoded in
// shorthand form: the value fills the node's first field ({ident: x}).

var (
	exprType    = reflect.TypeOf((*Expr)(nil)).Elem()
	stmtType    = reflect.TypeOf((*Stmt)(nil)).Elem()
	patternType = reflect.TypeOf((*Pattern)(nil)).Elem()
	nodeType    = reflect.TypeOf((*Node)(nil)).Elem()
)

var exprKinds = map[string]reflect.Type{
	"ident":    reflect.TypeOf(IdentifierExpr{}),
	"sysprop":  reflect.TypeOf(SysPropExpr{}),
	"objref":   reflect.TypeOf(ObjectRefExpr{}),
	"unary":    reflect.TypeOf(UnaryExpr{}),
	"binary":   reflect.TypeOf(BinaryExpr{}),
	"ternary":  reflect.TypeOf(TernaryExpr{}),
	"index":    reflect.TypeOf(IndexExpr{}),
	"prop":     reflect.TypeOf(PropertyExpr{}),
	"verbcall": reflect.TypeOf(VerbCallExpr{}),
	"call":     reflect.TypeOf(CallExpr{}),
	"list":     reflect.TypeOf(ListExpr{}),
	"map":      reflect.TypeOf(MapExpr{}),
	"lambda":   reflect.TypeOf(LambdaExpr{}),
	"assign":   reflect.TypeOf(AssignExpr{}),
}

var stmtKinds = map[string]reflect.Type{
	"expr":     reflect.TypeOf(ExprStmt{}),
	"bind":     reflect.TypeOf(BindStmt{}),
	"let":      reflect.TypeOf(BindStmt{}),
	"const":    reflect.TypeOf(BindStmt{}),
	"block":    reflect.TypeOf(BlockStmt{}),
	"if":       reflect.TypeOf(IfStmt{}),
	"while":    reflect.TypeOf(WhileStmt{}),
	"for":      reflect.TypeOf(ForStmt{}),
	"break":    reflect.TypeOf(BreakStmt{}),
	"continue": reflect.TypeOf(ContinueStmt{}),
	"return":   reflect.TypeOf(ReturnStmt{}),
	"emit":     reflect.TypeOf(EmitStmt{}),
	"try":      reflect.TypeOf(TryStmt{}),
	"object":   reflect.TypeOf(ObjectStmt{}),
}

var patternKinds = map[string]reflect.Type{
	"name":   reflect.TypeOf(IdentPattern{}),
	"list":   reflect.TypeOf(ListPattern{}),
	"ignore": reflect.TypeOf(IgnorePattern{}),
}

// kindNames is the reverse of the kind tables, used when encoding
var kindNames = map[reflect.Type]string{}

func init() {
	for _, table := range []map[string]reflect.Type{exprKinds, stmtKinds, patternKinds} {
		for name, t := range table {
			if name == "let" || name == "const" {
				continue
			}
			kindNames[t] = name
		}
	}
}

// Decode parses a YAML document into a Program. The document is either a
// sequence of statements or a mapping with a "body" key.
func Decode(data []byte) (*Program, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ast: %w", err)
	}
	prog := &Program{}
	if len(doc.Content) == 0 {
		return prog, nil
	}
	root := doc.Content[0]
	if root.Kind == yaml.SequenceNode {
		if err := DecodeNode(root, &prog.Body); err != nil {
			return nil, err
		}
		return prog, nil
	}
	if err := DecodeNode(root, prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// DecodeNode decodes an already-parsed YAML node into out, which must be a
// pointer to an AST node, node slice, Param slice, or AST struct.
func DecodeNode(n *yaml.Node, out any) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("ast: DecodeNode needs a non-nil pointer, got %T", out)
	}
	if n.Kind == yaml.DocumentNode && len(n.Content) > 0 {
		n = n.Content[0]
	}
	return decodeInto(n, v.Elem())
}

// Encode renders a Program as YAML
func Encode(prog *Program) ([]byte, error) {
	n, err := EncodeNode(prog.Body)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(n)
}

// EncodeNode converts any AST value (node, slice, Param, ...) to a YAML node
func EncodeNode(v any) (*yaml.Node, error) {
	return encodeValue(reflect.ValueOf(v))
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func decodeErr(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("ast: line %d: %s", n.Line, fmt.Sprintf(format, args...))
}

func decodeInto(n *yaml.Node, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Interface:
		if isNull(n) {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		node, err := decodeKind(n, v.Type())
		if err != nil {
			return err
		}
		v.Set(node)
		return nil

	case reflect.Ptr:
		if isNull(n) {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		p := reflect.New(v.Type().Elem())
		if err := decodeInto(n, p.Elem()); err != nil {
			return err
		}
		v.Set(p)
		return nil

	case reflect.Slice:
		if isNull(n) {
			v.Set(reflect.Zero(v.Type()))
			return nil
		}
		if n.Kind != yaml.SequenceNode {
			return decodeErr(n, "expected a sequence for %s", v.Type())
		}
		s := reflect.MakeSlice(v.Type(), len(n.Content), len(n.Content))
		for i, item := range n.Content {
			if err := decodeInto(item, s.Index(i)); err != nil {
				return err
			}
		}
		v.Set(s)
		return nil

	case reflect.Struct:
		return decodeStruct(n, v)

	case reflect.String:
		if n.Kind != yaml.ScalarNode {
			return decodeErr(n, "expected a scalar for %s", v.Type())
		}
		v.SetString(n.Value)
		return nil

	case reflect.Bool:
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return decodeErr(n, "invalid bool %q", n.Value)
		}
		v.SetBool(b)
		return nil

	case reflect.Int, reflect.Int64:
		i, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return decodeErr(n, "invalid integer %q", n.Value)
		}
		v.SetInt(i)
		return nil

	case reflect.Float64:
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return decodeErr(n, "invalid float %q", n.Value)
		}
		v.SetFloat(f)
		return nil

	default:
		return decodeErr(n, "unsupported field type %s", v.Type())
	}
}

// decodeKind decodes a single-key mapping into the node kind it names
func decodeKind(n *yaml.Node, iface reflect.Type) (reflect.Value, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return reflect.Value{}, decodeErr(n, "expected a single-key mapping naming a %s kind", iface.Name())
	}
	key, val := n.Content[0].Value, n.Content[1]

	if iface == exprType || iface == nodeType {
		if lit, ok, err := decodeLiteral(key, val); ok || err != nil {
			if err != nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(lit), nil
		}
	}

	var table map[string]reflect.Type
	switch iface {
	case exprType:
		table = exprKinds
	case stmtType:
		table = stmtKinds
	case patternType:
		table = patternKinds
	case nodeType:
		if t, ok := stmtKinds[key]; ok {
			table = map[string]reflect.Type{key: t}
		} else {
			table = exprKinds
		}
	default:
		return reflect.Value{}, decodeErr(n, "unsupported interface %s", iface)
	}

	t, ok := table[key]
	if !ok {
		return reflect.Value{}, decodeErr(n, "unknown %s kind %q", iface.Name(), key)
	}
	p := reflect.New(t)
	if err := decodeStruct(val, p.Elem()); err != nil {
		return reflect.Value{}, err
	}
	if bind, ok := p.Interface().(*BindStmt); ok && bind.Kind == BindNone {
		switch key {
		case "let":
			bind.Kind = BindLet
		case "const":
			bind.Kind = BindConst
		}
	}
	if !p.Type().Implements(iface) {
		return reflect.Value{}, decodeErr(n, "%q is not a %s", key, iface.Name())
	}
	return p, nil
}

func decodeLiteral(key string, val *yaml.Node) (*LiteralExpr, bool, error) {
	lit := &LiteralExpr{Kind: LiteralKind(key)}
	switch lit.Kind {
	case LitNull:
		return lit, true, nil
	case LitBool:
		b, err := strconv.ParseBool(val.Value)
		if err != nil {
			return nil, true, decodeErr(val, "invalid bool literal %q", val.Value)
		}
		lit.Bool = b
	case LitInt:
		i, err := strconv.ParseInt(val.Value, 0, 64)
		if err != nil {
			return nil, true, decodeErr(val, "invalid int literal %q", val.Value)
		}
		lit.Int = i
	case LitFloat:
		f, err := strconv.ParseFloat(val.Value, 64)
		if err != nil {
			return nil, true, decodeErr(val, "invalid float literal %q", val.Value)
		}
		lit.Float = f
	case LitStr:
		if val.Kind != yaml.ScalarNode {
			return nil, true, decodeErr(val, "string literal must be a scalar")
		}
		lit.Str = val.Value
	default:
		return nil, false, nil
	}
	return lit, true, nil
}

type fieldInfo struct {
	name  string
	index int
}

func structFields(t reflect.Type) []fieldInfo {
	var fields []fieldInfo
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("yaml")
		if tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name == "" {
			name = strings.ToLower(f.Name)
		}
		fields = append(fields, fieldInfo{name: name, index: i})
	}
	return fields
}

func decodeStruct(n *yaml.Node, v reflect.Value) error {
	fields := structFields(v.Type())
	if isNull(n) {
		return nil
	}
	if n.Kind == yaml.MappingNode && mappingMatches(n, fields) {
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			for _, f := range fields {
				if f.name == key {
					if err := decodeInto(n.Content[i+1], v.Field(f.index)); err != nil {
						return err
					}
					break
				}
			}
		}
		return nil
	}
	if len(fields) == 0 {
		return decodeErr(n, "%s takes no fields", v.Type().Name())
	}
	return decodeInto(n, v.Field(fields[0].index))
}

func mappingMatches(n *yaml.Node, fields []fieldInfo) bool {
	for i := 0; i < len(n.Content); i += 2 {
		found := false
		for _, f := range fields {
			if f.name == n.Content[i].Value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func encodeValue(v reflect.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
		return encodeValue(v.Elem())

	case reflect.Ptr:
		if v.IsNil() {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
		if lit, ok := v.Interface().(*LiteralExpr); ok {
			return encodeLiteral(lit), nil
		}
		if name, ok := kindNames[v.Type().Elem()]; ok {
			if bind, ok := v.Interface().(*BindStmt); ok && bind.Kind != BindNone {
				name = string(bind.Kind)
			}
			body, err := encodeStruct(v.Elem())
			if err != nil {
				return nil, err
			}
			return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Value: name}, body,
			}}, nil
		}
		if v.Type().Elem() == reflect.TypeOf(Program{}) {
			return encodeValue(v.Elem().FieldByName("Body"))
		}
		return encodeValue(v.Elem())

	case reflect.Slice:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for i := 0; i < v.Len(); i++ {
			item, err := encodeValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, item)
		}
		return seq, nil

	case reflect.Struct:
		return encodeStruct(v)

	case reflect.String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.String()}, nil
	case reflect.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.Bool())}, nil
	case reflect.Int, reflect.Int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.Int(), 10)}, nil
	case reflect.Float64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.Float(), 'g', -1, 64)}, nil
	default:
		return nil, fmt.Errorf("ast: cannot encode %s", v.Type())
	}
}

func encodeStruct(v reflect.Value) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range structFields(v.Type()) {
		fv := v.Field(f.index)
		if fv.IsZero() {
			continue
		}
		val, err := encodeValue(fv)
		if err != nil {
			return nil, err
		}
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: f.name}, val)
	}
	return m, nil
}

func encodeLiteral(lit *LiteralExpr) *yaml.Node {
	var val *yaml.Node
	switch lit.Kind {
	case LitBool:
		val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(lit.Bool)}
	case LitInt:
		val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(lit.Int, 10)}
	case LitFloat:
		val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(lit.Float, 'g', -1, 64)}
	case LitStr:
		val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: lit.Str}
	default:
		val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	kind := lit.Kind
	if kind == "" {
		kind = LitNull
	}
	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: string(kind)}, val,
	}}
}
