package builtins

import (
	"strings"
	"unicode"

	"echo/types"
)

// ============================================================================
// STRING BUILTINS
// ============================================================================

// builtinStrsub replaces all occurrences of old with new in subject
// strsub(subject, old, new [, case_matters]) -> str
func builtinStrsub(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) < 3 || len(args) > 4 {
		return types.Err(types.E_ARGS)
	}

	subject, ok1 := args[0].(types.StrValue)
	old, ok2 := args[1].(types.StrValue)
	replacement, ok3 := args[2].(types.StrValue)
	if !ok1 || !ok2 || !ok3 {
		return types.Err(types.E_TYPE)
	}
	if old.Value() == "" {
		return types.Errf(types.E_INVARG, "strsub() search string must not be empty")
	}

	caseMatters, res := optionalBool(args, 3)
	if res.IsError() {
		return res
	}

	if caseMatters {
		return types.Ok(types.NewStr(strings.ReplaceAll(subject.Value(), old.Value(), replacement.Value())))
	}
	return types.Ok(types.NewStr(replaceAllCaseInsensitive(subject.Value(), old.Value(), replacement.Value())))
}

// builtinIndex finds the first occurrence of needle in haystack
// index(haystack, needle [, case_matters]) -> int (0-based, -1 if absent)
func builtinIndex(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) < 2 || len(args) > 3 {
		return types.Err(types.E_ARGS)
	}

	haystack, ok1 := args[0].(types.StrValue)
	needle, ok2 := args[1].(types.StrValue)
	if !ok1 || !ok2 {
		return types.Err(types.E_TYPE)
	}
	caseMatters, res := optionalBool(args, 2)
	if res.IsError() {
		return res
	}

	// Convert to runes for proper indexing
	h := []rune(haystack.Value())
	n := []rune(needle.Value())
	for i := 0; i <= len(h)-len(n); i++ {
		match := true
		for j := range n {
			a, b := h[i+j], n[j]
			if !caseMatters {
				a, b = unicode.ToLower(a), unicode.ToLower(b)
			}
			if a != b {
				match = false
				break
			}
		}
		if match {
			return types.Ok(types.NewInt(int64(i)))
		}
	}
	return types.Ok(types.NewInt(-1))
}

// builtinUpcase converts string to uppercase
// upcase(str) -> str
func builtinUpcase(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}
	str, ok := args[0].(types.StrValue)
	if !ok {
		return types.Err(types.E_TYPE)
	}
	return types.Ok(types.NewStr(strings.ToUpper(str.Value())))
}

// builtinDowncase converts string to lowercase
// downcase(str) -> str
func builtinDowncase(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}
	str, ok := args[0].(types.StrValue)
	if !ok {
		return types.Err(types.E_TYPE)
	}
	return types.Ok(types.NewStr(strings.ToLower(str.Value())))
}

// builtinExplode splits a string into a list of substrings
// explode(str [, delimiter]) -> list
func builtinExplode(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) < 1 || len(args) > 2 {
		return types.Err(types.E_ARGS)
	}

	str, ok := args[0].(types.StrValue)
	if !ok {
		return types.Err(types.E_TYPE)
	}

	var parts []string
	if len(args) == 1 {
		// No delimiter - split on whitespace
		parts = strings.Fields(str.Value())
	} else {
		delim, ok := args[1].(types.StrValue)
		if !ok {
			return types.Err(types.E_TYPE)
		}
		if delim.Value() == "" {
			return types.Errf(types.E_INVARG, "explode() delimiter must not be empty")
		}
		parts = strings.Split(str.Value(), delim.Value())
	}

	values := make([]types.Value, len(parts))
	for i, part := range parts {
		values[i] = types.NewStr(part)
	}
	return types.Ok(types.NewList(values))
}

// builtinImplode joins a list of strings into a single string
// implode(list [, delimiter]) -> str
func builtinImplode(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) < 1 || len(args) > 2 {
		return types.Err(types.E_ARGS)
	}

	list, ok := args[0].(types.ListValue)
	if !ok {
		return types.Err(types.E_TYPE)
	}

	delimiter := ""
	if len(args) == 2 {
		delim, ok := args[1].(types.StrValue)
		if !ok {
			return types.Err(types.E_TYPE)
		}
		delimiter = delim.Value()
	}

	parts := make([]string, list.Len())
	for i, elem := range list.Elements() {
		str, ok := elem.(types.StrValue)
		if !ok {
			return types.Errf(types.E_TYPE, "implode() element %d is %s, not string", i, types.TypeName(elem))
		}
		parts[i] = str.Value()
	}
	return types.Ok(types.NewStr(strings.Join(parts, delimiter)))
}

// builtinTrim removes leading and trailing whitespace
// trim(str) -> str
func builtinTrim(ctx *types.TaskContext, args []types.Value) types.Result {
	if len(args) != 1 {
		return types.Err(types.E_ARGS)
	}
	str, ok := args[0].(types.StrValue)
	if !ok {
		return types.Err(types.E_TYPE)
	}
	return types.Ok(types.NewStr(strings.TrimSpace(str.Value())))
}

// optionalBool reads an optional Boolean flag at position i
func optionalBool(args []types.Value, i int) (bool, types.Result) {
	if len(args) <= i {
		return false, types.Ok(types.Null)
	}
	b, ok := args[i].(types.BoolValue)
	if !ok {
		return false, types.Errf(types.E_TYPE, "expected boolean flag, got %s", types.TypeName(args[i]))
	}
	return b.Val, types.Ok(b)
}

func replaceAllCaseInsensitive(s, old, replacement string) string {
	lowerS := strings.ToLower(s)
	lowerOld := strings.ToLower(old)
	if len(lowerS) != len(s) || len(lowerOld) != len(old) {
		// Lowercasing changed byte lengths; offsets would not line up
		return strings.ReplaceAll(s, old, replacement)
	}

	var sb strings.Builder
	i := 0
	for {
		j := strings.Index(lowerS[i:], lowerOld)
		if j < 0 {
			sb.WriteString(s[i:])
			return sb.String()
		}
		sb.WriteString(s[i : i+j])
		sb.WriteString(replacement)
		i += j + len(old)
	}
}
