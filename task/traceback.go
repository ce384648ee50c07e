package task

import "fmt"

// FormatTraceback formats a call stack and error message:
//
//	#<player> <- #<verb_loc>:<verb> (this == #<this>):  <error message>
//	#<player> <- ... called from #<verb_loc>:<verb> (this == #<this>)
//	#<player> <- (End of traceback)
func FormatTraceback(stack []ActivationFrame, message string, player fmt.Stringer) []string {
	if len(stack) == 0 {
		return []string{
			fmt.Sprintf("%s <- (no stack):  %s", player, message),
			fmt.Sprintf("%s <- (End of traceback)", player),
		}
	}

	var lines []string

	// Walk the stack from top (most recent) to bottom (oldest)
	for i := len(stack) - 1; i >= 0; i-- {
		frame := &stack[i]
		where := frameLabel(frame)
		if i == len(stack)-1 {
			lines = append(lines, fmt.Sprintf("%s <- %s:  %s", player, where, message))
		} else {
			lines = append(lines, fmt.Sprintf("%s <- ... called from %s", player, where))
		}
	}

	lines = append(lines, fmt.Sprintf("%s <- (End of traceback)", player))
	return lines
}

func frameLabel(frame *ActivationFrame) string {
	switch frame.Kind {
	case FrameLambda:
		return "<lambda>"
	case FrameHandler:
		return fmt.Sprintf("%s on %s (this == %s)", frame.VerbLoc, frame.Verb, frame.This)
	default:
		return fmt.Sprintf("%s:%s (this == %s)", frame.VerbLoc, frame.Verb, frame.This)
	}
}
