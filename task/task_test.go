package task

import (
	"strings"
	"testing"

	"echo/types"
)

func TestCallStack(t *testing.T) {
	tk := NewTask(1, types.SystemObject, 0, 0)
	if FromContext(tk.Context) != tk {
		t.Fatal("Context does not point back at its task")
	}
	if tk.GetTopFrame() != nil {
		t.Error("New task should have no frames")
	}

	tk.PushFrame(ActivationFrame{Verb: "outer", VerbLoc: types.RootObject, This: types.RootObject})
	tk.PushFrame(ActivationFrame{Kind: FrameLambda, Verb: "<lambda>"})
	if top := tk.GetTopFrame(); top == nil || top.Kind != FrameLambda {
		t.Errorf("Unexpected top frame %+v", top)
	}

	stack := tk.GetCallStack()
	tk.PopFrame()
	if len(stack) != 2 {
		t.Errorf("Copy of call stack changed after PopFrame: %d frames", len(stack))
	}
	if len(tk.GetCallStack()) != 1 {
		t.Errorf("Expected 1 frame after pop, got %d", len(tk.GetCallStack()))
	}
}

func TestFinish(t *testing.T) {
	tests := []struct {
		name   string
		result types.Result
		state  TaskState
	}{
		{"normal", types.Ok(types.NewInt(1)), TaskCompleted},
		{"error", types.Err(types.E_TYPE), TaskAborted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := NewTask(1, types.SystemObject, 0, 0)
			tk.Finish(tt.result)
			if tk.GetState() != tt.state {
				t.Errorf("Expected %s, got %s", tt.state, tk.GetState())
			}
		})
	}
}

func TestManager(t *testing.T) {
	m := NewManager()
	a := m.CreateTask(types.SystemObject, 10, 0)
	b := m.CreateTask(types.RootObject, 10, 0)
	if a.ID == b.ID {
		t.Fatal("Task ids should be unique")
	}
	if a.Context.MaxDepth != 10 {
		t.Errorf("Expected MaxDepth 10, got %d", a.Context.MaxDepth)
	}

	a.SetState(TaskRunning)
	if got := m.Running(types.SystemObject); len(got) != 1 || got[0] != a {
		t.Errorf("Expected one running task for #0, got %v", got)
	}
	m.RemoveTask(a.ID)
	if m.GetTask(a.ID) != nil {
		t.Error("RemoveTask did not remove the task")
	}
}

func TestFormatTraceback(t *testing.T) {
	stack := []ActivationFrame{
		{Verb: "outer", VerbLoc: types.RootObject, This: types.RootObject},
		{Verb: "inner", VerbLoc: types.SystemObject, This: types.SystemObject},
	}
	lines := FormatTraceback(stack, "Division by zero", types.SystemObject)
	expected := []string{
		"#0 <- #0:inner (this == #0):  Division by zero",
		"#0 <- ... called from #1:outer (this == #1)",
		"#0 <- (End of traceback)",
	}
	if strings.Join(lines, "\n") != strings.Join(expected, "\n") {
		t.Errorf("Unexpected traceback:\n%s", strings.Join(lines, "\n"))
	}

	empty := FormatTraceback(nil, "oops", types.SystemObject)
	if len(empty) != 2 || !strings.Contains(empty[0], "(no stack)") {
		t.Errorf("Unexpected empty traceback %q", empty)
	}
}
