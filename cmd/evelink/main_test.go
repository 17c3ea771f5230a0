package main

import (
	"errors"
	"testing"

	"github.com/evelink/evelink/pkg/linkmgr"
	"github.com/evelink/evelink/pkg/util"
)

func TestCommandTree(t *testing.T) {
	registered := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, want := range []string{
		"suspend", "resume", "flap", "batch",
		"inventory", "host", "settings", "version",
	} {
		if !registered[want] {
			t.Errorf("command %q not registered", want)
		}
	}
}

func TestTransitionCommandConstruction(t *testing.T) {
	for _, op := range []linkmgr.Op{opSuspend, opResume} {
		cmd := newTransitionCmd(op)
		if cmd.Use != string(op) {
			t.Errorf("command use = %q, want %q", cmd.Use, op)
		}
		for _, flag := range []string{"device-id", "interface-id", "device", "interface", "host-interface", "dry-run"} {
			if cmd.Flags().Lookup(flag) == nil {
				t.Errorf("%s: missing flag --%s", op, flag)
			}
		}
	}
}

func TestOpPastTense(t *testing.T) {
	tests := []struct {
		op   linkmgr.Op
		want string
	}{
		{linkmgr.OpSuspend, "suspended"},
		{linkmgr.OpResume, "resumed"},
		{linkmgr.OpFlap, "flapped"},
	}
	for _, tt := range tests {
		if got := tt.op.Past(); got != tt.want {
			t.Errorf("%s.Past() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestPrintResultFailureCategory(t *testing.T) {
	if err := printResult(linkmgr.Result{OK: true, Message: "fine"}); err != nil {
		t.Errorf("printResult on success = %v, want nil", err)
	}

	err := printResult(linkmgr.Result{OK: false, Message: "wrapper said no"})
	if err == nil {
		t.Fatal("expected error for failed result")
	}
	if !errors.Is(err, util.ErrTransitionRejected) {
		t.Errorf("error should wrap ErrTransitionRejected, got %v", err)
	}
}
