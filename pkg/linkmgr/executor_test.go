package linkmgr

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/evelink/evelink/pkg/util"
)

// fakeRunner records every invocation and replays scripted outputs/errors
// per call index.
type fakeRunner struct {
	calls [][]string
	outs  []string
	errs  []error
}

func (r *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	i := len(r.calls)
	r.calls = append(r.calls, append([]string{name}, args...))

	var out []byte
	if i < len(r.outs) {
		out = []byte(r.outs[i])
	}
	var err error
	if i < len(r.errs) {
		err = r.errs[i]
	}
	return out, err
}

type panicRunner struct{}

func (panicRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	panic("runner exploded")
}

func newTestExecutor(r Runner) *Executor {
	return NewExecutor(r, "", "/opt/unetlab/labs/demo/core.unl", util.NewTestLogger())
}

func TestTransitionBuildsWrapperCommand(t *testing.T) {
	runner := &fakeRunner{}
	exec := newTestExecutor(runner)

	ep := Endpoint{DeviceID: "3", InterfaceID: "1"}
	res := exec.Transition(context.Background(), ep, OpSuspend, false)
	if !res.OK {
		t.Fatalf("Transition failed: %s", res.Message)
	}
	if res.Message != "successfully suspended device 3 interface 1" {
		t.Errorf("unexpected message: %q", res.Message)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("expected 1 runner call, got %d", len(runner.calls))
	}
	want := []string{
		"sudo", DefaultWrapperPath,
		"-a", "suspendlink",
		"-T", "0",
		"-I", "1",
		"-D", "3",
		"-F", "/opt/unetlab/labs/demo/core.unl",
	}
	got := runner.calls[0]
	if len(got) != len(want) {
		t.Fatalf("expected %d argv elements, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTransitionResumeAction(t *testing.T) {
	runner := &fakeRunner{}
	exec := newTestExecutor(runner)

	res := exec.Transition(context.Background(), Endpoint{DeviceID: "1", InterfaceID: "0"}, OpResume, false)
	if !res.OK {
		t.Fatalf("Transition failed: %s", res.Message)
	}
	if runner.calls[0][3] != "resumelink" {
		t.Errorf("expected resumelink action, got %q", runner.calls[0][3])
	}
	if !strings.Contains(res.Message, "resumed") {
		t.Errorf("expected past-tense message, got %q", res.Message)
	}
}

func TestTransitionFailureCarriesDiagnostic(t *testing.T) {
	runner := &fakeRunner{
		outs: []string{"Cannot find interface (80056)"},
		errs: []error{errors.New("sudo: exit status 1")},
	}
	exec := newTestExecutor(runner)

	res := exec.Transition(context.Background(), Endpoint{DeviceID: "9", InterfaceID: "2"}, OpSuspend, false)
	if res.OK {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.Message, "failed to suspend device 9 interface 2") {
		t.Errorf("missing failure prefix: %q", res.Message)
	}
	if !strings.Contains(res.Message, "Cannot find interface (80056)") {
		t.Errorf("missing wrapper diagnostic: %q", res.Message)
	}
}

func TestTransitionDryRunSkipsRunner(t *testing.T) {
	runner := &fakeRunner{}
	exec := newTestExecutor(runner)

	res := exec.Transition(context.Background(), Endpoint{DeviceID: "1", InterfaceID: "0"}, OpSuspend, true)
	if !res.OK {
		t.Fatalf("dry run failed: %s", res.Message)
	}
	if len(runner.calls) != 0 {
		t.Errorf("dry run invoked the runner %d times", len(runner.calls))
	}
	if !strings.Contains(res.Message, "DRY RUN") {
		t.Errorf("missing dry-run marker: %q", res.Message)
	}
	if !strings.Contains(res.Message, "sudo "+DefaultWrapperPath) {
		t.Errorf("dry-run message should carry the command: %q", res.Message)
	}
}

func TestTransitionRejectsFlapOp(t *testing.T) {
	runner := &fakeRunner{}
	exec := newTestExecutor(runner)

	res := exec.Transition(context.Background(), Endpoint{DeviceID: "1", InterfaceID: "0"}, OpFlap, false)
	if res.OK {
		t.Fatal("expected failure for flap at the transition level")
	}
	if len(runner.calls) != 0 {
		t.Errorf("invalid op invoked the runner %d times", len(runner.calls))
	}
}

func TestTransitionRecoversRunnerPanic(t *testing.T) {
	exec := newTestExecutor(panicRunner{})

	res := exec.Transition(context.Background(), Endpoint{DeviceID: "1", InterfaceID: "0"}, OpSuspend, false)
	if res.OK {
		t.Fatal("expected failure after runner panic")
	}
	if !strings.Contains(res.Message, "internal error") {
		t.Errorf("unexpected message: %q", res.Message)
	}
}

func TestExecutorWrapperPathOverride(t *testing.T) {
	runner := &fakeRunner{}
	exec := NewExecutor(runner, "/usr/local/bin/unl_wrapper", "/opt/unetlab/labs/x.unl", util.NewTestLogger())

	exec.Transition(context.Background(), Endpoint{DeviceID: "1", InterfaceID: "0"}, OpSuspend, false)
	if runner.calls[0][1] != "/usr/local/bin/unl_wrapper" {
		t.Errorf("wrapper path not honored: %v", runner.calls[0])
	}
}

func TestRejected(t *testing.T) {
	if err := Rejected(Result{OK: true, Message: "fine"}); err != nil {
		t.Errorf("Rejected on success = %v, want nil", err)
	}
	err := Rejected(Result{OK: false, Message: "nope"})
	if !errors.Is(err, util.ErrTransitionRejected) {
		t.Errorf("Rejected error should wrap ErrTransitionRejected, got %v", err)
	}
}
