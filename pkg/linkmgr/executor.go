package linkmgr

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/evelink/evelink/pkg/util"
)

// DefaultWrapperPath is where EVE-NG installs unl_wrapper.
const DefaultWrapperPath = "/opt/unetlab/wrappers/unl_wrapper"

// dryRunMarker prefixes every message produced without external effect.
const dryRunMarker = "DRY RUN"

// Executor issues suspend/resume transitions for single endpoints and links
// by invoking unl_wrapper through a Runner. Every call returns exactly one
// Result; executor faults never propagate as panics or errors.
type Executor struct {
	runner      Runner
	wrapperPath string
	labPath     string // absolute on-server lab path for the -F argument
	logger      *logrus.Logger
}

// NewExecutor creates an Executor targeting the given lab. An empty
// wrapperPath selects DefaultWrapperPath.
func NewExecutor(runner Runner, wrapperPath, labPath string, logger *logrus.Logger) *Executor {
	if wrapperPath == "" {
		wrapperPath = DefaultWrapperPath
	}
	return &Executor{
		runner:      runner,
		wrapperPath: wrapperPath,
		labPath:     labPath,
		logger:      logger,
	}
}

// Transition suspends or resumes one endpoint. In dry-run mode no external
// command runs and the successful Result's message carries the DRY RUN
// marker plus the exact command that would have been executed.
func (e *Executor) Transition(ctx context.Context, ep Endpoint, op Op, dryRun bool) (res Result) {
	action, ok := op.wrapperAction()
	if !ok {
		return failure("unsupported transition operation %q for %s", op, ep)
	}

	log := util.WithEndpoint(e.logger, ep.DeviceID, ep.InterfaceID).WithField("op", op)
	log.Info("transitioning interface")

	args := []string{
		e.wrapperPath,
		"-a", action,
		"-T", "0",
		"-I", ep.InterfaceID,
		"-D", ep.DeviceID,
		"-F", e.labPath,
	}
	cmdStr := "sudo " + strings.Join(args, " ")

	if dryRun {
		log.Infof("%s - would execute: %s", dryRunMarker, cmdStr)
		return success("%s - would %s %s with command: %s", dryRunMarker, op, ep, cmdStr)
	}

	// The runner boundary must not leak faults of any kind.
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("runner panic: %v", r)
			res = failure("failed to %s %s: internal error: %v", op, ep, r)
		}
	}()

	out, err := e.runner.Run(ctx, "sudo", args...)
	if err != nil {
		msg := fmt.Sprintf("failed to %s %s: %v", op, ep, err)
		if diag := strings.TrimSpace(string(out)); diag != "" {
			msg += ": " + diag
		}
		log.WithError(err).Error("transition rejected")
		return Result{OK: false, Message: msg}
	}

	return success("successfully %s %s", op.Past(), ep)
}

// Rejected wraps a failed Result's message in the error taxonomy, for
// callers that need an error value rather than a Result.
func Rejected(res Result) error {
	if res.OK {
		return nil
	}
	return fmt.Errorf("%s: %w", res.Message, util.ErrTransitionRejected)
}
