package linkmgr

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/evelink/evelink/pkg/util"
)

// Sleeper injects the inter-step delay, letting tests run flap sequences
// without wall-clock waits.
type Sleeper func(time.Duration)

// Flapper drives repeated suspend/resume cycles against one endpoint.
type Flapper struct {
	exec   *Executor
	sleep  Sleeper
	logger *logrus.Logger
}

// NewFlapper creates a Flapper using real time.Sleep delays.
func NewFlapper(exec *Executor, logger *logrus.Logger) *Flapper {
	return &Flapper{exec: exec, sleep: time.Sleep, logger: logger}
}

// Flap runs count suspend→delay→resume cycles against ep, with delay
// between consecutive cycles and no delay after the final resume. Any
// failing step aborts the whole sequence immediately with that step's
// message; earlier completed cycles are not reported.
//
// Dry-run suppresses the wrapper invocations but keeps the real delays,
// so rehearsals have faithful timing. Pass delay 0 to skip the waits.
func (f *Flapper) Flap(ctx context.Context, ep Endpoint, count int, delay time.Duration, dryRun bool) Result {
	if count < 1 {
		return failure("flap count must be at least 1, got %d", count)
	}

	log := util.WithEndpoint(f.logger, ep.DeviceID, ep.InterfaceID)
	log.Infof("flapping interface %d times with %s delay", count, delay)

	for i := 0; i < count; i++ {
		log.Infof("flap %d/%d", i+1, count)

		if r := f.exec.Transition(ctx, ep, OpSuspend, dryRun); !r.OK {
			return failure("failed to flap %s (suspend failed): %s", ep, r.Message)
		}

		f.sleep(delay)

		if r := f.exec.Transition(ctx, ep, OpResume, dryRun); !r.OK {
			return failure("failed to flap %s (resume failed): %s", ep, r.Message)
		}

		if i < count-1 {
			f.sleep(delay)
		}
	}

	if dryRun {
		return success("%s - would flap %s %d times with %s delay", dryRunMarker, ep, count, delay)
	}
	return success("successfully flapped %s %d times with %s delay", ep, count, delay)
}
