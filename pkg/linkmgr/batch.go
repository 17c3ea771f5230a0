package linkmgr

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/evelink/evelink/pkg/util"
)

// BatchRequest configures one batch run.
type BatchRequest struct {
	Op     Op
	DryRun bool

	// Count and Delay apply only to flap operations.
	Count int
	Delay time.Duration
}

// Outcome is the batch-level return value: counters only. Per-line detail
// travels through the ReportFunc.
type Outcome struct {
	Succeeded int
	Failed    int
}

// LineReport preserves per-line traceability for operator review.
type LineReport struct {
	Line   int    // 1-based line number in the input
	Text   string // raw line text after trimming
	Result Result
}

// ReportFunc receives one report per processed (non-skipped) line.
type ReportFunc func(LineReport)

// BatchRunner processes a line-oriented transition-request list. Individual
// line failures never halt the batch; they are counted and reported.
type BatchRunner struct {
	exec     *Executor
	flapper  *Flapper
	resolver *Resolver
	logger   *logrus.Logger
	report   ReportFunc
}

// NewBatchRunner creates a BatchRunner. report may be nil when the caller
// only needs the counters.
func NewBatchRunner(exec *Executor, flapper *Flapper, resolver *Resolver, logger *logrus.Logger, report ReportFunc) *BatchRunner {
	return &BatchRunner{
		exec:     exec,
		flapper:  flapper,
		resolver: resolver,
		logger:   logger,
		report:   report,
	}
}

// Run reads requests from r, one per line. Blank lines and lines starting
// with "#" are skipped without affecting the counters. Each remaining line
// is either a 4-field link record (explicit IDs) or a 2-field name record
// (resolved first); any other field count fails that line only.
//
// The returned error covers input-level problems (unreadable source,
// invalid operation), never individual line outcomes.
func (b *BatchRunner) Run(ctx context.Context, r io.Reader, req BatchRequest) (Outcome, error) {
	var out Outcome

	if !req.Op.Valid() {
		return out, fmt.Errorf("batch: invalid operation %q (must be suspend, resume, or flap)", req.Op)
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		res := b.runLine(ctx, lineNo, line, req)
		if res.OK {
			out.Succeeded++
		} else {
			out.Failed++
		}
		if b.report != nil {
			b.report(LineReport{Line: lineNo, Text: line, Result: res})
		}
	}
	if err := scanner.Err(); err != nil {
		return out, fmt.Errorf("batch: read input: %w", err)
	}

	b.logger.WithFields(logrus.Fields{
		"succeeded": out.Succeeded,
		"failed":    out.Failed,
	}).Info("batch processing complete")
	return out, nil
}

func (b *BatchRunner) runLine(ctx context.Context, lineNo int, line string, req BatchRequest) Result {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	switch len(fields) {
	case 4:
		ep1 := Endpoint{DeviceID: fields[0], InterfaceID: fields[1]}
		ep2 := Endpoint{DeviceID: fields[2], InterfaceID: fields[3]}
		if req.Op == OpFlap {
			return b.flapLink(ctx, ep1, ep2, req)
		}
		return b.exec.TransitionLink(ctx, ep1, ep2, req.Op, req.DryRun)

	case 2:
		ep, err := b.resolveEndpoint(ctx, fields[0], fields[1])
		if err != nil {
			return Result{OK: false, Message: err.Error()}
		}
		if req.Op == OpFlap {
			return b.flapper.Flap(ctx, ep, req.Count, req.Delay, req.DryRun)
		}
		return b.exec.Transition(ctx, ep, req.Op, req.DryRun)

	default:
		merr := &util.MalformedRecordError{Line: lineNo, Fields: len(fields)}
		b.logger.Warn(merr.Error())
		return Result{OK: false, Message: merr.Error()}
	}
}

// flapLink flaps both endpoints of a link record independently, endpoint 1's
// full sequence first. The line succeeds only when both sequences succeed;
// on a double failure endpoint 1's message wins.
func (b *BatchRunner) flapLink(ctx context.Context, ep1, ep2 Endpoint, req BatchRequest) Result {
	r1 := b.flapper.Flap(ctx, ep1, req.Count, req.Delay, req.DryRun)
	r2 := b.flapper.Flap(ctx, ep2, req.Count, req.Delay, req.DryRun)

	switch {
	case r1.OK && r2.OK:
		return success("flapped link between %s and %s", ep1, ep2)
	case !r1.OK:
		return r1
	default:
		return r2
	}
}

// resolveEndpoint maps a (device name, interface name) pair to provider IDs.
// Either miss surfaces as an error wrapping util.ErrNotFound.
func (b *BatchRunner) resolveEndpoint(ctx context.Context, deviceName, interfaceName string) (Endpoint, error) {
	deviceID, err := b.resolver.ResolveDevice(ctx, deviceName)
	if err != nil {
		return Endpoint{}, err
	}
	interfaceID, err := b.resolver.ResolveInterface(ctx, deviceID, interfaceName)
	if err != nil {
		return Endpoint{}, err
	}
	return Endpoint{DeviceID: deviceID, InterfaceID: interfaceID}, nil
}
