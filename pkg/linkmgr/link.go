package linkmgr

import "context"

// TransitionLink applies op to both endpoints of a link, endpoint 1 strictly
// before endpoint 2. No atomic two-sided primitive exists at the wrapper
// boundary, so the calls are sequential and a failure on one side leaves the
// link half-applied; that state is reported, never rolled back.
//
// The combined Result succeeds iff both endpoint transitions succeed. When
// both fail, endpoint 1's message wins; endpoint 2 is attempted regardless,
// so the lab's partial state is accurate.
func (e *Executor) TransitionLink(ctx context.Context, ep1, ep2 Endpoint, op Op, dryRun bool) Result {
	e.logger.WithField("op", op).Infof("transitioning link: %s <-> %s", ep1, ep2)

	r1 := e.Transition(ctx, ep1, op, dryRun)
	r2 := e.Transition(ctx, ep2, op, dryRun)

	switch {
	case r1.OK && r2.OK:
		return success("successfully %s link between %s and %s", op.Past(), ep1, ep2)
	case !r1.OK:
		return failure("failed to %s first side of link: %s", op, r1.Message)
	default:
		return failure("failed to %s second side of link: %s", op, r2.Message)
	}
}
