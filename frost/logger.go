package frost

import "log"

// Logger is the round-transition breadcrumb seam a Participant reports
// through, shaped after the gjkr.Logger field in the teacher's sibling
// protocol (threshold.network/roast/gjkr/member.go). It carries no
// structured-logging dependency of its own; a caller that wants one wraps it
// around, say, a zap or logrus handle.
type Logger interface {
	Printf(format string, args ...any)
}

// stdLogger adapts the standard library's *log.Logger to Logger. It is the
// zero-value default: while Participant.Logger is nil, every breadcrumb is
// written through one backed by log.Default(), so round-transition
// breadcrumbs are never silently dropped just because a caller left the
// field unset.
type stdLogger struct {
	*log.Logger
}

func (p *Participant) logger() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return stdLogger{log.Default()}
}

func (p *Participant) logRoundComplete(round string) {
	p.logger().Printf("frost: participant %d completed %s", p.Index, round)
}
