// Package pattern implements a lazy, algebraic pattern language in the
// tradition of TidalCycles: a Pattern is a function from a half-open
// rational time window to the set of discrete events intersecting it,
// not a stored event list. Combinators build a DAG of such functions;
// querying is a pure, total operation with no hidden state.
package pattern

import (
	"io"
	"log"
	"os"

	"github.com/cbegin/tidalcore-go/internal/rational"
	"github.com/cbegin/tidalcore-go/internal/tspan"
	"github.com/cbegin/tidalcore-go/internal/voice"
)

// Diagnostics is where coercion failures and caught callback panics are
// logged. Tests redirect it with SetDiagnosticsOutput.
var Diagnostics = log.New(os.Stderr, "tidalcore: ", 0)

// SetDiagnosticsOutput redirects the package's diagnostic logger.
func SetDiagnosticsOutput(w io.Writer) {
	Diagnostics = log.New(w, "tidalcore: ", 0)
}

// SourceLoc is an optional provenance marker threaded through parsing and
// coercion for error reporting by callers; the core never inspects its
// contents.
type SourceLoc struct {
	Source string
	Line   int
	Col    int
}

// QueryContext carries the ambient cycle origin and optional cooperative
// cancellation for a single top-level query. It is a plain struct with a
// default constructor — there is no broader process configuration layer
// for this library.
type QueryContext struct {
	CycleOrigin rational.Rational
	Cancel      <-chan struct{}
}

// DefaultQueryContext returns the zero-configured context used by Query.
func DefaultQueryContext() QueryContext {
	return QueryContext{CycleOrigin: rational.Zero()}
}

// Cancelled reports whether ctx's cancellation token has fired. Sequence,
// Stack, Structure, the joins, the Euclidean control path, Rev, Iter,
// When and Layer check it in their loops and return a partial result;
// Zoom, StepJoin, the "<a b>" alternation, RepeatCycles and Chunk iterate
// over cycles without checking it.
func (ctx QueryContext) Cancelled() bool {
	if ctx.Cancel == nil {
		return false
	}
	select {
	case <-ctx.Cancel:
		return true
	default:
		return false
	}
}

// Event is one discrete occurrence: whole is the onset span of the
// logical note (nil for an analog/continuous sample), part is the
// portion visible in the query that produced it.
type Event struct {
	Whole *tspan.TimeSpan
	Part  tspan.TimeSpan
	Data  voice.Data
}

// IsOnset reports whether this event represents the start of its whole
// (part.begin == whole.begin); a straddling clipped event is not an
// onset.
func (e Event) IsOnset() bool {
	if e.Whole == nil {
		return true
	}
	return e.Whole.Begin.Equal(e.Part.Begin)
}

// Shift translates both whole and part by delta.
func (e Event) Shift(delta rational.Rational) Event {
	out := e
	out.Part = e.Part.Shift(delta)
	if e.Whole != nil {
		w := e.Whole.Shift(delta)
		out.Whole = &w
	}
	return out
}

// WithPart returns a copy of e with part replaced, leaving whole intact.
func (e Event) WithPart(part tspan.TimeSpan) Event {
	out := e
	out.Part = part
	return out
}

// WithWhole returns a copy of e with whole replaced.
func (e Event) WithWhole(whole *tspan.TimeSpan) Event {
	out := e
	out.Whole = whole
	return out
}

// MapData returns a copy of e with its voice data transformed by f.
func (e Event) MapData(f func(voice.Data) voice.Data) Event {
	out := e
	out.Data = f(e.Data)
	return out
}

// Pattern is the abstract value every combinator implements: a pure
// query function plus the metadata sequence allocators need.
type Pattern interface {
	// Query returns every event whose part overlaps [from, to), clipped to
	// that window on part (whole is preserved).
	Query(from, to rational.Rational, ctx QueryContext) []Event
	// Weight is the proportional share this pattern claims inside a
	// Sequence; default 1.0.
	Weight() float64
	// NumSteps is the logical step count per cycle, when known.
	NumSteps() (rational.Rational, bool)
	// EstimateCycleDuration is the length of one repeat; default 1.
	EstimateCycleDuration() rational.Rational
}

// base supplies the default Weight/NumSteps/EstimateCycleDuration that
// most combinators embed and selectively override, the way a trait's
// default methods would be overridden only where behavior differs.
type base struct{}

func (base) Weight() float64 { return 1.0 }
func (base) NumSteps() (rational.Rational, bool) {
	return rational.Rational{}, false
}
func (base) EstimateCycleDuration() rational.Rational { return rational.One() }

// recoverCallback runs f and, if it panics, logs one diagnostic and
// returns ok=false so the caller can drop the affected layer and
// continue — user callbacks must never propagate a panic out of Query.
func recoverCallback(name string, f func()) (ok bool) {
	ok = true
	defer func() {
		if r := recover(); r != nil {
			Diagnostics.Printf("callback %q panicked: %v; dropping layer", name, r)
			ok = false
		}
	}()
	f()
	return
}

// sortEvents stable-sorts by part.Begin, preserving the caller-determined
// relative order of ties (child insertion order, left-to-right sequence
// position, or join outer-then-inner traversal).
func sortEvents(evs []Event) []Event {
	// insertion sort: the expected per-cycle event counts are small and
	// the ordering need only be stable, not asymptotically optimal.
	for i := 1; i < len(evs); i++ {
		j := i
		for j > 0 && evs[j].Part.Begin.Less(evs[j-1].Part.Begin) {
			evs[j], evs[j-1] = evs[j-1], evs[j]
			j--
		}
	}
	return evs
}
