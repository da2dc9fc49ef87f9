package pattern

import (
	"strconv"
	"sync"

	"github.com/cbegin/tidalcore-go/internal/rational"
	"github.com/cbegin/tidalcore-go/internal/voice"
)

// DslKind tags the heterogeneous shape a DslArg.Value may carry: the DSL
// binding layer accepts mini-notation strings, nested lists, numbers,
// booleans, functions, other patterns, or control patterns, uniformly.
// Modeled as a concrete tagged struct, the same choice voice.Value makes,
// rather than `any`: every combinator enumerates the shapes it accepts,
// so no runtime reflection is needed.
type DslKind int

const (
	DslPattern DslKind = iota
	DslString
	DslNumber
	DslBool
	DslList
	DslMap
	DslFunc
)

// DslValue is the payload of one DSL argument; exactly the field named
// by Kind is meaningful.
type DslValue struct {
	Pattern Pattern
	Str     string
	Num     float64
	Bool    bool
	List    []DslArg
	Map     map[string]DslArg
	Func    func(Pattern) Pattern
	Kind    DslKind
}

// DslArg is one user-supplied argument to a facade operator: a value
// plus an optional source-location hint threaded through for
// diagnostics (parse errors, dropped layers).
type DslArg struct {
	Value DslValue
	Loc   *SourceLoc
}

func PatternArg(p Pattern) DslArg               { return DslArg{Value: DslValue{Kind: DslPattern, Pattern: p}} }
func StringArg(s string) DslArg                 { return DslArg{Value: DslValue{Kind: DslString, Str: s}} }
func NumberArg(n float64) DslArg                { return DslArg{Value: DslValue{Kind: DslNumber, Num: n}} }
func BoolArg(b bool) DslArg                     { return DslArg{Value: DslValue{Kind: DslBool, Bool: b}} }
func ListArg(items ...DslArg) DslArg            { return DslArg{Value: DslValue{Kind: DslList, List: items}} }
func MapArg(m map[string]DslArg) DslArg         { return DslArg{Value: DslValue{Kind: DslMap, Map: m}} }
func FuncArg(f func(Pattern) Pattern) DslArg    { return DslArg{Value: DslValue{Kind: DslFunc, Func: f}} }

// Modifier writes a coerced scalar value into one field of a fresh
// voice.Data record. Each operator supplies its own ("note" sets Note,
// "gain" sets Gain), defaulting to writing the generic Value field for
// operators (like pick) that don't own a dedicated field.
type Modifier func(voice.Data, voice.Value) voice.Data

// DefaultModifier writes into the generic catch-all Value field.
func DefaultModifier(d voice.Data, v voice.Value) voice.Data {
	d.Value = v
	return d
}

// ToPattern implements the DSL coercion pipeline (§4.8 of the design):
//  1. already a pattern -> used as-is.
//  2. a string -> parsed as mini-notation, each atom coerced via modifier;
//     a non-numeric atom that the modifier stores in Value also names the
//     event's Sound.
//  3. a number/bool -> wrapped in an Atomic via modifier.
//  4. a list -> a nested sub-sequence, or weighted [duration, pattern]
//     pairs when every element has that shape (arrange/stepcat).
//  5. anything else -> a coercion failure: log once, contribute Silence.
func ToPattern(arg DslArg, modifier Modifier) Pattern {
	if modifier == nil {
		modifier = DefaultModifier
	}
	switch arg.Value.Kind {
	case DslPattern:
		if arg.Value.Pattern == nil {
			return Silence
		}
		return arg.Value.Pattern
	case DslString:
		return ParseMininotation(arg.Value.Str, arg.Loc, func(token string, idx *int, loc *SourceLoc) Pattern {
			return modifierAtomFactory(token, idx, modifier)
		})
	case DslNumber:
		return Atomic(modifier(voice.Data{}, voice.NumValue(arg.Value.Num)))
	case DslBool:
		return Atomic(modifier(voice.Data{}, voice.BoolValue(arg.Value.Bool)))
	case DslList:
		return coerceList(arg.Value.List, modifier)
	default:
		Diagnostics.Printf("dsl: cannot coerce argument of kind %v to a pattern; dropping", arg.Value.Kind)
		return Silence
	}
}

func modifierAtomFactory(token string, soundIndex *int, modifier Modifier) Pattern {
	if token == "" {
		return Silence
	}
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return Atomic(modifier(voice.Data{}, voice.NumValue(f)))
	}
	d := modifier(voice.Data{}, voice.StrValue(token))
	if d.Sound == nil && d.Value.Kind == voice.KindStr {
		t := token
		d.Sound = &t
	}
	if soundIndex != nil {
		si := float64(*soundIndex)
		d.SoundIndex = &si
	}
	return Atomic(d)
}

// coerceList implements coercion step 4: a nested sub-sequence, unless
// every element is itself a two-element [number, pattern-like] list, in
// which case the list is treated as weighted arrange/stepcat entries.
func coerceList(items []DslArg, modifier Modifier) Pattern {
	if len(items) == 0 {
		return Silence
	}
	if isWeightedPairList(items) {
		segs := make([]ArrangeSegment, 0, len(items))
		for _, it := range items {
			pair := it.Value.List
			segs = append(segs, ArrangeSegment{
				Duration: pair[0].Value.Num,
				Pattern:  ToPattern(pair[1], modifier),
			})
		}
		return Arrange(segs...)
	}
	children := make([]Pattern, len(items))
	for i, it := range items {
		children[i] = ToPattern(it, modifier)
	}
	return Seq(children...)
}

// isWeightedPairList recognizes the [duration, pattern] shape: every
// entry must itself be a 2-element list whose first element is numeric.
func isWeightedPairList(items []DslArg) bool {
	for _, it := range items {
		if it.Value.Kind != DslList || len(it.Value.List) != 2 {
			return false
		}
		if it.Value.List[0].Value.Kind != DslNumber {
			return false
		}
	}
	return true
}

// CoerceLookup reifies a pick-family lookup argument (§4.6): an ordered
// list or a key->value map, never both. Values coerce the same way
// ToPattern does, with the pick-family default of writing into the
// generic Value field.
func CoerceLookup(arg DslArg) Lookup {
	switch arg.Value.Kind {
	case DslList:
		list := make([]Pattern, len(arg.Value.List))
		for i, it := range arg.Value.List {
			list[i] = ToPattern(it, DefaultModifier)
		}
		return Lookup{List: list}
	case DslMap:
		m := make(map[string]Pattern, len(arg.Value.Map))
		for k, v := range arg.Value.Map {
			m[k] = ToPattern(v, DefaultModifier)
		}
		return Lookup{Map: m}
	default:
		Diagnostics.Printf("dsl: pick lookup must be a list or map, got kind %v; using empty lookup", arg.Value.Kind)
		return Lookup{}
	}
}

// splitLookupAndSelector applies the pick-family argument convention
// (§4.6): when the first argument is already a list/map it is the
// lookup and the second argument is the selector; otherwise every
// argument except the last is the lookup (collected as a list) and the
// last is the selector.
func splitLookupAndSelector(args []DslArg) (Lookup, Pattern) {
	if len(args) == 0 {
		return Lookup{}, Silence
	}
	if (args[0].Value.Kind == DslList || args[0].Value.Kind == DslMap) && len(args) >= 2 {
		return CoerceLookup(args[0]), ToPattern(args[1], DefaultModifier)
	}
	if len(args) == 1 {
		return Lookup{}, ToPattern(args[0], DefaultModifier)
	}
	lookupArgs := args[:len(args)-1]
	list := make([]Pattern, len(lookupArgs))
	for i, a := range lookupArgs {
		list[i] = ToPattern(a, DefaultModifier)
	}
	selector := ToPattern(args[len(args)-1], DefaultModifier)
	return Lookup{List: list}, selector
}

// numberOf coerces a single DSL argument to a plain float64, used by
// operators (fast/slow/early/late/euclid's pulse/step counts) whose
// static form needs a scalar rather than a full pattern. Returns 0 and
// false, without logging, on a non-numeric argument.
func numberOf(arg DslArg) (float64, bool) {
	switch arg.Value.Kind {
	case DslNumber:
		return arg.Value.Num, true
	case DslString:
		if f, err := strconv.ParseFloat(arg.Value.Str, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// isPatternValued reports whether arg should drive the control-driven
// (pattern-valued-argument) path rather than the static path: a bare
// number or a numeric-only string is static, everything else
// (patterns, non-numeric strings carrying mini-notation sequences) is
// control-driven.
func isPatternValued(arg DslArg) bool {
	if _, ok := numberOf(arg); ok {
		return false
	}
	return true
}

// Delegate is the uniform shape every facade operator publishes under
// its name in the symbol registry: one function over a slice of
// heterogeneous DSL arguments returning the resulting pattern. The
// top-level function, the pattern-method, and the string-method (parse
// then dispatch) are all thin callers of the same delegate, one Go
// function per operator instead of three separate code paths per
// operator.
type Delegate func(args []DslArg) Pattern

var (
	registryMu sync.RWMutex
	registry   = map[string]Delegate{}
)

// Register adds name to the process-wide, thread-safe symbol registry
// used by external script evaluators to look operators up by name.
// Idempotent: a second registration of the same name is a silent no-op
// rather than an error, matching "registration is idempotent and must
// be thread-safe (single write-once initialisation)".
func Register(name string, fn Delegate) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		return
	}
	registry[name] = fn
}

// LookupDelegate returns the delegate registered under name, if any.
func LookupDelegate(name string) (Delegate, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	fn, ok := registry[name]
	return fn, ok
}

// Invoke looks name up in the symbol registry and calls it with args.
// An unregistered name is a coercion failure: log once, return Silence.
func Invoke(name string, args []DslArg) Pattern {
	fn, ok := LookupDelegate(name)
	if !ok {
		Diagnostics.Printf("dsl: unknown operator %q", name)
		return Silence
	}
	return fn(args)
}

// StringOp is the sugar "String.op(args)" == "parse(s).op(args)": parse
// s as mini-notation with the default atom factory, then dispatch name
// on the resulting pattern plus args.
func StringOp(s, name string, args ...DslArg) Pattern {
	base := Parse(s, nil)
	return Invoke(name, append([]DslArg{PatternArg(base)}, args...))
}

func init() {
	registerCoreOperators()
}

// registerCoreOperators publishes the facade's built-in combinators
// under their DSL names. Each delegate's first argument is conventionally
// the source/base pattern (coerced the same way a method receiver would
// be), mirroring "op(args) is sugar for args.to_pattern().op(args.rest)".
func registerCoreOperators() {
	Register("fast", func(args []DslArg) Pattern { return dispatchRateOp(args, Fast) })
	Register("slow", func(args []DslArg) Pattern { return dispatchRateOp(args, Slow) })
	Register("early", func(args []DslArg) Pattern { return dispatchShiftOp(args, Early) })
	Register("late", func(args []DslArg) Pattern { return dispatchShiftOp(args, Late) })

	Register("seq", func(args []DslArg) Pattern {
		children := make([]Pattern, len(args))
		for i, a := range args {
			children[i] = ToPattern(a, DefaultModifier)
		}
		return Seq(children...)
	})
	Register("stack", func(args []DslArg) Pattern {
		children := make([]Pattern, len(args))
		for i, a := range args {
			children[i] = ToPattern(a, DefaultModifier)
		}
		return StackPatterns(children...)
	})

	Register("struct", func(args []DslArg) Pattern { return dispatchStructural(args, StructPat) })
	Register("structAll", func(args []DslArg) Pattern { return dispatchStructural(args, StructAll) })
	Register("mask", func(args []DslArg) Pattern { return dispatchStructural(args, Mask) })
	Register("maskAll", func(args []DslArg) Pattern { return dispatchStructural(args, MaskAll) })

	Register("slowcat", func(args []DslArg) Pattern {
		children := make([]Pattern, len(args))
		for i, a := range args {
			children[i] = ToPattern(a, DefaultModifier)
		}
		return SlowCat(children...)
	})
	Register("arrange", dispatchArrange)
	Register("stepcat", dispatchArrange)

	Register("euclid", func(args []DslArg) Pattern { return dispatchEuclid(args, 0) })
	Register("euclidRot", func(args []DslArg) Pattern { return dispatchEuclid(args, 1) })
	Register("euclidLegato", func(args []DslArg) Pattern { return dispatchEuclid(args, 2) })
	Register("euclidish", func(args []DslArg) Pattern {
		if len(args) < 4 {
			return Silence
		}
		source := ToPattern(args[0], DefaultModifier)
		p, _ := numberOf(args[1])
		s, _ := numberOf(args[2])
		groove, _ := numberOf(args[3])
		return Euclidish(source, int64(p), int64(s), groove)
	})

	Register("zoom", func(args []DslArg) Pattern {
		if len(args) < 3 {
			Diagnostics.Printf("dsl: zoom requires (source, start, end)")
			return Silence
		}
		source := ToPattern(args[0], DefaultModifier)
		if isPatternValued(args[1]) || isPatternValued(args[2]) {
			return ZoomDynamic(source,
				ToPattern(args[1], DefaultModifier),
				ToPattern(args[2], DefaultModifier))
		}
		start, _ := numberOf(args[1])
		end, _ := numberOf(args[2])
		return Zoom(source, rational.FromFloat64(start), rational.FromFloat64(end))
	})

	Register("linger", func(args []DslArg) Pattern {
		if len(args) < 2 {
			return Silence
		}
		source := ToPattern(args[0], DefaultModifier)
		t, _ := numberOf(args[1])
		return Linger(source, rational.FromFloat64(t))
	})

	Register("segment", func(args []DslArg) Pattern {
		if len(args) < 2 {
			return Silence
		}
		source := ToPattern(args[0], DefaultModifier)
		n, _ := numberOf(args[1])
		return Segment(source, int64(n))
	})

	Register("bite", func(args []DslArg) Pattern {
		if len(args) < 3 {
			return Silence
		}
		source := ToPattern(args[0], DefaultModifier)
		n, _ := numberOf(args[1])
		indices := ToPattern(args[2], DefaultModifier)
		return Bite(source, int64(n), indices)
	})

	Register("superimpose", func(args []DslArg) Pattern {
		if len(args) < 2 || args[1].Value.Kind != DslFunc {
			return Silence
		}
		source := ToPattern(args[0], DefaultModifier)
		return Superimpose(args[1].Value.Func)(source)
	})

	Register("rev", func(args []DslArg) Pattern {
		if len(args) < 1 {
			return Silence
		}
		return Rev(ToPattern(args[0], DefaultModifier))
	})
	Register("invert", func(args []DslArg) Pattern {
		if len(args) < 1 {
			return Silence
		}
		return Invert(ToPattern(args[0], DefaultModifier))
	})
	Register("iter", func(args []DslArg) Pattern { return dispatchIter(args, false) })
	Register("iterBack", func(args []DslArg) Pattern { return dispatchIter(args, true) })
	Register("repeatCycles", func(args []DslArg) Pattern {
		if len(args) < 2 {
			return Silence
		}
		n, _ := numberOf(args[1])
		return RepeatCycles(int64(n), ToPattern(args[0], DefaultModifier))
	})
	Register("repeat", func(args []DslArg) Pattern {
		if len(args) < 2 {
			return Silence
		}
		n, _ := numberOf(args[1])
		return Replicate(int64(n), ToPattern(args[0], DefaultModifier))
	})
	Register("take", func(args []DslArg) Pattern {
		if len(args) < 2 {
			return Silence
		}
		n, _ := numberOf(args[1])
		return Take(ToPattern(args[0], DefaultModifier), int64(n))
	})
	Register("drop", func(args []DslArg) Pattern {
		if len(args) < 2 {
			return Silence
		}
		n, _ := numberOf(args[1])
		return Drop(ToPattern(args[0], DefaultModifier), int64(n))
	})

	Register("when", func(args []DslArg) Pattern {
		if len(args) < 3 || args[2].Value.Kind != DslFunc {
			return Silence
		}
		source := ToPattern(args[0], DefaultModifier)
		test := ToPattern(args[1], DefaultModifier)
		return When(test, args[2].Value.Func, source)
	})
	Register("within", func(args []DslArg) Pattern {
		if len(args) < 4 || args[3].Value.Kind != DslFunc {
			return Silence
		}
		source := ToPattern(args[0], DefaultModifier)
		a, _ := numberOf(args[1])
		b, _ := numberOf(args[2])
		return Within(source, rational.FromFloat64(a), rational.FromFloat64(b), args[3].Value.Func)
	})
	Register("chunk", func(args []DslArg) Pattern {
		if len(args) < 3 || args[2].Value.Kind != DslFunc {
			return Silence
		}
		source := ToPattern(args[0], DefaultModifier)
		n, _ := numberOf(args[1])
		back, fast := false, false
		if len(args) > 3 && args[3].Value.Kind == DslBool {
			back = args[3].Value.Bool
		}
		if len(args) > 4 && args[4].Value.Kind == DslBool {
			fast = args[4].Value.Bool
		}
		earlyOffset := rational.Zero()
		if len(args) > 5 {
			if o, ok := numberOf(args[5]); ok {
				earlyOffset = rational.FromFloat64(o)
			}
		}
		return Chunk(source, int64(n), args[2].Value.Func, back, fast, earlyOffset)
	})
	Register("ribbon", func(args []DslArg) Pattern {
		if len(args) < 3 {
			return Silence
		}
		source := ToPattern(args[0], DefaultModifier)
		offset, _ := numberOf(args[1])
		cycles, _ := numberOf(args[2])
		return Ribbon(source, rational.FromFloat64(offset), rational.FromFloat64(cycles))
	})
	Register("off", func(args []DslArg) Pattern {
		if len(args) < 3 || args[2].Value.Kind != DslFunc {
			return Silence
		}
		source := ToPattern(args[0], DefaultModifier)
		delta, _ := numberOf(args[1])
		return Off(rational.FromFloat64(delta), args[2].Value.Func)(source)
	})
	Register("jux", func(args []DslArg) Pattern {
		if len(args) < 2 || args[1].Value.Kind != DslFunc {
			return Silence
		}
		return Jux(args[1].Value.Func)(ToPattern(args[0], DefaultModifier))
	})
	Register("layer", func(args []DslArg) Pattern {
		if len(args) < 2 {
			return Silence
		}
		source := ToPattern(args[0], DefaultModifier)
		fs := make([]func(Pattern) Pattern, 0, len(args)-1)
		for _, a := range args[1:] {
			if a.Value.Kind == DslFunc && a.Value.Func != nil {
				fs = append(fs, a.Value.Func)
			}
		}
		return Layer(fs...)(source)
	})

	Register("pick", func(args []DslArg) Pattern {
		lookup, sel := splitLookupAndSelector(args)
		return Pick(lookup, sel)
	})
	Register("pickmod", func(args []DslArg) Pattern {
		lookup, sel := splitLookupAndSelector(args)
		return PickMod(lookup, sel)
	})
	Register("pickOut", func(args []DslArg) Pattern {
		lookup, sel := splitLookupAndSelector(args)
		return PickOut(lookup, sel)
	})
	Register("pickmodOut", func(args []DslArg) Pattern {
		lookup, sel := splitLookupAndSelector(args)
		return PickModOut(lookup, sel)
	})
	registerPickVariant := func(build func(Lookup, Pattern) Pattern, names ...string) {
		for _, name := range names {
			Register(name, func(args []DslArg) Pattern {
				lookup, sel := splitLookupAndSelector(args)
				return build(lookup, sel)
			})
		}
	}
	registerPickVariant(PickSqueeze, "pickSqueeze", "inhabit", "squeeze")
	registerPickVariant(PickModSqueeze, "pickmodSqueeze", "inhabitmod")
	registerPickVariant(PickRestart, "pickRestart")
	registerPickVariant(PickModRestart, "pickmodRestart")
	registerPickVariant(PickReset, "pickReset")
	registerPickVariant(PickModReset, "pickmodReset")

	Register("pickF", func(args []DslArg) Pattern { return dispatchPickF(args, false) })
	Register("pickmodF", func(args []DslArg) Pattern { return dispatchPickF(args, true) })
}

// dispatchPickF reads (functions-list, base, selector): the list's
// function elements form the lookup, the index drawn from selector
// picks one, and the chosen function is applied to base.
func dispatchPickF(args []DslArg, modulo bool) Pattern {
	if len(args) < 3 || args[0].Value.Kind != DslList {
		Diagnostics.Printf("dsl: pickF requires (functions, base, selector)")
		return Silence
	}
	var fns []func(Pattern) Pattern
	for _, it := range args[0].Value.List {
		if it.Value.Kind == DslFunc && it.Value.Func != nil {
			fns = append(fns, it.Value.Func)
		}
	}
	basePat := ToPattern(args[1], DefaultModifier)
	selector := ToPattern(args[2], DefaultModifier)
	if modulo {
		return PickModF(fns, basePat, selector)
	}
	return PickF(fns, basePat, selector)
}

// dispatchArrange reads weighted [duration, pattern] pairs; entries with
// non-positive duration or the wrong shape are dropped, and a run of
// zero usable entries collapses to Silence.
func dispatchArrange(args []DslArg) Pattern {
	segs := make([]ArrangeSegment, 0, len(args))
	for _, a := range args {
		if a.Value.Kind != DslList || len(a.Value.List) != 2 {
			Diagnostics.Printf("dsl: arrange entry must be a [duration, pattern] pair")
			continue
		}
		d, ok := numberOf(a.Value.List[0])
		if !ok {
			continue
		}
		segs = append(segs, ArrangeSegment{Duration: d, Pattern: ToPattern(a.Value.List[1], DefaultModifier)})
	}
	return Arrange(segs...)
}

func dispatchIter(args []DslArg, back bool) Pattern {
	if len(args) < 2 {
		return Silence
	}
	source := ToPattern(args[0], DefaultModifier)
	n, _ := numberOf(args[1])
	if back {
		return IterBack(int64(n), source)
	}
	return Iter(int64(n), source)
}

func dispatchRateOp(args []DslArg, build func(rational.Rational) func(Pattern) Pattern) Pattern {
	if len(args) < 2 {
		return Silence
	}
	source := ToPattern(args[0], DefaultModifier)
	if isPatternValued(args[1]) {
		control := ToPattern(args[1], DefaultModifier)
		return InnerJoin(control, func(ce Event) Pattern {
			k, ok := ce.Data.Value.AsFloat64()
			if !ok {
				return Silence
			}
			return build(rational.FromFloat64(k))(source)
		})
	}
	k, _ := numberOf(args[1])
	return build(rational.FromFloat64(k))(source)
}

func dispatchShiftOp(args []DslArg, build func(rational.Rational) func(Pattern) Pattern) Pattern {
	if len(args) < 2 {
		return Silence
	}
	source := ToPattern(args[0], DefaultModifier)
	if isPatternValued(args[1]) {
		control := ToPattern(args[1], DefaultModifier)
		return InnerJoin(control, func(ce Event) Pattern {
			d, ok := ce.Data.Value.AsFloat64()
			if !ok {
				return Silence
			}
			return build(rational.FromFloat64(d))(source)
		})
	}
	k, _ := numberOf(args[1])
	return build(rational.FromFloat64(k))(source)
}

func dispatchStructural(args []DslArg, build func(Pattern, Pattern) Pattern) Pattern {
	if len(args) < 2 {
		return Silence
	}
	source := ToPattern(args[0], DefaultModifier)
	other := ToPattern(args[1], DefaultModifier)
	return build(source, other)
}

// dispatchEuclid dispatches euclid/euclidRot/euclidLegato: args are
// (source, pulses, steps[, rotation]), any of which may be pattern-valued,
// in which case the control-driven EuclidDynamic path takes over.
func dispatchEuclid(args []DslArg, variant int) Pattern {
	if len(args) < 3 {
		return Silence
	}
	source := ToPattern(args[0], DefaultModifier)
	anyDynamic := isPatternValued(args[1]) || isPatternValued(args[2]) ||
		(len(args) > 3 && isPatternValued(args[3]))
	if anyDynamic {
		control := buildEuclidControl(args[1:])
		return EuclidDynamic(source, control)
	}
	p, _ := numberOf(args[1])
	s, _ := numberOf(args[2])
	r := 0.0
	if len(args) > 3 {
		r, _ = numberOf(args[3])
	}
	switch variant {
	case 1:
		return EuclidRot(source, int64(p), int64(s), int64(r))
	case 2:
		return EuclidLegato(source, int64(p), int64(s), int64(r))
	default:
		return Euclid(source, int64(p), int64(s))
	}
}

// buildEuclidControl assembles the Seq([pulses, steps, rotation?])
// control pattern EuclidDynamic expects from static/dynamic p/s/r
// arguments. The pulses pattern contributes the structure; steps and
// rotation are sampled at each pulses event's part, so a pattern-valued
// argument recomputes the mask every time it changes.
func buildEuclidControl(args []DslArg) Pattern {
	parts := make([]Pattern, len(args))
	for i, a := range args {
		parts[i] = ToPattern(a, DefaultModifier)
	}
	if len(parts) == 0 {
		return Silence
	}
	return euclidControlPattern{parts: parts}
}

// euclidControlPattern samples its secondary parts inside Query so the
// caller's context (cancellation included) reaches every nested query.
type euclidControlPattern struct {
	base
	parts []Pattern
}

func (p euclidControlPattern) Query(from, to rational.Rational, ctx QueryContext) []Event {
	var out []Event
	for _, pe := range p.parts[0].Query(from, to, ctx) {
		if ctx.Cancelled() {
			break
		}
		pv, _ := pe.Data.Value.AsFloat64()
		seq := []voice.Value{voice.NumValue(pv)}
		for _, part := range p.parts[1:] {
			evs := part.Query(pe.Part.Begin, pe.Part.End, ctx)
			if len(evs) == 0 {
				continue
			}
			v, _ := evs[0].Data.Value.AsFloat64()
			seq = append(seq, voice.NumValue(v))
		}
		out = append(out, Event{Whole: pe.Whole, Part: pe.Part, Data: voice.Data{Value: voice.SeqValue(seq)}})
	}
	return out
}

func (p euclidControlPattern) NumSteps() (rational.Rational, bool) { return p.parts[0].NumSteps() }
