package pattern

import "github.com/cbegin/tidalcore-go/internal/voice"

// numCtl builds a Modifier writing the numeric reading of a coerced DSL
// value into one float field; a value with no numeric reading leaves the
// record untouched (fail quiet, fail local).
func numCtl(assign func(*voice.Data, float64)) Modifier {
	return func(d voice.Data, v voice.Value) voice.Data {
		if f, ok := v.AsFloat64(); ok {
			assign(&d, f)
		}
		return d
	}
}

// strCtl is numCtl for string-valued fields.
func strCtl(assign func(*voice.Data, string)) Modifier {
	return func(d voice.Data, v voice.Value) voice.Data {
		if s := v.AsString(); s != "" {
			assign(&d, s)
		}
		return d
	}
}

// controlModifiers maps every user-facing control operator name to the
// Modifier that writes its field. Aliases (lpf/cutoff, hpf/hcutoff,
// bpf/bandf, s/sound) have separate Modifiers that write the same field.
var controlModifiers = map[string]Modifier{
	"note":  numCtl(func(d *voice.Data, f float64) { d.Note = &f }),
	"freq":  numCtl(func(d *voice.Data, f float64) { d.Frequency = &f }),
	"octave": numCtl(func(d *voice.Data, f float64) { d.Octave = &f }),
	"scale": strCtl(func(d *voice.Data, s string) { d.Scale = &s }),
	"chord": strCtl(func(d *voice.Data, s string) { d.Chord = &s }),

	"bank":  strCtl(func(d *voice.Data, s string) { d.Bank = &s }),
	"sound": strCtl(func(d *voice.Data, s string) { d.Sound = &s }),
	"s":     strCtl(func(d *voice.Data, s string) { d.Sound = &s }),
	"n":     numCtl(func(d *voice.Data, f float64) { d.SoundIndex = &f }),
	"unit":  strCtl(func(d *voice.Data, s string) { d.Unit = &s }),

	"gain":     numCtl(func(d *voice.Data, f float64) { d.Gain = &f }),
	"legato":   numCtl(func(d *voice.Data, f float64) { d.Legato = &f }),
	"sustain":  numCtl(func(d *voice.Data, f float64) { d.Sustain = &f }),
	"attack":   numCtl(func(d *voice.Data, f float64) { d.Attack = &f }),
	"decay":    numCtl(func(d *voice.Data, f float64) { d.Decay = &f }),
	"release":  numCtl(func(d *voice.Data, f float64) { d.Release = &f }),
	"velocity": numCtl(func(d *voice.Data, f float64) { d.Velocity = &f }),

	"cutoff":    numCtl(func(d *voice.Data, f float64) { d.Cutoff = &f }),
	"lpf":       numCtl(func(d *voice.Data, f float64) { d.Cutoff = &f }),
	"resonance": numCtl(func(d *voice.Data, f float64) { d.Resonance = &f }),
	"lpattack":  numCtl(func(d *voice.Data, f float64) { d.LPAttack = &f }),
	"lpdecay":   numCtl(func(d *voice.Data, f float64) { d.LPDecay = &f }),
	"lpsustain": numCtl(func(d *voice.Data, f float64) { d.LPSustain = &f }),
	"lprelease": numCtl(func(d *voice.Data, f float64) { d.LPRelease = &f }),
	"lpenv":     numCtl(func(d *voice.Data, f float64) { d.LPEnvelope = &f }),

	"hcutoff":    numCtl(func(d *voice.Data, f float64) { d.HCutoff = &f }),
	"hpf":        numCtl(func(d *voice.Data, f float64) { d.HCutoff = &f }),
	"hresonance": numCtl(func(d *voice.Data, f float64) { d.HResonance = &f }),
	"hpattack":   numCtl(func(d *voice.Data, f float64) { d.HPAttack = &f }),
	"hpdecay":    numCtl(func(d *voice.Data, f float64) { d.HPDecay = &f }),
	"hpsustain":  numCtl(func(d *voice.Data, f float64) { d.HPSustain = &f }),
	"hprelease":  numCtl(func(d *voice.Data, f float64) { d.HPRelease = &f }),
	"hpenv":      numCtl(func(d *voice.Data, f float64) { d.HPEnvelope = &f }),

	"bandf": numCtl(func(d *voice.Data, f float64) { d.Bandf = &f }),
	"bpf":   numCtl(func(d *voice.Data, f float64) { d.Bandf = &f }),
	"bandq": numCtl(func(d *voice.Data, f float64) { d.Bandq = &f }),

	"notchf": numCtl(func(d *voice.Data, f float64) { d.Notchf = &f }),
	"notchq": numCtl(func(d *voice.Data, f float64) { d.Notchq = &f }),

	"vowel": strCtl(func(d *voice.Data, s string) { d.Vowel = &s }),

	"pan":           numCtl(func(d *voice.Data, f float64) { d.Pan = &f }),
	"delay":         numCtl(func(d *voice.Data, f float64) { d.Delay = &f }),
	"delaytime":     numCtl(func(d *voice.Data, f float64) { d.DelayTime = &f }),
	"delayfeedback": numCtl(func(d *voice.Data, f float64) { d.DelayFeedback = &f }),
	"room":          numCtl(func(d *voice.Data, f float64) { d.Room = &f }),
	"size":          numCtl(func(d *voice.Data, f float64) { d.Size = &f }),
	"orbit":         numCtl(func(d *voice.Data, f float64) { d.Orbit = &f }),
	"channel":       numCtl(func(d *voice.Data, f float64) { d.Channel = &f }),

	"speed":      numCtl(func(d *voice.Data, f float64) { d.Speed = &f }),
	"begin":      numCtl(func(d *voice.Data, f float64) { d.Begin = &f }),
	"end":        numCtl(func(d *voice.Data, f float64) { d.End = &f }),
	"accelerate": numCtl(func(d *voice.Data, f float64) { d.Accelerate = &f }),
	"cps":        numCtl(func(d *voice.Data, f float64) { d.Cps = &f }),
}

func init() {
	registerControlOperators()
}

func registerControlOperators() {
	for name, mod := range controlModifiers {
		name, mod := name, mod
		Register(name, func(args []DslArg) Pattern { return dispatchControl(name, mod, args) })
	}
}

// dispatchControl implements the two shapes a control operator takes:
// standalone, `note("0 4 7")` builds a pattern of that control; applied,
// `p.note("0 4 7")` overlays the control onto an existing source via
// PropertyOverride, sampling it at each source event.
func dispatchControl(name string, mod Modifier, args []DslArg) Pattern {
	switch len(args) {
	case 0:
		Diagnostics.Printf("dsl: %s requires an argument", name)
		return Silence
	case 1:
		return ToPattern(args[0], mod)
	default:
		source := ToPattern(args[0], DefaultModifier)
		control := ToPattern(args[1], DefaultModifier)
		return PropertyOverride(source, control, mod)
	}
}

// Ctl dispatches a named control operator onto p: p.Ctl("gain", arg)
// is the method-binding face of the registered "gain" delegate.
func (p P) Ctl(name string, arg DslArg) P {
	return Of(Invoke(name, []DslArg{PatternArg(p.Pattern), arg}))
}

func (p P) Note(arg DslArg) P  { return p.Ctl("note", arg) }
func (p P) Gain(arg DslArg) P  { return p.Ctl("gain", arg) }
func (p P) Sound(arg DslArg) P { return p.Ctl("sound", arg) }
func (p P) Pan(arg DslArg) P   { return p.Ctl("pan", arg) }
func (p P) Speed(arg DslArg) P { return p.Ctl("speed", arg) }
func (p P) Vowel(arg DslArg) P { return p.Ctl("vowel", arg) }
