package voice

// Data is an immutable record of optional musical parameters carried
// parameters. Fields are pointers so "unset" is distinguishable from
// "set to zero" — required for the right-biased merge to know which side
// actually supplied a value, generalizing a mutable per-voice runtime
// state into an immutable record produced fresh by every combinator.
//
// The field set below covers every parameter family named explicitly
// name explicitly (note/freq/scale/chord, bank/sound/index, gain/legato,
// full ADSR, the four filter families with cutoff+resonance+envelope,
// vowel formant selector, pan/delay/room, sample manipulation) standing in
// for the broader set of optional musical fields a live-coding pattern
// exact count since the engine-facing field names beyond this set carry
// no distinct combinator behavior.
type Data struct {
	// Pitch / scale
	Note      *float64
	Frequency *float64
	Scale     *string
	Chord     *string
	Octave    *float64

	// Sample selection
	Bank       *string
	Sound      *string
	SoundIndex *float64
	Unit       *string

	// Amplitude / envelope
	Gain     *float64
	Legato   *float64
	Sustain  *float64
	Attack   *float64
	Decay    *float64
	Release  *float64
	Velocity *float64

	// Low-pass filter
	Cutoff      *float64
	Resonance   *float64
	LPAttack    *float64
	LPDecay     *float64
	LPSustain   *float64
	LPRelease   *float64
	LPEnvelope  *float64

	// High-pass filter
	HCutoff     *float64
	HResonance  *float64
	HPAttack    *float64
	HPDecay     *float64
	HPSustain   *float64
	HPRelease   *float64
	HPEnvelope  *float64

	// Band-pass filter
	Bandf      *float64
	Bandq      *float64
	BPAttack   *float64
	BPDecay    *float64
	BPSustain  *float64
	BPRelease  *float64

	// Notch filter
	Notchf *float64
	Notchq *float64

	// Formant
	Vowel *string

	// Spatial / FX sends
	Pan    *float64
	Delay  *float64
	DelayTime   *float64
	DelayFeedback *float64
	Room   *float64
	Size   *float64
	Orbit  *float64
	Channel *float64

	// Sample manipulation
	Speed      *float64
	Begin      *float64
	End        *float64
	Accelerate *float64
	Cps        *float64

	// Generic catch-all used by pick/select and any DSL operator without a
	// dedicated field ("pick defaults to value").
	Value Value
}

// Empty is the identity element of Merge: Merge(Empty, v) == v for any v
// (the merge identity element).
var Empty = Data{}

// Merge implements the right-biased lattice merge: fields from b shadow
// fields from a when b sets them, otherwise a's field (possibly also
// unset) passes through. Every combinator produces a fresh Data; neither
// input is mutated.
func Merge(a, b Data) Data {
	out := Data{
		Note:      mergeFloatPtr(a.Note, b.Note),
		Frequency: mergeFloatPtr(a.Frequency, b.Frequency),
		Scale:     mergeStringPtr(a.Scale, b.Scale),
		Chord:     mergeStringPtr(a.Chord, b.Chord),
		Octave:    mergeFloatPtr(a.Octave, b.Octave),

		Bank:       mergeStringPtr(a.Bank, b.Bank),
		Sound:      mergeStringPtr(a.Sound, b.Sound),
		SoundIndex: mergeFloatPtr(a.SoundIndex, b.SoundIndex),
		Unit:       mergeStringPtr(a.Unit, b.Unit),

		Gain:     mergeFloatPtr(a.Gain, b.Gain),
		Legato:   mergeFloatPtr(a.Legato, b.Legato),
		Sustain:  mergeFloatPtr(a.Sustain, b.Sustain),
		Attack:   mergeFloatPtr(a.Attack, b.Attack),
		Decay:    mergeFloatPtr(a.Decay, b.Decay),
		Release:  mergeFloatPtr(a.Release, b.Release),
		Velocity: mergeFloatPtr(a.Velocity, b.Velocity),

		Cutoff:     mergeFloatPtr(a.Cutoff, b.Cutoff),
		Resonance:  mergeFloatPtr(a.Resonance, b.Resonance),
		LPAttack:   mergeFloatPtr(a.LPAttack, b.LPAttack),
		LPDecay:    mergeFloatPtr(a.LPDecay, b.LPDecay),
		LPSustain:  mergeFloatPtr(a.LPSustain, b.LPSustain),
		LPRelease:  mergeFloatPtr(a.LPRelease, b.LPRelease),
		LPEnvelope: mergeFloatPtr(a.LPEnvelope, b.LPEnvelope),

		HCutoff:    mergeFloatPtr(a.HCutoff, b.HCutoff),
		HResonance: mergeFloatPtr(a.HResonance, b.HResonance),
		HPAttack:   mergeFloatPtr(a.HPAttack, b.HPAttack),
		HPDecay:    mergeFloatPtr(a.HPDecay, b.HPDecay),
		HPSustain:  mergeFloatPtr(a.HPSustain, b.HPSustain),
		HPRelease:  mergeFloatPtr(a.HPRelease, b.HPRelease),
		HPEnvelope: mergeFloatPtr(a.HPEnvelope, b.HPEnvelope),

		Bandf:     mergeFloatPtr(a.Bandf, b.Bandf),
		Bandq:     mergeFloatPtr(a.Bandq, b.Bandq),
		BPAttack:  mergeFloatPtr(a.BPAttack, b.BPAttack),
		BPDecay:   mergeFloatPtr(a.BPDecay, b.BPDecay),
		BPSustain: mergeFloatPtr(a.BPSustain, b.BPSustain),
		BPRelease: mergeFloatPtr(a.BPRelease, b.BPRelease),

		Notchf: mergeFloatPtr(a.Notchf, b.Notchf),
		Notchq: mergeFloatPtr(a.Notchq, b.Notchq),

		Vowel: mergeStringPtr(a.Vowel, b.Vowel),

		Pan:           mergeFloatPtr(a.Pan, b.Pan),
		Delay:         mergeFloatPtr(a.Delay, b.Delay),
		DelayTime:     mergeFloatPtr(a.DelayTime, b.DelayTime),
		DelayFeedback: mergeFloatPtr(a.DelayFeedback, b.DelayFeedback),
		Room:          mergeFloatPtr(a.Room, b.Room),
		Size:          mergeFloatPtr(a.Size, b.Size),
		Orbit:         mergeFloatPtr(a.Orbit, b.Orbit),
		Channel:       mergeFloatPtr(a.Channel, b.Channel),

		Speed:      mergeFloatPtr(a.Speed, b.Speed),
		Begin:      mergeFloatPtr(a.Begin, b.Begin),
		End:        mergeFloatPtr(a.End, b.End),
		Accelerate: mergeFloatPtr(a.Accelerate, b.Accelerate),
		Cps:        mergeFloatPtr(a.Cps, b.Cps),

		Value: a.Value,
	}
	if b.Value.Kind != KindNone {
		out.Value = b.Value
	}
	return out
}

// Clone returns a shallow copy; since every field is either an immutable
// pointer-to-scalar or a value type, a shallow copy is a full logical
// copy — no combinator is ever allowed to mutate a Data in place.
func (d Data) Clone() Data { return d }
