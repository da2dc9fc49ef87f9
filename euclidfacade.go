package pattern

import (
	"github.com/cbegin/tidalcore-go/internal/euclid"
	"github.com/cbegin/tidalcore-go/internal/voice"
)

// maskFromBits turns a boolean Bjorklund distribution into a structural
// mask pattern: one equal-weight boolean-valued step per entry.
func maskFromBits(bits []bool) Pattern {
	if len(bits) == 0 {
		return Silence
	}
	children := make([]Pattern, len(bits))
	for i, b := range bits {
		children[i] = atomicPattern{data: voice.Data{Value: voice.BoolValue(b)}}
	}
	return Sequence{Children: children}
}

// EuclidMask returns the structural mask for the Bjorklund distribution
// of pulses hits among steps.
func EuclidMask(pulses, steps int64) Pattern {
	return maskFromBits(euclid.Bjorklund(int(pulses), int(steps)))
}

// EuclidRotMask is EuclidMask rotated by rotation steps.
func EuclidRotMask(pulses, steps, rotation int64) Pattern {
	bits := euclid.Rotate(euclid.Bjorklund(int(pulses), int(steps)), int(rotation))
	return maskFromBits(bits)
}

// EuclidLegatoMask holds each hit until the next one instead of leaving
// gaps: non-onset steps are absorbed into the preceding onset's weight.
func EuclidLegatoMask(pulses, steps, rotation int64) Pattern {
	bits := euclid.Rotate(euclid.Bjorklund(int(pulses), int(steps)), int(rotation))
	holds := euclid.Legato(bits)
	var children []Pattern
	for i, hold := range holds {
		if !bits[i] {
			continue
		}
		children = append(children, weightedPattern{
			Pattern: atomicPattern{data: voice.Data{Value: voice.BoolValue(true)}},
			w:       float64(hold),
		})
	}
	if len(children) == 0 {
		return Silence
	}
	return Sequence{Children: children}
}

// EuclidishMask morphs between strict Bjorklund (groove=0) and perfectly
// even spacing (groove=1).
func EuclidishMask(pulses, steps int64, groove float64) Pattern {
	return maskFromBits(euclid.Groove(int(pulses), int(steps), groove))
}

// Euclid applies the Bjorklund distribution of pulses hits among steps
// as source's structure: euclid(source, p, s) = source.struct(mask).
func Euclid(source Pattern, pulses, steps int64) Pattern {
	return StructPat(source, EuclidMask(pulses, steps))
}

// EuclidRot is Euclid with the mask rotated by rotation steps.
func EuclidRot(source Pattern, pulses, steps, rotation int64) Pattern {
	return StructPat(source, EuclidRotMask(pulses, steps, rotation))
}

// EuclidLegato is Euclid with each hit held until the next (no gaps).
func EuclidLegato(source Pattern, pulses, steps, rotation int64) Pattern {
	return StructPat(source, EuclidLegatoMask(pulses, steps, rotation))
}

// Euclidish is Euclid morphed toward perfectly even spacing by groove.
func Euclidish(source Pattern, pulses, steps int64, groove float64) Pattern {
	return StructPat(source, EuclidishMask(pulses, steps, groove))
}

// EuclidDynamic is the control-driven path: control's events each carry
// a Seq value [pulses, steps, rotation?] (rotation optional, default 0),
// and the euclid mask is recomputed per control event via innerJoin —
// the num_steps driving allocation comes from the resulting mask, read
// fresh every cycle the control pattern changes.
func EuclidDynamic(source Pattern, control Pattern) Pattern {
	return InnerJoin(control, func(ce Event) Pattern {
		seq := ce.Data.Value.Seq
		if len(seq) < 2 {
			return Silence
		}
		p, ok1 := seq[0].AsFloat64()
		s, ok2 := seq[1].AsFloat64()
		if !ok1 || !ok2 || s <= 0 {
			return Silence
		}
		if len(seq) > 2 {
			if r, ok := seq[2].AsFloat64(); ok {
				return EuclidRot(source, int64(p), int64(s), int64(r))
			}
		}
		return Euclid(source, int64(p), int64(s))
	})
}
