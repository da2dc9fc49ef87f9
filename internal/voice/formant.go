package voice

import "strings"

// FormantTable returns the 5-band formant bank for the given vowel/voice
// key. The five pure vowels reproduce the classic Csound fof vowel data
// (Dodge & Jerse, "Computer Music: Synthesis, Composition, and
// Performance") bit for bit; compound vowels (ae, oe, ue, ei, au, eu,
// äu) are derived from them, see diphthong. Keys combine a voice
// register prefix with a vowel: "soprano:a", "alto:e", "tenor:i",
// "bass:o", and so on; a bare vowel resolves against the alto table,
// matching the engine's default register. Unknown keys return nil,
// leaving Project to skip formant filtering entirely.
func FormantTable(key string) []FormantBand {
	key = strings.ReplaceAll(key, ":", "_")
	if bands, ok := formantData[key]; ok {
		return cloneBands(bands)
	}
	if bands, ok := formantData["alto_"+key]; ok {
		return cloneBands(bands)
	}
	return nil
}

func cloneBands(src []FormantBand) []FormantBand {
	out := make([]FormantBand, len(src))
	copy(out, src)
	return out
}

// diphthong names the two pure vowels a compound vowel sound sits
// between. The Csound fof table only gives the five pure vowels per
// register; there is no authoritative banked data for these, so each
// compound resolves to the band-by-band midpoint of its two components.
// This is a declared approximation, not measured data.
var diphthong = map[string][2]string{
	"ae": {"a", "e"},
	"oe": {"o", "e"},
	"ue": {"u", "i"},
	"ei": {"e", "i"},
	"au": {"a", "u"},
	"eu": {"e", "u"},
	"äu": {"a", "u"},
}

func init() {
	for _, register := range []string{"soprano", "alto", "tenor", "bass"} {
		for compound, parts := range diphthong {
			left, ok1 := formantData[register+"_"+parts[0]]
			right, ok2 := formantData[register+"_"+parts[1]]
			if !ok1 || !ok2 {
				continue
			}
			formantData[register+"_"+compound] = blendBands(left, right)
		}
	}
}

func blendBands(a, b []FormantBand) []FormantBand {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]FormantBand, n)
	for i := 0; i < n; i++ {
		out[i] = FormantBand{
			Freq: (a[i].Freq + b[i].Freq) / 2,
			Gain: (a[i].Gain + b[i].Gain) / 2,
			Q:    (a[i].Q + b[i].Q) / 2,
		}
	}
	return out
}

// formantData holds frequency (Hz), gain (dB) and bandwidth-derived Q for
// the five strongest formants of each vowel, per voice register.
var formantData = map[string][]FormantBand{
	"soprano_a": {
		{Freq: 800, Gain: 0, Q: 80},
		{Freq: 1150, Gain: -6, Q: 90},
		{Freq: 2900, Gain: -32, Q: 120},
		{Freq: 3900, Gain: -20, Q: 130},
		{Freq: 4950, Gain: -50, Q: 140},
	},
	"soprano_e": {
		{Freq: 350, Gain: 0, Q: 60},
		{Freq: 2000, Gain: -20, Q: 100},
		{Freq: 2800, Gain: -15, Q: 120},
		{Freq: 3600, Gain: -40, Q: 150},
		{Freq: 4950, Gain: -56, Q: 200},
	},
	"soprano_i": {
		{Freq: 270, Gain: 0, Q: 60},
		{Freq: 2140, Gain: -12, Q: 90},
		{Freq: 2950, Gain: -26, Q: 100},
		{Freq: 3900, Gain: -26, Q: 120},
		{Freq: 4950, Gain: -44, Q: 120},
	},
	"soprano_o": {
		{Freq: 450, Gain: 0, Q: 70},
		{Freq: 800, Gain: -11, Q: 80},
		{Freq: 2830, Gain: -22, Q: 100},
		{Freq: 3800, Gain: -22, Q: 130},
		{Freq: 4950, Gain: -50, Q: 135},
	},
	"soprano_u": {
		{Freq: 325, Gain: 0, Q: 50},
		{Freq: 700, Gain: -16, Q: 60},
		{Freq: 2700, Gain: -35, Q: 170},
		{Freq: 3800, Gain: -40, Q: 180},
		{Freq: 4950, Gain: -60, Q: 200},
	},
	"alto_a": {
		{Freq: 800, Gain: 0, Q: 80},
		{Freq: 1150, Gain: -4, Q: 90},
		{Freq: 2800, Gain: -20, Q: 120},
		{Freq: 3500, Gain: -36, Q: 130},
		{Freq: 4950, Gain: -60, Q: 140},
	},
	"alto_e": {
		{Freq: 400, Gain: 0, Q: 60},
		{Freq: 1600, Gain: -24, Q: 80},
		{Freq: 2700, Gain: -30, Q: 120},
		{Freq: 3300, Gain: -35, Q: 150},
		{Freq: 4950, Gain: -60, Q: 200},
	},
	"alto_i": {
		{Freq: 350, Gain: 0, Q: 60},
		{Freq: 1700, Gain: -20, Q: 90},
		{Freq: 2700, Gain: -30, Q: 100},
		{Freq: 3700, Gain: -36, Q: 120},
		{Freq: 4950, Gain: -60, Q: 120},
	},
	"alto_o": {
		{Freq: 450, Gain: 0, Q: 70},
		{Freq: 800, Gain: -9, Q: 80},
		{Freq: 2830, Gain: -16, Q: 100},
		{Freq: 3500, Gain: -28, Q: 130},
		{Freq: 4950, Gain: -55, Q: 135},
	},
	"alto_u": {
		{Freq: 325, Gain: 0, Q: 50},
		{Freq: 700, Gain: -12, Q: 60},
		{Freq: 2530, Gain: -30, Q: 170},
		{Freq: 3500, Gain: -40, Q: 180},
		{Freq: 4950, Gain: -64, Q: 200},
	},
	"tenor_a": {
		{Freq: 650, Gain: 0, Q: 80},
		{Freq: 1080, Gain: -6, Q: 90},
		{Freq: 2650, Gain: -7, Q: 120},
		{Freq: 2900, Gain: -8, Q: 130},
		{Freq: 3250, Gain: -22, Q: 140},
	},
	"tenor_e": {
		{Freq: 400, Gain: 0, Q: 70},
		{Freq: 1700, Gain: -14, Q: 80},
		{Freq: 2600, Gain: -12, Q: 100},
		{Freq: 3200, Gain: -14, Q: 120},
		{Freq: 3580, Gain: -20, Q: 120},
	},
	"tenor_i": {
		{Freq: 290, Gain: 0, Q: 40},
		{Freq: 1870, Gain: -15, Q: 90},
		{Freq: 2800, Gain: -18, Q: 100},
		{Freq: 3500, Gain: -20, Q: 120},
		{Freq: 4950, Gain: -30, Q: 120},
	},
	"tenor_o": {
		{Freq: 400, Gain: 0, Q: 70},
		{Freq: 800, Gain: -10, Q: 80},
		{Freq: 2600, Gain: -12, Q: 100},
		{Freq: 2800, Gain: -12, Q: 130},
		{Freq: 3000, Gain: -26, Q: 135},
	},
	"tenor_u": {
		{Freq: 350, Gain: 0, Q: 40},
		{Freq: 600, Gain: -20, Q: 60},
		{Freq: 2700, Gain: -17, Q: 100},
		{Freq: 2900, Gain: -14, Q: 120},
		{Freq: 3300, Gain: -26, Q: 120},
	},
	"bass_a": {
		{Freq: 600, Gain: 0, Q: 60},
		{Freq: 1040, Gain: -7, Q: 70},
		{Freq: 2250, Gain: -9, Q: 110},
		{Freq: 2450, Gain: -9, Q: 120},
		{Freq: 2750, Gain: -20, Q: 130},
	},
	"bass_e": {
		{Freq: 400, Gain: 0, Q: 40},
		{Freq: 1620, Gain: -12, Q: 80},
		{Freq: 2400, Gain: -9, Q: 100},
		{Freq: 2800, Gain: -12, Q: 120},
		{Freq: 3100, Gain: -18, Q: 120},
	},
	"bass_i": {
		{Freq: 250, Gain: 0, Q: 60},
		{Freq: 1750, Gain: -30, Q: 90},
		{Freq: 2600, Gain: -16, Q: 100},
		{Freq: 3050, Gain: -22, Q: 120},
		{Freq: 3340, Gain: -28, Q: 120},
	},
	"bass_o": {
		{Freq: 400, Gain: 0, Q: 40},
		{Freq: 750, Gain: -11, Q: 80},
		{Freq: 2400, Gain: -21, Q: 100},
		{Freq: 2600, Gain: -20, Q: 120},
		{Freq: 2900, Gain: -40, Q: 120},
	},
	"bass_u": {
		{Freq: 350, Gain: 0, Q: 40},
		{Freq: 600, Gain: -20, Q: 80},
		{Freq: 2400, Gain: -32, Q: 100},
		{Freq: 2675, Gain: -28, Q: 120},
		{Freq: 2950, Gain: -36, Q: 120},
	},
}
