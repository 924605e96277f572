package wavemesh

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrProfileMismatch = errors.New("amplitude and height profiles differ in length")
	ErrNonMonotonic    = errors.New("height profile is not non-decreasing")
	ErrFractionRange   = errors.New("height profile value outside [0, 1]")
	ErrBadAmplitude    = errors.New("amplitude is negative or not finite")
	ErrBelowThreshold  = errors.New("no amplitude reaches the energy threshold")
	ErrBelowHeight     = errors.New("relative height below minimum")
)

// A Sounding is a single lidar waveform measurement.
type Sounding struct {
	Lat       float64
	Lon       float64
	Elevation float64

	InstrumentLat float64
	InstrumentLon float64
	InstrumentAlt float64

	LowestLat       float64
	LowestLon       float64
	LowestElevation float64

	// ReferenceElevation is the ellipsoidal offset which, added to
	// LowestElevation, is comparable to InstrumentAlt.
	ReferenceElevation float64

	RH2  float64
	RH50 float64
	RH98 float64

	// Amplitudes are the waveform energy samples, ordered from the top of
	// the column downward.
	Amplitudes []float64

	// HeightFractions gives, for every amplitude, the fraction of the
	// total waveform span at which the sample was recorded.
	HeightFractions []float64
}

// Validate checks the profile invariants of s.
func (s *Sounding) Validate() error {
	return validateProfile(s.Amplitudes, s.HeightFractions)
}

// RH returns the relative height selected by f.
func (s *Sounding) RH(f RHField) float64 {
	switch f {
	case RH2:
		return s.RH2
	case RH50:
		return s.RH50
	default:
		return s.RH98
	}
}

func validateProfile(amplitudes, fractions []float64) error {
	if len(amplitudes) != len(fractions) {
		return errors.Wrapf(ErrProfileMismatch, "%d amplitudes, %d fractions",
			len(amplitudes), len(fractions))
	}
	for i, a := range amplitudes {
		if a < 0 || math.IsNaN(a) || math.IsInf(a, 0) {
			return errors.Wrapf(ErrBadAmplitude, "sample %d: %f", i, a)
		}
	}
	for i, f := range fractions {
		if !(f >= 0 && f <= 1) {
			return errors.Wrapf(ErrFractionRange, "sample %d: %f", i, f)
		}
		if i > 0 && f < fractions[i-1] {
			return errors.Wrapf(ErrNonMonotonic, "sample %d: %f < %f", i, f, fractions[i-1])
		}
	}
	return nil
}

// HeightFractions converts the segment lengths of an adaptively
// downsampled waveform into the fraction of the full waveform at which
// each segment starts.
//
// The first fraction is always 0. If the lengths sum to zero, the segments
// are spread evenly.
func HeightFractions(segmentLengths []int) []float64 {
	res := make([]float64, len(segmentLengths))
	var total int
	for _, l := range segmentLengths {
		if l > 0 {
			total += l
		}
	}
	if total == 0 {
		for i := range res {
			res[i] = float64(i) / float64(len(res))
		}
		return res
	}
	var acc int
	for i, l := range segmentLengths {
		res[i] = float64(acc) / float64(total)
		if l > 0 {
			acc += l
		}
	}
	return res
}

// ConditionWaveform prepares a waveform for display.
//
// Leading samples weaker than threshold are dropped, along with their
// height fractions, and the rest is rescaled to sum to targetSum. A
// waveform summing to zero is replaced by a uniform one.
//
// The inputs are not modified.
func ConditionWaveform(amplitudes, fractions []float64, threshold,
	targetSum float64) (newAmps, newFracs []float64, err error) {
	if len(amplitudes) != len(fractions) {
		return nil, nil, errors.Wrapf(ErrProfileMismatch, "%d amplitudes, %d fractions",
			len(amplitudes), len(fractions))
	}
	start := -1
	for i, a := range amplitudes {
		if a >= threshold {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, nil, ErrBelowThreshold
	}
	newAmps = append([]float64{}, amplitudes[start:]...)
	newFracs = append([]float64{}, fractions[start:]...)
	NormalizeWaveform(newAmps, targetSum)
	return newAmps, newFracs, nil
}

// NormalizeWaveform rescales amplitudes in place so that they sum to
// targetSum.
func NormalizeWaveform(amplitudes []float64, targetSum float64) {
	if len(amplitudes) == 0 {
		return
	}
	sum := floats.Sum(amplitudes)
	if sum > 0 {
		floats.Scale(targetSum/sum, amplitudes)
	} else {
		for i := range amplitudes {
			amplitudes[i] = targetSum / float64(len(amplitudes))
		}
	}
}
