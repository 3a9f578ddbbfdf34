package psychro

import (
	"fmt"
	"math"
)

type Phase int

const (
	PhaseOutOfDomain Phase = iota
	PhaseIce
	PhaseLiquid
)

func (p Phase) String() string {
	switch p {
	case PhaseIce:
		return "ice"
	case PhaseLiquid:
		return "liquid"
	default:
		return "out-of-domain"
	}
}

// Hyland-Wexler coefficients c0..c6 for saturation over ice (-100 <= T < 0)
// and over liquid water (0 <= T < 200).
var (
	iceCoefficients = [7]float64{
		-5.6745359e3, 6.3925247, -9.677843e-3,
		6.2215701e-7, 2.0747825e-9, -9.484024e-13, 4.1635019,
	}
	liquidCoefficients = [7]float64{
		-5.8002206e3, 1.3914993, -4.8640239e-2,
		4.1764768e-5, -1.4452093e-8, 0.0, 6.5459673,
	}
)

// Correlation is the saturation pressure correlation selected for a
// temperature. Coefficients are only meaningful when Ok reports true.
type Correlation struct {
	Phase        Phase
	Coefficients [7]float64
}

func (c Correlation) Ok() bool {
	return c.Phase != PhaseOutOfDomain
}

func (c Correlation) String() string {
	if !c.Ok() {
		return c.Phase.String()
	}
	return fmt.Sprintf("%s%v", c.Phase, c.Coefficients)
}

// SaturationCorrelation selects the coefficient set for temperature t in °C.
// The intervals are half open so 0 °C selects the liquid branch.
func SaturationCorrelation(t float64) Correlation {
	switch {
	case t >= -100 && t < 0:
		return Correlation{Phase: PhaseIce, Coefficients: iceCoefficients}
	case t >= 0 && t < 200:
		return Correlation{Phase: PhaseLiquid, Coefficients: liquidCoefficients}
	default:
		return Correlation{Phase: PhaseOutOfDomain}
	}
}

// SaturationPressure evaluates the correlation at absolute temperature tk and
// returns the saturation vapor pressure in Pa, or NaN when c is out of domain.
func SaturationPressure(tk float64, c Correlation) float64 {
	if !c.Ok() {
		return math.NaN()
	}
	k := c.Coefficients
	return math.Exp(k[0]/tk + k[1] + k[2]*tk + k[3]*tk*tk + k[4]*tk*tk*tk + k[5]*tk*tk*tk*tk + k[6]*math.Log(tk))
}

// SaturationPressureAt selects the correlation for t and evaluates it.
func SaturationPressureAt(t float64) float64 {
	return SaturationPressure(Kelvin(t), SaturationCorrelation(t))
}
