package mixer

import (
	"errors"
	"fmt"

	"github.com/san-kum/flowctl/internal/flight"
	"gonum.org/v1/gonum/mat"
)

// ErrSingular is returned when a mixing matrix has no inverse.
var ErrSingular = errors.New("mixer: singular mixing matrix")

// condLimit bounds the condition number accepted by NewModel.
const condLimit = 1e12

// Dense returns m as a gonum matrix.
func (m Matrix) Dense() *mat.Dense {
	d := mat.NewDense(NumMotors, 4, nil)
	for i, row := range m {
		for j, c := range row {
			d.Set(i, j, float64(c))
		}
	}
	return d
}

// Model recovers torques and thrust from motor commands. It is the actuator
// side of a simulated vehicle, the inverse of the mixer.
type Model struct {
	inv *mat.Dense
}

// NewModel inverts m.
func NewModel(m Matrix) (*Model, error) {
	d := m.Dense()
	if c := mat.Cond(d, 2); c > condLimit {
		return nil, fmt.Errorf("%w: condition number %.3g", ErrSingular, c)
	}
	var inv mat.Dense
	if err := inv.Inverse(d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}
	return &Model{inv: &inv}, nil
}

// Wrench returns (TauX, TauY, TauZ, Fz) for a held actuator command.
func (m *Model) Wrench(a flight.ActuatorCommand) [4]float64 {
	var out [4]float64
	for i := 0; i < 4; i++ {
		for j := 0; j < NumMotors; j++ {
			out[i] += m.inv.At(i, j) * float64(a[j])
		}
	}
	return out
}

// Matrix exposes a copy of the inverse.
func (m *Model) Matrix() *mat.Dense {
	return mat.DenseCopyOf(m.inv)
}
