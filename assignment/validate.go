package assignment

import (
	"fmt"

	"github.com/obamify/pixelmorph/mathx"
)

// validateInputs checks the shared preconditions of both solvers: equal
// lengths, a perfect square for sidelen, and non-empty input. Caught here
// rather than deep in the hot loop so the resulting error message names
// the actual mismatch.
func validateInputs(src, dst []mathx.RGB, weights []float64, s int) error {
	n := len(src)
	if n == 0 {
		return fmt.Errorf("assignment: empty source palette")
	}
	if s*s != n {
		return fmt.Errorf("assignment: source length %d is not a perfect square", n)
	}
	if len(dst) != n {
		return fmt.Errorf("assignment: target length %d does not match source length %d", len(dst), n)
	}
	if len(weights) != n {
		return fmt.Errorf("assignment: weight length %d does not match source length %d", len(weights), n)
	}
	return nil
}
