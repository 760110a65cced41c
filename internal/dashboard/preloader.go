package dashboard

import (
	"math"
	"time"
)

// preloaderCycle is one full turn of the loading coin.
const preloaderCycle = 2 * time.Second

// PreloaderPose returns the coin's rotation in radians and its scale at the
// given time into the animation. Each cycle eases in and out, turning once
// while the coin swells to 1.2x and back.
func PreloaderPose(elapsed time.Duration) (angle, scale float64) {
	if elapsed < 0 {
		elapsed = 0
	}
	p := float64(elapsed%preloaderCycle) / float64(preloaderCycle)
	e := easeInOut(p)
	return 2 * math.Pi * e, 1 + 0.2*math.Sin(math.Pi*e)
}

func easeInOut(p float64) float64 {
	if p < 0.5 {
		return 2 * p * p
	}
	return 1 - math.Pow(-2*p+2, 2)/2
}
