package main

import (
	"fmt"
	"math"
	"strings"
)

const (
	pathCircle = "circle"
	pathLine   = "line"
	pathIdle   = "idle"
)

// pointerPath gives the cursor position for frame f of n in a w x h viewport.
// Points outside the viewport mean the pointer has left.
type pointerPath func(f, n, w, h int) (x, y int)

func parsePath(name string) (pointerPath, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case pathCircle:
		return circlePath, nil
	case pathLine:
		return linePath, nil
	case pathIdle:
		return idlePath, nil
	}
	return nil, fmt.Errorf("unknown path %q (want circle, line or idle)", name)
}

// circlePath orbits the centre once over the run.
func circlePath(f, n, w, h int) (int, int) {
	r := float64(min(w, h)) / 3
	theta := 2 * math.Pi * float64(f) / float64(max(n, 1))
	x := float64(w)/2 + r*math.Cos(theta)
	y := float64(h)/2 + r*math.Sin(theta)
	return int(math.Round(x)), int(math.Round(y))
}

// linePath sweeps left to right across the middle, from 10% to 90% width.
func linePath(f, n, w, h int) (int, int) {
	frac := 0.0
	if n > 1 {
		frac = float64(f) / float64(n-1)
	}
	x := float64(w) * (0.1 + 0.8*frac)
	return int(math.Round(x)), h / 2
}

func idlePath(int, int, int, int) (int, int) {
	return -1, -1
}
