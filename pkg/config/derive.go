package config

import "math"

// Derived geometry. Every getter is a pure function of the current
// calibration and parameters, recomputed on each call. The formulas must
// match the reference geometry model bit-for-bit: downstream shaders are
// compiled against the exact same arithmetic.

// Aspect is screenW / screenH.
func (s *Store) Aspect() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aspectLocked()
}

func (s *Store) aspectLocked() float64 {
	return s.cal.ScreenW.Value / s.cal.ScreenH.Value
}

// TileWidth is tileHeight scaled by the display aspect, rounded to the
// nearest pixel.
func (s *Store) TileWidth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tileWidthLocked()
}

func (s *Store) tileWidthLocked() int {
	return int(math.Round(float64(s.p.TileHeight) * s.aspectLocked()))
}

// FramebufferWidth is the smallest power of two that is at least
// max(sqrt(tileWidth*tileHeight*numViews), tileWidth): wide enough to hold
// all view pixels in a square-ish texture, and never narrower than one tile.
func (s *Store) FramebufferWidth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.framebufferWidthLocked()
}

func (s *Store) framebufferWidthLocked() int {
	tw := s.tileWidthLocked()
	numPixels := float64(tw) * float64(s.p.TileHeight) * float64(s.p.NumViews)
	return pow2Ceil(math.Max(math.Sqrt(numPixels), float64(tw)))
}

// QuiltWidth is the number of tiles per quilt row.
func (s *Store) QuiltWidth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quiltWidthLocked()
}

func (s *Store) quiltWidthLocked() int {
	return int(math.Floor(float64(s.framebufferWidthLocked()) / float64(s.tileWidthLocked())))
}

// QuiltHeight is the number of quilt rows needed to fit all views.
func (s *Store) QuiltHeight() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quiltHeightLocked()
}

func (s *Store) quiltHeightLocked() int {
	return int(math.Ceil(float64(s.p.NumViews) / float64(s.quiltWidthLocked())))
}

// FramebufferHeight is the smallest power of two holding all quilt rows.
func (s *Store) FramebufferHeight() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pow2Ceil(float64(s.quiltHeightLocked() * s.p.TileHeight))
}

// ViewCone is the device view cone scaled by depthiness, in radians.
func (s *Store) ViewCone() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cal.ViewCone.Value * s.p.Depthiness / 180.0 * math.Pi
}

// Tilt is the lenticule tilt, sign-flipped when the device mirrors the
// image horizontally.
func (s *Store) Tilt() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := s.cal.ScreenH.Value / (s.cal.ScreenW.Value * s.cal.Slope.Value)
	if s.cal.FlipImageX.Value != 0 {
		t = -t
	}
	return t
}

// Subp is the subpixel width in normalized screen coordinates.
func (s *Store) Subp() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return 1.0 / (s.cal.ScreenW.Value * 3.0)
}

// Pitch is the lenticular pitch converted to screen space and projected
// onto the tilted lenticule axis.
func (s *Store) Pitch() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cal.Pitch.Value * (s.cal.ScreenW.Value / s.cal.DPI.Value) *
		math.Cos(math.Atan(1.0/s.cal.Slope.Value))
}

// pow2Ceil returns the smallest power of two >= x, and 1 for x <= 1 or NaN.
// Inputs too large for int are clamped: the permissive setters admit absurd
// parameters, and a clamped width is as unrenderable as an infinite one, but
// it cannot wedge a reader holding the store lock.
func pow2Ceil(x float64) int {
	if !(x > 1) {
		return 1
	}
	p := math.Pow(2, math.Ceil(math.Log2(x)))
	if p >= float64(math.MaxInt64) {
		return math.MaxInt64
	}
	return int(p)
}
