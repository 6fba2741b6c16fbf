package pipeline

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"gesture-logger/models"
)

// AugmentParams configures the three synthetic variants.
type AugmentParams struct {
	NoiseStd    float64 // σ of zero-mean Gaussian noise per cell
	ScaleMin    float64 // lower bound of the uniform scale factor
	ScaleMax    float64 // upper bound of the uniform scale factor
	MaxAngleDeg float64 // each Euler angle is drawn from ±MaxAngleDeg
}

// DefaultAugmentParams returns σ=0.01, scale [0.8, 1.2], ±15°.
func DefaultAugmentParams() AugmentParams {
	return AugmentParams{
		NoiseStd:    0.01,
		ScaleMin:    0.8,
		ScaleMax:    1.2,
		MaxAngleDeg: 15,
	}
}

// Augmentor draws noise, scale and rotation variants of a window from an
// explicitly supplied random source, so a given seed replays the same
// dataset regardless of what else in the process uses randomness.
type Augmentor struct {
	params AugmentParams
	rng    *rand.Rand
}

// NewAugmentor binds params to rng.
func NewAugmentor(params AugmentParams, rng *rand.Rand) *Augmentor {
	return &Augmentor{params: params, rng: rng}
}

// NewSeededAugmentor uses a PCG source seeded with seed.
func NewSeededAugmentor(params AugmentParams, seed uint64) *Augmentor {
	return NewAugmentor(params, rand.New(rand.NewPCG(seed, seed)))
}

// Params returns the configured parameters.
func (a *Augmentor) Params() AugmentParams { return a.params }

// Noise adds independent N(0, NoiseStd²) to every cell.
func (a *Augmentor) Noise(w models.Window) models.Window {
	out := w.Clone()
	for _, row := range out.Rows {
		for j := range row {
			row[j] += a.rng.NormFloat64() * a.params.NoiseStd
		}
	}
	return out
}

// Scale multiplies every cell by a single factor drawn from
// [ScaleMin, ScaleMax).
func (a *Augmentor) Scale(w models.Window) models.Window {
	factor := a.uniform(a.params.ScaleMin, a.params.ScaleMax)
	out := w.Clone()
	for _, row := range out.Rows {
		for j := range row {
			row[j] *= factor
		}
	}
	return out
}

// Rotate draws roll, pitch and yaw from ±MaxAngleDeg and applies
// R = Rz·Ry·Rx to columns 0-2 (acceleration) and 3-5 (angular rate).
// Remaining columns, including the orientation quaternion, are copied
// through unrotated.
func (a *Augmentor) Rotate(w models.Window) models.Window {
	var angles [3]float64
	for i := range angles {
		angles[i] = a.uniform(-a.params.MaxAngleDeg, a.params.MaxAngleDeg) * math.Pi / 180
	}
	return ApplyRotation(RotationMatrix(angles[0], angles[1], angles[2]), w)
}

// Variants returns a copy of the clean window followed by its noise, scale
// and rotation variants, each padded or truncated to size rows. No variant
// shares row storage with w or with another variant.
func (a *Augmentor) Variants(w models.Window, size int) []models.Window {
	return []models.Window{
		PadOrTruncate(w.Clone(), size),
		PadOrTruncate(a.Noise(w), size),
		PadOrTruncate(a.Scale(w), size),
		PadOrTruncate(a.Rotate(w), size),
	}
}

func (a *Augmentor) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*a.rng.Float64()
}

// RotationMatrix composes right-handed elementary rotations about x, y
// and z (radians) as Rz·Ry·Rx.
func RotationMatrix(rx, ry, rz float64) *mat.Dense {
	cx, sx := math.Cos(rx), math.Sin(rx)
	cy, sy := math.Cos(ry), math.Sin(ry)
	cz, sz := math.Cos(rz), math.Sin(rz)

	x := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, cx, -sx,
		0, sx, cx,
	})
	y := mat.NewDense(3, 3, []float64{
		cy, 0, sy,
		0, 1, 0,
		-sy, 0, cy,
	})
	z := mat.NewDense(3, 3, []float64{
		cz, -sz, 0,
		sz, cz, 0,
		0, 0, 1,
	})

	var zy, r mat.Dense
	zy.Mul(z, y)
	r.Mul(&zy, x)
	return &r
}

// ApplyRotation rotates the 3-vectors in columns 0-2 and 3-5 of every row
// by r. Groups that are not fully present are left as they are.
func ApplyRotation(r mat.Matrix, w models.Window) models.Window {
	out := w.Clone()
	for _, row := range out.Rows {
		for g := 0; g+3 <= len(row) && g < 6; g += 3 {
			v0, v1, v2 := row[g], row[g+1], row[g+2]
			for i := 0; i < 3; i++ {
				row[g+i] = r.At(i, 0)*v0 + r.At(i, 1)*v1 + r.At(i, 2)*v2
			}
		}
	}
	return out
}
