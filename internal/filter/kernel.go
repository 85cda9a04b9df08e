package filter

import (
	"math"

	"github.com/gogpu/imgedit/internal/cache"
)

// GaussianKernel generates a 1D Gaussian kernel for the given radius.
// The kernel is normalized so all values sum to 1.0.
//
// The radius is the standard deviation. The kernel size is
// 2 * ceil(radius * 3) + 1, which covers 99.7% of the distribution.
//
// For radius <= 0, returns a single-element kernel [1.0] (identity).
func GaussianKernel(radius float64) []float32 {
	if radius <= 0 {
		return []float32{1.0}
	}

	sigma := radius
	halfSize := int(math.Ceil(sigma * 3))
	size := halfSize*2 + 1

	kernel := make([]float32, size)

	// G(x) = exp(-x²/(2σ²)); the constant factor drops out on normalization.
	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)
	for i := range size {
		x := float64(i - halfSize)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	if sum > 0 {
		invSum := float32(1.0 / sum)
		for i := range kernel {
			kernel[i] *= invSum
		}
	}

	return kernel
}

// kernels memoizes kernels by radius quantized to 0.01 px.
var kernels = cache.New[int, []float32](64)

// CachedGaussianKernel returns a cached Gaussian kernel for the radius.
// The returned slice is shared and must not be modified.
func CachedGaussianKernel(radius float64) []float32 {
	key := int(math.Round(radius * 100))
	return kernels.GetOrCreate(key, func() []float32 {
		return GaussianKernel(float64(key) / 100)
	})
}
