// Package noise generates smooth pseudo-random jitter for motion paths using
// Ken Perlin's improved noise function. Band-limited gradient noise reads as
// natural hand wobble; white noise does not.
package noise

import (
	"math"
	mathrand "math/rand"
)

// defaultPermutation is Ken Perlin's original 256-entry table.
var defaultPermutation = [256]int{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// Generator is an improved-Perlin noise source. A Generator is immutable after
// construction and safe for concurrent use.
type Generator struct {
	// Permutation table doubled to 512 entries so lattice lookups never wrap.
	p [512]int
}

// NewGenerator returns a Generator using the default permutation table.
func NewGenerator() *Generator {
	g := &Generator{}
	for i := 0; i < 256; i++ {
		g.p[i] = defaultPermutation[i]
		g.p[256+i] = defaultPermutation[i]
	}
	return g
}

// NewSeededGenerator returns a Generator whose permutation table is a
// Fisher-Yates shuffle driven by seed, giving a distinct but reproducible
// noise pattern per seed.
func NewSeededGenerator(seed int64) *Generator {
	var perm [256]int
	for i := range perm {
		perm[i] = i
	}
	rng := mathrand.New(mathrand.NewSource(seed))
	for i := 255; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	g := &Generator{}
	for i := 0; i < 256; i++ {
		g.p[i] = perm[i]
		g.p[256+i] = perm[i]
	}
	return g
}

// Noise1D returns band-limited noise in [-1, 1] at position x.
func (g *Generator) Noise1D(x float64) float64 {
	xi := fastFloor(x) & 255
	x -= float64(fastFloor(x))
	u := fade(x)

	a := g.p[xi]
	b := g.p[xi+1]

	return lerp(u, grad1D(a, x), grad1D(b, x-1))
}

// Sample1D scales Noise1D by frequency and amplitude; the result lies in
// [-amplitude, amplitude].
func (g *Generator) Sample1D(x, frequency, amplitude float64) float64 {
	return g.Noise1D(x*frequency) * amplitude
}

// FractalNoise1D layers octaves of Noise1D at doubling frequency and
// persistence-scaled amplitude, normalized back into [-1, 1].
func (g *Generator) FractalNoise1D(x float64, octaves int, persistence float64) float64 {
	total := 0.0
	frequency := 1.0
	amplitude := 1.0
	maxValue := 0.0

	for i := 0; i < octaves; i++ {
		total += g.Noise1D(x*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxValue
}

// Noise2D returns band-limited noise in [-1, 1] at (x, y).
func (g *Generator) Noise2D(x, y float64) float64 {
	xi := fastFloor(x) & 255
	yi := fastFloor(y) & 255
	x -= float64(fastFloor(x))
	y -= float64(fastFloor(y))

	u := fade(x)
	v := fade(y)

	aa := g.p[g.p[xi]+yi]
	ab := g.p[g.p[xi]+yi+1]
	ba := g.p[g.p[xi+1]+yi]
	bb := g.p[g.p[xi+1]+yi+1]

	x1 := lerp(u, grad2D(aa, x, y), grad2D(ba, x-1, y))
	x2 := lerp(u, grad2D(ab, x, y-1), grad2D(bb, x-1, y-1))
	return lerp(v, x1, x2)
}

// Sample2D scales Noise2D by frequency and amplitude.
func (g *Generator) Sample2D(x, y, frequency, amplitude float64) float64 {
	return g.Noise2D(x*frequency, y*frequency) * amplitude
}

// PathOffset returns the (dx, dy) jitter for a point along a pointer path.
// Progress runs 0..1 over the path; amplitude is the peak deviation in pixels;
// seed identifies the movement so each one follows its own jitter track.
//
// The per-axis frequencies come from hashing the seed into a continuous band.
// A naive seed%k would admit only k distinct frequencies across the whole
// population of movements, which a frequency histogram flags immediately.
func (g *Generator) PathOffset(progress, amplitude float64, seed int64) (float64, float64) {
	hashX := hashToUnitInterval(seed)
	hashY := hashToUnitInterval(seed ^ 0xDEADBEEF)

	frequencyX := 3.0 + hashX*2.5 // 3.0 - 5.5
	frequencyY := 3.5 + hashY*2.5 // 3.5 - 6.0

	// Offsetting the Y input decorrelates the axes; identical tracks on X and
	// Y would bias the jitter onto the diagonal.
	dx := g.Sample1D(progress*10+float64(seed)*0.001, frequencyX, amplitude)
	dy := g.Sample1D(progress*10+float64(seed)*0.002+100, frequencyY, amplitude)
	return dx, dy
}

// PerpendicularOffset returns a single-axis jitter magnitude for paths that
// apply noise perpendicular to the direction of travel.
func (g *Generator) PerpendicularOffset(progress, amplitude float64) float64 {
	return g.Sample1D(progress*8, 1.0, amplitude)
}

// hashToUnitInterval mixes a 64-bit seed into [0, 1) using the MurmurHash3
// finalizer. The mixing turns adjacent seeds into effectively independent
// continuous values.
func hashToUnitInterval(seed int64) float64 {
	h := uint64(seed)
	h ^= h >> 33
	h *= 0xff51afd7ed558ccd
	h ^= h >> 33
	h *= 0xc4ceb9fe1a85ec53
	h ^= h >> 33
	return float64(h&0x7FFFFFFFFFFFFFFF) / float64(math.MaxInt64)
}

// fade is Perlin's quintic smoothing curve 6t⁵-15t⁴+10t³.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad1D(hash int, x float64) float64 {
	if hash&1 == 0 {
		return x
	}
	return -x
}

func grad2D(hash int, x, y float64) float64 {
	h := hash & 3
	u, v := x, y
	if h >= 2 {
		u, v = y, x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

func fastFloor(x float64) int {
	xi := int(x)
	if x < float64(xi) {
		return xi - 1
	}
	return xi
}
