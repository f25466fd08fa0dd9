package segmentation

import (
	"math"
	"math/rand/v2"
	"sort"
)

// Result is the best of several k-means runs.
type Result struct {
	Centers    [][]float64
	Labels     []int
	Inertia    float64
	Iterations int
}

// KMeans runs Lloyd's algorithm opts.Inits times from k-means++ seeds drawn
// from a single generator seeded with opts.Seed, and keeps the run with the
// lowest inertia. The first run wins ties, so identical input and options
// always give identical labels.
func KMeans(data [][]float64, opts Options) Result {
	opts = opts.withDefaults()
	rng := rand.New(rand.NewPCG(uint64(opts.Seed), uint64(opts.Seed)))
	tol := opts.Tolerance * meanVariance(data)

	best := Result{Inertia: math.Inf(1)}
	for run := 0; run < opts.Inits; run++ {
		centers := kmeansPlusPlus(data, opts.Clusters, rng)
		res := lloyd(data, centers, opts.MaxIter, tol)
		if res.Inertia < best.Inertia {
			best = res
		}
	}
	return best
}

// kmeansPlusPlus is the greedy variant: each step samples 2+log(k)
// candidates proportional to squared distance and keeps the one that
// lowers the potential most.
func kmeansPlusPlus(data [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(data)
	trials := 2 + int(math.Log(float64(k)))
	centers := make([][]float64, 0, k)

	first := rng.IntN(n)
	centers = append(centers, clone(data[first]))

	closest := make([]float64, n)
	pot := 0.0
	for i, p := range data {
		closest[i] = sqDist(p, centers[0])
		pot += closest[i]
	}

	for len(centers) < k {
		cum := cumulative(closest)
		bestIdx, bestPot := -1, math.Inf(1)
		var bestDists []float64
		for t := 0; t < trials; t++ {
			target := rng.Float64() * pot
			idx := sort.SearchFloat64s(cum, target)
			if idx >= n {
				idx = n - 1
			}
			dists := make([]float64, n)
			candPot := 0.0
			for i, p := range data {
				dists[i] = math.Min(closest[i], sqDist(p, data[idx]))
				candPot += dists[i]
			}
			if candPot < bestPot {
				bestIdx, bestPot, bestDists = idx, candPot, dists
			}
		}
		centers = append(centers, clone(data[bestIdx]))
		closest, pot = bestDists, bestPot
	}
	return centers
}

func lloyd(data [][]float64, centers [][]float64, maxIter int, tol float64) Result {
	k := len(centers)
	labels := make([]int, len(data))
	prev := make([]int, len(data))
	for i := range prev {
		prev[i] = -1
	}

	iter := 0
	for iter < maxIter {
		iter++
		assign(data, centers, labels)
		next := recompute(data, labels, centers, k)

		shift := 0.0
		for c := range centers {
			shift += sqDist(centers[c], next[c])
		}
		centers = next

		if equalLabels(labels, prev) || shift <= tol {
			break
		}
		copy(prev, labels)
	}

	inertia := assign(data, centers, labels)
	return Result{Centers: centers, Labels: labels, Inertia: inertia, Iterations: iter}
}

// assign labels each point with its nearest center, lowest index on ties,
// and returns the inertia.
func assign(data [][]float64, centers [][]float64, labels []int) float64 {
	inertia := 0.0
	for i, p := range data {
		best, bestD := 0, math.Inf(1)
		for c, center := range centers {
			if d := sqDist(p, center); d < bestD {
				best, bestD = c, d
			}
		}
		labels[i] = best
		inertia += bestD
	}
	return inertia
}

// recompute moves each center to the mean of its points. An empty cluster is
// relocated onto the point that is currently farthest from its own center.
func recompute(data [][]float64, labels []int, centers [][]float64, k int) [][]float64 {
	dim := len(data[0])
	next := make([][]float64, k)
	counts := make([]int, k)
	for c := range next {
		next[c] = make([]float64, dim)
	}
	for i, p := range data {
		c := labels[i]
		counts[c]++
		for j, v := range p {
			next[c][j] += v
		}
	}

	used := map[int]bool{}
	for c := range next {
		if counts[c] == 0 {
			far := farthestPoint(data, labels, centers, used)
			if far < 0 {
				next[c] = clone(centers[c])
				continue
			}
			used[far] = true
			next[c] = clone(data[far])
			continue
		}
		for j := range next[c] {
			next[c][j] /= float64(counts[c])
		}
	}
	return next
}

func farthestPoint(data [][]float64, labels []int, centers [][]float64, used map[int]bool) int {
	best, bestD := -1, -1.0
	for i, p := range data {
		if used[i] {
			continue
		}
		if d := sqDist(p, centers[labels[i]]); d > bestD {
			best, bestD = i, d
		}
	}
	if bestD <= 0 {
		return -1
	}
	return best
}

func meanVariance(data [][]float64) float64 {
	if len(data) == 0 {
		return 0
	}
	dim := len(data[0])
	n := float64(len(data))
	total := 0.0
	for j := 0; j < dim; j++ {
		mean := 0.0
		for _, p := range data {
			mean += p[j]
		}
		mean /= n
		v := 0.0
		for _, p := range data {
			d := p[j] - mean
			v += d * d
		}
		total += v / n
	}
	if dim == 0 {
		return 0
	}
	return total / float64(dim)
}

func sqDist(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}
	return s
}

func cumulative(v []float64) []float64 {
	out := make([]float64, len(v))
	s := 0.0
	for i, x := range v {
		s += x
		out[i] = s
	}
	return out
}

func equalLabels(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
