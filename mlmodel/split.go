package mlmodel

import (
	"math"
	"math/rand/v2"
)

// TrainTestSplit shuffles row indices with a seeded permutation and holds out
// ceil(testSize*n) of them. No stratification is applied.
func TrainTestSplit(n int, testSize float64, seed int64) (train, test []int) {
	if n == 0 {
		return nil, nil
	}
	nTest := int(math.Ceil(testSize * float64(n)))
	if nTest > n {
		nTest = n
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	perm := rng.Perm(n)
	test = append([]int(nil), perm[:nTest]...)
	train = append([]int(nil), perm[nTest:]...)
	return train, test
}

func subset(X [][]float64, y []int, idx []int) ([][]float64, []int) {
	xs := make([][]float64, len(idx))
	ys := make([]int, len(idx))
	for i, j := range idx {
		xs[i] = X[j]
		ys[i] = y[j]
	}
	return xs, ys
}
