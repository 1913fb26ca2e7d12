// Marketlens - E-commerce Warehouse and Recommendation Pipeline
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketlens

package recommend

import (
	"fmt"
	"math"
	"math/rand"
)

// TrainTestSplit shuffles ratings with a seeded generator and holds out
// ceil(testSize*n) of them for evaluation. The same seed and input always
// give the same split. The input slice is not modified.
func TrainTestSplit(ratings []Rating, testSize float64, seed int64) (train, test []Rating, err error) {
	n := len(ratings)
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test size must be in (0, 1), got %v", testSize)
	}

	nTest := int(math.Ceil(testSize * float64(n)))
	if n < 2 || nTest >= n {
		return nil, nil, fmt.Errorf("%w: %d ratings cannot be split", ErrNoRatings, n)
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic split, not security sensitive
	perm := rng.Perm(n)

	test = make([]Rating, 0, nTest)
	train = make([]Rating, 0, n-nTest)
	for i, idx := range perm {
		if i < nTest {
			test = append(test, ratings[idx])
		} else {
			train = append(train, ratings[idx])
		}
	}
	return train, test, nil
}

// RMSE returns the root mean squared error of model predictions over test.
func RMSE(model RatingModel, test []Rating) (float64, error) {
	if len(test) == 0 {
		return 0, fmt.Errorf("%w: empty test set", ErrNoRatings)
	}

	var sum float64
	for _, r := range test {
		d := model.Predict(r.UserID, r.ItemID) - r.Value
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(test))), nil
}
