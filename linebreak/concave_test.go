package linebreak

import "testing"

// quadraticMatrix returns a concave cost matrix Matrix(i,j) =
// (j-i-target)^2 for j within [0, n], and the out-of-range sentinel
// -i beyond it, matching the contract OnlineConcaveMinima requires.
func quadraticMatrix(n, target int) Matrix {
	return func(i, j int) float64 {
		if j > n {
			return -float64(i)
		}
		d := float64(j - i - target)
		return d * d
	}
}

func bruteForce(n int, m Matrix) (values []float64, indices []int) {
	values = make([]float64, n+1)
	indices = make([]int, n+1)
	for j := 1; j <= n; j++ {
		best := m(0, j)
		bestI := 0
		for i := 1; i < j; i++ {
			v := m(i, j)
			if v < best {
				best = v
				bestI = i
			}
		}
		values[j] = best
		indices[j] = bestI
	}
	return values, indices
}

func TestOnlineConcaveMinimaMatchesBruteForce(t *testing.T) {
	const n = 20
	const target = 4

	wantValues, wantIndices := bruteForce(n, quadraticMatrix(n, target))

	solver := NewOnlineConcaveMinima(quadraticMatrix(n, target), 0)
	for j := 1; j <= n; j++ {
		if got := solver.Value(j); got != wantValues[j] {
			t.Errorf("Value(%d) = %v, want %v", j, got, wantValues[j])
		}
		if got := solver.Index(j); got != wantIndices[j] {
			t.Errorf("Index(%d) = %d, want %d", j, got, wantIndices[j])
		}
	}
}

func TestOnlineConcaveMinimaOutOfOrderQueries(t *testing.T) {
	const n = 15
	const target = 3
	wantValues, wantIndices := bruteForce(n, quadraticMatrix(n, target))

	solver := NewOnlineConcaveMinima(quadraticMatrix(n, target), 0)
	// Querying a late column first forces the solver to advance
	// through every earlier one; values must still match brute force.
	if got := solver.Value(n); got != wantValues[n] {
		t.Errorf("Value(%d) = %v, want %v", n, got, wantValues[n])
	}
	for j := 1; j < n; j++ {
		if got := solver.Index(j); got != wantIndices[j] {
			t.Errorf("Index(%d) = %d, want %d", j, got, wantIndices[j])
		}
	}
}

func TestConcaveMinimaMatchesBruteForceOffline(t *testing.T) {
	const n = 12
	m := quadraticMatrix(n, 5)
	rows := rangeInts(0, n)
	cols := rangeInts(1, n+1)
	got := concaveMinima(rows, cols, m)

	wantValues, wantIndices := bruteForce(n, m)
	for _, c := range cols {
		if got[c].value != wantValues[c] {
			t.Errorf("concaveMinima[%d].value = %v, want %v", c, got[c].value, wantValues[c])
		}
		if got[c].row != wantIndices[c] {
			t.Errorf("concaveMinima[%d].row = %d, want %d", c, got[c].row, wantIndices[c])
		}
	}
}
