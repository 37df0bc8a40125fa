package ising

import "fmt"

// ToIsing extracts the spin-domain model (h, J, scale, offset) from a problem.
//
// Spin problems pass through with scale 1 and the problem offset. Binary
// (QUBO) problems are converted with the affine substitution x_i = (s_i+1)/2,
// which folds half of every linear bias and a quarter of every coupling into
// the offset so the spin objective reproduces the QUBO objective exactly.
func ToIsing(p Problem) (Model, error) {
	if p.NumVariables < 0 {
		return Model{}, fmt.Errorf("%w: negative variable count %d", ErrModelExtraction, p.NumVariables)
	}
	if err := validateIndices(p); err != nil {
		return Model{}, err
	}

	switch p.Vartype {
	case Spin:
		return Model{
			NumVariables: p.NumVariables,
			H:            copyLinear(p.Linear),
			J:            copyQuadratic(p.Quadratic),
			Scale:        1.0,
			Offset:       p.Offset,
		}, nil
	case Binary:
		return binaryToSpin(p), nil
	default:
		return Model{}, fmt.Errorf("%w: unsupported vartype %q", ErrModelExtraction, p.Vartype)
	}
}

// binaryToSpin applies the QUBO → Ising transform.
//
//	h_i = q_i/2 + Σ_{j: (i,j) ∈ Q} Q_ij/4
//	J_ij = Q_ij/4
//	offset += Σ_i q_i/2 + Σ_{(i,j)} Q_ij/4
func binaryToSpin(p Problem) Model {
	h := make(map[int]float64, p.NumVariables)
	j := make(map[Pair]float64, len(p.Quadratic))
	offset := p.Offset

	for i, q := range p.Linear {
		h[i] += q / 2.0
		offset += q / 2.0
	}
	for pair, q := range p.Quadratic {
		j[NewPair(pair.I, pair.J)] += q / 4.0
		h[pair.I] += q / 4.0
		h[pair.J] += q / 4.0
		offset += q / 4.0
	}

	return Model{
		NumVariables: p.NumVariables,
		H:            h,
		J:            j,
		Scale:        1.0,
		Offset:       offset,
	}
}

// validateIndices checks that every referenced variable index lies in
// 1..NumVariables and that no coupling is a self-loop.
func validateIndices(p Problem) error {
	for i := range p.Linear {
		if i < 1 || i > p.NumVariables {
			return fmt.Errorf("%w: linear bias index %d outside 1..%d", ErrModelExtraction, i, p.NumVariables)
		}
	}
	for pair := range p.Quadratic {
		if pair.I < 1 || pair.I > p.NumVariables || pair.J < 1 || pair.J > p.NumVariables {
			return fmt.Errorf("%w: coupling (%d,%d) outside 1..%d", ErrModelExtraction, pair.I, pair.J, p.NumVariables)
		}
		if pair.I == pair.J {
			return fmt.Errorf("%w: self-coupling on variable %d", ErrModelExtraction, pair.I)
		}
	}
	return nil
}

func copyLinear(src map[int]float64) map[int]float64 {
	dst := make(map[int]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyQuadratic(src map[Pair]float64) map[Pair]float64 {
	dst := make(map[Pair]float64, len(src))
	for k, v := range src {
		dst[NewPair(k.I, k.J)] += v
	}
	return dst
}
