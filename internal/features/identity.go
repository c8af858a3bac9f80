package features

// Identity passes the feature matrix through unchanged; standardization is
// the trainer's job and applies to every strategy alike.
type Identity struct{}

func (Identity) Name() string { return "identity" }

func (Identity) Fit(X [][]float64, _ []int) (Transform, error) {
	_, cols, err := checkShape(X)
	if err != nil {
		return nil, err
	}
	return &IdentityTransform{Width: cols}, nil
}

// IdentityTransform is the fitted no-op mapping.
type IdentityTransform struct {
	Width int
}

func (t *IdentityTransform) Cols() int { return t.Width }

func (t *IdentityTransform) Apply(X [][]float64) [][]float64 { return X }
