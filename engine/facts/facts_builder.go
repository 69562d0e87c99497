package facts

import "math/rand"

// ProviderBuilderOption is a functional option for configuring a Provider.
type ProviderBuilderOption func(*provider)

// WithSeed makes fact selection deterministic, for tests.
//
// Parameters:
//   - seed: the random source seed
//
// Returns:
//   - ProviderBuilderOption: option function to apply
func WithSeed(seed int64) ProviderBuilderOption {
	return func(p *provider) {
		p.rng = rand.New(rand.NewSource(seed))
	}
}

// WithBufferSize sets how many facts are kept ready. Values < 1 keep the
// default.
//
// Parameters:
//   - n: the buffer capacity
//
// Returns:
//   - ProviderBuilderOption: option function to apply
func WithBufferSize(n int) ProviderBuilderOption {
	return func(p *provider) {
		if n >= 1 {
			p.buffer = make(chan string, n)
		}
	}
}
