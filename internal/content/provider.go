package content

import (
	"errors"
	"math/rand/v2"
)

// ErrEmptyList is returned when a pick is requested from an empty list
var ErrEmptyList = errors.New("content list is empty")

// Provider picks challenges and quotes uniformly at random.
type Provider struct {
	catalog Catalog
	intn    func(n int) int
}

// NewProvider creates a provider over catalog using the process-seeded
// global source; nothing is remembered between picks.
func NewProvider(catalog Catalog) *Provider {
	return &Provider{catalog: catalog, intn: rand.IntN}
}

// NewProviderWithSource is NewProvider with a caller supplied index function.
func NewProviderWithSource(catalog Catalog, intn func(n int) int) *Provider {
	return &Provider{catalog: catalog, intn: intn}
}

// Catalog returns the content the provider draws from
func (p *Provider) Catalog() Catalog {
	return p.catalog
}

// PickChallenge returns one random challenge
func (p *Provider) PickChallenge() (string, error) {
	return p.pick(p.catalog.Challenges)
}

// PickQuote returns one random quote. Callers re-roll it on every render.
func (p *Provider) PickQuote() (string, error) {
	return p.pick(p.catalog.Quotes)
}

func (p *Provider) pick(list []string) (string, error) {
	if len(list) == 0 {
		return "", ErrEmptyList
	}
	return list[p.intn(len(list))], nil
}
