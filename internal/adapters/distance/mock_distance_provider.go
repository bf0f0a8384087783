package distance

import (
	"context"
	"fmt"
	"geodistance-service/internal/domain"
	"geodistance-service/internal/ports"
)

type MockPair struct {
	From, To domain.Coordinates
	Meters   float64
}

// MockDistanceProvider serves fixed distances for tests.
// It implements DistanceProvider only, not DistanceMatrixProvider.
type MockDistanceProvider struct {
	m     map[[2]domain.Coordinates]ports.DistanceResult
	Calls int
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[[2]domain.Coordinates]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[[2]domain.Coordinates{p.From, p.To}] = ports.DistanceResult{DistanceMeters: p.Meters}
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) GetDistance(ctx context.Context, from, to domain.Coordinates) (ports.DistanceResult, error) {
	p.Calls++
	r, ok := p.m[[2]domain.Coordinates{from, to}]
	if !ok {
		return ports.DistanceResult{}, fmt.Errorf("missing pair %v -> %v", from, to)
	}

	return r, nil
}
