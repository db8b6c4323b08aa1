package store

import (
	"context"

	"github.com/google/uuid"
)

// SeedSampleBooks pre-populates the registry with a small catalog so the API
// is usable immediately after startup. Seeding goes through CreateOrIncrement
// so the usual invariants hold. Called explicitly from main, not from any
// lifecycle hook.
func SeedSampleBooks(ctx context.Context, s *InMemory) {
	samples := []struct {
		title, author string
	}{
		{"The Go Programming Language", "Alan A. A. Donovan"},
		{"Clean Code", "Robert C. Martin"},
		{"Dune", "Frank Herbert"},
		{"The Pragmatic Programmer", "Andrew Hunt"},
	}
	for _, sample := range samples {
		_, _ = s.CreateOrIncrement(ctx, uuid.NewString(), sample.title, sample.author)
	}
}
