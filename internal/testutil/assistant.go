package testutil

import (
	"context"
	"sync"

	"github.com/Veraticus/akihabara-market/internal/model"
)

// StubAssistant is a scripted service.Assistant.
type StubAssistant struct {
	Err         error
	Description string
	Category    string
	Described   []model.Product
	Suggested   []string
	mu          sync.Mutex
}

// DescribeProduct records the product and returns Description or Err.
func (s *StubAssistant) DescribeProduct(ctx context.Context, product model.Product) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Described = append(s.Described, product)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.Description, nil
}

// SuggestCategory records the name and returns Category or Err.
func (s *StubAssistant) SuggestCategory(ctx context.Context, productName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Suggested = append(s.Suggested, productName)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.Category, nil
}
