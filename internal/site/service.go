package site

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"

	"vidar/internal/model"
)

// Lister is the read side of a managed collection.
type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

// Service reads the public collections and builds the page views.
type Service struct {
	news    Lister[model.NewsItem]
	centers Lister[model.Center]
	types   Lister[model.DonationType]
	md      goldmark.Markdown
}

// NewService constructs a Service.
func NewService(news Lister[model.NewsItem], centers Lister[model.Center], types Lister[model.DonationType]) *Service {
	return &Service{news: news, centers: centers, types: types, md: newMarkdown()}
}

// News returns the carousel view.
func (s *Service) News(ctx context.Context) (NewsView, error) {
	items, err := s.news.List(ctx)
	if err != nil {
		return NewsView{}, fmt.Errorf("list news: %w", err)
	}
	return BuildNews(s.md, items)
}

// Map returns the center locator view for filter.
func (s *Service) Map(ctx context.Context, filter string) (MapView, error) {
	centers, err := s.centers.List(ctx)
	if err != nil {
		return MapView{}, fmt.Errorf("list centers: %w", err)
	}
	types, err := s.types.List(ctx)
	if err != nil {
		return MapView{}, fmt.Errorf("list donation types: %w", err)
	}
	return BuildMap(centers, types, filter), nil
}
