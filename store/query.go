package store

import (
	"sort"
	"strings"

	"sharebox/models"
)

// FilteredProducts returns the products matching the current filters, sorted
// by the current sort order. Ties keep their stored order.
func (s *Store) FilteredProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterProducts(s.products, s.filters, s.user.Name)
}

func filterProducts(products []models.Product, f models.FilterState, userName string) []models.Product {
	term := strings.ToLower(strings.TrimSpace(f.Search))

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Title), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if f.Category != "" && f.Category != models.CategoryAll && p.Category != f.Category {
			continue
		}
		if f.ShowMyProducts && p.CreatedBy != userName {
			continue
		}
		filtered = append(filtered, p.Clone())
	}

	sortProducts(filtered, f.Sort)
	return filtered
}

// sortProducts sorts in place. Unknown orders sort newest first.
func sortProducts(products []models.Product, order models.SortOrder) {
	var less func(a, b models.Product) bool
	switch order {
	case models.SortPriceLow:
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case models.SortPriceHigh:
		less = func(a, b models.Product) bool { return a.Price > b.Price }
	case models.SortMostLiked:
		less = func(a, b models.Product) bool { return a.Likes > b.Likes }
	default:
		less = func(a, b models.Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(products, func(i, j int) bool {
		return less(products[i], products[j])
	})
}

// Stats summarizes the whole collection, ignoring the filters.
func (s *Store) Stats() models.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := models.Stats{
		TotalProducts:        len(s.products),
		CategoryDistribution: make(map[string]int),
	}
	for i := range s.products {
		p := &s.products[i]
		stats.TotalLikes += p.Likes
		if stats.MostLiked == nil || p.Likes > stats.MostLiked.Likes {
			mostLiked := p.Clone()
			stats.MostLiked = &mostLiked
		}
		stats.CategoryDistribution[orDefault(p.Category, models.DefaultCategory)]++
		if p.CreatedBy == s.user.Name {
			stats.UserProducts++
		}
	}
	return stats
}
