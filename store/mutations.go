package store

import (
	"log"
	"math"
	"strings"

	"sharebox/models"
)

// AddProduct creates a product authored by the current user and puts it at
// the front of the collection.
func (s *Store) AddProduct(np models.NewProduct) models.Product {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	p := models.Product{
		ID:          s.newID(),
		Title:       orDefault(strings.TrimSpace(np.Title), models.DefaultTitle),
		Description: strings.TrimSpace(np.Description),
		Price:       clampPrice(np.Price),
		Category:    orDefault(strings.TrimSpace(np.Category), models.DefaultCategory),
		Likes:       0,
		Comments:    []string{},
		CreatedAt:   s.timestamp(),
		CreatedBy:   s.user.Name,
	}
	if np.Image != nil {
		p.Image = normalizeImage(*np.Image)
	}
	s.products = append([]models.Product{p}, s.products...)
	total := len(s.products)
	s.mu.Unlock()

	log.Printf("INFO: Product %s added. Total products: %d", p.ID, total)
	s.notify()
	s.toast(models.SeveritySuccess, "Product added successfully!")
	return p.Clone()
}

// UpdateProduct shallow-merges the non-nil fields of patch into the product.
// It reports false, and does nothing, if id is unknown.
func (s *Store) UpdateProduct(id string, patch models.ProductPatch) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	p := &s.products[i]
	if patch.Title != nil {
		p.Title = orDefault(*patch.Title, models.DefaultTitle)
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = clampPrice(*patch.Price)
	}
	if patch.Category != nil {
		p.Category = orDefault(*patch.Category, models.DefaultCategory)
	}
	if patch.Image != nil {
		p.Image = normalizeImage(*patch.Image) // An empty string clears the image
	}
	s.mu.Unlock()

	s.notify()
	return true
}

// LikeProduct adds one like. It reports false if id is unknown.
func (s *Store) LikeProduct(id string) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.products[i].Likes++
	s.mu.Unlock()

	s.notify()
	s.toast(models.SeveritySuccess, "Product liked!")
	return true
}

// AddComment appends the trimmed text to the product's comments. Blank text
// and unknown ids are ignored and reported as false.
func (s *Store) AddComment(id, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.products[i].Comments = append(s.products[i].Comments, text)
	s.mu.Unlock()

	s.notify()
	s.toast(models.SeveritySuccess, "Comment added")
	return true
}

// ReorderProducts moves the source product to the index the target product
// occupies before the move. Both ids must exist.
func (s *Store) ReorderProducts(sourceID, targetID string) bool {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	from, to := s.indexOf(sourceID), s.indexOf(targetID)
	if from < 0 || to < 0 {
		s.mu.Unlock()
		return false
	}
	moved := s.products[from]
	rest := append(s.products[:from:from], s.products[from+1:]...)
	reordered := make([]models.Product, 0, len(s.products))
	reordered = append(reordered, rest[:to]...)
	reordered = append(reordered, moved)
	reordered = append(reordered, rest[to:]...)
	s.products = reordered
	s.mu.Unlock()

	s.notify()
	s.toast(models.SeverityInfo, "Products reordered")
	return true
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Store) ToggleTheme() models.Theme {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if s.user.Theme == models.ThemeDark {
		s.user.Theme = models.ThemeLight
	} else {
		s.user.Theme = models.ThemeDark
	}
	theme := s.user.Theme
	s.mu.Unlock()

	s.notify()
	s.toast(models.SeverityInfo, "Theme changed")
	return theme
}

// ClearFilters resets the filters to their defaults.
func (s *Store) ClearFilters() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	s.filters = models.DefaultFilters()
	s.mu.Unlock()

	s.notify()
	s.toast(models.SeverityInfo, "Filters cleared")
}

// UpdateFilters sets the non-nil fields of patch. An empty category means "all".
func (s *Store) UpdateFilters(patch models.FilterPatch) models.FilterState {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if patch.Search != nil {
		s.filters.Search = *patch.Search
	}
	if patch.Category != nil {
		s.filters.Category = orDefault(*patch.Category, models.CategoryAll)
	}
	if patch.Sort != nil {
		s.filters.Sort = *patch.Sort
	}
	if patch.ShowMyProducts != nil {
		s.filters.ShowMyProducts = *patch.ShowMyProducts
	}
	filters := s.filters
	s.mu.Unlock()

	s.notify()
	return filters
}

// SetUserName renames the local user. Products keep the author name they
// were created with.
func (s *Store) SetUserName(name string) models.UserProfile {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	s.user.Name = orDefault(strings.TrimSpace(name), models.DefaultUserName)
	user := cloneUser(s.user)
	s.mu.Unlock()

	s.notify()
	return user
}

// SetAvatar stores a data URI as the avatar, or clears it when dataURI is nil.
// Anything that is not a data URI also clears it.
func (s *Store) SetAvatar(dataURI *string) models.UserProfile {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.mu.Lock()
	if dataURI == nil {
		s.user.Avatar = nil
	} else {
		s.user.Avatar = normalizeImage(*dataURI)
	}
	user := cloneUser(s.user)
	s.mu.Unlock()

	s.notify()
	if user.Avatar != nil {
		s.toast(models.SeveritySuccess, "Profile picture updated")
	}
	return user
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func clampPrice(price float64) float64 {
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0
	}
	return price
}
