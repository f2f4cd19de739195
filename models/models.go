package models

import (
	"time"
)

// Theme is the user's colour scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// SortOrder selects how FilteredProducts orders its result.
type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortMostLiked SortOrder = "most-liked"
)

// Severity classifies a toast message.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityError   Severity = "error"
)

const (
	DefaultUserName = "Guest User"
	DefaultTitle    = "Untitled"
	DefaultCategory = "Other"
	CategoryAll     = "all"
)

// Product is a shared catalog entry.
type Product struct {
	ID          string    `json:"id"`          // Unique ID (UUID, dashless), immutable
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`       // Never negative
	Category    string    `json:"category"`
	Image       *string   `json:"image"`       // Data URI or null
	Likes       int       `json:"likes"`       // Never negative
	Comments    []string  `json:"comments"`    // Append-only, never nil
	CreatedAt   time.Time `json:"createdAt"`   // UTC, millisecond precision
	CreatedBy   string    `json:"createdBy"`   // Author's display name at creation time
}

// Clone returns a deep copy so callers can't alias the store's slices.
func (p Product) Clone() Product {
	c := p
	if p.Image != nil {
		img := *p.Image
		c.Image = &img
	}
	c.Comments = append(make([]string, 0, len(p.Comments)), p.Comments...)
	return c
}

// UserProfile is the single local user.
type UserProfile struct {
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
	Theme  Theme   `json:"theme"`
}

// DefaultUser returns the profile used when nothing has been persisted.
func DefaultUser() UserProfile {
	return UserProfile{Name: DefaultUserName, Theme: ThemeLight}
}

// FilterState is the active filter/sort configuration of the catalog view.
type FilterState struct {
	Search         string    `json:"search"`
	Category       string    `json:"category"`
	Sort           SortOrder `json:"sort"`
	ShowMyProducts bool      `json:"showMyProducts"`
}

// DefaultFilters returns the cleared filter state.
func DefaultFilters() FilterState {
	return FilterState{Category: CategoryAll, Sort: SortNewest}
}

// NewProduct holds the author-supplied fields of a product being added.
type NewProduct struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       *string `json:"image,omitempty"`
}

// ProductPatch is a shallow partial update. Nil fields are left untouched.
type ProductPatch struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Image       *string  `json:"image,omitempty"`
}

// FilterPatch is a partial update of FilterState.
type FilterPatch struct {
	Search         *string    `json:"search,omitempty"`
	Category       *string    `json:"category,omitempty"`
	Sort           *SortOrder `json:"sort,omitempty"`
	ShowMyProducts *bool      `json:"showMyProducts,omitempty"`
}

// Stats is a derived summary of the catalog.
type Stats struct {
	TotalProducts        int            `json:"totalProducts"`
	TotalLikes           int            `json:"totalLikes"`
	MostLiked            *Product       `json:"mostLiked"` // nil when the catalog is empty
	CategoryDistribution map[string]int `json:"categoryDistribution"`
	UserProducts         int            `json:"userProducts"`
}

// ExportDocument is the shape of an export artifact, and of an accepted import.
type ExportDocument struct {
	Products   []Product   `json:"products"`
	User       UserProfile `json:"user"`
	ExportDate time.Time   `json:"exportDate"`
}
