package store

import (
	"testing"

	"sharebox/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddProduct(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store
	s.SetUserName("Alice")

	img := "data:image/jpeg;base64,/9j/"
	first := s.AddProduct(models.NewProduct{Title: "  Lamp ", Description: "Desk lamp", Price: 12.5, Category: "Home", Image: &img})
	second := s.AddProduct(models.NewProduct{Title: "Vase", Price: 30, Category: "Home"})

	assert.NotEqual(t, first.ID, second.ID)
	products := s.Products()
	require.Len(t, products, 2)
	assert.Equal(t, second.ID, products[0].ID, "newest product goes first")
	assert.Equal(t, first.ID, products[1].ID)

	assert.Equal(t, "Lamp", first.Title)
	assert.Equal(t, 0, first.Likes)
	assert.Equal(t, []string{}, first.Comments)
	assert.Equal(t, "Alice", first.CreatedBy)
	require.NotNil(t, first.Image)
	assert.Equal(t, img, *first.Image)
	assert.True(t, second.CreatedAt.After(first.CreatedAt))

	assert.Equal(t, toastMsg{models.SeveritySuccess, "Product added successfully!"}, env.toaster.last())
}

func TestAddProduct_UniqueIDsAndFrontInsertion(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store

	ids := map[string]bool{}
	for i := 0; i < 20; i++ {
		p := s.AddProduct(models.NewProduct{Title: "Item"})
		assert.False(t, ids[p.ID], "id %s reused", p.ID)
		ids[p.ID] = true
		assert.Equal(t, p.ID, s.Products()[0].ID)
	}
}

func TestAddProduct_DefaultsAndClamping(t *testing.T) {
	env := newEmptyStore(t)
	bad := "javascript:alert(1)"
	p := env.store.AddProduct(models.NewProduct{Title: "   ", Price: -3, Image: &bad})

	assert.Equal(t, models.DefaultTitle, p.Title)
	assert.Equal(t, models.DefaultCategory, p.Category)
	assert.Equal(t, 0.0, p.Price)
	assert.Nil(t, p.Image)
}

func TestUpdateProduct(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store
	p := s.AddProduct(models.NewProduct{Title: "Lamp", Description: "Old", Price: 10, Category: "Home"})

	calls := 0
	s.Subscribe(func() { calls++ })

	newPrice := 15.0
	ok := s.UpdateProduct(p.ID, models.ProductPatch{Description: strPtr("New"), Price: &newPrice})
	require.True(t, ok)
	assert.Equal(t, 1, calls)

	got, _ := s.Product(p.ID)
	assert.Equal(t, "Lamp", got.Title, "unset fields are untouched")
	assert.Equal(t, "New", got.Description)
	assert.Equal(t, 15.0, got.Price)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.CreatedAt, got.CreatedAt)

	assert.True(t, s.UpdateProduct(p.ID, models.ProductPatch{Image: strPtr("data:image/png;base64,AA")}))
	got, _ = s.Product(p.ID)
	require.NotNil(t, got.Image)
	assert.True(t, s.UpdateProduct(p.ID, models.ProductPatch{Image: strPtr("")}))
	got, _ = s.Product(p.ID)
	assert.Nil(t, got.Image, "an empty image clears it")

	before := s.Products()
	assert.False(t, s.UpdateProduct("missing", models.ProductPatch{Title: strPtr("x")}))
	assert.Equal(t, before, s.Products())
	assert.Equal(t, 3, calls, "a referential miss does not notify")
}

func TestLikeProduct(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store
	p := s.AddProduct(models.NewProduct{Title: "Lamp"})
	other := s.AddProduct(models.NewProduct{Title: "Vase"})

	assert.True(t, s.LikeProduct(p.ID))
	assert.True(t, s.LikeProduct(p.ID))

	got, _ := s.Product(p.ID)
	assert.Equal(t, 2, got.Likes)
	got, _ = s.Product(other.ID)
	assert.Equal(t, 0, got.Likes)
	assert.Equal(t, toastMsg{models.SeveritySuccess, "Product liked!"}, env.toaster.last())

	before := s.Products()
	toasts := env.toaster.count()
	assert.False(t, s.LikeProduct("missing"))
	assert.Equal(t, before, s.Products())
	assert.Equal(t, toasts, env.toaster.count(), "a referential miss does not toast")
}

func TestAddComment(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store
	p := s.AddProduct(models.NewProduct{Title: "Lamp"})

	assert.True(t, s.AddComment(p.ID, "  bright  "))
	assert.True(t, s.AddComment(p.ID, "warm"))
	assert.False(t, s.AddComment(p.ID, "   "), "blank comments are ignored")
	assert.False(t, s.AddComment("missing", "hello"))

	got, _ := s.Product(p.ID)
	assert.Equal(t, []string{"bright", "warm"}, got.Comments)
	assert.Equal(t, toastMsg{models.SeveritySuccess, "Comment added"}, env.toaster.last())
}

func TestReorderProducts(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store
	// Added in reverse so the stored order is A B C D.
	d := s.AddProduct(models.NewProduct{Title: "D"})
	c := s.AddProduct(models.NewProduct{Title: "C"})
	b := s.AddProduct(models.NewProduct{Title: "B"})
	a := s.AddProduct(models.NewProduct{Title: "A"})
	require.Equal(t, []string{"A", "B", "C", "D"}, titles(s.Products()))

	tests := []struct {
		name     string
		source   string
		target   string
		expected []string
	}{
		{"Move down", a.ID, c.ID, []string{"B", "C", "A", "D"}},
		{"Move up", d.ID, b.ID, []string{"D", "B", "C", "A"}},
		{"Move to end", b.ID, a.ID, []string{"D", "C", "A", "B"}},
		{"Same product", c.ID, c.ID, []string{"D", "C", "A", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, s.ReorderProducts(tt.source, tt.target))
			assert.Equal(t, tt.expected, titles(s.Products()))
		})
	}
	assert.Equal(t, toastMsg{models.SeverityInfo, "Products reordered"}, env.toaster.last())

	before := titles(s.Products())
	assert.False(t, s.ReorderProducts("missing", a.ID))
	assert.False(t, s.ReorderProducts(a.ID, "missing"))
	assert.Equal(t, before, titles(s.Products()))
}

func TestToggleTheme(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store

	assert.Equal(t, models.ThemeDark, s.ToggleTheme())
	assert.Equal(t, models.ThemeDark, s.User().Theme)
	assert.Equal(t, models.ThemeLight, s.ToggleTheme())
	assert.Equal(t, toastMsg{models.SeverityInfo, "Theme changed"}, env.toaster.last())
}

func TestFilters_UpdateAndClear(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store

	sortHigh := models.SortPriceHigh
	mine := true
	got := s.UpdateFilters(models.FilterPatch{Search: strPtr("lamp"), Sort: &sortHigh, ShowMyProducts: &mine})
	assert.Equal(t, models.FilterState{Search: "lamp", Category: models.CategoryAll, Sort: models.SortPriceHigh, ShowMyProducts: true}, got)

	got = s.UpdateFilters(models.FilterPatch{Category: strPtr("Home")})
	assert.Equal(t, "Home", got.Category)
	assert.Equal(t, "lamp", got.Search, "unset fields are kept")

	got = s.UpdateFilters(models.FilterPatch{Category: strPtr("")})
	assert.Equal(t, models.CategoryAll, got.Category)

	s.ClearFilters()
	assert.Equal(t, models.DefaultFilters(), s.Filters())
	assert.Equal(t, toastMsg{models.SeverityInfo, "Filters cleared"}, env.toaster.last())
}

func TestSetUserName_KeepsHistoricalAttribution(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store

	s.SetUserName("Alice")
	p := s.AddProduct(models.NewProduct{Title: "Lamp"})

	assert.Equal(t, "Bob", s.SetUserName("  Bob ").Name)
	got, _ := s.Product(p.ID)
	assert.Equal(t, "Alice", got.CreatedBy)

	assert.Equal(t, models.DefaultUserName, s.SetUserName("").Name)
}

func TestSetAvatar(t *testing.T) {
	env := newEmptyStore(t)
	s := env.store

	avatar := "data:image/jpeg;base64,/9j/"
	user := s.SetAvatar(&avatar)
	require.NotNil(t, user.Avatar)
	assert.Equal(t, avatar, *user.Avatar)
	assert.Contains(t, env.saved(t, KeyUser), avatar)

	assert.Nil(t, s.SetAvatar(strPtr("not-a-data-uri")).Avatar)
	s.SetAvatar(&avatar)
	assert.Nil(t, s.SetAvatar(nil).Avatar)
}
