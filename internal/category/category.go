package category

// Category is one of the fixed store categories.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

var categories = []Category{
	{ID: "writing", Name: "Writing"},
	{ID: "uniform", Name: "Uniform"},
	{ID: "accessories", Name: "Accessories"},
	{ID: "handbook", Name: "Handbook"},
}

// All returns the fixed category list in display order.
func All() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsValid reports whether id names a known category.
func IsValid(id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
