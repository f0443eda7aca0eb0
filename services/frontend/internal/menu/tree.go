package menu

// Field names accepted by DraftEditor.ApplyFieldEdit.
const (
	FieldName    = "name"
	FieldPrice   = "price"
	FieldInStock = "in_stock"
)

// DefaultItemDescription is given to items created from the editor.
const DefaultItemDescription = "New item."

// Item is a single dish or drink.
type Item struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	InStock     bool    `json:"in_stock"`
	ImageURL    string  `json:"image_url,omitempty"`
}

type Category struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Tree is the whole menu as stored by the menu store. It is always replaced as a unit.
type Tree struct {
	Categories []Category `json:"categories"`
}

// Clone returns a deep copy. A nil tree clones to an empty one.
func (t *Tree) Clone() *Tree {
	out := &Tree{Categories: make([]Category, 0)}
	if t == nil {
		return out
	}
	for _, c := range t.Categories {
		items := make([]Item, len(c.Items))
		copy(items, c.Items)
		out.Categories = append(out.Categories, Category{Name: c.Name, Items: items})
	}
	return out
}

// Equal reports whether both trees hold the same categories and items in the same order.
func (t *Tree) Equal(other *Tree) bool {
	a, b := t.Clone(), other.Clone()
	if len(a.Categories) != len(b.Categories) {
		return false
	}
	for i := range a.Categories {
		ca, cb := a.Categories[i], b.Categories[i]
		if ca.Name != cb.Name || len(ca.Items) != len(cb.Items) {
			return false
		}
		for j := range ca.Items {
			if ca.Items[j] != cb.Items[j] {
				return false
			}
		}
	}
	return true
}

func (t *Tree) item(cat, item int) (*Item, bool) {
	if t == nil || cat < 0 || cat >= len(t.Categories) {
		return nil, false
	}
	items := t.Categories[cat].Items
	if item < 0 || item >= len(items) {
		return nil, false
	}
	return &items[item], true
}

func (t *Tree) hasItemID(id int64) bool {
	for _, c := range t.Categories {
		for _, it := range c.Items {
			if it.ID == id {
				return true
			}
		}
	}
	return false
}
