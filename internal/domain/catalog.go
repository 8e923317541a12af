package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownPreview — preview ссылается на id, которого нет в списке товаров.
var ErrUnknownPreview = errors.New("preview references unknown product")

// Catalog — снимок каталога: упорядоченный список товаров и необязательный preview.
// После NewCatalog только читается; обновление — заменой всего снимка.
type Catalog struct {
	products []Product
	index    map[string]int
	preview  *string
}

// NewCatalog — собирает снимок каталога.
// Единственная ошибка — ErrUnknownPreview (обёрнутая с id).
// При повторяющихся id в индекс попадает первое вхождение.
func NewCatalog(products []Product, preview *string) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		index:    make(map[string]int, len(products)),
	}
	for _, p := range products {
		if _, dup := c.index[p.ID]; !dup {
			c.index[p.ID] = len(c.products)
		}
		c.products = append(c.products, cloneProduct(p))
	}

	if preview != nil {
		if _, ok := c.index[*preview]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreview, *preview)
		}
		id := *preview
		c.preview = &id
	}
	return c, nil
}

// EmptyCatalog — каталог без товаров (стартовое состояние сервиса).
func EmptyCatalog() *Catalog {
	c, _ := NewCatalog(nil, nil)
	return c
}

// Len — количество товаров.
func (c *Catalog) Len() int { return len(c.products) }

// All — копия списка товаров в исходном порядке.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = cloneProduct(p)
	}
	return out
}

// Product — товар по id.
func (c *Catalog) Product(id string) (Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return cloneProduct(c.products[i]), true
}

// Preview — id выбранного товара или nil.
func (c *Catalog) Preview() *string {
	if c.preview == nil {
		return nil
	}
	id := *c.preview
	return &id
}

// CatalogView — JSON-представление каталога.
type CatalogView struct {
	Products []Product `json:"products"`
	Preview  *string   `json:"preview"`
}

// View — снимок для сериализации.
func (c *Catalog) View() CatalogView {
	return CatalogView{Products: c.All(), Preview: c.Preview()}
}
