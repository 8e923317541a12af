package domain

// BasketEntry — строка корзины: только название и цена товара, без id.
type BasketEntry struct {
	Title string   `json:"title"`
	Price *float64 `json:"price"`
}

// ToBasketEntry — проекция товара в строку корзины. Цена копируется,
// общей памяти с Product у результата нет.
func ToBasketEntry(p Product) BasketEntry {
	return BasketEntry{Title: p.Title, Price: clonePrice(p.Price)}
}

// Equal — структурное равенство (title, price).
func (b BasketEntry) Equal(o BasketEntry) bool {
	if b.Title != o.Title {
		return false
	}
	if b.Price == nil || o.Price == nil {
		return b.Price == nil && o.Price == nil
	}
	return *b.Price == *o.Price
}
