package domain

// Product — позиция каталога. Значение неизменяемо после загрузки.
type Product struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Title       string   `json:"title"`
	Category    string   `json:"category"`
	Price       *float64 `json:"price"` // nil — «бесценно»: цена не задана
}

// HasPrice — задана ли цена у товара.
func (p Product) HasPrice() bool { return p.Price != nil }

// PriceOf — удобный конструктор указателя на цену (для литералов и тестов).
func PriceOf(v float64) *float64 { return &v }

func clonePrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneProduct(p Product) Product {
	p.Price = clonePrice(p.Price)
	return p
}
