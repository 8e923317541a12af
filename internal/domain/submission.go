package domain

import "time"

// PlaceOrderRequest — данные обеих форм и id товаров корзины.
type PlaceOrderRequest struct {
	Payment string   `json:"payment"`
	Address string   `json:"adress"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Items   []string `json:"items"`
}

func (r PlaceOrderRequest) OrderFields() FieldMap {
	return FieldMap{FieldPayment: r.Payment, FieldAdress: r.Address}
}

func (r PlaceOrderRequest) BuyerFields() FieldMap {
	return FieldMap{FieldEmail: r.Email, FieldPhone: r.Phone}
}

// OrderLine — строка оформленного заказа: id товара и его проекция в корзину.
type OrderLine struct {
	ProductID string `json:"product_id"`
	BasketEntry
}

// Submission — принятый заказ.
type Submission struct {
	ID        string      `json:"id"`
	Order     OrderInfo   `json:"order"`
	Buyer     BuyerInfo   `json:"buyer"`
	Items     []OrderLine `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

// Clone — глубокая копия (цены строк копируются).
func (s *Submission) Clone() *Submission {
	if s == nil {
		return nil
	}
	c := *s
	if s.Items != nil {
		c.Items = make([]OrderLine, len(s.Items))
		for i, l := range s.Items {
			l.Price = clonePrice(l.Price)
			c.Items[i] = l
		}
	}
	return &c
}
