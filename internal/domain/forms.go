package domain

import "strings"

// Имена полей форм оформления заказа. "adress" — так поле называется на проводе.
const (
	FieldPayment = "payment"
	FieldAdress  = "adress"
	FieldEmail   = "email"
	FieldPhone   = "phone"
)

// FieldMap — имя поля формы -> текущее сырое значение.
type FieldMap map[string]string

// Виды форм.
const (
	FormOrder = "order"
	FormBuyer = "buyer"
)

// OrderFields / BuyerFields — полный набор обязательных полей каждой формы.
var (
	OrderFields = []string{FieldPayment, FieldAdress}
	BuyerFields = []string{FieldEmail, FieldPhone}
)

// OrderInfo — первый шаг оформления: способ оплаты и адрес доставки.
type OrderInfo struct {
	Payment string `json:"payment"`
	Address string `json:"adress"`
}

// BuyerInfo — второй шаг оформления: контакты покупателя.
type BuyerInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// OrderInfoFromFields — запись из карты полей; отсутствующий ключ даёт пустое значение.
func OrderInfoFromFields(f FieldMap) OrderInfo {
	return OrderInfo{
		Payment: strings.TrimSpace(f[FieldPayment]),
		Address: strings.TrimSpace(f[FieldAdress]),
	}
}

// Fields — обратное преобразование в карту полей.
func (o OrderInfo) Fields() FieldMap {
	return FieldMap{FieldPayment: o.Payment, FieldAdress: o.Address}
}

// BuyerInfoFromFields — запись из карты полей; отсутствующий ключ даёт пустое значение.
func BuyerInfoFromFields(f FieldMap) BuyerInfo {
	return BuyerInfo{
		Email: strings.TrimSpace(f[FieldEmail]),
		Phone: strings.TrimSpace(f[FieldPhone]),
	}
}

func (b BuyerInfo) Fields() FieldMap {
	return FieldMap{FieldEmail: b.Email, FieldPhone: b.Phone}
}
