package domain

import "strings"

// ContactDetails — контактные данные покупателя для оформления заказа.
type ContactDetails struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
	Address string `json:"address"`
	ZipCode string `json:"zip_code"`
}

// ValidateInvariants проверяет заполненность контактных полей и возвращает
// список замечаний. Более строгая валидация форматов — забота UI-слоя.
func (c ContactDetails) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, ErrContactNameRequired)
	}
	if strings.TrimSpace(c.Surname) == "" {
		errs = append(errs, ErrContactSurnameRequired)
	}
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, ErrContactEmailRequired)
	}
	if strings.TrimSpace(c.Address) == "" {
		errs = append(errs, ErrContactAddressRequired)
	}
	if strings.TrimSpace(c.ZipCode) == "" {
		errs = append(errs, ErrContactZipRequired)
	}

	return errs
}

// OrderSummary — сводка заказа перед оплатой: позиции, подытог,
// стоимость доставки и итог.
type OrderSummary struct {
	Items    []CartLine `json:"items"`
	Subtotal float64    `json:"subtotal"`
	Delivery float64    `json:"delivery"`
	Total    float64    `json:"total"`
}
