package entities

import (
	"github.com/aarondl/null/v8"
	"github.com/shopspring/decimal"

	"supplies-backoffice/pkg/constants"
	"supplies-backoffice/pkg/types"
)

type Order struct {
	ID            uint64                  `json:"id"`
	OrderNumber   string                  `json:"order_number"`
	CustomerType  constants.CustomerType  `json:"customer_type"`
	ContactName   string                  `json:"contact_name"`
	ContactEmail  string                  `json:"contact_email"`
	ContactPhone  null.String             `json:"contact_phone"`
	CompanyName   null.String             `json:"company_name"`
	SchoolName    null.String             `json:"school_name"`
	Address       null.String             `json:"address"`
	Status        constants.OrderStatus   `json:"status"`
	PaymentStatus constants.PaymentStatus `json:"payment_status"`
	PaymentNotes  null.String             `json:"payment_notes"`
	Subtotal      decimal.Decimal         `json:"subtotal"`
	Tax           decimal.Decimal         `json:"tax"`
	Total         decimal.Decimal         `json:"total"`

	Items []OrderItem `json:"items,omitempty"`

	types.BaseEntity
	types.SoftDelete
}

// CustomerLabel - название клиента для архива и выгрузок: школа, компания или контакт.
func (o *Order) CustomerLabel() string {
	switch o.CustomerType {
	case constants.CustomerTypeSchool:
		if o.SchoolName.Valid && o.SchoolName.String != "" {
			return o.SchoolName.String
		}
	case constants.CustomerTypeCompany:
		if o.CompanyName.Valid && o.CompanyName.String != "" {
			return o.CompanyName.String
		}
	}
	return o.ContactName
}

type OrderItem struct {
	ID          uint64          `json:"id"`
	OrderID     uint64          `json:"order_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}
