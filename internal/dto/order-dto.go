package dto

import (
	"strings"
	"time"

	"github.com/aarondl/null/v8"
)

type OrderListItemDTO struct {
	ID            uint64    `json:"id"`
	OrderNumber   string    `json:"order_number"`
	CustomerType  string    `json:"customer_type"`
	Customer      string    `json:"customer"`
	ContactEmail  string    `json:"contact_email"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Total         string    `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

type OrderItemDTO struct {
	ID          uint64 `json:"id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

type OrderDetailDTO struct {
	ID            uint64             `json:"id"`
	OrderNumber   string             `json:"order_number"`
	CustomerType  string             `json:"customer_type"`
	ContactName   string             `json:"contact_name"`
	ContactEmail  string             `json:"contact_email"`
	ContactPhone  null.String        `json:"contact_phone"`
	CompanyName   null.String        `json:"company_name"`
	SchoolName    null.String        `json:"school_name"`
	Address       null.String        `json:"address"`
	Status        string             `json:"status"`
	NextStatuses  []string           `json:"next_statuses"`
	PaymentStatus string             `json:"payment_status"`
	PaymentNotes  null.String        `json:"payment_notes"`
	Subtotal      string             `json:"subtotal"`
	Tax           string             `json:"tax"`
	Total         string             `json:"total"`
	Items         []OrderItemDTO     `json:"items"`
	Documents     []OrderDocumentDTO `json:"documents"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status" validate:"required,order_status"`
}

// Normalize убирает пробелы вокруг статуса до валидации.
func (d *UpdateOrderStatusDTO) Normalize() {
	d.Status = strings.TrimSpace(d.Status)
}

type OrderStatusResultDTO struct {
	Status string `json:"status"`
}

type UpdatePaymentStatusDTO struct {
	Status string      `json:"status" validate:"required,payment_status"`
	Note   null.String `json:"note" validate:"omitempty,max=1000"`
}

func (d *UpdatePaymentStatusDTO) Normalize() {
	d.Status = strings.TrimSpace(d.Status)
}

type PaymentLogDTO struct {
	ID             uint64      `json:"id"`
	OrderID        uint64      `json:"order_id"`
	PreviousStatus string      `json:"previous_status"`
	NewStatus      string      `json:"new_status"`
	Note           null.String `json:"note"`
	CreatedAt      time.Time   `json:"created_at"`
}

type SuccessDTO struct {
	Success bool `json:"success"`
}
