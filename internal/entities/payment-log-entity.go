package entities

import (
	"time"

	"github.com/aarondl/null/v8"

	"supplies-backoffice/pkg/constants"
)

// PaymentLog - строка журнала смены статуса оплаты. Только добавление.
type PaymentLog struct {
	ID             uint64                  `json:"id"`
	OrderID        uint64                  `json:"order_id"`
	PreviousStatus constants.PaymentStatus `json:"previous_status"`
	NewStatus      constants.PaymentStatus `json:"new_status"`
	Note           null.String             `json:"note"`
	CreatedAt      time.Time               `json:"created_at"`
}
