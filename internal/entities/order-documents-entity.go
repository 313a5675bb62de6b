package entities

import (
	"time"

	"supplies-backoffice/pkg/constants"
	"supplies-backoffice/pkg/types"
)

type OrderDocument struct {
	ID           uint64                 `json:"id"`
	OrderID      uint64                 `json:"order_id"`
	DocumentType constants.DocumentType `json:"document_type"`
	Filename     string                 `json:"filename"`
	StorageURL   string                 `json:"storage_url"`
	StoragePath  string                 `json:"storage_path"`
	CreatedAt    time.Time              `json:"created_at"`

	types.SoftDelete

	// Номер заказа подтягивается JOIN-ом, когда нужен для подписи в архиве.
	OrderNumber string `json:"order_number,omitempty"`
}
