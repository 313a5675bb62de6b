package dto

import "time"

type OrderDocumentDTO struct {
	ID           uint64    `json:"id"`
	OrderID      uint64    `json:"order_id"`
	DocumentType string    `json:"document_type"`
	Filename     string    `json:"filename"`
	StorageURL   string    `json:"storage_url"`
	CreatedAt    time.Time `json:"created_at"`
}
