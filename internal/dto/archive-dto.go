package dto

import (
	"encoding/json"
	"time"

	"supplies-backoffice/pkg/constants"
)

// RecordArchiveEntryDTO - то, что сервис мягкого удаления передает в архив.
type RecordArchiveEntryDTO struct {
	ItemType   constants.ArchiveItemType
	OrderID    uint64
	DocumentID *uint64
	Label      string
	Payload    interface{}
	DeletedAt  time.Time
}

// ArchiveQueryDTO - query-параметры списка и выгрузки архива. Пустой type означает "all".
type ArchiveQueryDTO struct {
	Type string `query:"type" validate:"archive_filter"`
}

type ArchiveEntryDTO struct {
	ID         uint64                    `json:"id"`
	ItemType   constants.ArchiveItemType `json:"itemType"`
	OrderID    uint64                    `json:"orderId"`
	DocumentID *uint64                   `json:"documentId"`
	Label      string                    `json:"label"`
	Payload    json.RawMessage           `json:"payload"`
	DeletedAt  time.Time                 `json:"deletedAt"`
	ExpiresAt  time.Time                 `json:"expiresAt"`
}

type ArchiveListDTO struct {
	Entries []ArchiveEntryDTO `json:"entries"`
}

type ArchiveIDsDTO struct {
	IDs []uint64 `json:"ids" validate:"required,min=1,dive,gt=0"`
}

type ArchivePurgeResultDTO struct {
	Success      bool `json:"success"`
	DeletedCount int  `json:"deletedCount"`
}

type ArchiveRestoreResultDTO struct {
	Success       bool `json:"success"`
	RestoredCount int  `json:"restoredCount"`
}

// OrderArchivePayload - снимок заказа на момент удаления.
type OrderArchivePayload struct {
	OrderNumber   string `json:"orderNumber"`
	CustomerType  string `json:"customerType"`
	Customer      string `json:"customer"`
	ContactEmail  string `json:"contactEmail"`
	Status        string `json:"status"`
	PaymentStatus string `json:"paymentStatus"`
	Total         string `json:"total"`
}

// DocumentArchivePayload - снимок PDF-документа на момент удаления.
type DocumentArchivePayload struct {
	OrderNumber  string `json:"orderNumber"`
	DocumentType string `json:"documentType"`
	Filename     string `json:"filename"`
	StorageURL   string `json:"storageUrl"`
	StoragePath  string `json:"storagePath"`
}
