package entities

import (
	"encoding/json"
	"time"

	"github.com/aarondl/null/v8"

	"supplies-backoffice/pkg/constants"
)

type ArchiveEntry struct {
	ID         uint64                    `json:"id"`
	ItemType   constants.ArchiveItemType `json:"item_type"`
	OrderID    uint64                    `json:"order_id"`
	DocumentID null.Int64                `json:"document_id"`
	Label      string                    `json:"label"`
	Payload    json.RawMessage           `json:"payload"`
	DeletedAt  time.Time                 `json:"deleted_at"`
	ExpiresAt  time.Time                 `json:"expires_at"`
}

func (e *ArchiveEntry) IsExpired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}
