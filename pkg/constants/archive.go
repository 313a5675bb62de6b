package constants

import "time"

// ArchiveRetention - сколько удалённая запись живёт в архиве до окончательной очистки.
const ArchiveRetention = 60 * 24 * time.Hour

type ArchiveItemType string

const (
	ArchiveItemOrder ArchiveItemType = "order"
	ArchiveItemPDF   ArchiveItemType = "pdf"
)

func (t ArchiveItemType) IsValid() bool {
	return t == ArchiveItemOrder || t == ArchiveItemPDF
}

// ArchiveFilter - значение query-параметра type в списке архива.
type ArchiveFilter string

const (
	ArchiveFilterOrder ArchiveFilter = "order"
	ArchiveFilterPDF   ArchiveFilter = "pdf"
	ArchiveFilterAll   ArchiveFilter = "all"
)

var ArchiveFilters = []ArchiveFilter{ArchiveFilterOrder, ArchiveFilterPDF, ArchiveFilterAll}

// ParseArchiveFilter - пустое значение означает "all".
func ParseArchiveFilter(raw string) (ArchiveFilter, bool) {
	switch ArchiveFilter(raw) {
	case "", ArchiveFilterAll:
		return ArchiveFilterAll, true
	case ArchiveFilterOrder:
		return ArchiveFilterOrder, true
	case ArchiveFilterPDF:
		return ArchiveFilterPDF, true
	}
	return "", false
}

// ArchiveExpiresAt считает срок хранения от момента удаления.
func ArchiveExpiresAt(deletedAt time.Time) time.Time {
	return deletedAt.Add(ArchiveRetention)
}
