package dto

import "supplies-backoffice/pkg/types"

type PaginatedListDTO[T any] struct {
	List       []T               `json:"list"`
	Pagination *types.Pagination `json:"pagination,omitempty"`
}
