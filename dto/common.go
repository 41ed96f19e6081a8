package dto

import "cuidarte/response"

// PaginatedResponse es el struct común para respuestas con paginación
type PaginatedResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}
