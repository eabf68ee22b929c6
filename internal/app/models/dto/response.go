package dto

import "time"

// SuccessResponse is the minimal success body
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// PaginationInfo describes one page of a listing
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	TotalPages  int   `json:"totalPages" example:"3"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalItems  int64 `json:"totalItems" example:"27"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string            `json:"status" example:"OK"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}
