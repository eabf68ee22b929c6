package dto

import "github.com/yigit/canvasstudy/internal/domain"

// ValidateResponse is returned by POST /validate
type ValidateResponse struct {
	Success bool        `json:"success" example:"true"`
	User    domain.User `json:"user"`
}

// PermissionsResponse is returned by POST /validate/permissions
type PermissionsResponse struct {
	Success bool                    `json:"success" example:"true"`
	Report  domain.PermissionReport `json:"report"`
}

// CoursesResponse is returned by GET /courses
type CoursesResponse struct {
	Success bool            `json:"success" example:"true"`
	Courses []domain.Course `json:"courses"`
}

// FilesResponse lists Canvas or downloaded files
type FilesResponse struct {
	Success bool                `json:"success" example:"true"`
	Files   []domain.FileRecord `json:"files"`
}

// DataResponse wraps assignment and module listings
type DataResponse struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data"`
}
