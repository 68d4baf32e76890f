package dto

import "github.com/dhia-elwidad/spmb-api/internal/models"

// StudentCreateRequest is the admin manual-entry payload.
type StudentCreateRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	NickName    string `json:"nick_name" validate:"required"`
	Level       string `json:"level" validate:"required"`
	ParentPhone string `json:"parent_phone" validate:"required"`
}

// StatusUpdateRequest changes an applicant's registration status.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// StudentResponse is the applicant representation returned to the panel.
type StudentResponse struct {
	ID               string             `json:"id"`
	FullName         string             `json:"full_name"`
	NickName         string             `json:"nick_name"`
	Level            models.SchoolLevel `json:"level"`
	ParentPhone      string             `json:"parent_phone"`
	RegistrationDate string             `json:"registration_date"`
	Status           models.RegistrationStatus `json:"status"`
	Documents        []models.Document  `json:"documents"`
	DocumentCount    int                `json:"document_count"`
}

// NewStudentResponse maps an applicant row into its API shape.
func NewStudentResponse(student models.Student) StudentResponse {
	documents := make([]models.Document, len(student.Documents))
	copy(documents, student.Documents)

	return StudentResponse{
		ID:               student.ID,
		FullName:         student.FullName,
		NickName:         student.NickName,
		Level:            student.Level,
		ParentPhone:      student.ParentPhone,
		RegistrationDate: student.RegistrationDate.Format("2006-01-02"),
		Status:           student.Status,
		Documents:        documents,
		DocumentCount:    len(documents),
	}
}

// PaginationMeta describes list paging.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// StudentListResponse is the paginated applicant table.
type StudentListResponse struct {
	Items      []StudentResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// DocumentResponse is returned after a berkas upload.
type DocumentResponse struct {
	Document models.Document `json:"document"`
	Student  StudentResponse `json:"student"`
}

// ImportRow is one applicant in a bulk import payload.
type ImportRow struct {
	FullName    string `json:"full_name"`
	NickName    string `json:"nick_name"`
	Level       string `json:"level"`
	ParentPhone string `json:"parent_phone"`
}

// ImportResponse reports the outcome of a bulk import.
type ImportResponse struct {
	Created int `json:"created"`
}
