package dto

// RegistrationRequest carries the four intake fields of the public form.
type RegistrationRequest struct {
	FullName    string `json:"full_name" validate:"required"`
	NickName    string `json:"nick_name" validate:"required"`
	Level       string `json:"level" validate:"required"`
	ParentPhone string `json:"parent_phone" validate:"required"`
}

// RegistrationLinkResponse hands the caller the WhatsApp deep link to open.
type RegistrationLinkResponse struct {
	URL string `json:"url"`
}
