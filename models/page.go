package models

// Page is a raw repository page, pre-normalization. The response layer
// repackages it with a computed totalPages.
type Page struct {
	Data  any   `json:"data"`
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}
