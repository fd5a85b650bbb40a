package models

// * Repository as shown in the repository table. Description and Language are
// * nil when GitHub reports them as null.
type Repository struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	StarCount   int     `json:"star_count"`
	Language    *string `json:"language"`
	URL         string  `json:"url"`
}

func (r Repository) DescriptionOrDash() string {
	if r.Description == nil || *r.Description == "" {
		return "-"
	}
	return *r.Description
}

func (r Repository) LanguageOrDash() string {
	if r.Language == nil || *r.Language == "" {
		return "-"
	}
	return *r.Language
}
