package models

// TeamMember is one record of the team carousel collection. Image holds the
// CMS asset id; it is resolved to a URL only when read.
type TeamMember struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nome_funcionario"`
	Description string  `json:"descricao_funcionario"`
	Image       string  `json:"Imagem_funcionario"`
	UserCreated string  `json:"user_created,omitempty"`
	DateCreated string  `json:"date_created,omitempty"`
	UserUpdated *string `json:"user_updated,omitempty"`
	DateUpdated *string `json:"date_updated,omitempty"`
}

// CollectionResponse is the envelope of GET /items/<collection>.
type CollectionResponse[T any] struct {
	Data []T `json:"data"`
}
