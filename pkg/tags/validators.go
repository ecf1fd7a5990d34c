package tags

type ListTagsQuery struct {
	Search *string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
}

type CreateTagPayload struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}
