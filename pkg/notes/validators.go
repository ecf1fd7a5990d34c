package notes

type CreateNotePayload struct {
	Content string `json:"content" validate:"required,min=1,max=10000"`
}

type UpdateNotePayload struct {
	Content string `json:"content" validate:"required,min=1,max=10000"`
}
