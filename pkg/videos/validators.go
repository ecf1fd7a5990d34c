package videos

type UpdateVideoPayload struct {
	Progress *float64 `json:"progress,omitempty" validate:"omitempty,gte=0,lte=100"`

	// Notes is the legacy free-text field; a non-empty value creates a note
	// alongside the progress update.
	Notes *string `json:"notes,omitempty" validate:"omitempty,max=10000"`
}

type SearchVideosQuery struct {
	Search *string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
}

type StreamVideoQuery struct {
	VideoPath string `query:"video_path" json:"video_path" validate:"required"`
}
