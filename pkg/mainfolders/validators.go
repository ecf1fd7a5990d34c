package mainfolders

type ScanPayload struct {
	Path string `json:"path" validate:"required,max=4096" mod:"trim"`
}
