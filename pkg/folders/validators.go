package folders

type ListFoldersQuery struct {
	MainFolderPath *string `query:"main_folder_path" json:"main_folder_path,omitempty" validate:"omitempty,max=4096"`
}

type SearchFoldersQuery struct {
	Search *string `query:"search" json:"search,omitempty" validate:"omitempty,max=100"`
}

type FolderExistsQuery struct {
	FolderPath string `query:"folder_path" json:"folder_path" validate:"required,max=4096"`
}

type AttachTagPayload struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type UpsertLastPlayedPayload struct {
	VideoID int `json:"video_id" validate:"required,min=1"`
}
