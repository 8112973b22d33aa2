package dto

type GenerateTilesReq struct {
	Board string `json:"board" binding:"required,oneof=easy medium hard"`
}

type CreateTileReq struct {
	Board               string `json:"board"`
	Ring                int    `json:"ring"`
	Path                int    `json:"path"`
	IsCenter            bool   `json:"is_center"`
	Title               string `json:"title"`
	Description         string `json:"description"`
	Points              int    `json:"points"`
	IsMultiItem         bool   `json:"is_multi_item"`
	RequiredSubmissions int    `json:"required_submissions"`
}

// UpdateTileReq uses pointers so absent fields leave the tile untouched.
type UpdateTileReq struct {
	Title               *string `json:"title"`
	Description         *string `json:"description"`
	Points              *int    `json:"points"`
	IsMultiItem         *bool   `json:"is_multi_item"`
	RequiredSubmissions *int    `json:"required_submissions"`
}
