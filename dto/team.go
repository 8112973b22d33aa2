package dto

type CreateTeamReq struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

type UpdateTeamReq struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

type ProgressReq struct {
	TeamID uint32 `json:"team_id" binding:"required"`
	TileID uint32 `json:"tile_id" binding:"required"`
}
