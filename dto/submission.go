package dto

type CreateSubmissionReq struct {
	TeamID   uint32 `json:"team_id"`
	TileID   uint32 `json:"tile_id"`
	ImageURL string `json:"image_url"`

	// camelCase aliases kept for older clients
	TeamIDCamel   uint32 `json:"teamId"`
	TileIDCamel   uint32 `json:"tileId"`
	ImageURLCamel string `json:"imageUrl"`
}

func (r *CreateSubmissionReq) Normalize() {
	if r.TeamID == 0 && r.TeamIDCamel != 0 {
		r.TeamID = r.TeamIDCamel
	}
	if r.TileID == 0 && r.TileIDCamel != 0 {
		r.TileID = r.TileIDCamel
	}
	if r.ImageURL == "" && r.ImageURLCamel != "" {
		r.ImageURL = r.ImageURLCamel
	}
}

type ReviewSubmissionReq struct {
	ID              uint64 `json:"id"`
	Action          string `json:"action"` // approve / reject
	RejectionReason string `json:"rejection_reason"`

	RejectionReasonCamel string `json:"rejectionReason"`
}

func (r *ReviewSubmissionReq) Normalize() {
	if r.RejectionReason == "" && r.RejectionReasonCamel != "" {
		r.RejectionReason = r.RejectionReasonCamel
	}
}
