package dto

type UpdateSettingReq struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

type AdminLoginReq struct {
	Password string `json:"password" binding:"required"`
}
