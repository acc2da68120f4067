package model

// AssetType and LiabilityType are per-user categories. Each user gets a
// default set seeded on first read and can add their own.

type AssetType struct {
	ID          string `json:"id"`
	UserID      string `json:"-"`
	TypeName    string `json:"type_name"`
	DisplayName string `json:"display_name"`
	Ctime       int64  `json:"ctime"`
}

type LiabilityType struct {
	ID          string `json:"id"`
	UserID      string `json:"-"`
	TypeName    string `json:"type_name"`
	DisplayName string `json:"display_name"`
	Ctime       int64  `json:"ctime"`
}
