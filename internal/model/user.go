package model

type User struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	SecondaryEmails string `json:"-"` // comma separated, exposed split via profile DTO
	PasswordHash    string `json:"-"`
	Ctime           int64  `json:"ctime"`
	Mtime           int64  `json:"mtime"`
}
