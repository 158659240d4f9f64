package model

// User is the profile document kept alongside the identity provider's
// account record.
type User struct {
	Uid      string `json:"uid"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
