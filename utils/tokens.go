package utils

// AccessToken claims are issued by the external auth service; this server
// only verifies them.
type AccessToken struct {
	ID   uint   `json:"ID"`
	Role string `json:"role"`
}
