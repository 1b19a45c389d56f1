package utils

// AccessToken is the verified JWT claim set attached to every protected
// request. Token issuance and refresh live in the auth service; this server
// only verifies.
type AccessToken struct {
	ID   uint   `json:"ID"`
	Role string `json:"role"`
}
