package dto

// Credentials carries only the login fields to keep request decoding from
// touching anything else.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
