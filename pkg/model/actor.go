package model

// Actor identifies the caller of an operation. Authentication is an
// external collaborator; the core only consumes the resolved identity and
// role.
type Actor struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}
