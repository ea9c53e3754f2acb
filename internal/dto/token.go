package dto

// TokenDTO represents a data transfer object (DTO) for a captured OAuth token.
// It is both the body the handoff script posts and the echo the capture
// server answers with.
type TokenDTO struct {
	Token string `json:"token"`
}
