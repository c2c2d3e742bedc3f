package helpers

// ActorClaims is the request identity the auth middleware stores on the gin
// context after token verification.
type ActorClaims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	Email  string `json:"email,omitempty"`
}

// Helper methods for role checking
func (ac *ActorClaims) IsAdmin() bool {
	return ac.Role == "admin"
}

func (ac *ActorClaims) IsHost() bool {
	return ac.Role == "host"
}

func (ac *ActorClaims) HasRole(role string) bool {
	return ac.Role == role
}

func (ac *ActorClaims) IsOwner(userID string) bool {
	return ac.UserID == userID
}

func (ac *ActorClaims) GetSafeRole() string {
	if ac.Role == "" {
		return "guest"
	}
	return ac.Role
}
