package models

// UserDetails is returned once at login. The identity provider owns
// the durable user record; nothing here is persisted by this service.
type UserDetails struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// AuthUser identifies a user in identity-provider lifecycle events.
type AuthUser struct {
	UID   string `json:"uid"`
	Email string `json:"email,omitempty"`
}
