package models

// Credentials is the register/login request body.
type Credentials struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login. The client keeps it as its session.
type AuthResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Token    string `json:"token"`
	Message  string `json:"message,omitempty"`
}

// Registration is the register request body. bcrypt only reads the first 72
// bytes of a password, so longer ones are rejected. The limit is in bytes,
// not characters.
type Registration struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72,containsany=0123456789"`
}
