package models

// RegisterRequest is the JSON body of POST /api/register.
// Address is the only optional field.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
	Address  string `json:"address"`
}

// LoginRequest is the JSON body of POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued session token back to the caller.
type LoginResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a generic acknowledgment payload.
type MessageResponse struct {
	Message string `json:"message"`
}
