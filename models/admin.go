package models

// RoleAdmin is the only role allowed through the admin middleware.
const RoleAdmin = "admin"

// AdminClaims is the principal extracted from a verified bearer token.
type AdminClaims struct {
	AdminID string `json:"adminId"`
	Email   string `json:"email"`
	Role    string `json:"role"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminLoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt int64       `json:"expiresAt"`
	Admin     AdminClaims `json:"admin"`
}

// UploadResult is returned after a media upload.
type UploadResult struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}
