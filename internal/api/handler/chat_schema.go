package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type postMessageRequest struct {
	Content string `json:"content"`
}

type postMessageResponse struct {
	ID        string    `json:"id"`
	Province  string    `json:"province"`
	CreatedAt time.Time `json:"created_at"`
}

type chooseProvinceRequest struct {
	Province string `json:"province" validate:"required"`
}

type provincesResponse struct {
	Provinces []string `json:"provinces"`
}

type muteRequest struct {
	Username string `json:"username" validate:"required"`
}

type muteResponse struct {
	Success      bool `json:"success"`
	AlreadyMuted bool `json:"already_muted,omitempty"`
	WasMuted     bool `json:"was_muted,omitempty"`
}

type createRoleRequest struct {
	Name        string   `json:"name"        validate:"required"`
	Province    string   `json:"province"    validate:"required"`
	Permissions []string `json:"permissions"`
}

type assignRoleRequest struct {
	Username string `json:"username" validate:"required"`
	Province string `json:"province" validate:"required"`
	Role     string `json:"role"     validate:"required"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type permissionsResponse struct {
	Permissions []string `json:"permissions"`
}
