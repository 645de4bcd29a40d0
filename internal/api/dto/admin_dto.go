package dto

// UpdateStatusRequest payload for staff status updates.
type UpdateStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// RegisterSubadminRequest payload for superadmin provisioning.
type RegisterSubadminRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Password   string `json:"password"`
}
