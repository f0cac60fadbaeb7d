package response

import (
	"github.com/google/uuid"

	"grocery-api/internal/usecase/commands"
)

type AdminCreatedResponse struct {
	AdminID uuid.UUID `json:"adminId"`
}

func FromCreateAdminResult(r *commands.CreateAdminResult) *AdminCreatedResponse {
	return &AdminCreatedResponse{AdminID: r.AdminID}
}
