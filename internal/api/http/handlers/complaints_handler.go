package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/civic-kit/complaint-service/internal/api/dto"
	"github.com/civic-kit/complaint-service/internal/auth"
	"github.com/civic-kit/complaint-service/internal/service"
	apperrors "github.com/civic-kit/complaint-service/pkg/util"
)

// ComplaintsHandler manages citizen complaint endpoints.
type ComplaintsHandler struct {
	service *service.ComplaintService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{service: complaintService}
}

// Create POST /user/complaint.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	complaint, err := h.service.Create(c.Context(), actor.ID, req.Description, req.Location)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Complaint Submitted",
		"data": dto.CreateComplaintResponse{
			TicketNo:   complaint.TicketNo,
			Category:   complaint.Category,
			Department: complaint.Department,
			Status:     complaint.Status,
		},
	})
}

// ListAll GET /user/complaints/all.
func (h *ComplaintsHandler) ListAll(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	complaints, err := h.service.ListAllForUser(c.Context(), actor.ID, parsePageQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponses(complaints)})
}

// ListActive GET /user/complaints/active.
func (h *ComplaintsHandler) ListActive(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	complaints, err := h.service.ListActiveForUser(c.Context(), actor.ID, parsePageQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewComplaintResponses(complaints)})
}

// MarkSolved PUT /user/complaint/:ticket_no/mark-solved.
func (h *ComplaintsHandler) MarkSolved(c *fiber.Ctx) error {
	actor, ok := auth.ActorFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	complaint, err := h.service.UserClose(c.Context(), actor.ID, c.Params("ticket_no"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Marked as solved",
		"data":    dto.NewComplaintResponse(complaint),
	})
}

// parsePageQuery reads optional page/page_size query params. Without them
// the listing is unpaged and returns every matching row.
func parsePageQuery(c *fiber.Ctx) service.Page {
	pageSize := parseInt(c.Query("page_size"), 0)
	if pageSize <= 0 {
		return service.Page{}
	}
	page := parseInt(c.Query("page"), 1)
	return service.Page{
		Limit:  pageSize,
		Offset: (page - 1) * pageSize,
	}
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
