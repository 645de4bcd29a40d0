package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/civic-kit/complaint-service/internal/classifier"
	"github.com/civic-kit/complaint-service/internal/domain"
	"github.com/civic-kit/complaint-service/internal/events"
	"github.com/civic-kit/complaint-service/internal/repository"
	"github.com/civic-kit/complaint-service/internal/ticket"
	apperrors "github.com/civic-kit/complaint-service/pkg/util"
)

// ComplaintService is the lifecycle engine: it owns complaint creation, all
// legal status transitions, and the scoped query operations. Authorization
// against the specific record happens here, inside the transaction, not at
// the route layer.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	history    repository.StatusHistoryRepository
	model      classifier.Classifier
	dispatcher events.Dispatcher
}

// ComplaintDependencies bundles collaborators for the service.
type ComplaintDependencies struct {
	ComplaintRepo repository.ComplaintRepository
	HistoryRepo   repository.StatusHistoryRepository
	Classifier    classifier.Classifier
	Dispatcher    events.Dispatcher
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints: deps.ComplaintRepo,
		history:    deps.HistoryRepo,
		model:      deps.Classifier,
		dispatcher: deps.Dispatcher,
	}
}

// Create classifies the description, routes it to a department, mints a
// ticket number and inserts the complaint at Pending together with its first
// history row.
func (s *ComplaintService) Create(ctx context.Context, userID, description, location string) (*domain.Complaint, error) {
	description = strings.TrimSpace(description)
	location = strings.TrimSpace(location)
	if description == "" || location == "" {
		return nil, apperrors.NewValidationError("description and location are required", nil)
	}

	category, err := s.model.Classify(ctx, description)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	dept := classifier.MapCategoryToDepartment(category)

	complaint := &domain.Complaint{
		TicketNo:    ticket.NewNumber(dept),
		UserID:      userID,
		Category:    category,
		Department:  dept,
		Location:    location,
		Description: description,
		Status:      domain.StatusPending,
	}
	history := &domain.StatusHistory{
		Status:    domain.StatusPending,
		ChangedBy: userID,
		Notes:     "Complaint created by user",
	}

	if err := s.complaints.CreateWithHistory(ctx, complaint, history); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventComplaintCreated,
		TicketNo: complaint.TicketNo,
		Actor:    events.Actor{UserID: userID, Role: domain.RoleUser},
		Payload: events.ComplaintCreatedPayload{
			Category:   complaint.Category,
			Department: complaint.Department,
			Location:   complaint.Location,
		},
	})
	return complaint, nil
}

// StaffTransition moves a complaint to newStatus on behalf of staff. The
// department re-check and the transition-table verdict are both evaluated
// against the row-locked current state, so a concurrent transition on the
// same ticket observes the committed result of the first.
func (s *ComplaintService) StaffTransition(ctx context.Context, actor domain.Actor, ticketNo string, newStatus domain.ComplaintStatus, notes string) (*domain.Complaint, error) {
	if !actor.Role.IsStaff() {
		return nil, apperrors.NewForbidden("staff role required")
	}

	var oldStatus domain.ComplaintStatus
	updated, err := s.complaints.Transition(ctx, ticketNo, func(current *domain.Complaint) (*domain.StatusHistory, error) {
		if !actor.CanAccessDepartment(current.Department) {
			return nil, apperrors.NewForbidden("complaint outside your department")
		}
		if !domain.CanTransition(current.Status, newStatus) {
			return nil, apperrors.NewIllegalTransition(string(current.Status), string(newStatus))
		}
		oldStatus = current.Status
		return &domain.StatusHistory{
			Status:    newStatus,
			ChangedBy: actor.ID,
			Notes:     notes,
		}, nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"ticket_no": ticketNo})
		}
		return nil, apperrors.MapError(err)
	}

	s.publishStatusChange(ctx, actor, updated.TicketNo, oldStatus, newStatus, notes)
	return updated, nil
}

// UserClose marks the caller's own complaint as User Resolved. Ownership is
// enforced by the lookup filter itself: a ticket owned by someone else reads
// as not found.
func (s *ComplaintService) UserClose(ctx context.Context, userID, ticketNo string) (*domain.Complaint, error) {
	var oldStatus domain.ComplaintStatus
	updated, err := s.complaints.TransitionForUser(ctx, ticketNo, userID, func(current *domain.Complaint) (*domain.StatusHistory, error) {
		oldStatus = current.Status
		return &domain.StatusHistory{
			Status:    domain.StatusUserResolved,
			ChangedBy: userID,
			Notes:     "Marked solved by user",
		}, nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"ticket_no": ticketNo})
		}
		return nil, apperrors.MapError(err)
	}

	actor := domain.Actor{ID: userID, Role: domain.RoleUser}
	s.publishStatusChange(ctx, actor, updated.TicketNo, oldStatus, domain.StatusUserResolved, "Marked solved by user")
	return updated, nil
}

// Page bounds a listing. A zero Limit returns every matching row.
type Page struct {
	Limit  int
	Offset int
}

// ListActiveForUser returns the caller's Pending and In Progress complaints,
// newest first.
func (s *ComplaintService) ListActiveForUser(ctx context.Context, userID string, page Page) ([]domain.Complaint, error) {
	return s.complaints.ListWithFilter(ctx, repository.ComplaintFilter{
		UserID:   &userID,
		Statuses: domain.ActiveStatuses(),
		OrderBy:  repository.OrderCreatedDesc,
		Limit:    page.Limit,
		Offset:   page.Offset,
	})
}

// ListAllForUser returns every complaint the caller owns, any status.
func (s *ComplaintService) ListAllForUser(ctx context.Context, userID string, page Page) ([]domain.Complaint, error) {
	return s.complaints.ListWithFilter(ctx, repository.ComplaintFilter{
		UserID:  &userID,
		OrderBy: repository.OrderCreatedDesc,
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
}

// ListActiveForDepartment returns the active triage queue visible to the
// actor: the whole city for superadmins, one department for plain admins.
func (s *ComplaintService) ListActiveForDepartment(ctx context.Context, actor domain.Actor, page Page) ([]domain.Complaint, error) {
	if !actor.Role.IsStaff() {
		return nil, apperrors.NewForbidden("staff role required")
	}
	filter := repository.ComplaintFilter{
		Statuses: domain.ActiveStatuses(),
		OrderBy:  repository.OrderCreatedDesc,
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	s.applyDepartmentScope(&filter, actor)
	return s.complaints.ListWithFilter(ctx, filter)
}

// ResolutionQueue returns User Resolved complaints awaiting staff
// confirmation, most recently updated first, scoped like the active queue.
func (s *ComplaintService) ResolutionQueue(ctx context.Context, actor domain.Actor, page Page) ([]domain.Complaint, error) {
	if !actor.Role.IsStaff() {
		return nil, apperrors.NewForbidden("staff role required")
	}
	filter := repository.ComplaintFilter{
		Statuses: []domain.ComplaintStatus{domain.StatusUserResolved},
		OrderBy:  repository.OrderUpdatedDesc,
		Limit:    page.Limit,
		Offset:   page.Offset,
	}
	s.applyDepartmentScope(&filter, actor)
	return s.complaints.ListWithFilter(ctx, filter)
}

// HistoryForComplaint returns the full transition trail for a ticket. Staff
// only; plain admins must match the complaint's department.
func (s *ComplaintService) HistoryForComplaint(ctx context.Context, actor domain.Actor, ticketNo string) ([]domain.StatusHistory, error) {
	if !actor.Role.IsStaff() {
		return nil, apperrors.NewForbidden("staff role required")
	}
	complaint, err := s.complaints.GetByTicketNo(ctx, ticketNo)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"ticket_no": ticketNo})
		}
		return nil, apperrors.MapError(err)
	}
	if !actor.CanAccessDepartment(complaint.Department) {
		return nil, apperrors.NewForbidden("complaint outside your department")
	}
	entries, err := s.history.ListByComplaint(ctx, complaint.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

func (s *ComplaintService) applyDepartmentScope(filter *repository.ComplaintFilter, actor domain.Actor) {
	if actor.Role == domain.RoleSuperadmin {
		return
	}
	if actor.Department != nil {
		filter.Department = actor.Department
	}
}

func (s *ComplaintService) publishStatusChange(ctx context.Context, actor domain.Actor, ticketNo string, oldStatus, newStatus domain.ComplaintStatus, notes string) {
	s.publishEvent(ctx, events.Event{
		Type:     events.EventComplaintStatusChanged,
		TicketNo: ticketNo,
		Actor:    events.Actor{UserID: actor.ID, Role: actor.Role},
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Notes:     notes,
		},
	})
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
