package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/civic-kit/complaint-service/internal/domain"
)

// ComplaintOrder selects the sort column for listings.
type ComplaintOrder int

const (
	OrderCreatedDesc ComplaintOrder = iota
	OrderUpdatedDesc
)

// ComplaintFilter captures listing parameters.
type ComplaintFilter struct {
	UserID     *string
	Department *domain.Department
	Statuses   []domain.ComplaintStatus
	OrderBy    ComplaintOrder
	Limit      int
	Offset     int
}

// TransitionFunc inspects the current complaint under the row lock and
// returns the history entry for the transition to apply, or an error to
// abort with nothing written. The new status is taken from the entry.
type TransitionFunc func(current *domain.Complaint) (*domain.StatusHistory, error)

// ComplaintRepository encapsulates complaint persistence. Every mutating
// method commits the complaint row and its history row in one transaction.
type ComplaintRepository interface {
	CreateWithHistory(ctx context.Context, complaint *domain.Complaint, history *domain.StatusHistory) error
	GetByTicketNo(ctx context.Context, ticketNo string) (*domain.Complaint, error)
	Transition(ctx context.Context, ticketNo string, decide TransitionFunc) (*domain.Complaint, error)
	TransitionForUser(ctx context.Context, ticketNo, userID string, decide TransitionFunc) (*domain.Complaint, error)
	ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error)
}

const complaintColumns = `id, ticket_no, user_id, category, department, location, description, status, created_at, updated_at`

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates the repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

func (r *complaintRepository) CreateWithHistory(ctx context.Context, complaint *domain.Complaint, history *domain.StatusHistory) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertComplaint = `
        INSERT INTO complaints (ticket_no, user_id, category, department, location, description, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertComplaint,
		complaint.TicketNo,
		complaint.UserID,
		complaint.Category,
		complaint.Department,
		complaint.Location,
		complaint.Description,
		complaint.Status,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt); err != nil {
		return err
	}

	history.ComplaintID = complaint.ID
	if err := insertHistory(ctx, tx, history); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *complaintRepository) GetByTicketNo(ctx context.Context, ticketNo string) (*domain.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE ticket_no=$1`, complaintColumns)
	var complaint domain.Complaint
	if err := scanComplaint(r.pool.QueryRow(ctx, query, ticketNo), &complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

// Transition locks the complaint row, lets decide evaluate the guard against
// the consistent read, then applies the status update and history append in
// the same transaction. Concurrent transitions on one ticket serialize on
// the row lock.
func (r *complaintRepository) Transition(ctx context.Context, ticketNo string, decide TransitionFunc) (*domain.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE ticket_no=$1 FOR UPDATE`, complaintColumns)
	return r.transition(ctx, query, []any{ticketNo}, decide)
}

// TransitionForUser is Transition with the ownership filter folded into the
// lookup, so a foreign ticket is indistinguishable from a missing one.
func (r *complaintRepository) TransitionForUser(ctx context.Context, ticketNo, userID string, decide TransitionFunc) (*domain.Complaint, error) {
	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE ticket_no=$1 AND user_id=$2 FOR UPDATE`, complaintColumns)
	return r.transition(ctx, query, []any{ticketNo, userID}, decide)
}

func (r *complaintRepository) transition(ctx context.Context, query string, args []any, decide TransitionFunc) (*domain.Complaint, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var complaint domain.Complaint
	if err := scanComplaint(tx.QueryRow(ctx, query, args...), &complaint); err != nil {
		return nil, err
	}

	history, err := decide(&complaint)
	if err != nil {
		return nil, err
	}

	const update = `UPDATE complaints SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING updated_at`
	if err := tx.QueryRow(ctx, update, history.Status, complaint.ID).Scan(&complaint.UpdatedAt); err != nil {
		return nil, err
	}
	complaint.Status = history.Status

	history.ComplaintID = complaint.ID
	if err := insertHistory(ctx, tx, history); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) ListWithFilter(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	query, args := buildListQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := scanComplaint(rows, &complaint); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}

// buildListQuery assembles the listing SQL. A non-positive Limit means the
// caller wants every matching row; no implicit page size is applied.
func buildListQuery(filter ComplaintFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("user_id=$%d", len(args)))
	}
	if filter.Department != nil {
		args = append(args, *filter.Department)
		clauses = append(clauses, fmt.Sprintf("department=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	orderBy := "created_at DESC"
	if filter.OrderBy == OrderUpdatedDesc {
		orderBy = "updated_at DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM complaints WHERE %s ORDER BY %s`,
		complaintColumns, strings.Join(clauses, " AND "), orderBy)

	if filter.Limit > 0 {
		offset := filter.Offset
		if offset < 0 {
			offset = 0
		}
		query = fmt.Sprintf("%s LIMIT %d OFFSET %d", query, filter.Limit, offset)
	}
	return query, args
}

func scanComplaint(row pgx.Row, complaint *domain.Complaint) error {
	return row.Scan(
		&complaint.ID,
		&complaint.TicketNo,
		&complaint.UserID,
		&complaint.Category,
		&complaint.Department,
		&complaint.Location,
		&complaint.Description,
		&complaint.Status,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	)
}

func insertHistory(ctx context.Context, tx pgx.Tx, history *domain.StatusHistory) error {
	const query = `
        INSERT INTO status_history (complaint_id, status, changed_by, notes)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return tx.QueryRow(ctx, query,
		history.ComplaintID,
		history.Status,
		history.ChangedBy,
		history.Notes,
	).Scan(&history.ID, &history.CreatedAt)
}
