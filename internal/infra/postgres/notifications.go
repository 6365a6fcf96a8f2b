package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fintrack/fintrack-go/internal/domain"
)

// NotificationRepo implements port.NotificationStore.
type NotificationRepo struct {
	db *sql.DB
}

// NewNotificationRepo creates the notification repository.
func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) Insert(ctx context.Context, n *domain.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, owner_id, title, message, severity, category, budget_id, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		n.ID, n.OwnerID, n.Title, n.Message, n.Severity, n.Category,
		nullString(n.BudgetID), n.IsRead, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepo) List(ctx context.Context, ownerID string, unreadOnly bool, page, pageSize int) ([]domain.Notification, error) {
	query := `
		SELECT id, owner_id, title, message, severity, category, budget_id, is_read, read_at, created_at
		FROM notifications
		WHERE owner_id = $1`
	if unreadOnly {
		query += " AND NOT is_read"
	}
	query += " ORDER BY created_at DESC LIMIT $2 OFFSET $3"

	rows, err := r.db.QueryContext(ctx, query, ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		var budgetID sql.NullString
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Title, &n.Message, &n.Severity,
			&n.Category, &budgetID, &n.IsRead, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.BudgetID = budgetID.String
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *NotificationRepo) MarkRead(ctx context.Context, ownerID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = true, read_at = COALESCE(read_at, now())
		WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return requireAffected(res, "notification", id)
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, ownerID string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = true, read_at = now()
		WHERE owner_id = $1 AND NOT is_read`, ownerID)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
