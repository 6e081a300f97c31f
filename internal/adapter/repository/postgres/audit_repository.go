package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/api-sage/core-banking/internal/domain"
)

type AuditLogRepository struct {
	db querier
}

func NewAuditLogRepository(db querier) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(ctx context.Context, entry domain.AuditLog) (domain.AuditLog, error) {
	const query = `
INSERT INTO audit_logs (
	action,
	entity_type,
	entity_id,
	user_id,
	data,
	ip_address
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, created_at`

	var data any
	if entry.Data != nil {
		raw, err := json.Marshal(entry.Data)
		if err != nil {
			return domain.AuditLog{}, fmt.Errorf("marshal audit data: %w", err)
		}
		data = raw
	}

	if err := r.db.QueryRowContext(
		ctx,
		query,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.UserID,
		data,
		entry.IPAddress,
	).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return domain.AuditLog{}, fmt.Errorf("create audit log entry: %w", classifyError(err))
	}

	return entry, nil
}

func (r *AuditLogRepository) Query(ctx context.Context, filter domain.AuditLogFilter) ([]domain.AuditLog, error) {
	query := `
SELECT id, action, entity_type, entity_id, user_id, data, ip_address, created_at
FROM audit_logs
WHERE 1 = 1`
	var args []any

	if filter.EntityType != nil {
		args = append(args, *filter.EntityType)
		query += ` AND entity_type = $` + strconv.Itoa(len(args))
	}
	if filter.EntityID != nil {
		args = append(args, *filter.EntityID)
		query += ` AND entity_id = $` + strconv.Itoa(len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += ` AND user_id = $` + strconv.Itoa(len(args))
	}
	if filter.Action != nil {
		args = append(args, *filter.Action)
		query += ` AND action = $` + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND created_at >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND created_at <= $` + strconv.Itoa(len(args))
	}

	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))
	args = append(args, filter.Offset)
	query += ` OFFSET $` + strconv.Itoa(len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit logs: %w", classifyError(err))
	}
	defer rows.Close()

	var entries []domain.AuditLog
	for rows.Next() {
		var entry domain.AuditLog
		var entityID sql.NullString
		var userID sql.NullString
		var data []byte
		var ipAddress sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&entry.EntityType,
			&entityID,
			&userID,
			&data,
			&ipAddress,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit log row: %w", err)
		}

		if entityID.Valid {
			value := entityID.String
			entry.EntityID = &value
		}
		if userID.Valid {
			value := userID.String
			entry.UserID = &value
		}
		if ipAddress.Valid {
			value := ipAddress.String
			entry.IPAddress = &value
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &entry.Data); err != nil {
				return nil, fmt.Errorf("unmarshal audit data: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit log rows: %w", classifyError(err))
	}
	return entries, nil
}
