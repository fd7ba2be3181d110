package queries

import (
	"context"
	"strings"

	"trackmate/internal/core/domain/model/rider"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetRidersQueryHandler lists rider applications.
type GetRidersQueryHandler struct {
	db *gorm.DB
}

// NewGetRidersQueryHandler creates a handler for rider listings.
func NewGetRidersQueryHandler(db *gorm.DB) GetRidersQueryHandler {
	return GetRidersQueryHandler{db: db}
}

// Handle returns the riders oldest application first.
func (h GetRidersQueryHandler) Handle(ctx context.Context, query GetRidersQuery) ([]RiderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT id, name, email, contact, region, district, status, applied_at, status_updated_at
		FROM riders`
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if query.Status() != nil {
		where = append(where, `status = ?`)
		args = append(args, int(*query.Status()))
	}
	if query.Search() != "" {
		pattern := "%" + escapeLike(query.Search()) + "%"
		where = append(where, `(name ILIKE ? OR email ILIKE ? OR district ILIKE ?)`)
		args = append(args, pattern, pattern, pattern)
	}
	if len(where) > 0 {
		sql += ` WHERE ` + strings.Join(where, ` AND `)
	}
	sql += ` ORDER BY applied_at, id`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	riders := make([]RiderView, 0)
	for rows.Next() {
		var (
			v      RiderView
			id     uuid.UUID
			status int
		)
		err = rows.Scan(&id, &v.Name, &v.Email, &v.Contact, &v.Region, &v.District, &status, &v.AppliedAt, &v.StatusUpdatedAt)
		if err != nil {
			return nil, err
		}
		v.ID = id.String()
		v.Status = rider.ApplicationStatus(status).String()
		v.AppliedAt = v.AppliedAt.UTC()
		v.StatusUpdatedAt = v.StatusUpdatedAt.UTC()
		riders = append(riders, v)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return riders, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
