// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/danielhkuo/sample-admin/models"
)

// AdminUserFilter selects admin accounts for the users change list.
type AdminUserFilter struct {
	Search string
	Page
}

// ListAdminUsers returns one page of admin accounts ordered by username and
// the total number of matches. Password hashes are not loaded.
func (s *Store) ListAdminUsers(ctx context.Context, f AdminUserFilter) ([]models.AdminUser, int, error) {
	ds := s.from("admin_user").Where(search(f.Search, goqu.C("username"))...)

	total, err := s.count(ctx, ds)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.query(ctx, f.Page.apply(ds.
		Select("id", "username", "created_date").
		Order(goqu.C("username").Asc())))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query admin users: %w", err)
	}
	defer rows.Close()

	users := []models.AdminUser{}
	for rows.Next() {
		var u models.AdminUser
		if err := rows.Scan(&u.ID, &u.Username, &u.CreatedDate); err != nil {
			return nil, 0, fmt.Errorf("failed to scan admin user: %w", err)
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}
