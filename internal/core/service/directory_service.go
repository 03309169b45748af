package service

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chooy/admin-console/internal/core/domain"
	"github.com/chooy/admin-console/internal/core/ports"
)

const defaultDirectoryPageSize = 8

// DirectoryService aggregates the full account directory and slices it in
// memory: the upstream listing supports neither search nor sorting, so the
// dashboards' controls are applied here.
type DirectoryService struct {
	users ports.UserDirectory
	audit auditor
	log   zerolog.Logger
}

func NewDirectoryService(users ports.UserDirectory, audit ports.AuditRepository, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{
		users: users,
		audit: auditor{repo: audit, log: log},
		log:   log,
	}
}

// ListMembers lists accounts holding the User role or no role at all.
func (s *DirectoryService) ListMembers(ctx context.Context, q ports.DirectoryQuery) (*ports.DirectoryPage, error) {
	return s.list(ctx, q, func(u domain.User) bool {
		return u.Role == string(domain.RoleUser) || u.Role == ""
	})
}

// ListStaff lists accounts holding the Staff role.
func (s *DirectoryService) ListStaff(ctx context.Context, q ports.DirectoryQuery) (*ports.DirectoryPage, error) {
	return s.list(ctx, q, func(u domain.User) bool {
		return u.Role == string(domain.RoleStaff)
	})
}

func (s *DirectoryService) list(ctx context.Context, q ports.DirectoryQuery, keep func(domain.User) bool) (*ports.DirectoryPage, error) {
	all, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	filtered := make([]domain.User, 0, len(all))
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	for _, u := range all {
		if !keep(u) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(u.Name), needle) {
			continue
		}
		filtered = append(filtered, u)
	}

	sortUsers(filtered, q.SortField, q.SortDesc)

	page, pageSize := q.Page, q.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultDirectoryPageSize
	}
	start := (page - 1) * pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return &ports.DirectoryPage{
		Users:    filtered[start:end],
		Total:    len(filtered),
		Page:     page,
		PageSize: pageSize,
		Stats:    directoryStats(filtered),
	}, nil
}

// sortUsers orders in place by the requested field. Unknown fields leave the
// upstream order untouched; ties keep their relative order.
func sortUsers(users []domain.User, field string, desc bool) {
	var less func(a, b domain.User) bool
	switch field {
	case ports.SortByActivity:
		less = func(a, b domain.User) bool { return !a.IsActive && b.IsActive }
	case ports.SortByVerified:
		less = func(a, b domain.User) bool { return !a.IsVerified && b.IsVerified }
	case ports.SortByCreatedAt:
		less = func(a, b domain.User) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		return
	}
	sort.SliceStable(users, func(i, j int) bool {
		if desc {
			return less(users[j], users[i])
		}
		return less(users[i], users[j])
	})
}

func directoryStats(users []domain.User) ports.DirectoryStats {
	stats := ports.DirectoryStats{Total: len(users)}
	for _, u := range users {
		if u.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		if u.IsVerified {
			stats.Verified++
		} else {
			stats.Unverified++
		}
	}
	if stats.Total > 0 {
		stats.ActivePercent = int(math.Round(float64(stats.Active) / float64(stats.Total) * 100))
		stats.VerifiedPercent = int(math.Round(float64(stats.Verified) / float64(stats.Total) * 100))
	}
	return stats
}

// ChangeRole assigns a role to an account and audits the mutation.
func (s *DirectoryService) ChangeRole(ctx context.Context, actor domain.SessionUser, userID string, role domain.Role) error {
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return err
	}
	s.audit.record(ctx, actor, "user.role."+strings.ToLower(string(role)), "user", userID)
	s.log.Info().Str("user_id", userID).Str("role", string(role)).Str("actor_id", actor.UserID).Msg("user role updated")
	return nil
}

// SetActivation enables or disables an account and audits the mutation.
func (s *DirectoryService) SetActivation(ctx context.Context, actor domain.SessionUser, userID string, active bool) error {
	if err := s.users.SetActivation(ctx, userID, active); err != nil {
		return err
	}
	action := "user.deactivate"
	if active {
		action = "user.activate"
	}
	s.audit.record(ctx, actor, action, "user", userID)
	s.log.Info().Str("user_id", userID).Bool("active", active).Str("actor_id", actor.UserID).Msg("user activation updated")
	return nil
}
