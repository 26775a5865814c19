package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/sports-league/internal/domain/league"
	"github.com/riskibarqy/sports-league/internal/domain/user"
)

func (s *UserService) ListAdmins(ctx context.Context) ([]user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.ListAdmins")
	defer span.End()

	admins, err := s.users.List(ctx, user.Filter{Role: user.RoleAdmin})
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

func (s *UserService) CreateAdmin(ctx context.Context, input CreateAccountInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.CreateAdmin")
	defer span.End()

	admin, err := s.accounts.create(ctx, input, user.RoleAdmin, nil)
	if err != nil {
		return user.User{}, err
	}

	s.logger.InfoContext(ctx, "admin created", "user_id", admin.ID)
	return admin, nil
}

// RemoveAdmin soft deletes or permanently removes an admin account while
// keeping at least one active admin. Admins cannot remove themselves.
func (s *UserService) RemoveAdmin(ctx context.Context, actor user.Principal, adminID, mode string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.RemoveAdmin")
	defer span.End()

	deleteMode, ok := user.ParseDeleteMode(mode)
	if !ok {
		return fmt.Errorf("%w: delete type must be soft or permanent", ErrInvalidInput)
	}
	target, err := s.getByRole(ctx, adminID, user.RoleAdmin)
	if err != nil {
		return err
	}

	change := user.AdminChange{TargetID: target.ID, Status: user.StatusDeleted, Permanent: deleteMode == user.DeletePermanent}
	if err := s.applyAdminChange(ctx, actor, change); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "admin removed", "user_id", target.ID, "actor_id", actor.UserID, "mode", deleteMode)
	return nil
}

// SetAdminStatus activates or deactivates an admin. Deactivation is guarded
// like removal.
func (s *UserService) SetAdminStatus(ctx context.Context, actor user.Principal, adminID, status string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.SetAdminStatus")
	defer span.End()

	next, ok := user.ParseStatus(status)
	if !ok {
		return fmt.Errorf("%w: status must be one of active, inactive, deleted", ErrInvalidInput)
	}
	target, err := s.getByRole(ctx, adminID, user.RoleAdmin)
	if err != nil {
		return err
	}

	if next == user.StatusActive {
		if err := s.users.SetStatus(ctx, target.ID, user.StatusActive, false); err != nil {
			return fmt.Errorf("activate admin: %w", err)
		}
	} else if err := s.applyAdminChange(ctx, actor, user.AdminChange{TargetID: target.ID, Status: next}); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "admin status updated", "user_id", target.ID, "actor_id", actor.UserID, "from", target.Status, "to", next)
	return nil
}

func (s *UserService) ReactivateAdmin(ctx context.Context, adminID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.ReactivateAdmin")
	defer span.End()

	target, err := s.getByRole(ctx, adminID, user.RoleAdmin)
	if err != nil {
		return err
	}
	if err := s.users.SetStatus(ctx, target.ID, user.StatusActive, false); err != nil {
		return fmt.Errorf("reactivate admin: %w", err)
	}

	s.logger.InfoContext(ctx, "admin reactivated", "user_id", target.ID)
	return nil
}

func (s *UserService) applyAdminChange(ctx context.Context, actor user.Principal, change user.AdminChange) error {
	guard := func(activeAdminIDs []string) error {
		return league.ValidateLastAdminGuard(actor.UserID, change.TargetID, activeAdminIDs, s.rules)
	}
	if err := s.users.ApplyAdminChange(ctx, change, guard); err != nil {
		return fmt.Errorf("apply admin change: %w", err)
	}
	return nil
}
