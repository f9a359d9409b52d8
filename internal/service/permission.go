package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ai-legal-analyzer/auth-service/internal/mykafka"
	"github.com/ai-legal-analyzer/auth-service/pkg/logging"
)

// PermissionService enforces the admin state machine over user accounts.
// Every operation is a read-check-then-write on a single target: either a
// precondition fails before any mutation, or the single update commits.
type PermissionService struct {
	Repo     CredentialStore
	Producer *mykafka.Producer
}

func (s *PermissionService) GrantAdmin(ctx context.Context, caller Identity, targetID uint) error {
	l := logging.FromContext(ctx).With("svc", "permission.grant_admin", "caller_id", caller.ID, "target_id", targetID)

	if !caller.IsAdmin {
		l.Warn("grant_admin_denied", "status", 403)
		return ErrForbidden
	}

	target, err := s.Repo.FindUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("grant_admin_failed", "status", 404)
			return ErrTargetNotFound
		}
		l.Error("grant_admin_failed", "status", 500, "error", err)
		return fmt.Errorf("find user: %w", err)
	}
	if !target.IsActive {
		l.Warn("grant_admin_failed", "status", 404, "reason", "inactive")
		return ErrTargetNotFound
	}
	if target.IsAdmin {
		l.Warn("grant_admin_failed", "status", 400, "reason", "already admin")
		return ErrAlreadyAdmin
	}

	if err := s.Repo.UpdateUserFlags(ctx, targetID, map[string]any{"is_admin": true}); err != nil {
		l.Error("grant_admin_failed", "status", 500, "error", err)
		return fmt.Errorf("update flags: %w", err)
	}

	s.publishEvent(ctx, targetID, map[string]any{
		"type":       "admin_granted",
		"user_id":    targetID,
		"granted_by": caller.ID,
	})

	l.Info("grant_admin_successful")
	return nil
}

func (s *PermissionService) RevokeAdmin(ctx context.Context, caller Identity, targetID uint) error {
	l := logging.FromContext(ctx).With("svc", "permission.revoke_admin", "caller_id", caller.ID, "target_id", targetID)

	if !caller.IsAdmin {
		l.Warn("revoke_admin_denied", "status", 403)
		return ErrForbidden
	}

	target, err := s.Repo.FindUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("revoke_admin_failed", "status", 404)
			return ErrTargetNotFound
		}
		l.Error("revoke_admin_failed", "status", 500, "error", err)
		return fmt.Errorf("find user: %w", err)
	}
	if !target.IsActive {
		l.Warn("revoke_admin_failed", "status", 404, "reason", "inactive")
		return ErrTargetNotFound
	}
	if !target.IsAdmin {
		l.Warn("revoke_admin_failed", "status", 400, "reason", "not admin")
		return ErrNotAdmin
	}

	if err := s.Repo.UpdateUserFlags(ctx, targetID, map[string]any{"is_admin": false}); err != nil {
		l.Error("revoke_admin_failed", "status", 500, "error", err)
		return fmt.Errorf("update flags: %w", err)
	}

	s.publishEvent(ctx, targetID, map[string]any{
		"type":       "admin_revoked",
		"user_id":    targetID,
		"revoked_by": caller.ID,
	})

	l.Info("revoke_admin_successful")
	return nil
}

// SoftDelete marks the target inactive; the row is never removed. Deleting an
// already-inactive user is a no-op success, reported via alreadyDeleted.
// Admins must be demoted before they can be deleted.
func (s *PermissionService) SoftDelete(ctx context.Context, caller Identity, targetID uint) (alreadyDeleted bool, err error) {
	l := logging.FromContext(ctx).With("svc", "permission.soft_delete", "caller_id", caller.ID, "target_id", targetID)

	if !caller.IsAdmin {
		l.Warn("delete_denied", "status", 403)
		return false, ErrForbidden
	}

	target, err := s.Repo.FindUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("delete_failed", "status", 404)
			return false, ErrTargetNotFound
		}
		l.Error("delete_failed", "status", 500, "error", err)
		return false, fmt.Errorf("find user: %w", err)
	}
	if target.IsAdmin {
		l.Warn("delete_failed", "status", 403, "reason", "target is admin")
		return false, ErrCannotDeleteAdmin
	}
	if !target.IsActive {
		l.Info("delete_noop", "reason", "already deleted")
		return true, nil
	}

	if err := s.Repo.UpdateUserFlags(ctx, targetID, map[string]any{"is_active": false}); err != nil {
		l.Error("delete_failed", "status", 500, "error", err)
		return false, fmt.Errorf("update flags: %w", err)
	}

	s.publishEvent(ctx, targetID, map[string]any{
		"type":       "user_deleted",
		"user_id":    targetID,
		"deleted_by": caller.ID,
	})

	l.Info("delete_successful")
	return false, nil
}

func (s *PermissionService) publishEvent(ctx context.Context, userID uint, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, fmt.Sprint(userID), event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "error", err)
	}
}
