package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/pkg/ctxutil"
)

// Me returns the authenticated user's profile.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return s.Get(ctx, userID)
}

// Get returns any user's public profile.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user.Get: %w", err)
	}
	return u, nil
}

// Ensure returns the authenticated user's profile, creating it from input
// on first sight. Calling it again never changes an existing profile.
func (s *Service) Ensure(ctx context.Context, input EnsureInput) (*domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByID(ctx, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("user.Ensure: %w", err)
	}

	var created *domain.User
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.users.Create(txCtx, &domain.User{
			ID:    userID,
			Name:  strings.TrimSpace(input.Name),
			Email: strings.TrimSpace(input.Email),
		})
		if createErr != nil {
			return createErr
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeUser,
			EntityID:   &userID,
			Action:     domain.AuditActionCreate,
			Changes:    map[string]any{"name": map[string]any{"new": created.Name}},
		})
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		// Lost a race with a concurrent first request.
		return s.Get(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("user.Ensure: %w", err)
	}

	s.log.InfoContext(ctx, "user created", slog.String("user_id", userID.String()))

	return created, nil
}

// Update changes the authenticated user's profile.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*domain.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	params := domain.UserUpdateParams{
		BirthDate: input.BirthDate,
		ImagePath: input.ImagePath,
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		params.Name = &name
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		params.Email = &email
	}
	if input.Country != nil {
		country := strings.TrimSpace(*input.Country)
		params.Country = &country
	}

	var updated *domain.User
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var updateErr error
		updated, updateErr = s.users.Update(txCtx, userID, params)
		if updateErr != nil {
			return updateErr
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeUser,
			EntityID:   &userID,
			Action:     domain.AuditActionUpdate,
			Changes:    profileChanges(input),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("user.Update: %w", err)
	}

	s.log.InfoContext(ctx, "profile updated", slog.String("user_id", userID.String()))

	return updated, nil
}

// Delete removes the authenticated user's profile. Published content stays.
func (s *Service) Delete(ctx context.Context) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.users.Delete(txCtx, userID); err != nil {
			return err
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeUser,
			EntityID:   &userID,
			Action:     domain.AuditActionDelete,
		})
	})
	if err != nil {
		return fmt.Errorf("user.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "user deleted", slog.String("user_id", userID.String()))

	return nil
}

// profileChanges lists the fields an update touched. Values are omitted to
// keep personal data out of the audit log.
func profileChanges(input UpdateInput) map[string]any {
	changes := make(map[string]any)
	for field, set := range map[string]bool{
		"name":       input.Name != nil,
		"email":      input.Email != nil,
		"birth_date": input.BirthDate != nil,
		"country":    input.Country != nil,
		"image_path": input.ImagePath != nil,
	} {
		if set {
			changes[field] = map[string]any{"changed": true}
		}
	}
	return changes
}
