package location

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/mycoforage-backend/internal/domain"
	"github.com/heartmarshall/mycoforage-backend/pkg/ctxutil"
)

// ListComments returns the comments of a location, newest first.
func (s *Service) ListComments(ctx context.Context, locationID uuid.UUID) ([]domain.Comment, error) {
	loc, err := s.Get(ctx, locationID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListComments(ctx, loc.CommentIDs)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// AverageRating returns the mean rating of a location's comments.
func (s *Service) AverageRating(ctx context.Context, locationID uuid.UUID) (*RatingSummary, error) {
	avg, n, err := s.comments.AverageRating(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	return &RatingSummary{Average: avg, Count: n}, nil
}

// AddComment stores a comment and attaches it to the location.
func (s *Service) AddComment(ctx context.Context, input CommentInput) (*domain.Comment, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	c := &domain.Comment{
		ID:       uuid.New(),
		Rating:   input.Rating,
		Body:     strings.TrimSpace(input.Body),
		AuthorID: userID,
	}

	var created *domain.Comment
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.comments.CreateComment(txCtx, c)
		if err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
		if err := s.comments.AttachComment(txCtx, input.LocationID, created.ID); err != nil {
			return fmt.Errorf("attach comment: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeComment,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"location_id": input.LocationID.String(),
				"rating":      map[string]any{"new": created.Rating},
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "comment created",
		slog.String("user_id", userID.String()),
		slog.String("location_id", input.LocationID.String()),
		slog.String("comment_id", created.ID.String()),
	)

	return created, nil
}

// UpdateComment edits a comment. Only its author may do so.
func (s *Service) UpdateComment(ctx context.Context, input UpdateCommentInput) (*domain.Comment, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	params := domain.CommentUpdateParams{Rating: input.Rating, Body: trimmed(input.Body)}

	var updated *domain.Comment
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, err := s.authoredComment(txCtx, userID, input.CommentID)
		if err != nil {
			return err
		}

		updated, err = s.comments.UpdateComment(txCtx, input.CommentID, params)
		if err != nil {
			return fmt.Errorf("update comment: %w", err)
		}

		changes := make(map[string]any)
		if old.Rating != updated.Rating {
			changes["rating"] = map[string]any{"old": old.Rating, "new": updated.Rating}
		}
		if old.Body != updated.Body {
			changes["body"] = map[string]any{"changed": true}
		}
		if len(changes) == 0 {
			return nil
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeComment,
			EntityID:   &input.CommentID,
			Action:     domain.AuditActionUpdate,
			Changes:    changes,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "comment updated",
		slog.String("user_id", userID.String()),
		slog.String("comment_id", input.CommentID.String()),
	)

	return updated, nil
}

// DeleteComment detaches a comment from its location and deletes it.
// Only the comment's author may do so.
func (s *Service) DeleteComment(ctx context.Context, commentID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	var locationID uuid.UUID
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if _, err := s.authoredComment(txCtx, userID, commentID); err != nil {
			return err
		}

		var err error
		locationID, err = s.comments.LocationOfComment(txCtx, commentID)
		if err != nil {
			return fmt.Errorf("find comment location: %w", err)
		}
		if err := s.comments.DetachComment(txCtx, locationID, commentID); err != nil {
			return fmt.Errorf("detach comment: %w", err)
		}
		if _, err := s.comments.DeleteComments(txCtx, []uuid.UUID{commentID}); err != nil {
			return fmt.Errorf("delete comment: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeComment,
			EntityID:   &commentID,
			Action:     domain.AuditActionDelete,
			Changes:    map[string]any{"location_id": locationID.String()},
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "comment deleted",
		slog.String("user_id", userID.String()),
		slog.String("location_id", locationID.String()),
		slog.String("comment_id", commentID.String()),
	)

	return nil
}

func (s *Service) authoredComment(ctx context.Context, userID, id uuid.UUID) (*domain.Comment, error) {
	c, err := s.comments.GetComment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	if c.AuthorID != userID {
		return nil, domain.ErrForbidden
	}
	return c, nil
}
