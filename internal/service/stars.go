package service

import (
	"context"

	"soupbox/internal/models"
	"soupbox/internal/observability"
	"soupbox/internal/repository"
)

// AlreadyStarredMessage is the Forbidden message for a repeated star.
const AlreadyStarredMessage = "the resource is already star by current user"

// addStar inserts the star row, failing with Forbidden when it already exists.
func addStar(ctx context.Context, repo repository.StarRepository, kind string, targetID, userID uint) error {
	inserted, err := repo.Add(ctx, targetID, userID)
	if err != nil {
		return err
	}
	if !inserted {
		return models.NewForbiddenError(AlreadyStarredMessage)
	}
	observability.StarEvents.WithLabelValues(kind, "star").Inc()
	return nil
}

func removeStar(ctx context.Context, repo repository.StarRepository, kind string, targetID, userID uint) error {
	if err := repo.Remove(ctx, targetID, userID); err != nil {
		return err
	}
	observability.StarEvents.WithLabelValues(kind, "unstar").Inc()
	return nil
}

// toggleStar flips the star state read once up front. If a concurrent request
// stars the pair between the read and the insert, the pair simply stays starred.
func toggleStar(ctx context.Context, repo repository.StarRepository, kind string, targetID, userID uint) error {
	starred, err := repo.Exists(ctx, targetID, userID)
	if err != nil {
		return err
	}
	if starred {
		return removeStar(ctx, repo, kind, targetID, userID)
	}
	err = addStar(ctx, repo, kind, targetID, userID)
	if models.IsCode(err, models.CodeForbidden) {
		return nil
	}
	return err
}
