package store

import (
	"context"

	"github.com/md-rashed-zaman/companion/internal/model"
)

// Preferences reads the user's settings document; absent users get the zero
// value (push disabled).
func (s *DocStore) Preferences(ctx context.Context, userID string) (model.Preferences, error) {
	var p model.Preferences
	if _, err := s.Read(ctx, userID, DocPreferences, &p); err != nil {
		return model.Preferences{}, err
	}
	return p, nil
}
