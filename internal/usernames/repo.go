package usernames

import "context"

// Repo maps users to their public username and back.
//
// CreateIfAbsent is atomic: when the user already has a username it is
// returned unchanged with created=false; when another user owns the
// requested name ErrUsernameTaken is returned.
type Repo interface {
	Lookup(ctx context.Context, userID string) (string, error)
	UserIDFor(ctx context.Context, username string) (string, error)
	CreateIfAbsent(ctx context.Context, userID, username string) (string, bool, error)
}
