package model

import "context"

// ArchiveStorage keeps closed-session rosters as immutable objects.
type ArchiveStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Exists(ctx context.Context, key string) (bool, error)
}
