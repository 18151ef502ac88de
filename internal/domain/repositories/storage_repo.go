package repositories

import "context"

// StorageStrategy persists processed artifacts. Save copies the local file at
// sourcePath under the desired name and returns a stable public reference
// that is retrievable immediately. No deduplication, versioning or expiry.
type StorageStrategy interface {
	Save(ctx context.Context, sourcePath, name string) (string, error)
	Exists(name string) bool
	Delete(name string) error
}
