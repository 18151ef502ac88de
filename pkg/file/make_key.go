package file

import (
	"strings"

	"github.com/google/uuid"
)

// MakeUniqueName generates an opaque stored name for an upload, keeping the
// original extension. Names never derive from user input, so two concurrent
// uploads of the same file cannot collide.
func MakeUniqueName(filename string) string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	if ext := Extension(filename); ext != "" {
		return id + "." + ext
	}
	return id
}
