// Package idgen generates record identifiers.
package idgen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	nanoid "github.com/matoous/go-nanoid/v2"
)

// PostPrefix is prepended to prayer wall post ids, which appear in public URLs.
const PostPrefix = "pw_"

const (
	alphabet   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	postLength = 12
)

// PostID returns a short URL-safe id for a prayer wall post.
func PostID() (string, error) {
	id, err := nanoid.Generate(alphabet, postLength)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return PostPrefix + id, nil
}

// legacyNamespace scopes ids derived for imported posts that were stored without one.
var legacyNamespace = uuid.MustParse("5b0c2f7e-7a51-4d3e-9a0e-3f1d6c2b8e41")

// StablePostID derives a post id from parts, so the same content always gets the same id.
func StablePostID(parts ...string) string {
	u := uuid.NewSHA1(legacyNamespace, []byte(strings.Join(parts, "\x1f")))
	return PostPrefix + strings.ReplaceAll(u.String(), "-", "")[:postLength]
}

// RecordID returns a random UUID for submissions and RSVPs.
func RecordID() string {
	return uuid.NewString()
}
