package jsonfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"praisetabernacle/internal/domain"
	"praisetabernacle/internal/idgen"
)

// prayerWallVersion is the shape written by this package.
const prayerWallVersion = 2

// prayerWallDoc is the v1/v2 envelope. v1 posts lack kind and prayedCount.
type prayerWallDoc struct {
	Version int                      `json:"version"`
	Posts   []*domain.PrayerWallPost `json:"posts"`
}

// legacyPost is a v0 entry, stored as a bare array element.
type legacyPost struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Request   string          `json:"request"`
	CreatedAt json.RawMessage `json:"createdAt"`
}

// decodePrayerWall upgrades any known on-disk shape to current posts.
// Missing fields default to kind "request", prayedCount 0 and approved false.
// A post without an id gets one derived from its content and position, so the id
// is the same on every load until the next write persists it.
func decodePrayerWall(raw []byte) ([]*domain.PrayerWallPost, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	var posts []*domain.PrayerWallPost
	if raw[0] == '[' {
		var legacy []legacyPost
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return nil, fmt.Errorf("decode prayer wall v0: %w", err)
		}
		posts = make([]*domain.PrayerWallPost, 0, len(legacy))
		for _, lp := range legacy {
			createdAt, err := parseLegacyTime(lp.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("decode prayer wall v0 post %q: %w", lp.ID, err)
			}
			posts = append(posts, &domain.PrayerWallPost{
				ID:        lp.ID,
				Name:      lp.Name,
				Request:   lp.Request,
				CreatedAt: createdAt,
			})
		}
	} else {
		var doc prayerWallDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("decode prayer wall: %w", err)
		}
		if doc.Version > prayerWallVersion {
			return nil, fmt.Errorf("prayer wall version %d is newer than supported %d", doc.Version, prayerWallVersion)
		}
		posts = doc.Posts
	}

	for i, p := range posts {
		if p.ID == "" {
			p.ID = idgen.StablePostID(p.Name, p.Request, p.CreatedAt.UTC().Format(time.RFC3339Nano), strconv.Itoa(i))
		}
		if p.Kind == "" {
			p.Kind = domain.PostKindRequest
		}
		if p.PrayedCount < 0 {
			p.PrayedCount = 0
		}
		if p.Name == "" {
			p.Name = domain.AnonymousName
		}
	}
	return posts, nil
}

// parseLegacyTime accepts an RFC 3339 string or epoch milliseconds.
func parseLegacyTime(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339Nano, s)
	}
	ms, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("createdAt %s: %w", raw, err)
	}
	return time.UnixMilli(ms).UTC(), nil
}
