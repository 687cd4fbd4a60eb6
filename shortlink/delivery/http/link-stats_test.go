package http

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/superj80820/shortlink/domain"
)

func TestMakeLinkStatsResponse(t *testing.T) {
	ownerID := "user-1"
	expiresAt := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	link := &domain.Link{
		ID:        1,
		Slug:      "abc12345",
		URL:       "https://example.com/docs",
		Clicks:    3,
		IsActive:  true,
		OwnerID:   &ownerID,
		ExpiresAt: &expiresAt,
		CreatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	res := makeLinkStatsResponse(link, "http://localhost:9090")
	assert.Equal(t, "http://localhost:9090/abc12345", res.ShortURL)
	assert.Equal(t, &ownerID, res.OwnerID)

	payload, err := json.Marshal(res)
	assert.Nil(t, err)
	assert.Contains(t, string(payload), `"owner_id":"user-1"`)

	// nullable fields serialize as null, not absent
	link.OwnerID = nil
	link.ExpiresAt = nil
	payload, err = json.Marshal(makeLinkStatsResponse(link, "http://localhost:9090"))
	assert.Nil(t, err)
	assert.Contains(t, string(payload), `"owner_id":null`)
	assert.Contains(t, string(payload), `"expires_at":null`)
}
