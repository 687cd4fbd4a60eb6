package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/superj80820/shortlink/domain"
)

func TestDecodeListLinksRequest(t *testing.T) {
	ctx := context.Background()

	req, err := DecodeListLinksRequest(ctx, httptest.NewRequest(http.MethodGet, "/api/links", nil))
	assert.Nil(t, err)
	assert.Equal(t, listLinksRequest{
		Limit:  50,
		SortBy: domain.CreatedAtLinkSortByEnum,
		Order:  domain.DESCSortOrderByEnum,
	}, req)

	req, err = DecodeListLinksRequest(ctx, httptest.NewRequest(http.MethodGet, "/api/links?limit=10&sort_by=clicks&order=asc", nil))
	assert.Nil(t, err)
	assert.Equal(t, listLinksRequest{
		Limit:  10,
		SortBy: domain.ClicksLinkSortByEnum,
		Order:  domain.ASCSortOrderByEnum,
	}, req)

	_, err = DecodeListLinksRequest(ctx, httptest.NewRequest(http.MethodGet, "/api/links?limit=abc", nil))
	assert.Error(t, err)
	_, err = DecodeListLinksRequest(ctx, httptest.NewRequest(http.MethodGet, "/api/links?sort_by=bogus", nil))
	assert.Error(t, err)
	_, err = DecodeListLinksRequest(ctx, httptest.NewRequest(http.MethodGet, "/api/links?order=sideways", nil))
	assert.Error(t, err)
}
