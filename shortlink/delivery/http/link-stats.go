package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/superj80820/shortlink/domain"
	httpTransportKit "github.com/superj80820/shortlink/kit/http/transport"
)

type getStatsRequest struct {
	Slug string `json:"slug"`
}

type linkStatsResponse struct {
	ID        int64      `json:"id"`
	Slug      string     `json:"slug"`
	ShortURL  string     `json:"short_url"`
	URL       string     `json:"url"`
	Clicks    int64      `json:"clicks"`
	IsActive  bool       `json:"is_active"`
	OwnerID   *string    `json:"owner_id"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

var EncodeGetStatsResponse = httpTransportKit.EncodeJsonResponse

func MakeGetStatsEndpoint(linkUseCase domain.LinkUseCase, publicBaseURL string) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(getStatsRequest)
		link, err := linkUseCase.GetStats(ctx, req.Slug)
		if err != nil {
			return nil, wrapLinkError(err)
		}
		return makeLinkStatsResponse(link, publicBaseURL), nil
	}
}

func DecodeGetStatsRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	slug, ok := vars["slug"]
	if !ok {
		return nil, errors.New("get slug failed")
	}
	return getStatsRequest{Slug: slug}, nil
}

func makeLinkStatsResponse(link *domain.Link, publicBaseURL string) linkStatsResponse {
	return linkStatsResponse{
		ID:        link.ID,
		Slug:      link.Slug,
		ShortURL:  publicBaseURL + "/" + link.Slug,
		URL:       link.URL,
		Clicks:    link.Clicks,
		IsActive:  link.IsActive,
		OwnerID:   link.OwnerID,
		ExpiresAt: link.ExpiresAt,
		CreatedAt: link.CreatedAt,
	}
}
