package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-kit/kit/endpoint"
	"github.com/superj80820/shortlink/domain"
	"github.com/superj80820/shortlink/kit/code"
	httpTransportKit "github.com/superj80820/shortlink/kit/http/transport"
)

type createLinkRequest struct {
	OriginalURL string  `json:"original_url"`
	ExpiresAt   *string `json:"expires_at"`
}

type createLinkResponse struct {
	ID        int64      `json:"id"`
	Slug      string     `json:"slug"`
	ShortURL  string     `json:"short_url"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at"`
	IsActive  bool       `json:"is_active"`
}

var (
	DecodeCreateLinkRequest  = httpTransportKit.DecodeJsonRequest[createLinkRequest]
	EncodeCreateLinkResponse = httpTransportKit.EncodeJsonResponse
)

func MakeCreateLinkEndpoint(linkUseCase domain.LinkUseCase, publicBaseURL string) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(createLinkRequest)

		var expiresAt *time.Time
		if req.ExpiresAt != nil {
			parsedExpiresAt, err := time.Parse(time.RFC3339, *req.ExpiresAt)
			if err != nil {
				return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
			}
			expiresAt = &parsedExpiresAt
		}

		link, err := linkUseCase.CreateLink(ctx, req.OriginalURL, expiresAt)
		if err != nil {
			return nil, wrapLinkError(err)
		}
		return createLinkResponse{
			ID:        link.ID,
			Slug:      link.Slug,
			ShortURL:  publicBaseURL + "/" + link.Slug,
			CreatedAt: link.CreatedAt,
			ExpiresAt: link.ExpiresAt,
			IsActive:  link.IsActive,
		}, nil
	}
}
