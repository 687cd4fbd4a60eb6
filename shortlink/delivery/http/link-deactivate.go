package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/superj80820/shortlink/domain"
	httpTransportKit "github.com/superj80820/shortlink/kit/http/transport"
)

type deactivateLinkRequest struct {
	Slug string `json:"slug"`
}

type deactivateLinkResponse struct {
	Message string `json:"message"`
}

var EncodeDeactivateLinkResponse = httpTransportKit.EncodeJsonResponse

func MakeDeactivateLinkEndpoint(linkUseCase domain.LinkUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(deactivateLinkRequest)
		if err := linkUseCase.Deactivate(ctx, req.Slug); err != nil {
			return nil, wrapLinkError(err)
		}
		return deactivateLinkResponse{Message: "link deactivated"}, nil
	}
}

func DecodeDeactivateLinkRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	slug, ok := vars["slug"]
	if !ok {
		return nil, errors.New("get slug failed")
	}
	return deactivateLinkRequest{Slug: slug}, nil
}
