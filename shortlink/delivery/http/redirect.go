package http

import (
	"context"
	"net/http"

	"github.com/go-kit/kit/endpoint"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/superj80820/shortlink/domain"
)

type redirectRequest struct {
	Slug string `json:"slug"`
}

type redirectResponse struct {
	TargetURL string `json:"target_url"`
}

func MakeRedirectEndpoint(linkUseCase domain.LinkUseCase) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(redirectRequest)
		resolveResult, err := linkUseCase.Resolve(ctx, req.Slug)
		if err != nil {
			return nil, wrapLinkError(err)
		}
		// cache misses already paid a store round-trip, the increment rides
		// along before the response. cache hits count asynchronously
		if resolveResult.ShouldCountClick {
			if err := linkUseCase.IncrementClicks(ctx, req.Slug); err != nil {
				return nil, errors.Wrap(err, "increment clicks failed")
			}
		}
		return redirectResponse{TargetURL: resolveResult.URL}, nil
	}
}

func DecodeRedirectRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	vars := mux.Vars(r)
	slug, ok := vars["slug"]
	if !ok {
		return nil, errors.New("get slug failed")
	}
	return redirectRequest{Slug: slug}, nil
}

func EncodeRedirectResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	res := response.(redirectResponse)
	w.Header().Set("Location", res.TargetURL)
	w.WriteHeader(http.StatusFound)
	return nil
}
