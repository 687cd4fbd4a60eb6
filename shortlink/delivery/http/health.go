package http

import (
	"context"

	"github.com/go-kit/kit/endpoint"
	httpTransportKit "github.com/superj80820/shortlink/kit/http/transport"
)

type healthCheckResponse struct {
	Status string `json:"status"`
}

var (
	DecodeHealthCheckRequest  = httpTransportKit.DecodeEmptyRequest
	EncodeHealthCheckResponse = httpTransportKit.EncodeJsonResponse
)

func MakeHealthCheckEndpoint() endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		return healthCheckResponse{Status: "ok"}, nil
	}
}
