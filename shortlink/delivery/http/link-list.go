package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-kit/kit/endpoint"
	"github.com/pkg/errors"
	"github.com/superj80820/shortlink/domain"
	"github.com/superj80820/shortlink/kit/code"
	httpTransportKit "github.com/superj80820/shortlink/kit/http/transport"
)

const defaultListLimit = 50

type listLinksRequest struct {
	Limit  int                    `json:"limit"`
	SortBy domain.LinkSortByEnum  `json:"sort_by"`
	Order  domain.SortOrderByEnum `json:"order"`
}

type listLinksResponse struct {
	Links  []linkStatsResponse `json:"links"`
	Total  int64               `json:"total"`
	Limit  int                 `json:"limit"`
	SortBy string              `json:"sort_by"`
	Order  string              `json:"order"`
}

var linkSortByNames = map[domain.LinkSortByEnum]string{
	domain.ClicksLinkSortByEnum:    "clicks",
	domain.CreatedAtLinkSortByEnum: "created_at",
	domain.ExpiresAtLinkSortByEnum: "expires_at",
}

var sortOrderNames = map[domain.SortOrderByEnum]string{
	domain.ASCSortOrderByEnum:  "asc",
	domain.DESCSortOrderByEnum: "desc",
}

var EncodeListLinksResponse = httpTransportKit.EncodeJsonResponse

func MakeListLinksEndpoint(linkUseCase domain.LinkUseCase, publicBaseURL string) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(listLinksRequest)
		links, total, err := linkUseCase.ListLinks(ctx, req.Limit, req.SortBy, req.Order)
		if err != nil {
			return nil, wrapLinkError(err)
		}
		res := listLinksResponse{
			Links:  make([]linkStatsResponse, 0, len(links)),
			Total:  total,
			Limit:  req.Limit,
			SortBy: linkSortByNames[req.SortBy],
			Order:  sortOrderNames[req.Order],
		}
		for _, link := range links {
			res.Links = append(res.Links, makeLinkStatsResponse(link, publicBaseURL))
		}
		return res, nil
	}
}

func DecodeListLinksRequest(ctx context.Context, r *http.Request) (interface{}, error) {
	req := listLinksRequest{
		Limit:  defaultListLimit,
		SortBy: domain.CreatedAtLinkSortByEnum,
		Order:  domain.DESCSortOrderByEnum,
	}

	query := r.URL.Query()
	if rawLimit := query.Get("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(err)
		}
		req.Limit = limit
	}
	if rawSortBy := query.Get("sort_by"); rawSortBy != "" {
		switch rawSortBy {
		case "clicks":
			req.SortBy = domain.ClicksLinkSortByEnum
		case "created_at":
			req.SortBy = domain.CreatedAtLinkSortByEnum
		case "expires_at":
			req.SortBy = domain.ExpiresAtLinkSortByEnum
		default:
			return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(errors.New("unknown sort_by, sort_by: " + rawSortBy))
		}
	}
	if rawOrder := query.Get("order"); rawOrder != "" {
		switch rawOrder {
		case "asc":
			req.Order = domain.ASCSortOrderByEnum
		case "desc":
			req.Order = domain.DESCSortOrderByEnum
		default:
			return nil, code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidBody).AddErrorMetaData(errors.New("unknown order, order: " + rawOrder))
		}
	}

	return req, nil
}
