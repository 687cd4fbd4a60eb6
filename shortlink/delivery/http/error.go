package http

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/superj80820/shortlink/domain"
	"github.com/superj80820/shortlink/kit/code"
)

// wrapLinkError converts domain sentinels to typed HTTP error codes, so the
// boundary can tell "never existed" from "existed but no longer usable".
func wrapLinkError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidURL):
		return code.CreateErrorCode(http.StatusUnprocessableEntity).AddCode(code.InvalidURL).AddErrorMetaData(err)
	case errors.Is(err, domain.ErrExpiredURL):
		return code.CreateErrorCode(http.StatusUnprocessableEntity).AddCode(code.ExpiredURL).AddErrorMetaData(err)
	case errors.Is(err, domain.ErrLinkNotFound):
		return code.CreateErrorCode(http.StatusNotFound).AddErrorMetaData(err)
	case errors.Is(err, domain.ErrLinkDeactivated):
		return code.CreateErrorCode(http.StatusGone).AddCode(code.LinkDeactivated).AddErrorMetaData(err)
	case errors.Is(err, domain.ErrLinkExpired):
		return code.CreateErrorCode(http.StatusGone).AddCode(code.LinkExpired).AddErrorMetaData(err)
	case errors.Is(err, domain.ErrInvalidLimit):
		return code.CreateErrorCode(http.StatusBadRequest).AddCode(code.InvalidLimit, 1, 1000).AddErrorMetaData(err)
	default:
		return err
	}
}
