package code

import (
	"encoding/json"
	"fmt"
	httpPKG "net/http"

	"github.com/pkg/errors"
)

type errorCode struct {
	HTTPCode    int    `json:"http_code"`
	Code        int    `json:"code"`
	Message     string `json:"message"`
	OriginError error  `json:"-"`
	CallStack   string `json:"-"`
}

const (
	Default             = 0
	RateLimit           = 1
	InvalidBody         = 2
	InvalidURL          = 3
	ExpiredURL          = 4
	InvalidLimit        = 5
	LinkExpired         = 6
	LinkDeactivated     = 7
	AllocationExhausted = 8
)

var errorCodes = map[int]map[int]string{
	httpPKG.StatusTooManyRequests: {
		Default:   "too many requests",
		RateLimit: "rate limit error. expiry: %d",
	},
	httpPKG.StatusNotFound: {
		Default: "not found",
	},
	httpPKG.StatusInternalServerError: {
		Default:             "internal error",
		AllocationExhausted: "slug allocation exhausted after %d attempts",
	},
	httpPKG.StatusBadRequest: {
		Default:      "bad request",
		InvalidBody:  "invalid body",
		InvalidLimit: "limit must be between %d and %d",
	},
	httpPKG.StatusUnprocessableEntity: {
		Default:    "unprocessable entity",
		InvalidURL: "invalid url",
		ExpiredURL: "url has expired",
	},
	httpPKG.StatusGone: {
		Default:         "gone",
		LinkExpired:     "link has expired",
		LinkDeactivated: "link has been deactivated",
	},
}

func (e errorCode) Error() string {
	errorStr, err := json.Marshal(e)
	if err != nil {
		panic(err)
	}
	return string(errorStr)
}

func (e *errorCode) AddErrorMetaData(err error) *errorCode {
	e.OriginError = err
	e.CallStack = fmt.Sprintf("%+v", err)
	return e
}

func (e *errorCode) AddCode(code int, args ...any) *errorCode {
	if httpErrorCodes, ok := errorCodes[e.HTTPCode]; ok {
		if errorCodes, ok := httpErrorCodes[code]; ok {
			e.Code = code
			e.Message = fmt.Sprintf(errorCodes, args...)
		}
	}
	return e
}

type errorCodeOption func(*errorCode)

func CreateErrorCode(httpCode int, options ...errorCodeOption) *errorCode {
	resHTTPCode := httpPKG.StatusInternalServerError
	resMessage := errorCodes[httpPKG.StatusInternalServerError][Default]
	if codes, ok := errorCodes[httpCode]; ok {
		resHTTPCode = httpCode

		if errorCodes, ok := codes[Default]; ok {
			resMessage = errorCodes
		}
	}

	errorCode := errorCode{
		HTTPCode: resHTTPCode,
		Code:     Default,
		Message:  resMessage,
	}

	for _, option := range options {
		option(&errorCode)
	}

	return &errorCode
}

func ParseErrorCode(err error) *errorCode {
	causeErr := errors.Cause(err)
	switch errorCode := causeErr.(type) {
	case *errorCode:
		return errorCode
	}

	errorCode := CreateErrorCode(httpPKG.StatusInternalServerError).AddErrorMetaData(err)

	return errorCode
}
