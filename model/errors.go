package model

import "errors"

// sentinel errors shared between the github service, the analyzer and both front ends
// the error text doubles as the API error code
var (
	ErrUserNotFound     = errors.New("USER_NOT_FOUND")
	ErrNotFound         = errors.New("NOT_FOUND") // a readme or content file that does not exist
	ErrRateLimitReached = errors.New("RATE_LIMIT_REACHED")
	ErrFetch            = errors.New("FETCH_ERROR")
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func NewAPIError(errReason error) APIError {
	switch {
	case errors.Is(errReason, ErrUserNotFound):
		return APIError{
			Code:    ErrUserNotFound.Error(),
			Message: "User not found",
		}

	case errors.Is(errReason, ErrRateLimitReached):
		return APIError{
			Code:    ErrRateLimitReached.Error(),
			Message: "github rate limit reached. consider using a token to increase the limit or wait few minutes and try again",
		}

	case errors.Is(errReason, ErrFetch):
		return APIError{
			Code:    ErrFetch.Error(),
			Message: "unable to fetch data from github. try again later",
		}

	default:
		return APIError{
			Code:    "GENERIC_ERROR",
			Message: "internal server error. contact our support with the reason code for assistance",
		}
	}
}
