package viewmodel

import (
	"errors"

	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/apiclient"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/schema"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/usecase"
)

// UnexpectedResponseMessage is shown when the backend answered with a body of the wrong shape
const UnexpectedResponseMessage = "Unexpected response from server, please try again later"

// Message converts err to the string shown to the user
func Message(err error) string {
	if err == nil {
		return ""
	}

	var vErr *usecase.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	var netErr *apiclient.NetworkError
	if errors.As(err, &netErr) {
		return apiclient.NetworkErrorMessage
	}
	var schemaErr *schema.Error
	if errors.As(err, &schemaErr) {
		return UnexpectedResponseMessage
	}
	return err.Error()
}
