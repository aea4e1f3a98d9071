package service

import (
	"context"
	"errors"

	"github.com/noah-isme/afterschool-console/pkg/backend"
	appErrors "github.com/noah-isme/afterschool-console/pkg/errors"
)

// backendMessage extracts the message the backend attached to a rejection.
func backendMessage(err error) string {
	var respErr *backend.ResponseError
	if errors.As(err, &respErr) {
		return respErr.Message
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "backend did not respond in time"
	}
	return ""
}

func fetchFailed(err error, fallback string) *appErrors.Error {
	message := backendMessage(err)
	if message == "" {
		message = fallback
	}
	return appErrors.Wrap(err, appErrors.ErrFetchFailed.Code, appErrors.ErrFetchFailed.Status, message)
}

func transitionFailed(err error, fallback string) *appErrors.Error {
	message := backendMessage(err)
	if message == "" {
		message = fallback
	}
	return appErrors.Wrap(err, appErrors.ErrTransitionFailed.Code, appErrors.ErrTransitionFailed.Status, message)
}
