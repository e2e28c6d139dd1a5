package handler

import (
	"context"
	"errors"

	"jobtrack/commons/error_handler"
	"jobtrack/internal/domain"
	"jobtrack/internal/logger"
	"jobtrack/internal/repository"
	"jobtrack/internal/service"
)

// toErrorCollection maps service errors onto API error codes. Storage and
// unexpected errors are logged and reported without internal detail.
func toErrorCollection(ctx context.Context, log logger.Logger, op string, err error) *error_handler.ErrorCollection {
	ec := error_handler.NewErrorCollection()

	var validationErr *domain.ValidationError
	var notFoundErr *service.JobNotFoundError

	switch {
	case errors.As(err, &validationErr):
		return ec.Append(error_handler.GetValidationError(validationErr.Error()))
	case errors.As(err, &notFoundErr):
		return ec.Append(error_handler.GetNotFoundError(notFoundErr.Error()))
	case errors.Is(err, repository.ErrNotFound):
		return ec.Append(error_handler.GetNotFoundError("job not found"))
	}

	log.WithContext(ctx).Error("request failed",
		logger.String("operation", op),
		logger.Error(err))
	return ec.Append(error_handler.GetInternalServerError("Something went wrong, try again later"))
}
