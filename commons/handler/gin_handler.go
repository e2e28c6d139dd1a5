package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"jobtrack/commons/error_handler"
	"jobtrack/commons/response"
	"jobtrack/internal/logger"

	"github.com/gin-gonic/gin"
)

type ServiceFunc[InputDto any, OutputDto any] func(
	ctx context.Context,
	ioutil *RequestIo[InputDto],
) (OutputDto, *error_handler.ErrorCollection)

// HandleFunc adapts a ServiceFunc to gin. successStatus is written when the
// service returns no errors; zero means 200.
func HandleFunc[InputDto any, OutputDto any](
	deps HandlerDependencies,
	serviceFunc ServiceFunc[InputDto, OutputDto],
	successStatus int,
) gin.HandlerFunc {
	if successStatus == 0 {
		successStatus = http.StatusOK
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		log := deps.Logger.WithContext(ctx)

		ioutil := BuildRequestIo[InputDto](c)

		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			log.Error("unable to read request body", logger.Error(err))
			SendErrorResponse(c, *new(OutputDto), error_handler.NewErrorCollection().
				Append(error_handler.GetInternalServerError("Unable to parse request body")))
			return
		}

		ioutil.RawBody = bodyBytes

		if len(bodyBytes) > 0 && (c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut || c.Request.Method == http.MethodPatch) {
			// Restore the body for ShouldBindJSON to read
			c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

			if err := c.ShouldBindJSON(&ioutil.Body); err != nil {
				log.Warn("unable to bind request body", logger.Error(err))
				SendErrorResponse(c, *new(OutputDto), error_handler.NewErrorCollection().
					Append(error_handler.GetValidationError("Invalid request body: "+err.Error())))
				return
			}
		}

		outputDto, errorCollection := serviceFunc(ctx, ioutil)

		if errorCollection != nil && errorCollection.HasErrors() {
			SendErrorResponse(c, outputDto, errorCollection)
		} else {
			SendSuccessResponse(c, successStatus, outputDto)
		}
	}
}

func SendSuccessResponse[T any](c *gin.Context, status int, data T) {
	c.JSON(status, response.Success(data))
}

func SendErrorResponse[T any](c *gin.Context, data T, errorCollection *error_handler.ErrorCollection) {
	c.JSON(errorCollection.GetHTTPStatus(), response.Failure(data, errorCollection.GetErrors()...))
}
