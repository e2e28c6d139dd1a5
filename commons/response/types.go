package response

type StandardResponse struct {
	Status    StatusEnum `json:"status"`
	ErrorCode int        `json:"errorCode"`
	Message   string     `json:"message"`
	Data      any        `json:"data"`
	Errors    []Errors   `json:"errors"`
}

type StatusEnum string

const (
	StatusSuccess        StatusEnum = "SUCCESS"
	StatusPartialSuccess StatusEnum = "PARTIAL_SUCCESS"
	StatusFailed         StatusEnum = "FAILED"
)

type Errors struct {
	ErrorCode int    `json:"errorCode"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
}

// Success wraps data in a successful envelope
func Success(data any) StandardResponse {
	return StandardResponse{
		Status:    StatusSuccess,
		ErrorCode: 0,
		Message:   "Success",
		Data:      data,
		Errors:    []Errors{},
	}
}

// Failure builds a failed envelope whose primary code and message come from
// the first error
func Failure(data any, errs ...Errors) StandardResponse {
	if len(errs) == 0 {
		errs = []Errors{{ErrorCode: 500, Message: "Internal server error"}}
	}
	return StandardResponse{
		Status:    StatusFailed,
		ErrorCode: errs[0].ErrorCode,
		Message:   errs[0].Message,
		Data:      data,
		Errors:    errs,
	}
}
