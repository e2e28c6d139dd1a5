package dynamodb

import (
	"errors"
	"fmt"

	"jobtrack/internal/repository"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// isConditionalCheckFailed reports a failed ConditionExpression, which for
// this table always means the job id does not exist.
func isConditionalCheckFailed(err error) bool {
	var condErr *types.ConditionalCheckFailedException
	return errors.As(err, &condErr)
}

func storageError(op string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", op, repository.ErrStorageUnavailable, err)
}
