package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"jobtrack/internal/domain"
	"jobtrack/internal/logger"
	"jobtrack/internal/query"
	"jobtrack/internal/repository"
	repositoryIface "jobtrack/internal/repository/iface"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DefaultTableName is used when no table is configured.
const DefaultTableName = "jobs"

// API is the subset of the DynamoDB client used by the repository.
type API interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

type jobRepository struct {
	client    API
	tableName string
	logger    logger.Logger
}

// NewJobRepository creates a new DynamoDB job repository. Filters are pushed
// into the scan; ordering, paging and grouping happen in process.
func NewJobRepository(client API, tableName string, log logger.Logger) repositoryIface.JobRepository {
	if tableName == "" {
		tableName = DefaultTableName
	}
	return &jobRepository{
		client:    client,
		tableName: tableName,
		logger:    log.With(logger.String("component", "job_repository")),
	}
}

func (r *jobRepository) Create(ctx context.Context, job *domain.JobRecord) error {
	r.logger.Debug("creating job",
		logger.String("job_id", job.ID))

	item, err := attributevalue.MarshalMap(toItem(job))
	if err != nil {
		r.logger.Error("failed to marshal job", logger.Error(err))
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(job_id)"),
	})
	if err != nil {
		r.logger.Error("failed to create job", logger.Error(err))
		return storageError("create job", err)
	}

	r.logger.Info("job created",
		logger.String("job_id", job.ID))

	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, jobID string) (*domain.JobRecord, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       jobKey(jobID),
	})
	if err != nil {
		r.logger.Error("failed to get job", logger.Error(err))
		return nil, storageError("get job", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, jobID)
	}

	var item jobItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}

	return item.toRecord(), nil
}

func (r *jobRepository) Update(ctx context.Context, job *domain.JobRecord) error {
	r.logger.Debug("updating job",
		logger.String("job_id", job.ID),
		logger.String("status", string(job.Status)))

	item, err := attributevalue.MarshalMap(toItem(job))
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(job_id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("%w: %s", repository.ErrNotFound, job.ID)
		}
		r.logger.Error("failed to update job", logger.Error(err))
		return storageError("update job", err)
	}

	return nil
}

func (r *jobRepository) Delete(ctx context.Context, jobID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 jobKey(jobID),
		ConditionExpression: aws.String("attribute_exists(job_id)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return fmt.Errorf("%w: %s", repository.ErrNotFound, jobID)
		}
		r.logger.Error("failed to delete job", logger.Error(err))
		return storageError("delete job", err)
	}

	r.logger.Info("job deleted", logger.String("job_id", jobID))
	return nil
}

func (r *jobRepository) Find(ctx context.Context, spec query.FindSpec) ([]*domain.JobRecord, error) {
	jobs, err := r.scan(ctx, buildFindFilter(spec))
	if err != nil {
		return nil, err
	}
	return query.Select(jobs, spec), nil
}

func (r *jobRepository) Count(ctx context.Context, filter query.FilterSpec) (int64, error) {
	expr, names, values := buildFilter(filter).expression()
	input := &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		Select:                    types.SelectCount,
		FilterExpression:          expr,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}

	var total int64
	paginator := dynamodb.NewScanPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			r.logger.Error("failed to count jobs", logger.Error(err))
			return 0, storageError("count jobs", err)
		}
		total += int64(page.Count)
	}

	return total, nil
}

func (r *jobRepository) Aggregate(ctx context.Context, spec query.GroupSpec) ([]query.Group, error) {
	jobs, err := r.scan(ctx, buildGroupFilter(spec))
	if err != nil {
		return nil, err
	}

	groups := query.GroupSum(jobs, spec)
	r.logger.Debug("jobs aggregated",
		logger.String("group_by", spec.Key.String()),
		logger.Int("scanned", len(jobs)),
		logger.Int("groups", len(groups)))

	return groups, nil
}

// scan reads every page matching f, in table order.
func (r *jobRepository) scan(ctx context.Context, f *scanFilter) ([]*domain.JobRecord, error) {
	expr, names, values := f.expression()
	input := &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr,
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}

	jobs := make([]*domain.JobRecord, 0)
	paginator := dynamodb.NewScanPaginator(r.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			r.logger.Error("failed to scan jobs", logger.Error(err))
			return nil, storageError("scan jobs", err)
		}

		for _, raw := range page.Items {
			var item jobItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Error("failed to unmarshal job", logger.Error(err))
				return nil, storageError("decode job", err)
			}
			jobs = append(jobs, item.toRecord())
		}
	}

	return jobs, nil
}

// EnsureTable creates the jobs table when it does not exist yet. Used
// against local DynamoDB.
func EnsureTable(ctx context.Context, client *dynamodb.Client, tableName string, log logger.Logger) error {
	_, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
	if err == nil {
		return nil
	}

	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		return storageError("describe table", err)
	}

	_, err = client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("job_id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("job_id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		return storageError("create table", err)
	}

	log.Info("created dynamodb table", logger.String("table", tableName))
	return nil
}

func jobKey(jobID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"job_id": &types.AttributeValueMemberS{Value: jobID},
	}
}
