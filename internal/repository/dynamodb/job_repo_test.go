package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"jobtrack/internal/domain"
	"jobtrack/internal/logger"
	"jobtrack/internal/query"
	"jobtrack/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDynamo keeps items in insertion order and serves scans in pages of
// pageSize. It ignores FilterExpression; the repository re-applies the
// spec in process, which is what these tests rely on.
type fakeDynamo struct {
	items    []map[string]types.AttributeValue
	pageSize int
	scans    []*dynamodb.ScanInput
	scanErr  error
}

func (f *fakeDynamo) indexOf(key map[string]types.AttributeValue) int {
	id := key["job_id"].(*types.AttributeValueMemberS).Value
	for i, item := range f.items {
		if item["job_id"].(*types.AttributeValueMemberS).Value == id {
			return i
		}
	}
	return -1
}

func (f *fakeDynamo) PutItem(ctx context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	idx := f.indexOf(in.Item)
	switch aws.ToString(in.ConditionExpression) {
	case "attribute_exists(job_id)":
		if idx < 0 {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("missing")}
		}
	case "attribute_not_exists(job_id)":
		if idx >= 0 {
			return nil, &types.ConditionalCheckFailedException{Message: aws.String("exists")}
		}
	}
	if idx >= 0 {
		f.items[idx] = in.Item
	} else {
		f.items = append(f.items, in.Item)
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(ctx context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if idx := f.indexOf(in.Key); idx >= 0 {
		return &dynamodb.GetItemOutput{Item: f.items[idx]}, nil
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (f *fakeDynamo) DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	idx := f.indexOf(in.Key)
	if idx < 0 {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("missing")}
	}
	f.items = append(f.items[:idx], f.items[idx+1:]...)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) Scan(ctx context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scans = append(f.scans, in)
	if f.scanErr != nil {
		return nil, f.scanErr
	}

	start := 0
	if in.ExclusiveStartKey != nil {
		start = f.indexOf(in.ExclusiveStartKey) + 1
	}
	end := len(f.items)
	if f.pageSize > 0 && start+f.pageSize < end {
		end = start + f.pageSize
	}

	out := &dynamodb.ScanOutput{Count: int32(end - start)}
	if in.Select != types.SelectCount {
		out.Items = f.items[start:end]
	}
	if end < len(f.items) {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"job_id": f.items[end-1]["job_id"]}
	}
	return out, nil
}

func newTestRepo(fake *fakeDynamo) *jobRepository {
	return NewJobRepository(fake, "", logger.NewNopLogger()).(*jobRepository)
}

func sampleJob(id, name string, date time.Time) *domain.JobRecord {
	return &domain.JobRecord{
		ID:        id,
		JobName:   name,
		JobNumber: "JN-" + id,
		Client:    "Acme",
		JobType:   domain.JobTypeBrand,
		Status:    domain.JobStatusApproved,
		Date:      date,
		Amount:    10,
		CreatedBy: "user-1",
		CreatedAt: date,
		UpdatedAt: date,
	}
}

func TestCreateAndGet(t *testing.T) {
	fake := &fakeDynamo{}
	repo := newTestRepo(fake)
	ctx := context.Background()

	job := sampleJob("a1", "Launch", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, job))

	stored := fake.items[0]
	assert.Equal(t, "jn-a1", stored["job_number_lc"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "acme", stored["client_lc"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, fmt.Sprintf("%d", job.Date.UnixMilli()), stored["date"].(*types.AttributeValueMemberN).Value)

	got, err := repo.GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, job, got)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	repo := newTestRepo(&fakeDynamo{})
	ctx := context.Background()

	err := repo.Update(ctx, sampleJob("nope", "x", time.Now()))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = repo.Delete(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestFindSortsAndPagesAcrossScanPages(t *testing.T) {
	fake := &fakeDynamo{pageSize: 2}
	repo := newTestRepo(fake)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, sampleJob(fmt.Sprintf("id-%d", i), fmt.Sprintf("Job %d", i), base.AddDate(0, 0, i))))
	}

	jobs, err := repo.Find(ctx, query.FindSpec{
		Window: query.DateRange{From: base, To: base.AddDate(0, 1, 0), Valid: true},
		Order:  &query.Ordering{Field: query.SortFieldDate, Descending: true},
		Skip:   1,
		Limit:  2,
	})
	require.NoError(t, err)

	require.Len(t, jobs, 2)
	assert.Equal(t, "id-3", jobs[0].ID)
	assert.Equal(t, "id-2", jobs[1].ID)
	assert.Len(t, fake.scans, 3)
}

func TestCountSumsPages(t *testing.T) {
	fake := &fakeDynamo{pageSize: 2}
	repo := newTestRepo(fake)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, sampleJob(fmt.Sprintf("id-%d", i), "Job", time.Now())))
	}

	total, err := repo.Count(ctx, query.FilterSpec{Status: domain.JobStatusApproved})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Equal(t, types.SelectCount, fake.scans[0].Select)
	assert.Equal(t, "#status = :status", aws.ToString(fake.scans[0].FilterExpression))
}

func TestAggregateGroupsByMonth(t *testing.T) {
	fake := &fakeDynamo{}
	repo := newTestRepo(fake)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleJob("1", "a", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.Create(ctx, sampleJob("2", "b", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))))
	require.NoError(t, repo.Create(ctx, sampleJob("3", "c", time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC))))

	groups, err := repo.Aggregate(ctx, query.GroupSpec{
		Key:    query.GroupByMonth,
		Status: domain.JobStatusApproved,
		Since:  time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Equal(t, []query.Group{
		{Year: 2024, Month: time.January, Sum: 20},
		{Year: 2024, Month: time.February, Sum: 10},
	}, groups)
	assert.Equal(t, "#status = :status AND #date >= :date", aws.ToString(fake.scans[0].FilterExpression))
}

func TestScanFailureIsStorageUnavailable(t *testing.T) {
	repo := newTestRepo(&fakeDynamo{scanErr: errors.New("dial tcp: connection refused")})

	_, err := repo.Find(context.Background(), query.FindSpec{Window: query.DateRange{Valid: true}})
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)

	_, err = repo.Count(context.Background(), query.FilterSpec{})
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)
}

func TestUndecodableItemFailsScan(t *testing.T) {
	fake := &fakeDynamo{}
	repo := newTestRepo(fake)
	require.NoError(t, repo.Create(context.Background(), sampleJob("a", "Alpha", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))))
	fake.items = append(fake.items, map[string]types.AttributeValue{
		"job_id": &types.AttributeValueMemberS{Value: "b"},
		"amount": &types.AttributeValueMemberS{Value: "not-a-number"},
	})

	_, err := repo.Find(context.Background(), query.FindSpec{Window: query.DateRange{Valid: true}})
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)

	_, err = repo.Aggregate(context.Background(), query.GroupSpec{})
	assert.ErrorIs(t, err, repository.ErrStorageUnavailable)
}

func TestBuildFindFilter(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	expr, names, values := buildFindFilter(query.FindSpec{
		Filter: query.FilterSpec{
			Status:            domain.JobStatusPending,
			JobType:           domain.JobTypeOther,
			JobNumberContains: "jn-1",
			ClientContains:    "acme",
		},
		Window: query.DateRange{From: from, To: to, Valid: true},
	}).expression()

	assert.Equal(t,
		"#status = :status AND #job_type = :job_type AND contains(#job_number_lc, :job_number_lc) AND contains(#client_lc, :client_lc) AND #date BETWEEN :date AND :date_to",
		aws.ToString(expr))
	assert.Equal(t, "date", names["#date"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "pending"}, values[":status"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", from.UnixMilli())}, values[":date"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", to.UnixMilli())}, values[":date_to"])
}

func TestBuildFilterEmpty(t *testing.T) {
	expr, names, values := buildFilter(query.FilterSpec{}).expression()
	assert.Nil(t, expr)
	assert.Nil(t, names)
	assert.Nil(t, values)
}
