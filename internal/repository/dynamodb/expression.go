package dynamodb

import (
	"fmt"
	"strings"
	"time"

	"jobtrack/internal/query"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// scanFilter accumulates a FilterExpression with its placeholders
type scanFilter struct {
	clauses []string
	names   map[string]string
	values  map[string]types.AttributeValue
}

func newScanFilter() *scanFilter {
	return &scanFilter{
		names:  map[string]string{},
		values: map[string]types.AttributeValue{},
	}
}

func (f *scanFilter) equals(attr, value string) {
	name, placeholder := f.bind(attr)
	f.values[placeholder] = &types.AttributeValueMemberS{Value: value}
	f.clauses = append(f.clauses, fmt.Sprintf("%s = %s", name, placeholder))
}

func (f *scanFilter) contains(attr, needle string) {
	name, placeholder := f.bind(attr)
	f.values[placeholder] = &types.AttributeValueMemberS{Value: needle}
	f.clauses = append(f.clauses, fmt.Sprintf("contains(%s, %s)", name, placeholder))
}

func (f *scanFilter) between(attr string, from, to time.Time) {
	name, lo := f.bind(attr)
	hi := lo + "_to"
	f.values[lo] = millis(from)
	f.values[hi] = millis(to)
	f.clauses = append(f.clauses, fmt.Sprintf("%s BETWEEN %s AND %s", name, lo, hi))
}

func (f *scanFilter) atLeast(attr string, from time.Time) {
	name, placeholder := f.bind(attr)
	f.values[placeholder] = millis(from)
	f.clauses = append(f.clauses, fmt.Sprintf("%s >= %s", name, placeholder))
}

func (f *scanFilter) bind(attr string) (string, string) {
	name := "#" + attr
	f.names[name] = attr
	return name, ":" + attr
}

// expression returns nil values when no clause was added so the scan input
// carries no empty expression.
func (f *scanFilter) expression() (*string, map[string]string, map[string]types.AttributeValue) {
	if len(f.clauses) == 0 {
		return nil, nil, nil
	}
	return aws.String(strings.Join(f.clauses, " AND ")), f.names, f.values
}

func millis(t time.Time) types.AttributeValue {
	return &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", t.UnixMilli())}
}

func buildFilter(filter query.FilterSpec) *scanFilter {
	f := newScanFilter()
	if filter.Status != "" {
		f.equals("status", string(filter.Status))
	}
	if filter.JobType != "" {
		f.equals("job_type", string(filter.JobType))
	}
	if filter.JobNumberContains != "" {
		f.contains("job_number_lc", filter.JobNumberContains)
	}
	if filter.ClientContains != "" {
		f.contains("client_lc", filter.ClientContains)
	}
	return f
}

func buildFindFilter(spec query.FindSpec) *scanFilter {
	f := buildFilter(spec.Filter)
	f.between("date", spec.Window.From, spec.Window.To)
	return f
}

func buildGroupFilter(spec query.GroupSpec) *scanFilter {
	f := newScanFilter()
	if spec.Status != "" {
		f.equals("status", string(spec.Status))
	}
	f.atLeast("date", spec.Since)
	return f
}
