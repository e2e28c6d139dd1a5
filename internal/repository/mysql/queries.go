package mysql

import (
	"strings"

	"jobtrack/internal/query"
)

const querySchema = `
CREATE TABLE IF NOT EXISTS jobs (
    id          CHAR(36)     NOT NULL PRIMARY KEY,
    job_name    VARCHAR(255) NOT NULL,
    job_number  VARCHAR(255) NOT NULL,
    client      VARCHAR(255) NOT NULL DEFAULT '',
    job_type    VARCHAR(64)  NOT NULL,
    status      VARCHAR(32)  NOT NULL,
    ` + "`date`" + `      DATETIME(3)  NOT NULL,
    amount      DOUBLE       NOT NULL DEFAULT 0,
    created_by  VARCHAR(64)  NOT NULL,
    created_at  DATETIME(3)  NOT NULL,
    updated_at  DATETIME(3)  NOT NULL,
    KEY idx_jobs_date (` + "`date`" + `),
    KEY idx_jobs_status_date (status, ` + "`date`" + `)
) DEFAULT CHARSET = utf8mb4
`

const jobColumns = "id, job_name, job_number, client, job_type, status, `date`, amount, created_by, created_at, updated_at"

const queryInsertJob = `
INSERT INTO jobs (` + jobColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const queryGetJobByID = `
SELECT ` + jobColumns + `
FROM jobs
WHERE id = ?
`

const queryUpdateJob = `
UPDATE jobs
SET job_name = ?, job_number = ?, client = ?, job_type = ?, status = ?,
    ` + "`date`" + ` = ?, amount = ?, updated_at = ?
WHERE id = ?
`

const queryDeleteJob = `
DELETE FROM jobs WHERE id = ?
`

const querySelectJobs = `
SELECT ` + jobColumns + `
FROM jobs`

const queryCountJobs = `
SELECT COUNT(*)
FROM jobs`

const querySumByJobType = `
SELECT job_type, SUM(amount)
FROM jobs`

const querySumByMonth = `
SELECT YEAR(` + "`date`" + `), MONTH(` + "`date`" + `), SUM(amount)
FROM jobs`

// whereBuilder collects AND-ed conditions and their arguments
type whereBuilder struct {
	clauses []string
	args    []any
}

func (w *whereBuilder) add(clause string, args ...any) {
	w.clauses = append(w.clauses, clause)
	w.args = append(w.args, args...)
}

func (w *whereBuilder) addFilter(filter query.FilterSpec) {
	if filter.Status != "" {
		w.add("status = ?", string(filter.Status))
	}
	if filter.JobType != "" {
		w.add("job_type = ?", string(filter.JobType))
	}
	if filter.JobNumberContains != "" {
		w.add("LOWER(job_number) COLLATE utf8mb4_bin LIKE ?", likePattern(filter.JobNumberContains))
	}
	if filter.ClientContains != "" {
		w.add("LOWER(client) COLLATE utf8mb4_bin LIKE ?", likePattern(filter.ClientContains))
	}
}

func (w *whereBuilder) sql() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return "\nWHERE " + strings.Join(w.clauses, " AND ")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps needle for a literal substring LIKE match.
func likePattern(needle string) string {
	return "%" + likeEscaper.Replace(needle) + "%"
}

// orderBy renders ordering. Without one, rows come back in creation order.
// Names compare byte-wise to match the other backends.
func orderBy(order *query.Ordering) string {
	if order == nil {
		return "\nORDER BY created_at ASC, id ASC"
	}

	direction := "ASC"
	if order.Descending {
		direction = "DESC"
	}

	switch order.Field {
	case query.SortFieldJobName:
		return "\nORDER BY job_name COLLATE utf8mb4_bin " + direction + ", id ASC"
	default:
		return "\nORDER BY `date` " + direction + ", id ASC"
	}
}
