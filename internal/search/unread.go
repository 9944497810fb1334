// internal/search/unread.go
package search

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"talent-search/internal/models"
	"talent-search/internal/query"
)

// A chat is unread by a user when its latest post postdates the user's
// last-read marker, or when the user has no read marker at all for a chat
// that has at least one post. A chat with zero posts is never unread.
//
// Both conditions collapse into one comparison:
//
//	(select max(id) from chat_post where job_chat_id = jc.id)
//	    > coalesce((select last_read_post_id from job_chat_user ...), 0)
//
// max(id) over an empty chat is NULL, so empty chats fail the comparison;
// a missing read marker coalesces to 0, so any post at all counts as unread.

func chatUnreadCondition(userID int64) query.Expr {
	lastPost := query.Scalar{Sub: query.Select{
		Columns: "max(cp.id)",
		From:    "chat_post cp",
		Where:   query.EqCol("cp.job_chat_id", "jc.id"),
	}}
	lastRead := query.Scalar{Sub: query.Select{
		Columns: "jcu.last_read_post_id",
		From:    "job_chat_user jcu",
		Where: query.NewAnd(
			query.EqCol("jcu.job_chat_id", "jc.id"),
			query.Eq("jcu.user_id", userID),
		),
	}}
	return query.Cmp{
		Left:  lastPost,
		Op:    query.OpGt,
		Right: query.Coalesce{Of: lastRead, Def: int64(0)},
	}
}

func chatTypeNames(types []models.JobChatType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return names
}

// UnreadJobChatsPredicate keeps jobs having at least one job-facing chat
// unread by the given user.
func UnreadJobChatsPredicate(userID int64, job JobRef) query.Expr {
	return query.Exists{Sub: query.Select{
		Columns: "1",
		From:    "job_chat jc",
		Where: query.NewAnd(
			query.EqCol("jc.job_id", job.col("id")),
			query.InVals("jc.type", chatTypeNames(models.JobFacingChatTypes)),
			chatUnreadCondition(userID),
		),
	}}
}

// UnreadOpportunityChatsPredicate keeps candidate opportunities having at
// least one candidate-facing chat unread by the given user. Candidate-facing
// chats attach to the (job, candidate) pair of the opportunity.
func UnreadOpportunityChatsPredicate(userID int64, oppAlias string) query.Expr {
	return query.Exists{Sub: query.Select{
		Columns: "1",
		From:    "job_chat jc",
		Where: query.NewAnd(
			query.EqCol("jc.job_id", oppAlias+".job_id"),
			query.EqCol("jc.candidate_id", oppAlias+".candidate_id"),
			query.InVals("jc.type", chatTypeNames(models.CandidateFacingChatTypes)),
			chatUnreadCondition(userID),
		),
	}}
}

const unreadCondSQL = `(SELECT max(cp.id) FROM chat_post cp WHERE cp.job_chat_id = jc.id) >
    coalesce((SELECT jcu.last_read_post_id FROM job_chat_user jcu
              WHERE jcu.job_chat_id = jc.id AND jcu.user_id = $2), 0)`

// UnreadJobIDs is the application-side batch variant: it returns the subset
// of the given job ids that have at least one unread job-facing chat for the
// user. Callers such as unread-count badges use it without running a full
// search. A nil user (userID 0) can never have unread chats.
func UnreadJobIDs(ctx context.Context, db *sql.DB, userID int64, jobIDs []int64) ([]int64, error) {
	if userID == 0 || len(jobIDs) == 0 {
		return nil, nil
	}
	q := `SELECT DISTINCT jc.job_id FROM job_chat jc
WHERE jc.job_id = ANY($1)
  AND jc.type = ANY($3)
  AND ` + unreadCondSQL
	return queryIDs(ctx, db, q,
		pq.Array(jobIDs), userID, pq.Array(chatTypeNames(models.JobFacingChatTypes)))
}

// UnreadOpportunityIDs returns the subset of the given candidate opportunity
// ids with at least one unread candidate-facing chat for the user.
func UnreadOpportunityIDs(ctx context.Context, db *sql.DB, userID int64, oppIDs []int64) ([]int64, error) {
	if userID == 0 || len(oppIDs) == 0 {
		return nil, nil
	}
	q := `SELECT DISTINCT co.id FROM candidate_opportunity co
JOIN job_chat jc ON jc.job_id = co.job_id AND jc.candidate_id = co.candidate_id
WHERE co.id = ANY($1)
  AND jc.type = ANY($3)
  AND ` + unreadCondSQL
	return queryIDs(ctx, db, q,
		pq.Array(oppIDs), userID, pq.Array(chatTypeNames(models.CandidateFacingChatTypes)))
}

func queryIDs(ctx context.Context, db *sql.DB, q string, args ...interface{}) ([]int64, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("unread lookup failed: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("unread lookup scan failed: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
