// internal/search/job.go
package search

import (
	"strings"

	"talent-search/internal/models"
	"talent-search/internal/query"
)

var jobSortPaths = mustPathRegistry("j", map[string]string{
	"submissionList": "sl",
})

// BuildJobQuery composes the job search predicate. User-relative criteria
// (starred, unread, ownership) with a nil logged-in user make the whole
// query match nothing; they are impossible to satisfy, not ignored.
func BuildJobQuery(req *SearchJobRequest, loggedInUser *models.User) *query.Definition {
	conj := []query.Expr{}

	// KEYWORD
	if keyword := strings.TrimSpace(req.Keyword); keyword != "" {
		conj = append(conj, query.Contains{Col: "j.name", Term: keyword})
	}

	// STAGE / ACTIVE / CLOSED
	conj = append(conj, stagePolicy(stagePolicyInput{
		alias:        "j",
		stages:       jobStageNames(req.Stages),
		activeStages: req.ActiveStages,
		closed:       req.Closed,
		activeLow:    models.JobStageActiveFirst.Order(),
		activeHigh:   models.JobStageActiveLast.Order(),
	}))

	// DESTINATION
	if len(req.DestinationIDs) > 0 {
		conj = append(conj, query.InVals("j.country_id", req.DestinationIDs))
	}

	// PUBLISHED
	if req.Published != nil {
		if *req.Published {
			conj = append(conj, query.IsNotNull("j.published_date"))
		} else {
			conj = append(conj, query.IsNull("j.published_date"))
		}
	}

	userRelative := boolVal(req.Starred) || boolVal(req.WithUnreadMessages) ||
		req.OwnershipType != nil
	if userRelative && loggedInUser == nil {
		conj = append(conj, query.MatchNothing())
	} else {
		// UNREAD MESSAGES
		if boolVal(req.WithUnreadMessages) {
			conj = append(conj, UnreadJobChatsPredicate(loggedInUser.ID, JobRef{Alias: "j"}))
		}

		// OWNERSHIP / STARRED - a job qualifies by being owned or by being
		// starred, so the two predicates form a disjunction.
		ors := []query.Expr{}
		if req.OwnershipType != nil {
			ors = append(ors, OwnershipPredicate(*req.OwnershipType,
				boolVal(req.OwnedByMe), boolVal(req.OwnedByMyPartner),
				loggedInUser, JobRef{Alias: "j"}))
		}
		if boolVal(req.Starred) {
			ors = append(ors, query.Exists{Sub: query.Select{
				Columns: "1",
				From:    "user_job uj",
				Where: query.NewAnd(
					query.EqCol("uj.job_id", "j.id"),
					query.Eq("uj.user_id", loggedInUser.ID),
				),
			}})
		}
		if len(ors) > 0 {
			conj = append(conj, query.NewOr(ors...))
		}
	}

	return &query.Definition{
		Table: "job",
		Alias: "j",
		Joins: []query.Join{
			{Kind: query.JoinLeft, Table: "saved_list", Alias: "sl", On: "sl.id = j.submission_list_id"},
		},
		Where:  query.NewAnd(conj...),
		Orders: jobSortPaths.Resolve(req.SortFields, req.SortDirection),
	}
}

type stagePolicyInput struct {
	alias        string
	stages       []string
	activeStages *bool
	closed       *bool
	activeLow    int
	activeHigh   int
}

// stagePolicy implements the shared default-visibility rules: an explicit
// stage list is applied literally and bypasses the active/closed shorthand.
// Otherwise activeStages=true restricts to the active stage range, widened
// to include closed rows when closed=true is also requested; closed=false
// excludes closed rows. activeStages=false and closed=true on their own add
// no constraint - applying them literally would show only the rows nobody
// asked to see.
func stagePolicy(in stagePolicyInput) query.Expr {
	if len(in.stages) > 0 {
		return query.InVals(in.alias+".stage", in.stages)
	}
	conj := []query.Expr{}
	if in.activeStages != nil && *in.activeStages {
		active := query.Between(in.alias+".stage_order", in.activeLow, in.activeHigh)
		if in.closed != nil && *in.closed {
			conj = append(conj, query.NewOr(active, query.Eq(in.alias+".closed", true)))
		} else {
			conj = append(conj, active)
		}
	}
	if in.closed != nil && !*in.closed {
		conj = append(conj, query.Eq(in.alias+".closed", false))
	}
	return query.NewAnd(conj...)
}

func jobStageNames(stages []models.JobStage) []string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = string(s)
	}
	return names
}
