// internal/search/opportunity.go
package search

import (
	"strings"

	"talent-search/internal/models"
	"talent-search/internal/query"
)

var oppSortPaths = mustPathRegistry("o", map[string]string{
	"jobOpp":    "j",
	"candidate": "cand",
})

// BuildOpportunityQuery composes the candidate-opportunity search predicate.
func BuildOpportunityQuery(req *SearchOpportunityRequest, loggedInUser *models.User) *query.Definition {
	conj := []query.Expr{}

	// KEYWORD
	if keyword := strings.TrimSpace(req.Keyword); keyword != "" {
		conj = append(conj, query.Contains{Col: "o.name", Term: keyword})
	}

	// STAGE / ACTIVE / CLOSED
	conj = append(conj, stagePolicy(stagePolicyInput{
		alias:        "o",
		stages:       oppStageNames(req.Stages),
		activeStages: req.ActiveStages,
		closed:       req.Closed,
		activeLow:    models.OppStageActiveFirst.Order(),
		activeHigh:   models.OppStageActiveLast.Order(),
	}))

	// OVERDUE - only meaningful as a positive trigger. False adds no
	// constraint; the source surface never supported "not overdue".
	if boolVal(req.Overdue) {
		today := dateOnly(timeNow())
		conj = append(conj,
			query.IsNotNull("o.next_step_due_date"),
			query.Lt("o.next_step_due_date", today),
			query.Eq("o.closed", false),
		)
	}

	userRelative := boolVal(req.WithUnreadMessages) || req.OwnershipType != nil
	if userRelative && loggedInUser == nil {
		conj = append(conj, query.MatchNothing())
	} else {
		// UNREAD MESSAGES
		if boolVal(req.WithUnreadMessages) {
			conj = append(conj, UnreadOpportunityChatsPredicate(loggedInUser.ID, "o"))
		}

		// OWNERSHIP - tested against the opportunity's job. A source partner
		// additionally only owns opportunities for candidates its own users
		// manage, so that mode also pins the candidate's partner.
		if req.OwnershipType != nil {
			own := OwnershipPredicate(*req.OwnershipType,
				boolVal(req.OwnedByMe), boolVal(req.OwnedByMyPartner),
				loggedInUser, JobRef{Alias: "j"})
			if *req.OwnershipType == AsSourcePartner &&
				loggedInUser != nil && loggedInUser.Partner != nil {
				own = query.NewAnd(own, query.Eq("cp.id", loggedInUser.Partner.ID))
			}
			conj = append(conj, own)
		}
	}

	return &query.Definition{
		Table: "candidate_opportunity",
		Alias: "o",
		Joins: []query.Join{
			{Kind: query.JoinInner, Table: "job", Alias: "j", On: "j.id = o.job_id"},
			{Kind: query.JoinInner, Table: "candidate", Alias: "cand", On: "cand.id = o.candidate_id"},
			{Kind: query.JoinInner, Table: "users", Alias: "cu", On: "cu.id = cand.user_id"},
			{Kind: query.JoinLeft, Table: "partner", Alias: "cp", On: "cp.id = cu.partner_id"},
		},
		Where:  query.NewAnd(conj...),
		Orders: oppSortPaths.Resolve(req.SortFields, req.SortDirection),
	}
}

func oppStageNames(stages []models.OpportunityStage) []string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = string(s)
	}
	return names
}
