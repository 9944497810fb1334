// internal/search/candidate.go
package search

import (
	"regexp"
	"strings"
	"time"

	"talent-search/internal/models"
	"talent-search/internal/query"
)

// timeNow is swapped in tests: age and overdue filters are relative to it.
var timeNow = time.Now

// candidateSortPaths maps the logical sort prefixes of candidate searches to
// the join aliases below, validated once at package init.
var candidateSortPaths = mustPathRegistry("c", map[string]string{
	"user":              "u",
	"user.partner":      "p",
	"nationality":       "nat",
	"country":           "co",
	"maxEducationLevel": "edl",
})

var keywordSplit = regexp.MustCompile(`[\s,.]+`)

// BuildCandidateQuery composes the candidate search predicate. All present
// criteria are ANDed; absent criteria add no constraint. Soft-deleted
// candidates are excluded unless an explicit status list asks for them.
// Candidates in excludedIDs are removed regardless of other filters.
func BuildCandidateQuery(req *SearchCandidateRequest, loggedInUser *models.User, excludedIDs []int64) *query.Definition {
	conj := []query.Expr{}

	// STATUS - the deleted exclusion is the one implicit default; a caller
	// supplying statuses takes full control, including seeing deleted rows.
	if len(req.Statuses) > 0 {
		conj = append(conj, query.InVals("c.status", statusNames(req.Statuses)))
	} else {
		conj = append(conj, query.Ne("c.status", string(models.CandidateStatusDeleted)))
	}

	// KEYWORD - each token must match at least one of the name/email/number
	// attributes; tokens are ANDed together.
	if keyword := strings.TrimSpace(req.Keyword); keyword != "" {
		for _, token := range keywordSplit.Split(keyword, -1) {
			if token == "" {
				continue
			}
			conj = append(conj, query.NewOr(
				query.Contains{Col: "c.candidate_number", Term: token},
				query.Contains{Col: "u.first_name", Term: token},
				query.Contains{Col: "u.last_name", Term: token},
				query.Contains{Col: "u.email", Term: token},
			))
		}
	}

	// OCCUPATIONS with optional inclusive years-experience bounds.
	if len(req.OccupationIDs) > 0 {
		occWhere := []query.Expr{
			query.EqCol("oc.candidate_id", "c.id"),
			query.InVals("oc.occupation_id", req.OccupationIDs),
		}
		if req.MinYrs != nil {
			occWhere = append(occWhere, query.Ge("oc.years_experience", *req.MinYrs))
		}
		if req.MaxYrs != nil {
			occWhere = append(occWhere, query.Le("oc.years_experience", *req.MaxYrs))
		}
		conj = append(conj, query.Exists{Sub: query.Select{
			Columns: "1",
			From:    "candidate_occupation oc",
			Where:   query.NewAnd(occWhere...),
		}})
	}

	// NATIONALITY
	if len(req.NationalityIDs) > 0 {
		if req.NationalitySearchType == SearchTypeNot {
			conj = append(conj, query.NotInVals("c.nationality_id", req.NationalityIDs))
		} else {
			conj = append(conj, query.InVals("c.nationality_id", req.NationalityIDs))
		}
	}

	// COUNTRY - explicit ids win; otherwise a logged-in user limited to
	// source countries only sees candidates located in them.
	if len(req.CountryIDs) > 0 {
		if req.CountrySearchType == SearchTypeNot {
			conj = append(conj, query.NotInVals("c.country_id", req.CountryIDs))
		} else {
			conj = append(conj, query.InVals("c.country_id", req.CountryIDs))
		}
	} else if loggedInUser != nil && len(loggedInUser.SourceCountryIDs) > 0 {
		conj = append(conj, query.InVals("c.country_id", loggedInUser.SourceCountryIDs))
	}

	// PARTNER
	if len(req.PartnerIDs) > 0 {
		conj = append(conj, query.InVals("u.partner_id", req.PartnerIDs))
	}

	// SURVEY TYPE
	if len(req.SurveyTypeIDs) > 0 {
		conj = append(conj, query.InVals("c.survey_type_id", req.SurveyTypeIDs))
	}

	// UNHCR STATUS
	if len(req.UnhcrStatuses) > 0 {
		conj = append(conj, query.InVals("c.unhcr_status", unhcrNames(req.UnhcrStatuses)))
	}

	// REFERRER
	if ref := strings.TrimSpace(req.RegoReferrerParam); ref != "" {
		conj = append(conj, query.ILike{Col: "c.rego_referrer_param", Pattern: ref})
	}

	// GENDER
	if req.Gender != nil {
		conj = append(conj, query.Eq("c.gender", string(*req.Gender)))
	}

	// LAST MODIFIED - dates widen to full days in the request timezone.
	loc := requestLocation(req.Timezone)
	if req.LastModifiedFrom != nil {
		conj = append(conj, query.Ge("c.updated_date", startOfDay(*req.LastModifiedFrom, loc)))
	}
	if req.LastModifiedTo != nil {
		conj = append(conj, query.Lt("c.updated_date", startOfDay(*req.LastModifiedTo, loc).AddDate(0, 0, 1)))
	}

	// AGE - unknown date of birth is never disqualifying.
	today := dateOnly(timeNow())
	if req.MinAge != nil {
		minDob := today.AddDate(-*req.MinAge, 0, 0)
		conj = append(conj, query.NewOr(
			query.Le("c.dob", minDob),
			query.IsNull("c.dob"),
		))
	}
	if req.MaxAge != nil {
		maxDob := today.AddDate(-*req.MaxAge, 0, 0)
		conj = append(conj, query.NewOr(
			query.Ge("c.dob", maxDob),
			query.IsNull("c.dob"),
		))
	}

	// EDUCATION LEVEL
	if req.MinEducationLevel != nil {
		conj = append(conj, query.Ge("edl.level", *req.MinEducationLevel))
	}

	// INTAKE COMPLETION
	if req.MiniIntakeCompleted != nil {
		conj = append(conj, completedDate("c.mini_intake_completed_date", *req.MiniIntakeCompleted))
	}
	if req.FullIntakeCompleted != nil {
		conj = append(conj, completedDate("c.full_intake_completed_date", *req.FullIntakeCompleted))
	}

	// EDUCATION MAJOR - a study major or the candidate's migration major.
	if len(req.EducationMajorIDs) > 0 {
		conj = append(conj, query.NewOr(
			query.Exists{Sub: query.Select{
				Columns: "1",
				From:    "candidate_education ce",
				Where: query.NewAnd(
					query.EqCol("ce.candidate_id", "c.id"),
					query.InVals("ce.education_major_id", req.EducationMajorIDs),
				),
			}},
			query.InVals("c.migration_education_major_id", req.EducationMajorIDs),
		))
	}

	// LANGUAGE LEVELS
	if e := englishLevelPredicate(req); e != nil {
		conj = append(conj, e)
	}
	if e := otherLanguagePredicate(req); e != nil {
		conj = append(conj, e)
	}

	// CANDIDATE OPPORTUNITIES
	if req.FilterByOpps != nil {
		conj = append(conj, filterByOppsPredicate(req.FilterByOpps))
	}

	// EXCLUSIONS
	if len(excludedIDs) > 0 {
		conj = append(conj, query.NotInVals("c.id", excludedIDs))
	}

	return &query.Definition{
		Table: "candidate",
		Alias: "c",
		Joins: []query.Join{
			{Kind: query.JoinInner, Table: "users", Alias: "u", On: "u.id = c.user_id"},
			{Kind: query.JoinLeft, Table: "partner", Alias: "p", On: "p.id = u.partner_id"},
			{Kind: query.JoinLeft, Table: "country", Alias: "nat", On: "nat.id = c.nationality_id"},
			{Kind: query.JoinLeft, Table: "country", Alias: "co", On: "co.id = c.country_id"},
			{Kind: query.JoinLeft, Table: "education_level", Alias: "edl", On: "edl.id = c.max_education_level_id"},
		},
		Where:  query.NewAnd(conj...),
		Orders: candidateSortPaths.Resolve(req.SortFields, req.SortDirection),
	}
}

// englishLevelPredicate requires an english candidate language meeting the
// requested minimum written and/or spoken levels.
func englishLevelPredicate(req *SearchCandidateRequest) query.Expr {
	if req.EnglishMinWrittenLevel == nil && req.EnglishMinSpokenLevel == nil {
		return nil
	}
	where := []query.Expr{
		query.EqCol("cl.candidate_id", "c.id"),
		query.ILike{Col: "l.name", Pattern: "english"},
	}
	if req.EnglishMinWrittenLevel != nil {
		where = append(where, query.Ge("wl.level", *req.EnglishMinWrittenLevel))
	}
	if req.EnglishMinSpokenLevel != nil {
		where = append(where, query.Ge("sl.level", *req.EnglishMinSpokenLevel))
	}
	return candidateLanguageExists(where)
}

// otherLanguagePredicate requires the nominated language at its minimum
// levels. A language id with no levels adds no constraint.
func otherLanguagePredicate(req *SearchCandidateRequest) query.Expr {
	if req.OtherLanguageID == nil ||
		(req.OtherMinWrittenLevel == nil && req.OtherMinSpokenLevel == nil) {
		return nil
	}
	where := []query.Expr{
		query.EqCol("cl.candidate_id", "c.id"),
		query.Eq("l.id", *req.OtherLanguageID),
	}
	if req.OtherMinWrittenLevel != nil {
		where = append(where, query.Ge("wl.level", *req.OtherMinWrittenLevel))
	}
	if req.OtherMinSpokenLevel != nil {
		where = append(where, query.Ge("sl.level", *req.OtherMinSpokenLevel))
	}
	return candidateLanguageExists(where)
}

func candidateLanguageExists(where []query.Expr) query.Expr {
	return query.Exists{Sub: query.Select{
		Columns: "1",
		From: "candidate_language cl" +
			" JOIN language l ON l.id = cl.language_id" +
			" LEFT JOIN language_level wl ON wl.id = cl.written_level_id" +
			" LEFT JOIN language_level sl ON sl.id = cl.spoken_level_id",
		Where: query.NewAnd(where...),
	}}
}

// filterByOppsPredicate compares the candidate's opportunity count against
// zero. AnyOpps only flips the zero/non-zero test; otherwise the closed and
// relocated clauses narrow which opportunities are counted.
func filterByOppsPredicate(f *FilterByOpps) query.Expr {
	where := []query.Expr{query.EqCol("aco.candidate_id", "c.id")}
	countMustBeNonZero := true
	if f.AnyOpps != nil {
		countMustBeNonZero = *f.AnyOpps
	} else {
		if f.ClosedOpps != nil {
			where = append(where, query.Eq("aco.closed", *f.ClosedOpps))
		}
		if f.RelocatedOpps != nil {
			relocatedOrder := models.OppStageRelocated.Order()
			if *f.RelocatedOpps {
				where = append(where, query.Ge("aco.stage_order", relocatedOrder))
			} else {
				where = append(where, query.Lt("aco.stage_order", relocatedOrder))
			}
		}
	}
	count := query.Scalar{Sub: query.Select{
		Columns: "count(*)",
		From:    "candidate_opportunity aco",
		Where:   query.NewAnd(where...),
	}}
	op := query.OpGt
	if !countMustBeNonZero {
		op = query.OpEq
	}
	return query.Cmp{Left: count, Op: op, Right: query.Value{V: int64(0)}}
}

func completedDate(col string, completed bool) query.Expr {
	if completed {
		return query.IsNotNull(col)
	}
	return query.IsNull(col)
}

func statusNames(statuses []models.CandidateStatus) []string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return names
}

func unhcrNames(statuses []models.UnhcrStatus) []string {
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = string(s)
	}
	return names
}

func requestLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
