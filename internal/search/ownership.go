// internal/search/ownership.go
package search

import (
	"talent-search/internal/models"
	"talent-search/internal/query"
)

// JobRef is the handle the ownership and unread filters use to reach the job
// being tested: either the base alias of a job search, or the alias of the
// job joined into a candidate-opportunity search.
type JobRef struct {
	Alias string
}

func (j JobRef) col(name string) string {
	return j.Alias + "." + name
}

// OwnershipPredicate narrows jobs to those "owned" by the logged-in user or
// the user's partner under the given ownership mode.
//
// The vacuous cases resolve to MatchNothing rather than an error: a nil
// user, a partner-relative toggle on a partnerless user, or a mode with
// neither toggle set can never be satisfied.
func OwnershipPredicate(mode OwnershipType, ownedByMe, ownedByMyPartner bool, user *models.User, job JobRef) query.Expr {
	if user == nil {
		return query.MatchNothing()
	}

	var partner *models.Partner
	if user.Partner != nil {
		partner = user.Partner
	}

	ors := []query.Expr{}
	switch mode {
	case AsJobCreator:
		if ownedByMe {
			// Creator or nominated contact of the job.
			ors = append(ors, query.NewOr(
				query.Eq(job.col("created_by"), user.ID),
				query.Eq(job.col("contact_user_id"), user.ID),
			))
		}
		if ownedByMyPartner {
			if partner != nil {
				ors = append(ors, query.Eq(job.col("job_creator_partner_id"), partner.ID))
			}
		}
	case AsSourcePartner:
		if ownedByMe {
			// Jobs tied to a partner whose default contact is this user.
			ors = append(ors, query.Exists{Sub: query.Select{
				Columns: "1",
				From:    "partner_job_relation pjr JOIN partner pjp ON pjp.id = pjr.partner_id",
				Where: query.NewAnd(
					query.EqCol("pjr.job_id", job.col("id")),
					query.Eq("pjp.default_contact_id", user.ID),
				),
			}})
		}
		if ownedByMyPartner {
			if partner != nil {
				byCountry := query.MatchNothing()
				if len(partner.SourceCountryIDs) > 0 {
					byCountry = query.InVals(job.col("country_id"), partner.SourceCountryIDs)
				}
				byRelation := query.Exists{Sub: query.Select{
					Columns: "1",
					From:    "partner_job_relation pjr",
					Where: query.NewAnd(
						query.EqCol("pjr.job_id", job.col("id")),
						query.Eq("pjr.partner_id", partner.ID),
					),
				}}
				ors = append(ors, query.NewOr(byCountry, byRelation))
			}
		}
	}

	// NewOr of no satisfiable toggles is MatchNothing.
	return query.NewOr(ors...)
}
