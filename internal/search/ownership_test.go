package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-search/internal/models"
	"talent-search/internal/query"
)

func sourcePartnerUser() *models.User {
	contactID := int64(7)
	return &models.User{
		ID: 7,
		Partner: &models.Partner{
			ID:               31,
			SourcePartner:    true,
			DefaultContactID: &contactID,
			SourceCountryIDs: []int64{100, 101},
		},
	}
}

func TestOwnershipPredicate_NilUserMatchesNothing(t *testing.T) {
	expr := OwnershipPredicate(AsJobCreator, true, true, nil, JobRef{Alias: "j"})
	assert.Equal(t, query.MatchNothing(), expr)
}

func TestOwnershipPredicate_NoTogglesMatchesNothing(t *testing.T) {
	expr := OwnershipPredicate(AsJobCreator, false, false, sourcePartnerUser(), JobRef{Alias: "j"})
	assert.Equal(t, query.MatchNothing(), expr)
}

func TestOwnershipPredicate_JobCreatorOwnedByMe(t *testing.T) {
	user := &models.User{ID: 42}
	expr := OwnershipPredicate(AsJobCreator, true, false, user, JobRef{Alias: "j"})

	sql, args := query.RenderExpr(expr)
	assert.Equal(t, "(j.created_by = $1 OR j.contact_user_id = $2)", sql)
	require.Len(t, args, 2)
	assert.Equal(t, int64(42), args[0])
	assert.Equal(t, int64(42), args[1])
}

func TestOwnershipPredicate_JobCreatorOwnedByMyPartner(t *testing.T) {
	user := &models.User{ID: 42, Partner: &models.Partner{ID: 9, JobCreator: true}}
	expr := OwnershipPredicate(AsJobCreator, false, true, user, JobRef{Alias: "j"})

	sql, args := query.RenderExpr(expr)
	assert.Equal(t, "j.job_creator_partner_id = $1", sql)
	require.Len(t, args, 1)
	assert.Equal(t, int64(9), args[0])
}

func TestOwnershipPredicate_PartnerToggleWithoutPartnerMatchesNothing(t *testing.T) {
	user := &models.User{ID: 42}
	expr := OwnershipPredicate(AsJobCreator, false, true, user, JobRef{Alias: "j"})
	assert.Equal(t, query.MatchNothing(), expr)

	expr = OwnershipPredicate(AsSourcePartner, false, true, user, JobRef{Alias: "j"})
	assert.Equal(t, query.MatchNothing(), expr)
}

func TestOwnershipPredicate_SourcePartnerOwnedByMe(t *testing.T) {
	expr := OwnershipPredicate(AsSourcePartner, true, false, sourcePartnerUser(), JobRef{Alias: "j"})

	sql, args := query.RenderExpr(expr)
	assert.Equal(t,
		"EXISTS (SELECT 1 FROM partner_job_relation pjr JOIN partner pjp ON pjp.id = pjr.partner_id "+
			"WHERE (pjr.job_id = j.id AND pjp.default_contact_id = $1))",
		sql)
	require.Len(t, args, 1)
	assert.Equal(t, int64(7), args[0])
}

func TestOwnershipPredicate_SourcePartnerOwnedByMyPartner(t *testing.T) {
	expr := OwnershipPredicate(AsSourcePartner, false, true, sourcePartnerUser(), JobRef{Alias: "j"})

	sql, args := query.RenderExpr(expr)
	// Destination in the partner's source countries, or an explicit
	// partner-job relation.
	assert.Equal(t,
		"(j.country_id IN ($1, $2) OR EXISTS (SELECT 1 FROM partner_job_relation pjr "+
			"WHERE (pjr.job_id = j.id AND pjr.partner_id = $3)))",
		sql)
	require.Len(t, args, 3)
	assert.Equal(t, int64(100), args[0])
	assert.Equal(t, int64(101), args[1])
	assert.Equal(t, int64(31), args[2])
}

func TestOwnershipPredicate_SourcePartnerNoCountriesFallsBackToRelation(t *testing.T) {
	user := &models.User{ID: 5, Partner: &models.Partner{ID: 8, SourcePartner: true}}
	expr := OwnershipPredicate(AsSourcePartner, false, true, user, JobRef{Alias: "j"})

	sql, args := query.RenderExpr(expr)
	assert.Equal(t,
		"EXISTS (SELECT 1 FROM partner_job_relation pjr WHERE (pjr.job_id = j.id AND pjr.partner_id = $1))",
		sql)
	require.Len(t, args, 1)
	assert.Equal(t, int64(8), args[0])
}

func TestOwnershipPredicate_BothTogglesDisjoin(t *testing.T) {
	user := &models.User{ID: 42, Partner: &models.Partner{ID: 9}}
	expr := OwnershipPredicate(AsJobCreator, true, true, user, JobRef{Alias: "j"})

	sql, _ := query.RenderExpr(expr)
	assert.Equal(t,
		"((j.created_by = $1 OR j.contact_user_id = $2) OR j.job_creator_partner_id = $3)",
		sql)
}
