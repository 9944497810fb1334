package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talent-search/internal/models"
)

func ownershipTypePtr(o OwnershipType) *OwnershipType { return &o }

func TestBuildJobQuery_EmptyRequestMatchesEverything(t *testing.T) {
	def := BuildJobQuery(&SearchJobRequest{}, nil)

	sql, args := renderWhere(def)
	assert.Equal(t, "TRUE", sql)
	assert.Empty(t, args)
}

func TestBuildJobQuery_KeywordAndDestinations(t *testing.T) {
	req := &SearchJobRequest{
		Keyword:        "Software Engineer",
		DestinationIDs: []int64{7, 8},
	}
	sql, args := renderWhere(BuildJobQuery(req, nil))

	assert.Contains(t, sql, "lower(j.name) LIKE $1")
	assert.Contains(t, sql, "j.country_id IN ($2, $3)")
	assert.Equal(t, "%software engineer%", args[0])
}

func TestBuildJobQuery_StagePolicy(t *testing.T) {
	tests := []struct {
		name    string
		req     SearchJobRequest
		want    string
		notWant string
	}{
		{
			name: "explicit stages bypass the shorthand",
			req: SearchJobRequest{
				Stages:       []models.JobStage{models.JobStageRecruitmentProcess},
				ActiveStages: boolPtr(true),
				Closed:       boolPtr(false),
			},
			want:    "j.stage IN ($1)",
			notWant: "stage_order",
		},
		{
			name: "active stages restrict to the active range",
			req:  SearchJobRequest{ActiveStages: boolPtr(true)},
			want: "(j.stage_order >= $1 AND j.stage_order <= $2)",
		},
		{
			name: "closed true widens the active range",
			req:  SearchJobRequest{ActiveStages: boolPtr(true), Closed: boolPtr(true)},
			want: "((j.stage_order >= $1 AND j.stage_order <= $2) OR j.closed = $3)",
		},
		{
			name: "closed false excludes closed rows",
			req:  SearchJobRequest{Closed: boolPtr(false)},
			want: "j.closed = $1",
		},
		{
			name: "active stages false alone adds nothing",
			req:  SearchJobRequest{ActiveStages: boolPtr(false)},
			want: "TRUE",
		},
		{
			name: "closed true alone adds nothing",
			req:  SearchJobRequest{Closed: boolPtr(true)},
			want: "TRUE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := renderWhere(BuildJobQuery(&tt.req, nil))
			assert.Contains(t, sql, tt.want)
			if tt.notWant != "" {
				assert.NotContains(t, sql, tt.notWant)
			}
		})
	}
}

func TestBuildJobQuery_Published(t *testing.T) {
	sql, _ := renderWhere(BuildJobQuery(&SearchJobRequest{Published: boolPtr(true)}, nil))
	assert.Equal(t, "j.published_date IS NOT NULL", sql)

	sql, _ = renderWhere(BuildJobQuery(&SearchJobRequest{Published: boolPtr(false)}, nil))
	assert.Equal(t, "j.published_date IS NULL", sql)
}

func TestBuildJobQuery_UserRelativeWithoutUserMatchesNothing(t *testing.T) {
	for _, req := range []*SearchJobRequest{
		{Starred: boolPtr(true)},
		{WithUnreadMessages: boolPtr(true)},
		{OwnershipType: ownershipTypePtr(AsJobCreator), OwnedByMe: boolPtr(true)},
	} {
		sql, args := renderWhere(BuildJobQuery(req, nil))
		assert.Equal(t, "FALSE", sql)
		assert.Empty(t, args)
	}
}

func TestBuildJobQuery_UnreadFalseAddsNothing(t *testing.T) {
	// False is not "only jobs with no unread chats": the filter only acts as
	// a positive trigger, so it neither constrains nor demands a user.
	req := &SearchJobRequest{WithUnreadMessages: boolPtr(false)}

	sql, args := renderWhere(BuildJobQuery(req, nil))
	assert.Equal(t, "TRUE", sql)
	assert.Empty(t, args)
}

func TestBuildJobQuery_Starred(t *testing.T) {
	user := &models.User{ID: 9}
	req := &SearchJobRequest{Starred: boolPtr(true)}

	sql, args := renderWhere(BuildJobQuery(req, user))
	assert.Equal(t,
		"EXISTS (SELECT 1 FROM user_job uj WHERE (uj.job_id = j.id AND uj.user_id = $1))",
		sql)
	assert.Equal(t, []interface{}{int64(9)}, args)
}

func TestBuildJobQuery_OwnershipOrStarred(t *testing.T) {
	user := &models.User{ID: 9, Partner: &models.Partner{ID: 4}}
	req := &SearchJobRequest{
		Starred:       boolPtr(true),
		OwnershipType: ownershipTypePtr(AsJobCreator),
		OwnedByMe:     boolPtr(true),
	}

	sql, _ := renderWhere(BuildJobQuery(req, user))
	// Owned and starred are alternatives, not both required.
	assert.Contains(t, sql, "(j.created_by = $1 OR j.contact_user_id = $2)")
	assert.Contains(t, sql, " OR EXISTS (SELECT 1 FROM user_job uj")
}

func TestBuildJobQuery_UnreadPredicateUsesJobAlias(t *testing.T) {
	user := &models.User{ID: 9}
	req := &SearchJobRequest{WithUnreadMessages: boolPtr(true)}

	sql, args := renderWhere(BuildJobQuery(req, user))
	assert.Contains(t, sql, "EXISTS (SELECT 1 FROM job_chat jc")
	assert.Contains(t, sql, "jc.job_id = j.id")
	assert.Contains(t, sql, "(SELECT max(cp.id) FROM chat_post cp WHERE cp.job_chat_id = jc.id)")
	require.NotEmpty(t, args)
}

func TestBuildJobQuery_SortBySubmissionList(t *testing.T) {
	req := &SearchJobRequest{
		PagedSearchRequest: PagedSearchRequest{
			SortFields:    []string{"submissionList.name"},
			SortDirection: SortDesc,
		},
	}
	def := BuildJobQuery(req, nil)

	require.Len(t, def.Orders, 2)
	assert.Equal(t, "sl.name", def.Orders[0].Col)
	assert.True(t, def.Orders[0].Desc)
	assert.Equal(t, "j.id", def.Orders[1].Col)
	assert.False(t, def.Orders[1].Desc)
}
