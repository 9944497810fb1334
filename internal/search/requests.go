// internal/search/requests.go

// Package search composes dynamic search predicates for candidates, jobs and
// candidate opportunities. Each composer turns a sparse filter request into a
// query.Definition; execution is left to the Runner or any other caller of
// the query package's SQL adapter.
package search

import (
	"time"

	"talent-search/internal/models"
)

// SortDirection of the requested sort fields.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// SearchType selects how a multi-value filter combines: "or" keeps matches,
// "not" excludes them.
type SearchType string

const (
	SearchTypeOr  SearchType = "or"
	SearchTypeNot SearchType = "not"
)

// OwnershipType selects which organizational relationship to a job is being
// tested for ownership.
type OwnershipType string

const (
	AsJobCreator    OwnershipType = "AS_JOB_CREATOR"
	AsSourcePartner OwnershipType = "AS_SOURCE_PARTNER"
)

const defaultPageSize = 25

// PagedSearchRequest carries pagination and sorting, embedded in every
// search request. Sort fields are dotted logical names ("user.partner.name")
// resolved by the sort path registry.
type PagedSearchRequest struct {
	PageNumber    int           `json:"pageNumber"`
	PageSize      int           `json:"pageSize"`
	SortFields    []string      `json:"sortFields,omitempty"`
	SortDirection SortDirection `json:"sortDirection,omitempty"`
}

func (r PagedSearchRequest) Limit() int {
	if r.PageSize <= 0 {
		return defaultPageSize
	}
	return r.PageSize
}

func (r PagedSearchRequest) Offset() int {
	if r.PageNumber <= 0 {
		return 0
	}
	return r.PageNumber * r.Limit()
}

// FilterByOpps narrows candidates by the candidate opportunities they hold.
// AnyOpps overrides the other two: true keeps candidates with at least one
// opportunity, false keeps candidates with none.
type FilterByOpps struct {
	AnyOpps       *bool `json:"anyOpps,omitempty"`
	ClosedOpps    *bool `json:"closedOpps,omitempty"`
	RelocatedOpps *bool `json:"relocatedOpps,omitempty"`
}

// SearchCandidateRequest is the candidate filter contract. Every field is
// independently optional; nil or empty means no constraint.
type SearchCandidateRequest struct {
	PagedSearchRequest

	Keyword  string                   `json:"keyword,omitempty"`
	Statuses []models.CandidateStatus `json:"statuses,omitempty"`
	Gender   *models.Gender           `json:"gender,omitempty"`

	OccupationIDs []int64 `json:"occupationIds,omitempty"`
	MinYrs        *int    `json:"minYrs,omitempty"`
	MaxYrs        *int    `json:"maxYrs,omitempty"`

	NationalityIDs        []int64    `json:"nationalityIds,omitempty"`
	NationalitySearchType SearchType `json:"nationalitySearchType,omitempty"`
	CountryIDs            []int64    `json:"countryIds,omitempty"`
	CountrySearchType     SearchType `json:"countrySearchType,omitempty"`

	PartnerIDs     []int64              `json:"partnerIds,omitempty"`
	SurveyTypeIDs  []int64              `json:"surveyTypeIds,omitempty"`
	UnhcrStatuses  []models.UnhcrStatus `json:"unhcrStatuses,omitempty"`

	MinAge *int `json:"minAge,omitempty"`
	MaxAge *int `json:"maxAge,omitempty"`

	MinEducationLevel *int    `json:"minEducationLevel,omitempty"`
	EducationMajorIDs []int64 `json:"educationMajorIds,omitempty"`

	EnglishMinWrittenLevel *int   `json:"englishMinWrittenLevel,omitempty"`
	EnglishMinSpokenLevel  *int   `json:"englishMinSpokenLevel,omitempty"`
	OtherLanguageID        *int64 `json:"otherLanguageId,omitempty"`
	OtherMinWrittenLevel   *int   `json:"otherMinWrittenLevel,omitempty"`
	OtherMinSpokenLevel    *int   `json:"otherMinSpokenLevel,omitempty"`

	LastModifiedFrom *time.Time `json:"lastModifiedFrom,omitempty"`
	LastModifiedTo   *time.Time `json:"lastModifiedTo,omitempty"`
	Timezone         string     `json:"timezone,omitempty"`

	RegoReferrerParam   string `json:"regoReferrerParam,omitempty"`
	MiniIntakeCompleted *bool  `json:"miniIntakeCompleted,omitempty"`
	FullIntakeCompleted *bool  `json:"fullIntakeCompleted,omitempty"`

	FilterByOpps *FilterByOpps `json:"filterByOpps,omitempty"`
}

// SearchJobRequest is the job filter contract.
type SearchJobRequest struct {
	PagedSearchRequest

	Keyword        string            `json:"keyword,omitempty"`
	Stages         []models.JobStage `json:"stages,omitempty"`
	DestinationIDs []int64           `json:"destinationIds,omitempty"`

	// ActiveStages and Closed form the default-visibility shorthand; an
	// explicit stage list bypasses both.
	ActiveStages *bool `json:"activeStages,omitempty"`
	Closed       *bool `json:"closed,omitempty"`

	Published *bool `json:"published,omitempty"`
	Starred   *bool `json:"starred,omitempty"`

	OwnershipType    *OwnershipType `json:"ownershipType,omitempty"`
	OwnedByMe        *bool          `json:"ownedByMe,omitempty"`
	OwnedByMyPartner *bool          `json:"ownedByMyPartner,omitempty"`

	WithUnreadMessages *bool `json:"withUnreadMessages,omitempty"`
}

// SearchOpportunityRequest is the candidate-opportunity filter contract.
type SearchOpportunityRequest struct {
	PagedSearchRequest

	Keyword string                    `json:"keyword,omitempty"`
	Stages  []models.OpportunityStage `json:"stages,omitempty"`

	ActiveStages *bool `json:"activeStages,omitempty"`
	Closed       *bool `json:"closed,omitempty"`

	// Overdue=true keeps only opportunities whose next step is past due and
	// not closed. False adds no constraint: the report surface this filter
	// serves never uses it as a positive "not overdue" criterion.
	Overdue *bool `json:"overdue,omitempty"`

	OwnershipType    *OwnershipType `json:"ownershipType,omitempty"`
	OwnedByMe        *bool          `json:"ownedByMe,omitempty"`
	OwnedByMyPartner *bool          `json:"ownedByMyPartner,omitempty"`

	WithUnreadMessages *bool `json:"withUnreadMessages,omitempty"`
}

func boolVal(b *bool) bool {
	return b != nil && *b
}
