// internal/models/entities.go
package models

import "time"

// The search core reads these entities; it never creates or mutates them.
// Persistence, schema and migrations belong to the owning services.

type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Partner is an organization. A job creator partner lists jobs; a source
// partner supplies candidates for a destination.
type Partner struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	JobCreator       bool    `json:"jobCreator"`
	SourcePartner    bool    `json:"sourcePartner"`
	DefaultContactID *int64  `json:"defaultContactId,omitempty"`
	SourceCountryIDs []int64 `json:"sourceCountryIds,omitempty"`
}

// User is the logged-in user handed to the search core by the session layer.
type User struct {
	ID               int64    `json:"id"`
	Username         string   `json:"username"`
	Role             string   `json:"role"`
	Partner          *Partner `json:"partner,omitempty"`
	SourceCountryIDs []int64  `json:"sourceCountryIds,omitempty"`
}

type Candidate struct {
	ID                      int64           `json:"id"`
	CandidateNumber         string          `json:"candidateNumber"`
	Status                  CandidateStatus `json:"status"`
	Gender                  Gender          `json:"gender,omitempty"`
	DOB                     *time.Time      `json:"dob,omitempty"`
	UserID                  int64           `json:"userId"`
	NationalityID           *int64          `json:"nationalityId,omitempty"`
	CountryID               *int64          `json:"countryId,omitempty"`
	MaxEducationLevelID     *int64          `json:"maxEducationLevelId,omitempty"`
	SurveyTypeID            *int64          `json:"surveyTypeId,omitempty"`
	UnhcrStatus             UnhcrStatus     `json:"unhcrStatus,omitempty"`
	RegoReferrerParam       string          `json:"regoReferrerParam,omitempty"`
	MiniIntakeCompletedDate *time.Time      `json:"miniIntakeCompletedDate,omitempty"`
	FullIntakeCompletedDate *time.Time      `json:"fullIntakeCompletedDate,omitempty"`
	UpdatedDate             time.Time       `json:"updatedDate"`
}

// Job is an employer-side opportunity.
type Job struct {
	ID                  int64      `json:"id"`
	Name                string     `json:"name"`
	Stage               JobStage   `json:"stage"`
	StageOrder          int        `json:"stageOrder"`
	Closed              bool       `json:"closed"`
	PublishedDate       *time.Time `json:"publishedDate,omitempty"`
	CountryID           *int64     `json:"countryId,omitempty"`
	SubmissionListID    *int64     `json:"submissionListId,omitempty"`
	CreatedByID         *int64     `json:"createdById,omitempty"`
	ContactUserID       *int64     `json:"contactUserId,omitempty"`
	JobCreatorPartnerID *int64     `json:"jobCreatorPartnerId,omitempty"`
}

// CandidateOpportunity links a candidate to a job.
type CandidateOpportunity struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	Stage           OpportunityStage `json:"stage"`
	StageOrder      int              `json:"stageOrder"`
	Closed          bool             `json:"closed"`
	NextStepDueDate *time.Time       `json:"nextStepDueDate,omitempty"`
	CandidateID     int64            `json:"candidateId"`
	JobID           int64            `json:"jobId"`
}

// JobChat attaches to a job, a candidate, or both, depending on its type.
type JobChat struct {
	ID          int64       `json:"id"`
	Type        JobChatType `json:"type"`
	JobID       *int64      `json:"jobId,omitempty"`
	CandidateID *int64      `json:"candidateId,omitempty"`
}

type ChatPost struct {
	ID          int64     `json:"id"`
	JobChatID   int64     `json:"jobChatId"`
	CreatedDate time.Time `json:"createdDate"`
}

// JobChatUser records, per (user, chat), the last post the user has read.
// A missing row means the user has never read the chat.
type JobChatUser struct {
	ChatID         int64  `json:"chatId"`
	UserID         int64  `json:"userId"`
	LastReadPostID *int64 `json:"lastReadPostId,omitempty"`
}
