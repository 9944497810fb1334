// internal/models/enums.go
package models

// CandidateStatus is the lifecycle status of a candidate registration.
type CandidateStatus string

const (
	CandidateStatusActive               CandidateStatus = "active"
	CandidateStatusAutonomousEmployment CandidateStatus = "autonomousEmployment"
	CandidateStatusDeleted              CandidateStatus = "deleted"
	CandidateStatusDraft                CandidateStatus = "draft"
	CandidateStatusEmployed             CandidateStatus = "employed"
	CandidateStatusIneligible           CandidateStatus = "ineligible"
	CandidateStatusPending              CandidateStatus = "pending"
	CandidateStatusUnreachable          CandidateStatus = "unreachable"
	CandidateStatusWithdrawn            CandidateStatus = "withdrawn"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type UnhcrStatus string

const (
	UnhcrStatusRegistered              UnhcrStatus = "RegisteredAsylum"
	UnhcrStatusMandateRefugee          UnhcrStatus = "MandateRefugee"
	UnhcrStatusRegisteredStateless     UnhcrStatus = "RegisteredStateless"
	UnhcrStatusRegisteredStatusUnknown UnhcrStatus = "RegisteredStatusUnknown"
	UnhcrStatusNotRegistered           UnhcrStatus = "NotRegistered"
	UnhcrStatusUnsure                  UnhcrStatus = "Unsure"
	UnhcrStatusNoResponse              UnhcrStatus = "NoResponse"
)

// JobStage is the stage of an employer-side job opportunity.
// Stage order is persisted alongside the stage so that range filters
// (eg "active stages") can compare on a single integer column.
type JobStage string

const (
	JobStageProspect             JobStage = "prospect"
	JobStageBriefing             JobStage = "briefing"
	JobStagePitching             JobStage = "pitching"
	JobStageIdentifyingRoles     JobStage = "identifyingRoles"
	JobStageCandidateSearch      JobStage = "candidateSearch"
	JobStageVisaEligibility      JobStage = "visaEligibility"
	JobStageCVPreparation        JobStage = "cvPreparation"
	JobStageCVReview             JobStage = "cvReview"
	JobStageRecruitmentProcess   JobStage = "recruitmentProcess"
	JobStageJobOffer             JobStage = "jobOffer"
	JobStageVisaPreparation      JobStage = "visaPreparation"
	JobStagePostHireEngagement   JobStage = "postHireEngagement"
	JobStageHiringCompleted      JobStage = "hiringCompleted"
	JobStageIneligibleEmployer   JobStage = "ineligibleEmployer"
	JobStageNoInterest           JobStage = "noInterest"
	JobStageNoJobOffer           JobStage = "noJobOffer"
	JobStageNoSuitableCandidates JobStage = "noSuitableCandidates"
	JobStageNoVisa               JobStage = "noVisa"
	JobStageTooExpensive         JobStage = "tooExpensive"
	JobStageTooLong              JobStage = "tooLong"
)

var jobStageOrder = map[JobStage]int{
	JobStageProspect:             0,
	JobStageBriefing:             1,
	JobStagePitching:             2,
	JobStageIdentifyingRoles:     3,
	JobStageCandidateSearch:      4,
	JobStageVisaEligibility:      5,
	JobStageCVPreparation:        6,
	JobStageCVReview:             7,
	JobStageRecruitmentProcess:   8,
	JobStageJobOffer:             9,
	JobStageVisaPreparation:      10,
	JobStagePostHireEngagement:   11,
	JobStageHiringCompleted:      12,
	JobStageIneligibleEmployer:   13,
	JobStageNoInterest:           14,
	JobStageNoJobOffer:           15,
	JobStageNoSuitableCandidates: 16,
	JobStageNoVisa:               17,
	JobStageTooExpensive:         18,
	JobStageTooLong:              19,
}

// Order returns the ordinal used in the stage_order column.
func (s JobStage) Order() int { return jobStageOrder[s] }

// Active job stages run from candidate search up to job offer.
var (
	JobStageActiveFirst = JobStageCandidateSearch
	JobStageActiveLast  = JobStageJobOffer
)

// OpportunityStage is the stage of a candidate-side opportunity.
type OpportunityStage string

const (
	OppStageProspect                OpportunityStage = "prospect"
	OppStageMiniIntake              OpportunityStage = "miniIntake"
	OppStageFullIntake              OpportunityStage = "fullIntake"
	OppStageVisaEligibility         OpportunityStage = "visaEligibility"
	OppStageCVPreparation           OpportunityStage = "cvPreparation"
	OppStageCVReview                OpportunityStage = "cvReview"
	OppStageOffer                   OpportunityStage = "offer"
	OppStageAcceptance              OpportunityStage = "acceptance"
	OppStageVisaPreparation         OpportunityStage = "visaPreparation"
	OppStageRelocating              OpportunityStage = "relocating"
	OppStageRelocated               OpportunityStage = "relocated"
	OppStageSettled                 OpportunityStage = "settled"
	OppStageDurableSolution         OpportunityStage = "durableSolution"
	OppStageNoJobOffer              OpportunityStage = "noJobOffer"
	OppStageNoVisa                  OpportunityStage = "noVisa"
	OppStageNotFitForRole           OpportunityStage = "notFitForRole"
	OppStageNoInterview             OpportunityStage = "noInterview"
	OppStageCandidateRejectsOffer   OpportunityStage = "candidateRejectsOffer"
	OppStageCandidateUnreachable    OpportunityStage = "candidateUnreachable"
	OppStageCandidateWithdraws      OpportunityStage = "candidateWithdraws"
)

var oppStageOrder = map[OpportunityStage]int{
	OppStageProspect:              0,
	OppStageMiniIntake:            1,
	OppStageFullIntake:            2,
	OppStageVisaEligibility:       3,
	OppStageCVPreparation:         4,
	OppStageCVReview:              5,
	OppStageOffer:                 6,
	OppStageAcceptance:            7,
	OppStageVisaPreparation:       8,
	OppStageRelocating:            9,
	OppStageRelocated:             10,
	OppStageSettled:               11,
	OppStageDurableSolution:       12,
	OppStageNoJobOffer:            13,
	OppStageNoVisa:                14,
	OppStageNotFitForRole:         15,
	OppStageNoInterview:           16,
	OppStageCandidateRejectsOffer: 17,
	OppStageCandidateUnreachable:  18,
	OppStageCandidateWithdraws:    19,
}

func (s OpportunityStage) Order() int { return oppStageOrder[s] }

// Active opportunity stages run from prospect up to relocating.
var (
	OppStageActiveFirst = OppStageProspect
	OppStageActiveLast  = OppStageRelocating
)

// JobChatType distinguishes who a chat is between. Some chat types hang off
// the job alone, others off a (job, candidate) pair.
type JobChatType string

const (
	ChatTypeJobCreatorAllSourcePartners JobChatType = "JobCreatorAllSourcePartners"
	ChatTypeJobCreatorSourcePartner     JobChatType = "JobCreatorSourcePartner"
	ChatTypeAllJobCandidates            JobChatType = "AllJobCandidates"
	ChatTypeCandidateProspect           JobChatType = "CandidateProspect"
	ChatTypeCandidateRecruiting         JobChatType = "CandidateRecruiting"
)

// JobChatTypes directly associated with a job.
var JobFacingChatTypes = []JobChatType{
	ChatTypeJobCreatorAllSourcePartners,
	ChatTypeAllJobCandidates,
	ChatTypeJobCreatorSourcePartner,
}

// JobChatTypes associated with a (job, candidate) pair.
var CandidateFacingChatTypes = []JobChatType{
	ChatTypeCandidateProspect,
	ChatTypeCandidateRecruiting,
}
