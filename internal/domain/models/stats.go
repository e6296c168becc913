package models

type PublicStats struct {
	TotalJobs       int64 `json:"totalJobs"`
	TotalCompanies  int64 `json:"totalCompanies"`
	TotalCandidates int64 `json:"totalCandidates"`
}

type DashboardMetrics struct {
	TotalCandidates     int64 `json:"totalCandidates"`
	ActiveJobs          int64 `json:"activeJobs"`
	CandidatesInReview  int64 `json:"candidatesInReview"`
	ScheduledInterviews int64 `json:"scheduledInterviews"`
	TotalApplications   int64 `json:"totalApplications"`
	HiredCandidates     int64 `json:"hiredCandidates"`
}
