package dto

// Statistics is a point-in-time snapshot of the portal. Counts are read
// independently, so they may be mutually inconsistent under concurrent writes.
type Statistics struct {
	TotalStudents           int64 `json:"totalStudents"`
	TotalCompanies          int64 `json:"totalCompanies"`
	TotalJobs               int64 `json:"totalJobs"`
	ActiveJobs              int64 `json:"activeJobs"`
	TotalApplications       int64 `json:"totalApplications"`
	PendingApplications     int64 `json:"pendingApplications"`
	ShortlistedApplications int64 `json:"shortlistedApplications"`
	AcceptedApplications    int64 `json:"acceptedApplications"`
	RejectedApplications    int64 `json:"rejectedApplications"`
	PendingCompanies        int64 `json:"pendingCompanies"`
}
