package model

// ComplaintCounts is the complaint half of the warden dashboard summary.
type ComplaintCounts struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"inProgress"`
	Resolved   int64 `json:"resolved"`
}

// LeaveCounts is the leave half of the warden dashboard summary.
type LeaveCounts struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
}

// DashboardSummary aggregates complaints and leave requests by status. The
// counts come from independent queries and are not a consistent snapshot.
type DashboardSummary struct {
	Complaints ComplaintCounts `json:"complaints"`
	Leaves     LeaveCounts     `json:"leaves"`
}

// RecentActivity holds the latest complaints and leave requests.
type RecentActivity struct {
	RecentComplaints []Complaint    `json:"recentComplaints"`
	RecentLeaves     []LeaveRequest `json:"recentLeaves"`
}
