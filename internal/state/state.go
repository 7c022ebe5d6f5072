// Package state holds the client application state: one slice per feature,
// pure reducers that move it forward, and a Store that runs API calls and
// feeds their outcome through the reducers.
package state

import "hostel-backend/internal/model"

type AuthState struct {
	User    *model.User
	Token   string
	Loading bool
	Error   string
}

type ComplaintState struct {
	Complaints []model.Complaint
	Loading    bool
	Error      string
}

type LeaveState struct {
	Leaves  []model.LeaveRequest
	Loading bool
	Error   string
}

type NotificationState struct {
	Notifications    []model.Notification
	UnreadCount      int
	Loading          bool
	Error            string
	BroadcastSuccess bool
}

type WardenState struct {
	Summary *model.DashboardSummary
	Recent  *model.RecentActivity
	Loading bool
	Error   string
}

// StudentState backs the student dashboard, which shows the caller's profile.
type StudentState struct {
	Summary *model.User
	Loading bool
	Error   string
}

// App is the whole client state.
type App struct {
	Auth         AuthState
	Complaint    ComplaintState
	Leave        LeaveState
	Notification NotificationState
	Warden       WardenState
	Student      StudentState
}
