package state

import (
	"slices"

	"hostel-backend/internal/client"
	"hostel-backend/internal/model"
)

// Reduce returns the state after a. It never modifies app or the slices it
// references.
func Reduce(app App, a Action) App {
	app.Auth = reduceAuth(app.Auth, a)
	app.Complaint = reduceComplaint(app.Complaint, a)
	app.Leave = reduceLeave(app.Leave, a)
	app.Notification = reduceNotification(app.Notification, a)
	app.Warden = reduceWarden(app.Warden, a)
	app.Student = reduceStudent(app.Student, a)
	return app
}

func reduceAuth(s AuthState, a Action) AuthState {
	switch a.Kind {
	case AuthLogin, AuthRegister:
		switch a.Phase {
		case Pending:
			s.Loading = true
			s.Error = ""
		case Fulfilled:
			s.Loading = false
			if res, ok := a.Payload.(*client.LoginResult); ok && a.Kind == AuthLogin {
				user := res.User
				s.User = &user
				s.Token = res.Token
			}
		case Rejected:
			s.Loading = false
			s.Error = a.Error
		}
	case AuthLogout:
		s.User = nil
		s.Token = ""
	}
	return s
}

func reduceComplaint(s ComplaintState, a Action) ComplaintState {
	switch a.Kind {
	case ComplaintFetchMine, ComplaintFetchAll:
		switch a.Phase {
		case Pending:
			s.Loading = true
			s.Error = ""
		case Fulfilled:
			s.Loading = false
			if list, ok := a.Payload.([]model.Complaint); ok {
				s.Complaints = list
			}
		case Rejected:
			s.Loading = false
			s.Error = a.Error
		}
	case ComplaintCreate:
		switch a.Phase {
		case Fulfilled:
			if c, ok := a.Payload.(*model.Complaint); ok {
				s.Complaints = append([]model.Complaint{*c}, s.Complaints...)
			}
		case Rejected:
			s.Error = a.Error
		}
	case ComplaintUpdateStatus:
		switch a.Phase {
		case Fulfilled:
			if c, ok := a.Payload.(*model.Complaint); ok {
				s.Complaints = replaceByID(s.Complaints, *c, func(x model.Complaint) string { return x.ID })
			}
		case Rejected:
			s.Error = a.Error
		}
	}
	return s
}

func reduceLeave(s LeaveState, a Action) LeaveState {
	switch a.Kind {
	case LeaveFetchMine, LeaveFetchAll:
		switch a.Phase {
		case Pending:
			s.Loading = true
			s.Error = ""
		case Fulfilled:
			s.Loading = false
			if list, ok := a.Payload.([]model.LeaveRequest); ok {
				s.Leaves = list
			}
		case Rejected:
			s.Loading = false
			s.Error = a.Error
		}
	case LeaveApply:
		switch a.Phase {
		case Fulfilled:
			if l, ok := a.Payload.(*model.LeaveRequest); ok {
				s.Leaves = append([]model.LeaveRequest{*l}, s.Leaves...)
			}
		case Rejected:
			s.Error = a.Error
		}
	case LeaveUpdateStatus:
		switch a.Phase {
		case Fulfilled:
			if l, ok := a.Payload.(*model.LeaveRequest); ok {
				s.Leaves = replaceByID(s.Leaves, *l, func(x model.LeaveRequest) string { return x.ID })
			}
		case Rejected:
			s.Error = a.Error
		}
	}
	return s
}

func reduceNotification(s NotificationState, a Action) NotificationState {
	switch a.Kind {
	case NotificationFetch:
		switch a.Phase {
		case Pending:
			s.Loading = true
			s.Error = ""
		case Fulfilled:
			s.Loading = false
			if list, ok := a.Payload.([]model.Notification); ok {
				s.Notifications = list
				s.UnreadCount = countUnread(list)
			}
		case Rejected:
			s.Loading = false
			s.Error = a.Error
		}
	case NotificationRead:
		switch a.Phase {
		case Fulfilled:
			if n, ok := a.Payload.(*model.Notification); ok {
				if i := slices.IndexFunc(s.Notifications, func(x model.Notification) bool { return x.ID == n.ID }); i >= 0 {
					s.Notifications = slices.Clone(s.Notifications)
					s.Notifications[i].Read = true
				}
				s.UnreadCount = countUnread(s.Notifications)
			}
		case Rejected:
			s.Error = a.Error
		}
	case NotificationBroadcast:
		switch a.Phase {
		case Pending:
			s.Loading = true
			s.Error = ""
			s.BroadcastSuccess = false
		case Fulfilled:
			s.Loading = false
			s.BroadcastSuccess = true
		case Rejected:
			s.Loading = false
			s.Error = a.Error
			s.BroadcastSuccess = false
		}
	case NotificationResetBroadcast:
		s.BroadcastSuccess = false
	}
	return s
}

func reduceWarden(s WardenState, a Action) WardenState {
	if a.Kind != WardenSummary && a.Kind != WardenRecent {
		return s
	}
	switch a.Phase {
	case Pending:
		s.Loading = true
		s.Error = ""
	case Fulfilled:
		s.Loading = false
		switch v := a.Payload.(type) {
		case *model.DashboardSummary:
			s.Summary = v
		case *model.RecentActivity:
			s.Recent = v
		}
	case Rejected:
		s.Loading = false
		s.Error = a.Error
	}
	return s
}

func reduceStudent(s StudentState, a Action) StudentState {
	if a.Kind != StudentSummary {
		return s
	}
	switch a.Phase {
	case Pending:
		s.Loading = true
		s.Error = ""
	case Fulfilled:
		s.Loading = false
		if u, ok := a.Payload.(*model.User); ok {
			s.Summary = u
		}
	case Rejected:
		s.Loading = false
		s.Error = a.Error
	}
	return s
}

// replaceByID returns a copy of list with the element sharing item's id
// replaced. Unknown ids leave list as is.
func replaceByID[T any](list []T, item T, id func(T) string) []T {
	want := id(item)
	i := slices.IndexFunc(list, func(x T) bool { return id(x) == want })
	if i < 0 {
		return list
	}
	out := slices.Clone(list)
	out[i] = item
	return out
}

func countUnread(list []model.Notification) int {
	n := 0
	for _, x := range list {
		if !x.Read {
			n++
		}
	}
	return n
}
