package state

import (
	"context"
	"errors"
	"sync"

	"hostel-backend/internal/client"
	"hostel-backend/internal/logger"
	"hostel-backend/internal/model"
)

// API is the server surface the Store calls. *client.Client implements it.
type API interface {
	SetToken(token string)

	Register(ctx context.Context, in client.RegisterInput) (*model.User, error)
	Login(ctx context.Context, email, password string) (*client.LoginResult, error)
	Profile(ctx context.Context) (*model.User, error)

	CreateComplaint(ctx context.Context, in client.ComplaintInput) (*model.Complaint, error)
	MyComplaints(ctx context.Context) ([]model.Complaint, error)
	AllComplaints(ctx context.Context) ([]model.Complaint, error)
	UpdateComplaintStatus(ctx context.Context, id string, status model.ComplaintStatus) (*model.Complaint, error)

	ApplyLeave(ctx context.Context, in client.LeaveInput) (*model.LeaveRequest, error)
	MyLeaves(ctx context.Context) ([]model.LeaveRequest, error)
	AllLeaves(ctx context.Context) ([]model.LeaveRequest, error)
	UpdateLeaveStatus(ctx context.Context, id string, status model.LeaveStatus, comment string) (*model.LeaveRequest, error)

	Notifications(ctx context.Context) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) (*model.Notification, error)
	Broadcast(ctx context.Context, title, message string) error

	WardenSummary(ctx context.Context) (*model.DashboardSummary, error)
	WardenRecent(ctx context.Context) (*model.RecentActivity, error)
}

var _ API = (*client.Client)(nil)

// Store owns an App and is the only place it changes. Views read it with
// State and get told about changes through Subscribe.
type Store struct {
	api API

	mu        sync.Mutex
	state     App
	listeners map[int]func(App)
	nextID    int
}

// NewStore creates a store starting from initial, which may carry a
// previously saved session.
func NewStore(api API, initial App) *Store {
	if initial.Auth.Token != "" {
		api.SetToken(initial.Auth.Token)
	}
	return &Store{
		api:       api,
		state:     initial,
		listeners: make(map[int]func(App)),
	}
}

// State returns the current state.
func (s *Store) State() App {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to run after every dispatch. The returned func removes it.
func (s *Store) Subscribe(fn func(App)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Dispatch applies a and notifies subscribers.
func (s *Store) Dispatch(a Action) App {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	listeners := make([]func(App), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	logger.Debug().Str("kind", string(a.Kind)).Str("phase", a.Phase.String()).Msg("dispatch")
	for _, fn := range listeners {
		fn(next)
	}
	return next
}

// errorText picks the message stored in a slice. When useServer is set and
// the server explained the failure, its message wins over fallback.
func errorText(err error, fallback string, useServer bool) string {
	var apiErr *client.APIError
	if useServer && errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// run is the effect boundary: Pending, the call, then Fulfilled or Rejected.
func run[T any](s *Store, kind Kind, fallback string, useServer bool, call func() (T, error)) (T, error) {
	s.Dispatch(Action{Kind: kind, Phase: Pending})
	v, err := call()
	if err != nil {
		s.Dispatch(Action{Kind: kind, Phase: Rejected, Error: errorText(err, fallback, useServer)})
		return v, err
	}
	s.Dispatch(Action{Kind: kind, Phase: Fulfilled, Payload: v})
	return v, nil
}

// --- Auth ---

func (s *Store) Login(ctx context.Context, email, password string) error {
	_, err := run(s, AuthLogin, "Login failed", true, func() (*client.LoginResult, error) {
		res, err := s.api.Login(ctx, email, password)
		if err == nil {
			s.api.SetToken(res.Token)
		}
		return res, err
	})
	return err
}

func (s *Store) Register(ctx context.Context, in client.RegisterInput) error {
	_, err := run(s, AuthRegister, "Registration failed", true, func() (*model.User, error) {
		return s.api.Register(ctx, in)
	})
	return err
}

func (s *Store) Logout() {
	s.api.SetToken("")
	s.Dispatch(Logout())
}

func (s *Store) LoadStudentSummary(ctx context.Context) error {
	_, err := run(s, StudentSummary, "Failed to load student dashboard", false, func() (*model.User, error) {
		return s.api.Profile(ctx)
	})
	return err
}

// --- Complaints ---

func (s *Store) CreateComplaint(ctx context.Context, in client.ComplaintInput) error {
	_, err := run(s, ComplaintCreate, "Failed to create complaint", true, func() (*model.Complaint, error) {
		return s.api.CreateComplaint(ctx, in)
	})
	return err
}

func (s *Store) FetchMyComplaints(ctx context.Context) error {
	_, err := run(s, ComplaintFetchMine, "Failed to load complaints", false, func() ([]model.Complaint, error) {
		return s.api.MyComplaints(ctx)
	})
	return err
}

func (s *Store) FetchAllComplaints(ctx context.Context) error {
	_, err := run(s, ComplaintFetchAll, "Failed to load all complaints", false, func() ([]model.Complaint, error) {
		return s.api.AllComplaints(ctx)
	})
	return err
}

func (s *Store) UpdateComplaintStatus(ctx context.Context, id string, status model.ComplaintStatus) error {
	_, err := run(s, ComplaintUpdateStatus, "Status update failed", false, func() (*model.Complaint, error) {
		return s.api.UpdateComplaintStatus(ctx, id, status)
	})
	return err
}

// --- Leave ---

func (s *Store) ApplyLeave(ctx context.Context, in client.LeaveInput) error {
	_, err := run(s, LeaveApply, "Leave request failed", false, func() (*model.LeaveRequest, error) {
		return s.api.ApplyLeave(ctx, in)
	})
	return err
}

func (s *Store) FetchMyLeaves(ctx context.Context) error {
	_, err := run(s, LeaveFetchMine, "Failed to load leave history", false, func() ([]model.LeaveRequest, error) {
		return s.api.MyLeaves(ctx)
	})
	return err
}

func (s *Store) FetchAllLeaves(ctx context.Context) error {
	_, err := run(s, LeaveFetchAll, "Failed to fetch leave requests", false, func() ([]model.LeaveRequest, error) {
		return s.api.AllLeaves(ctx)
	})
	return err
}

func (s *Store) UpdateLeaveStatus(ctx context.Context, id string, status model.LeaveStatus, comment string) error {
	_, err := run(s, LeaveUpdateStatus, "Failed to update status", false, func() (*model.LeaveRequest, error) {
		return s.api.UpdateLeaveStatus(ctx, id, status, comment)
	})
	return err
}

// --- Notifications ---

func (s *Store) FetchNotifications(ctx context.Context) error {
	_, err := run(s, NotificationFetch, "Failed to load notifications", false, func() ([]model.Notification, error) {
		return s.api.Notifications(ctx)
	})
	return err
}

func (s *Store) MarkNotificationRead(ctx context.Context, id string) error {
	_, err := run(s, NotificationRead, "Failed to mark notification read", false, func() (*model.Notification, error) {
		return s.api.MarkNotificationRead(ctx, id)
	})
	return err
}

func (s *Store) SendBroadcast(ctx context.Context, title, message string) error {
	_, err := run(s, NotificationBroadcast, "Broadcast failed", false, func() (struct{}, error) {
		return struct{}{}, s.api.Broadcast(ctx, title, message)
	})
	return err
}

func (s *Store) ResetBroadcastSuccess() {
	s.Dispatch(ResetBroadcastSuccess())
}

// --- Warden dashboard ---

func (s *Store) FetchWardenSummary(ctx context.Context) error {
	_, err := run(s, WardenSummary, "Failed to load dashboard summary", false, func() (*model.DashboardSummary, error) {
		return s.api.WardenSummary(ctx)
	})
	return err
}

func (s *Store) FetchWardenRecent(ctx context.Context) error {
	_, err := run(s, WardenRecent, "Failed to load activity", false, func() (*model.RecentActivity, error) {
		return s.api.WardenRecent(ctx)
	})
	return err
}
