package state

// Kind names a client operation. Asynchronous kinds go through Pending and
// then Fulfilled or Rejected.
type Kind string

const (
	AuthLogin    Kind = "auth/login"
	AuthRegister Kind = "auth/register"
	AuthLogout   Kind = "auth/logout"

	ComplaintCreate       Kind = "complaint/create"
	ComplaintFetchMine    Kind = "complaint/fetch"
	ComplaintFetchAll     Kind = "complaint/fetchAll"
	ComplaintUpdateStatus Kind = "complaint/updateStatus"

	LeaveApply        Kind = "leave/apply"
	LeaveFetchMine    Kind = "leave/fetch"
	LeaveFetchAll     Kind = "leave/fetchAll"
	LeaveUpdateStatus Kind = "leave/updateStatus"

	NotificationFetch          Kind = "notification/fetch"
	NotificationRead           Kind = "notification/read"
	NotificationBroadcast      Kind = "notification/broadcast"
	NotificationResetBroadcast Kind = "notification/resetBroadcastSuccess"

	WardenSummary Kind = "warden/summary"
	WardenRecent  Kind = "warden/recent"

	StudentSummary Kind = "student/summary"
)

// Phase is where an asynchronous operation is. Synchronous kinds use Fulfilled.
type Phase uint8

const (
	Pending Phase = iota
	Fulfilled
	Rejected
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Fulfilled:
		return "fulfilled"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Action is one state transition. Payload is set on Fulfilled, Error on Rejected.
type Action struct {
	Kind    Kind
	Phase   Phase
	Payload any
	Error   string
}

// Logout signs the user out.
func Logout() Action {
	return Action{Kind: AuthLogout, Phase: Fulfilled}
}

// ResetBroadcastSuccess clears the broadcast confirmation.
func ResetBroadcastSuccess() Action {
	return Action{Kind: NotificationResetBroadcast, Phase: Fulfilled}
}
