package dialog

// State is the single pending marker of a conversation. The tracker holds
// at most one: a new pending request overwrites rather than queues.
type State int

const (
	// Idle means no follow-up turn is owed.
	Idle State = iota
	// AwaitingName means the previous turn started a creation and the next
	// turn is expected to carry the contact's name.
	AwaitingName
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case AwaitingName:
		return "AWAITING_NAME"
	default:
		return "UNKNOWN"
	}
}
