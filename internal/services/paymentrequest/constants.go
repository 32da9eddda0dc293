package paymentrequest

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// MaxScheduleEntries caps Schedule's count.
	MaxScheduleEntries = 1000
)

// Operation names used for metrics and logs.
const (
	OpIssue    = "issue"
	OpDecode   = "decode"
	OpLookup   = "lookup"
	OpList     = "list_by_wallet"
	OpSchedule = "schedule"
)
