package constants

// NATS subjects for notification fan-out
const (
	// SubjectNotifyUser delivers to a single user's channel. Format: notify.user.{user_id}
	SubjectNotifyUser = "notify.user.%s"

	// SubjectNotifyMechanics delivers to every connected station owner
	SubjectNotifyMechanics = "notify.mechanics"

	// SubjectNotifyAll is the wildcard the fan-out subscriber listens on
	SubjectNotifyAll = "notify.>"
)
