package application

// i18n message IDs shared by the presenters.
const (
	KeyErrorGeneric      = "status.error.generic"
	KeySignupTransport   = "status.signup.transport"
	KeyRemoveTransport   = "status.remove.transport"
	KeyRequired          = "status.required"
	KeyConfirmRemove     = "confirm.remove"
	KeyLoadFailed        = "roster.load_failed"
	KeyNoParticipants    = "roster.no_participants"
	KeySelectPlaceholder = "roster.select_placeholder"
	KeyParticipants      = "roster.participants"
	KeySchedule          = "roster.schedule"
	KeyAvailability      = "roster.availability"
	KeySpotsLeft         = "roster.spots_left"
	KeyRemoveLabel       = "roster.remove_label"
)
