package discord

import "strings"

// Custom IDs of the roster components.
const (
	CustomIDSignupSelect   = "roster_signup"
	CustomIDRemoveButton   = "roster_remove"
	CustomIDRemoveSelect   = "roster_remove_pick"
	CustomIDRemovePrevious = "roster_remove_prev"
	CustomIDRemoveNext     = "roster_remove_next"
	CustomIDRemoveConfirm  = "roster_remove_yes"
	CustomIDRemoveCancel   = "roster_remove_no"

	signupModalPrefix = "roster_signup_modal:"
	// CustomIDEmailInput is the email text input of the signup modal.
	CustomIDEmailInput = "email"

	customIDRemovePageLabel = "roster_remove_page"

	maxCustomID = 100
)

// SignupModalID carries the chosen activity in the modal's custom ID.
// ok is false when the name does not fit Discord's custom ID limit.
func SignupModalID(activity string) (id string, ok bool) {
	id = signupModalPrefix + activity
	return id, len(id) <= maxCustomID
}

// ActivityFromModalID is the inverse of SignupModalID.
func ActivityFromModalID(id string) (string, bool) {
	return strings.CutPrefix(id, signupModalPrefix)
}
