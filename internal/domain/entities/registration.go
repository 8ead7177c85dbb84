package entities

// Registration is the (activity, participant email) pair.
type Registration struct {
	Activity string
	Email    string
}

// Complete reports whether both halves of the pair are present. Values are
// opaque: whitespace is neither trimmed nor rejected here.
func (r Registration) Complete() bool {
	return r.Activity != "" && r.Email != ""
}
