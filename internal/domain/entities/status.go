package entities

type StatusKind string

const (
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// StatusMessage is the single transient feedback value shared by all actions.
type StatusMessage struct {
	Text    string
	Kind    StatusKind
	Visible bool
}
