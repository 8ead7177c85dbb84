package output

// Recorder counts completed actions by outcome.
type Recorder interface {
	RecordAction(action, outcome string)
}
