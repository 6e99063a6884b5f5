package controller

// Message types.
type progressMsg struct {
	percent int
}

type doneMsg struct{}
