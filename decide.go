package main

type action int

const (
	actionTransfer action = iota
	actionSkip
)

func (a action) String() string {
	if a == actionSkip {
		return "skip"
	}
	return "transfer"
}

// decide picks what to do with a URL whose destination key has already been
// checked. exists is ignored when skipExisting is off.
func decide(skipExisting, exists bool) action {
	if skipExisting && exists {
		return actionSkip
	}
	return actionTransfer
}
