package ui

// Messages emitted by async commands. The root model routes them;
// screens only care about the ones they own.

type sessionRestoredMsg struct {
	authenticated bool
}

type authSuccessMsg struct{}

type authErrorMsg struct {
	message string
}

type signedOutMsg struct{}

// unauthorizedMsg means the session was force-logged-out by a 401; the
// root model drops back to the sign-in screen.
type unauthorizedMsg struct{}

type replyMsg struct {
	conversationID string
	credits        int64
}

type sendErrorMsg struct {
	message string
}
