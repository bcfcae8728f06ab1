package entities

import "errors"

var (
	ErrFetchInProgress = errors.New("verse fetch already in progress")
	ErrNoVerse         = errors.New("no verse loaded")
)

// FetchStatus is the state of the verse request of a session.
type FetchStatus int

const (
	FetchIdle FetchStatus = iota
	FetchInProgress
	FetchSucceeded
	FetchFailed
)

func (s FetchStatus) String() string {
	switch s {
	case FetchIdle:
		return "idle"
	case FetchInProgress:
		return "fetching"
	case FetchSucceeded:
		return "succeeded"
	case FetchFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FetchState is the request/result state machine:
// Idle -> Fetching -> Succeeded | Failed, and back to Fetching on the next submit.
type FetchState struct {
	Status    FetchStatus
	Reference VerseReference // reference of the last request
	Err       error          // set when Status is FetchFailed
}

// Begin moves the state to Fetching. It fails while a fetch is outstanding.
func (f FetchState) Begin(ref VerseReference) (FetchState, error) {
	if f.Status == FetchInProgress {
		return f, ErrFetchInProgress
	}
	return FetchState{Status: FetchInProgress, Reference: ref}, nil
}

// Succeed completes the outstanding fetch.
func (f FetchState) Succeed() FetchState {
	return FetchState{Status: FetchSucceeded, Reference: f.Reference}
}

// Fail completes the outstanding fetch with err.
func (f FetchState) Fail(err error) FetchState {
	return FetchState{Status: FetchFailed, Reference: f.Reference, Err: err}
}

// Loading reports whether a fetch is outstanding.
func (f FetchState) Loading() bool {
	return f.Status == FetchInProgress
}

// Session is the whole state of one page (one chat).
type Session struct {
	ChatID          int64
	Verse           *Verse // nil until the first successful fetch
	Fetch           FetchState
	Style           StyleSettings
	Ratio           AspectRatio
	Search          PhotoSearch
	DailySubscribed bool
}

// NewSession creates a session with default style and ratio.
func NewSession(chatID int64) *Session {
	return &Session{
		ChatID: chatID,
		Style:  DefaultStyle(),
		Ratio:  DefaultAspectRatio,
	}
}

// Clone returns a snapshot that shares only immutable values.
func (s Session) Clone() Session {
	s.Search = s.Search.Clone()
	if s.Style.BackgroundImage != nil {
		ref := *s.Style.BackgroundImage
		s.Style.BackgroundImage = &ref
	}
	return s
}
