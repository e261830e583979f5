package contactform

// Status texts shown in the status region.
const (
	// SendingText is shown as soon as a submission starts.
	SendingText = "Sending..."
	// DefaultSuccessMessage is shown on success when the server sends no message.
	DefaultSuccessMessage = "Sent!"
	// DefaultFailureReason is shown on failure when no better reason is known.
	DefaultFailureReason = "Failed to send"
	// ErrorPrefix precedes every failure reason.
	ErrorPrefix = "Error: "
)

// Outcome is the result of one submission. It is either Success or Failure;
// no other implementations exist.
type Outcome interface {
	// StatusText is the text the status region shows for this outcome.
	StatusText() string

	isOutcome()
}

// Success means the server accepted the request.
type Success struct {
	// Message is the server-provided message, or DefaultSuccessMessage.
	Message string
}

func (s Success) StatusText() string { return s.Message }
func (Success) isOutcome()           {}

// Failure means the submission failed for any reason: transport error,
// non-success status, rejected request or an unreadable response.
type Failure struct {
	// Reason is the human-readable reason shown after ErrorPrefix.
	Reason string
	// Err is the classified cause (see serrors kinds). It is for logs only.
	Err error
}

func (f Failure) StatusText() string { return ErrorPrefix + f.Reason }
func (Failure) isOutcome()           {}

// Error lets a Failure be used where an error is expected.
func (f Failure) Error() string {
	if f.Err != nil {
		return f.Reason + ": " + f.Err.Error()
	}

	return f.Reason
}

// Unwrap returns the classified cause.
func (f Failure) Unwrap() error { return f.Err }
