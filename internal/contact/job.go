package contact

import (
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
)

// NotifyJobArgs are the arguments of the job telling the site owner about a
// newly stored message. The message ID is the unique key, so a message is
// never queued for notification twice.
type NotifyJobArgs struct {
	// MessageID is the text form of the stored message's ID.
	MessageID string `json:"messageID" river:"unique"`

	// maxAttempts caps how many times River retries a failed delivery.
	maxAttempts int
}

// Kind returns the River job kind used to register and dispatch the notify worker.
func (args NotifyJobArgs) Kind() string { return "NotifyContactMessageJob" }

// InsertOpts returns the River options used when the job is enqueued.
func (args NotifyJobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
			ByState: []rivertype.JobState{
				rivertype.JobStateAvailable,
				rivertype.JobStateCompleted,
				rivertype.JobStatePending,
				rivertype.JobStateRunning,
				rivertype.JobStateRetryable,
				rivertype.JobStateScheduled,
			},
		},
	}
}
