package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"sitecontact/internal/contact"
	mockcontact "sitecontact/internal/contact/mock"
	"sitecontact/internal/worker"
	"sitecontact/pkg/domain"
	"sitecontact/pkg/logger"
	"sitecontact/pkg/notifier"
	"sitecontact/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func makeJob(id int64, messageID string) *river.Job[contact.NotifyJobArgs] {
	return &river.Job[contact.NotifyJobArgs]{
		JobRow: &rivertype.JobRow{ID: id, Attempt: 1},
		Args:   contact.NotifyJobArgs{MessageID: messageID},
	}
}

func TestNotifyWorker_Work_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockcontact.NewMockService(ctrl)
	w := worker.NewNotifyWorker(mock)

	id := uuid.New()
	mock.EXPECT().Notify(gomock.Any(), domain.MessageID(id)).Return(nil)

	require.NoError(t, w.Work(context.Background(), makeJob(1, id.String())))
}

func TestNotifyWorker_Work_NotFoundCancels(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockcontact.NewMockService(ctrl)
	w := worker.NewNotifyWorker(mock)

	id := uuid.New()
	mock.EXPECT().Notify(gomock.Any(), domain.MessageID(id)).Return(serrors.With(serrors.ErrNotFound, "message not found"))

	err := w.Work(context.Background(), makeJob(2, id.String()))
	var cancelErr *river.JobCancelError
	require.ErrorAs(t, err, &cancelErr)
}

func TestNotifyWorker_Work_InvalidIDCancels(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := worker.NewNotifyWorker(mockcontact.NewMockService(ctrl))

	err := w.Work(context.Background(), makeJob(3, "not-a-uuid"))
	var cancelErr *river.JobCancelError
	require.ErrorAs(t, err, &cancelErr)
}

func TestNotifyWorker_Work_RateLimitedSnoozes(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockcontact.NewMockService(ctrl)
	w := worker.NewNotifyWorker(mock)

	id := uuid.New()
	mock.EXPECT().Notify(gomock.Any(), gomock.Any()).
		Return(&notifier.RateLimitError{RetryAfter: 42 * time.Second})

	err := w.Work(context.Background(), makeJob(4, id.String()))
	var snoozeErr *river.JobSnoozeError
	require.ErrorAs(t, err, &snoozeErr)
	require.Equal(t, 42*time.Second, snoozeErr.Duration)
}

func TestNotifyWorker_Work_RateLimitedWithoutHintUsesDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockcontact.NewMockService(ctrl)
	w := worker.NewNotifyWorker(mock)

	mock.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(serrors.With(serrors.ErrRateLimited, "slow down"))

	err := w.Work(context.Background(), makeJob(5, uuid.NewString()))
	var snoozeErr *river.JobSnoozeError
	require.ErrorAs(t, err, &snoozeErr)
	require.Equal(t, worker.DefaultRateLimitSnooze, snoozeErr.Duration)
}

func TestNotifyWorker_Work_GenericErrorRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := mockcontact.NewMockService(ctrl)
	w := worker.NewNotifyWorker(mock)

	boom := errors.New("boom")
	mock.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(boom)

	err := w.Work(context.Background(), makeJob(6, uuid.NewString()))
	require.ErrorIs(t, err, boom)
	var cancelErr *river.JobCancelError
	require.NotErrorAs(t, err, &cancelErr, "did not expect JobCancelError")
	var snoozeErr *river.JobSnoozeError
	require.NotErrorAs(t, err, &snoozeErr, "did not expect JobSnoozeError")
}
