package handler_test

import (
	"context"
	"errors"
	"fmt"
	"sitecontact/internal/api/handler"
	"testing"

	"sitecontact/pkg/logger"
	"sitecontact/pkg/serrors"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func TestNewError_InternalOnPlainError(t *testing.T) {
	h := handler.New(handler.Deps{})
	ctx := context.Background()

	res := h.NewError(ctx, errors.New("boom"))
	require.NotNil(t, res)
	require.Equal(t, 500, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), res.Code)
	require.Equal(t, "internal error", res.Message)
}

func TestNewError_KindSentinelDirect_NotFound(t *testing.T) {
	h := handler.New(handler.Deps{})
	ctx := context.Background()

	// Pass the Kind sentinel directly
	res := h.NewError(ctx, serrors.ErrNotFound)
	require.Equal(t, 404, res.StatusCode)
	require.Equal(t, serrors.ErrNotFound.Error(), res.Code)
	require.Equal(t, "resource not found", res.Message)
}

func TestNewError_SemanticWithMessage_BadRequest(t *testing.T) {
	h := handler.New(handler.Deps{})
	ctx := context.Background()

	err := serrors.With(serrors.ErrBadRequest, "All fields are required.")
	res := h.NewError(ctx, err)
	require.Equal(t, 400, res.StatusCode)
	require.Equal(t, serrors.ErrBadRequest.Error(), res.Code)
	require.Equal(t, "All fields are required.", res.Message)
}

func TestNewError_SemanticWrap_Unauthorized(t *testing.T) {
	h := handler.New(handler.Deps{})
	ctx := context.Background()

	cause := errors.New("bad token")
	err := serrors.Wrap(serrors.ErrUnauthorized, cause, "unauthorized")
	res := h.NewError(ctx, err)
	require.Equal(t, 401, res.StatusCode)
	require.Equal(t, serrors.ErrUnauthorized.Error(), res.Code)
	// Should include provided message, not the cause
	require.Equal(t, "unauthorized", res.Message)
}

func TestNewError_InternalKind_NeverExposesMessage(t *testing.T) {
	h := handler.New(handler.Deps{})
	ctx := context.Background()

	res := h.NewError(ctx, serrors.With(serrors.ErrInternal, "db password is hunter2"))
	require.Equal(t, 500, res.StatusCode)
	require.Equal(t, serrors.ErrInternal.Error(), res.Code)
	require.Equal(t, "internal error", res.Message)
}

func TestNewError_StatusByKind(t *testing.T) {
	h := handler.New(handler.Deps{})

	cases := map[serrors.Kind]int{
		serrors.ErrConflict:    409,
		serrors.ErrRateLimited: 429,
		serrors.ErrUnavailable: 503,
		serrors.ErrMalformed:   400,
		serrors.ErrRejected:    422,
	}
	for kind, status := range cases {
		res := h.NewError(context.Background(), serrors.KindOnly(kind))
		require.Equal(t, status, res.StatusCode, kind.Error())
		require.Equal(t, kind.Error(), res.Code)
	}
}

func TestNewError_WrappedWithFmt(t *testing.T) {
	h := handler.New(handler.Deps{})

	err := fmt.Errorf("could not submit message: %w", serrors.With(serrors.ErrConflict, "duplicate"))
	res := h.NewError(context.Background(), err)
	require.Equal(t, 409, res.StatusCode)
	require.Equal(t, "duplicate", res.Message)
}
