package form

import (
	"context"
	"fmt"
	"testing"

	"github.com/akeren/interest-waitlist/pkg/client"
	"github.com/akeren/interest-waitlist/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newFilledController(t *testing.T, options Options) (*Controller, *MockAPI) {
	t.Helper()

	api := NewMockAPI(gomock.NewController(t))
	c := NewController(api, options)
	c.SetName("  John Doe ")
	c.SetEmail(" john@example.com ")
	c.SetSubscribed(true)

	return c, api
}

func TestController_InitialState(t *testing.T) {
	snap := NewController(nil, Options{}).Snapshot()

	assert.Equal(t, StatusIdle, snap.Status)
	assert.False(t, snap.Subscribed)
	assert.Empty(t, snap.Errors)
}

func TestController_ValidateAndClearOnEdit(t *testing.T) {
	c := NewController(nil, Options{})
	c.SetEmail("bad")

	assert.False(t, c.Validate())
	snap := c.Snapshot()
	assert.Equal(t, validation.MsgNameRequired, snap.Errors[validation.FieldName])
	assert.Equal(t, validation.MsgEmailInvalid, snap.Errors[validation.FieldEmail])

	c.SetName("Al")
	snap = c.Snapshot()
	assert.NotContains(t, snap.Errors, validation.FieldName)
	assert.Contains(t, snap.Errors, validation.FieldEmail)

	c.SetEmail("al@x.co")
	assert.Empty(t, c.Snapshot().Errors)
	assert.True(t, c.Validate())
}

func TestController_ValidateReportsOnlyFailingFields(t *testing.T) {
	c := NewController(nil, Options{})
	c.SetName("Al")
	c.SetEmail("al@x")

	assert.False(t, c.Validate())
	assert.Equal(t, map[string]string{validation.FieldEmail: validation.MsgEmailInvalid}, c.Snapshot().Errors)
}

func TestController_SubmitInvalidDoesNotCallServer(t *testing.T) {
	api := NewMockAPI(gomock.NewController(t))
	c := NewController(api, Options{})

	snap, err := c.Submit(context.Background())

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, StatusIdle, snap.Status)
	assert.Len(t, snap.Errors, 2)
}

func TestController_SubmitSuccess(t *testing.T) {
	c, api := newFilledController(t, Options{})

	gomock.InOrder(
		api.EXPECT().
			SubmitInterest(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req client.SubmitInterestRequest) (*client.SubmitInterestResponse, error) {
				assert.Equal(t, "John Doe", req.Name)
				assert.Equal(t, "john@example.com", req.Email)
				require.NotNil(t, req.Subscribed)
				assert.True(t, *req.Subscribed)
				return &client.SubmitInterestResponse{Success: true, StatusCode: 201}, nil
			}),
		api.EXPECT().GetInterestCount(gomock.Any()).
			Return(&client.GetCountResponse{Success: true, Data: &client.CountData{Count: 8}}, nil),
	)

	snap, err := c.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, snap.Status)
	assert.Equal(t, MsgSuccess, snap.Message)
	assert.Empty(t, snap.Name)
	assert.Empty(t, snap.Email)
	assert.False(t, snap.Subscribed)
	assert.Equal(t, int64(8), snap.Count)
}

func TestController_SubmitServerRejection(t *testing.T) {
	t.Run("server message kept with the fields", func(t *testing.T) {
		c, api := newFilledController(t, Options{})

		api.EXPECT().SubmitInterest(gomock.Any(), gomock.Any()).
			Return(&client.SubmitInterestResponse{Error: "Email already registered", StatusCode: 409}, nil)

		snap, err := c.Submit(context.Background())

		require.NoError(t, err)
		assert.Equal(t, StatusError, snap.Status)
		assert.Equal(t, "Email already registered", snap.Message)
		assert.Equal(t, "  John Doe ", snap.Name)
		assert.True(t, snap.Subscribed)
	})

	t.Run("generic message and field details", func(t *testing.T) {
		c, api := newFilledController(t, Options{})

		api.EXPECT().SubmitInterest(gomock.Any(), gomock.Any()).
			Return(&client.SubmitInterestResponse{
				StatusCode: 400,
				Details:    []client.FieldError{{Field: "email", Message: "Please enter a valid email address"}},
			}, nil)

		snap, err := c.Submit(context.Background())

		require.NoError(t, err)
		assert.Equal(t, MsgGenericError, snap.Message)
		assert.Equal(t, "Please enter a valid email address", snap.Errors[validation.FieldEmail])
	})
}

func TestController_SubmitNetworkError(t *testing.T) {
	networkErr := fmt.Errorf("%w: dial tcp: connection refused", client.ErrNetwork)

	t.Run("reported by default", func(t *testing.T) {
		c, api := newFilledController(t, Options{})

		api.EXPECT().SubmitInterest(gomock.Any(), gomock.Any()).
			Return(&client.SubmitInterestResponse{Error: client.MsgNetworkError}, networkErr)

		snap, err := c.Submit(context.Background())

		assert.ErrorIs(t, err, client.ErrNetwork)
		assert.Equal(t, StatusError, snap.Status)
		assert.Equal(t, client.MsgNetworkError, snap.Message)
		assert.Equal(t, "  John Doe ", snap.Name)
		assert.Equal(t, int64(0), snap.Count)
	})

	t.Run("optimistic", func(t *testing.T) {
		c, api := newFilledController(t, Options{OptimisticOnNetworkError: true})

		api.EXPECT().GetInterestCount(gomock.Any()).
			Return(&client.GetCountResponse{Success: true, Data: &client.CountData{Count: 41}}, nil)
		require.NoError(t, c.RefreshCount(context.Background()))

		api.EXPECT().SubmitInterest(gomock.Any(), gomock.Any()).Return(nil, networkErr)

		snap, err := c.Submit(context.Background())

		require.NoError(t, err)
		assert.Equal(t, StatusSuccess, snap.Status)
		assert.Equal(t, MsgSuccess, snap.Message)
		assert.Empty(t, snap.Name)
		assert.Equal(t, int64(42), snap.Count)
	})
}

func TestController_RejectsConcurrentSubmit(t *testing.T) {
	c, api := newFilledController(t, Options{})

	entered := make(chan struct{})
	release := make(chan struct{})

	api.EXPECT().SubmitInterest(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, client.SubmitInterestRequest) (*client.SubmitInterestResponse, error) {
			close(entered)
			<-release
			return &client.SubmitInterestResponse{Error: "Email already registered", StatusCode: 409}, nil
		})

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()

	<-entered
	snap, err := c.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInProgress)
	assert.Equal(t, StatusSubmitting, snap.Status)

	close(release)
	assert.NoError(t, <-done)
	assert.Equal(t, StatusError, c.Snapshot().Status)
}

func TestController_RefreshCountKeepsPreviousValue(t *testing.T) {
	api := NewMockAPI(gomock.NewController(t))
	c := NewController(api, Options{})

	api.EXPECT().GetInterestCount(gomock.Any()).
		Return(&client.GetCountResponse{Success: true, Data: &client.CountData{Count: 5}}, nil)
	require.NoError(t, c.RefreshCount(context.Background()))

	api.EXPECT().GetInterestCount(gomock.Any()).
		Return(&client.GetCountResponse{Error: "Failed to get interest count", StatusCode: 500}, nil)
	err := c.RefreshCount(context.Background())

	assert.ErrorIs(t, err, ErrCountUnavailable)
	snap := c.Snapshot()
	assert.Equal(t, int64(5), snap.Count)
	assert.Equal(t, "Failed to get interest count", snap.CountError)
	assert.False(t, snap.CountLoading)

	api.EXPECT().GetInterestCount(gomock.Any()).
		Return(&client.GetCountResponse{Error: client.MsgNetworkError}, fmt.Errorf("%w: timeout", client.ErrNetwork))
	err = c.RefreshCount(context.Background())

	assert.ErrorIs(t, err, client.ErrNetwork)
	assert.Equal(t, int64(5), c.Snapshot().Count)
}

func TestSnapshot_IsACopy(t *testing.T) {
	c := NewController(nil, Options{})
	c.Validate()

	snap := c.Snapshot()
	snap.Errors[validation.FieldName] = "changed"

	assert.Equal(t, validation.MsgNameRequired, c.Snapshot().Errors[validation.FieldName])
}
