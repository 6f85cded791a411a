package paramstore

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a simple fake implementing ssmAPI for tests.
type fakeAPI struct {
	getOut *ssm.GetParameterOutput
	getErr error
	lastIn *ssm.GetParameterInput
}

func (f *fakeAPI) GetParameter(_ context.Context, in *ssm.GetParameterInput, _ ...func(*ssm.Options)) (*ssm.GetParameterOutput, error) {
	f.lastIn = in
	return f.getOut, f.getErr
}

func strPtr(s string) *string { return &s }

func TestLookup_HappyPath(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{
		Name: strPtr("/chatdesk/OPENROUTER_API_KEY"), Value: strPtr("or-secret"), Type: types.ParameterTypeSecureString,
	}}}
	client, err := New(api, "/chatdesk/")
	require.NoError(t, err)

	v, ok, err := client.Lookup(context.Background(), "OPENROUTER_API_KEY")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "or-secret", v)
	require.Equal(t, "/chatdesk/OPENROUTER_API_KEY", *api.lastIn.Name)
	require.True(t, *api.lastIn.WithDecryption)
}

func TestLookup_NotFound(t *testing.T) {
	api := &fakeAPI{getErr: fmt.Errorf("operation error SSM: GetParameter: %w", &types.ParameterNotFound{})}
	client, err := New(api, "/chatdesk")
	require.NoError(t, err)

	v, ok, err := client.Lookup(context.Background(), "HF_API_TOKEN")
	require.NoError(t, err)
	require.False(t, ok)
	require.Empty(t, v)
}

func TestLookup_MissingValue(t *testing.T) {
	api := &fakeAPI{getOut: &ssm.GetParameterOutput{Parameter: &types.Parameter{Name: strPtr("p"), Value: nil}}}
	client, err := New(api, "/chatdesk")
	require.NoError(t, err)
	_, _, err = client.Lookup(context.Background(), "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing value")
}

func TestLookup_ApiError(t *testing.T) {
	api := &fakeAPI{getErr: errors.New("boom")}
	client, err := New(api, "/chatdesk")
	require.NoError(t, err)
	_, _, err = client.Lookup(context.Background(), "p")
	require.Error(t, err)
	require.ErrorContains(t, err, "boom")
}

func TestLookup_ClientNotInitialized(t *testing.T) {
	_, _, err := (&Client{}).Lookup(context.Background(), "p")
	require.Error(t, err)
	require.Contains(t, err.Error(), "not initialized")
}

func TestLookup_EmptyKey(t *testing.T) {
	client, err := New(&fakeAPI{}, "/chatdesk")
	require.NoError(t, err)
	_, _, err = client.Lookup(context.Background(), "  ")
	require.Error(t, err)
	require.Contains(t, err.Error(), "required")
}

func TestNew_Validates(t *testing.T) {
	_, err := New(nil, "/chatdesk")
	require.Error(t, err)
	require.Contains(t, err.Error(), "must not be nil")

	_, err = New(&fakeAPI{}, " / ")
	require.Error(t, err)
}
