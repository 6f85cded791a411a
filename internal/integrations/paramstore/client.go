// Package paramstore reads provider settings from AWS SSM Parameter Store.
package paramstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// ssmAPI is the minimal AWS SSM interface required by Client.
// *ssm.Client from aws-sdk-go-v2 satisfies this interface.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Client looks up decrypted parameters under a fixed prefix.
type Client struct {
	api    ssmAPI
	prefix string
}

// New creates a Client. Keys passed to Lookup are resolved as prefix + "/" + key.
func New(api ssmAPI, prefix string) (*Client, error) {
	if api == nil {
		return nil, errors.New("paramstore: api must not be nil")
	}
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return nil, errors.New("paramstore: prefix must not be empty")
	}
	return &Client{api: api, prefix: prefix}, nil
}

func (c *Client) parameterName(key string) string {
	return c.prefix + "/" + strings.TrimLeft(key, "/")
}

// Lookup returns the value stored for key. A parameter that does not exist
// is reported as ok=false with a nil error.
func (c *Client) Lookup(ctx context.Context, key string) (string, bool, error) {
	if c == nil || c.api == nil {
		return "", false, errors.New("paramstore: client not initialized")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", false, errors.New("paramstore: key is required")
	}

	name := c.parameterName(key)
	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		var notFound *types.ParameterNotFound
		if errors.As(err, &notFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("paramstore: get parameter %q: %w", name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", false, fmt.Errorf("paramstore: parameter %q missing value", name)
	}
	return *out.Parameter.Value, true, nil
}
