package blobstore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMissingConnection is returned when no connection string is provided.
var ErrMissingConnection = errors.New("blobstore: connection string must not be empty")

const defaultRegion = "us-east-1"

// Connection is a parsed object store connection string of the form
//
//	Endpoint=http://localhost:9000;Region=us-east-1;AccessKeyId=...;SecretAccessKey=...;PathStyle=true
//
// Every part is optional. Without an access key the default AWS credential
// chain is used; without an endpoint the regional AWS endpoint is used.
type Connection struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

func ParseConnectionString(s string) (Connection, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Connection{}, ErrMissingConnection
	}

	conn := Connection{Region: defaultRegion}
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return Connection{}, fmt.Errorf("blobstore: malformed connection string segment %q", key)
		}
		value = strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "endpoint":
			conn.Endpoint = value
		case "region":
			if value != "" {
				conn.Region = value
			}
		case "accesskeyid":
			conn.AccessKeyID = value
		case "secretaccesskey":
			conn.SecretAccessKey = value
		case "pathstyle":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return Connection{}, fmt.Errorf("blobstore: invalid PathStyle %q: %w", value, err)
			}
			conn.PathStyle = b
		}
	}
	if (conn.AccessKeyID == "") != (conn.SecretAccessKey == "") {
		return Connection{}, errors.New("blobstore: AccessKeyId and SecretAccessKey must be set together")
	}
	return conn, nil
}
