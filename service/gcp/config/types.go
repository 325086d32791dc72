package gcpconfig

import (
	"context"

	"golang.org/x/oauth2/google"
)

type credentialFinder func(ctx context.Context, scopes ...string) (*google.Credentials, error)

type service struct {
	projectID       string
	findCredentials credentialFinder
}

type ConfigService interface {
	GetCredentials(ctx context.Context) (*google.Credentials, error)
	GetProjectID(ctx context.Context) (string, error)
}
