package service

import (
	"context"
	"fmt"
	"strings"

	"oneflex/internal/config"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/api/option"
)

type SecretManagerService interface {
	// AccessSecret returns the latest version of the named secret.
	AccessSecret(ctx context.Context, name string) (string, error)
	Close() error
}

type secretManagerService struct {
	client    *secretmanager.Client
	projectID string
}

func NewSecretManagerService(ctx context.Context, cfg *config.Config) (SecretManagerService, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP Project ID is not set for the current environment")
	}

	var opts []option.ClientOption
	if cfg.SecretManagerEndpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.SecretManagerEndpoint))
	}

	client, err := secretmanager.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}

	return &secretManagerService{
		client:    client,
		projectID: cfg.GCPProjectID,
	}, nil
}

func (s *secretManagerService) AccessSecret(ctx context.Context, name string) (string, error) {
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretVersionName(s.projectID, name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret version: %w", err)
	}
	return strings.TrimSpace(string(result.Payload.Data)), nil
}

func (s *secretManagerService) Close() error {
	return s.client.Close()
}

// secretVersionName accepts a bare secret id or a full resource path.
func secretVersionName(projectID, name string) string {
	if strings.HasPrefix(name, "projects/") {
		if strings.Contains(name, "/versions/") {
			return name
		}
		return name + "/versions/latest"
	}
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, name)
}

// ResolveJWTSecret returns the JWT signing secret, reading it from Secret
// Manager when JWT_SECRET_NAME is configured.
func ResolveJWTSecret(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.JWTSecretName == "" {
		return cfg.JWTSecret, nil
	}
	sm, err := NewSecretManagerService(ctx, cfg)
	if err != nil {
		return "", err
	}
	defer sm.Close()
	return sm.AccessSecret(ctx, cfg.JWTSecretName)
}
