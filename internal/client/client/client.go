package client

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/clinicsite/internal/client/models"
)

type Client interface {
	Close() error
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
	// FetchCollection returns the raw "data" member of GET /items/<collection>.
	FetchCollection(ctx context.Context, collection string, headers map[string]string) (json.RawMessage, error)
	AssetURL(assetID string) string
}
