package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/dbkeeper/internal/common"
	"github.com/dmitrijs2005/dbkeeper/internal/secret"
)

// CredentialSize is the width of the stored secret: only the first
// CredentialSize bytes of the credential file are significant.
const CredentialSize = 16

// CredentialSource yields the admin secret. The caller owns the returned
// buffer and must Close it.
type CredentialSource interface {
	Load(ctx context.Context) (*secret.Buffer, error)
}

// FileCredentials reads the secret from a plain file on every Load. Nothing
// is cached between calls.
type FileCredentials struct {
	Path string
}

// Load reads the first CredentialSize bytes of the credential file.
// No newline stripping is applied.
func (c FileCredentials) Load(ctx context.Context) (*secret.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := secret.ReadPrefix(c.Path, CredentialSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCredentialUnavailable, err)
	}
	return b, nil
}
