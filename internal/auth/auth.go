package auth

import (
	"context"
	"errors"
	"strings"
)

var ErrNoSession = errors.New("no valid session")

// SessionVerifier is the capability we need from the auth provider: map a
// bearer token to a user id. Any compliant implementation (hosted provider
// or the static one below) is substitutable.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (userID string, err error)
}

// StaticVerifier resolves sessions from a fixed token→user table, loaded
// from configuration. Good enough until a hosted provider is wired in.
type StaticVerifier struct {
	sessions map[string]string
}

func NewStaticVerifier(sessions map[string]string) *StaticVerifier {
	cp := make(map[string]string, len(sessions))
	for k, v := range sessions {
		cp[k] = v
	}
	return &StaticVerifier{sessions: cp}
}

// ParseSessionKeys parses "token:user" pairs separated by commas, the format
// of the SESSION_KEYS env variable.
func ParseSessionKeys(raw string) (map[string]string, error) {
	sessions := make(map[string]string)
	if strings.TrimSpace(raw) == "" {
		return sessions, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		token, user, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok || token == "" || user == "" {
			return nil, errors.New("session keys: expected comma-separated token:user pairs")
		}
		sessions[token] = user
	}
	return sessions, nil
}

func (v *StaticVerifier) Verify(_ context.Context, token string) (string, error) {
	userID, ok := v.sessions[token]
	if !ok {
		return "", ErrNoSession
	}
	return userID, nil
}

type ctxKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(ctxKey{}).(string)
	return userID, ok
}
