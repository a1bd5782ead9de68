// Package permission gates schema object operations before any connection
// is opened. Denied requests are not audited by this layer; access logging
// belongs to a separate security log.
package permission

import (
	"context"

	"github.com/mjczone/dappermatic-sub001/internal/model"
	"github.com/mjczone/dappermatic-sub001/internal/schemaops"
)

// TokenChecker allows callers presenting one of a fixed set of API tokens.
type TokenChecker struct {
	tokens map[string]struct{}
}

func NewTokenChecker(tokens []string) *TokenChecker {
	c := &TokenChecker{tokens: make(map[string]struct{}, len(tokens))}
	for _, t := range tokens {
		if t != "" {
			c.tokens[t] = struct{}{}
		}
	}
	return c
}

func (c *TokenChecker) Check(ctx context.Context, caller model.Caller) error {
	if caller.Token == "" {
		return &schemaops.PermissionDeniedError{Subject: caller.Subject}
	}
	if _, ok := c.tokens[caller.Token]; !ok {
		return &schemaops.PermissionDeniedError{Subject: caller.Subject}
	}
	return nil
}

// AllowAll admits every caller. Intended for local development only.
type AllowAll struct{}

func (AllowAll) Check(ctx context.Context, caller model.Caller) error { return nil }
