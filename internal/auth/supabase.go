package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	AccessCookie  = "sb-access-token"
	RefreshCookie = "sb-refresh-token"
)

// Session is a token pair issued by the auth service.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// Result is the outcome of resolving a request's cookies.
// Refreshed is set when new tokens were issued and must be written back.
type Result struct {
	Identity  Identity
	Refreshed *Session
}

type Authenticator interface {
	Resolve(ctx context.Context, accessToken, refreshToken string) (Result, error)
}

type Supabase struct {
	baseURL  string
	anonKey  string
	verifier *Verifier
	client   *http.Client
}

func NewSupabase(baseURL, anonKey string, verifier *Verifier, client *http.Client) *Supabase {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Supabase{
		baseURL:  strings.TrimRight(baseURL, "/"),
		anonKey:  anonKey,
		verifier: verifier,
		client:   client,
	}
}

// Resolve verifies the access token and, when it is missing or expired,
// exchanges the refresh token for a new pair.
func (s *Supabase) Resolve(ctx context.Context, accessToken, refreshToken string) (Result, error) {
	id, err := s.verifier.Verify(accessToken)
	if err == nil {
		return Result{Identity: id}, nil
	}
	if !errors.Is(err, ErrTokenExpired) && !errors.Is(err, ErrMissingToken) {
		return Result{}, err
	}
	if refreshToken == "" {
		return Result{}, err
	}

	sess, err := s.Refresh(ctx, refreshToken)
	if err != nil {
		return Result{}, err
	}
	id, err = s.verifier.Verify(sess.AccessToken)
	if err != nil {
		return Result{}, err
	}
	return Result{Identity: id, Refreshed: &sess}, nil
}

func (s *Supabase) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if s.baseURL == "" || s.anonKey == "" {
		return Session{}, ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return Session{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/auth/v1/token?grant_type=refresh_token", bytes.NewReader(body))
	if err != nil {
		return Session{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Authorization", "Bearer "+s.anonKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("refresh session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return Session{}, fmt.Errorf("%w: refresh rejected: %s", ErrInvalidToken, strings.TrimSpace(string(msg)))
		}
		return Session{}, fmt.Errorf("refresh session: status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var sess Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		return Session{}, fmt.Errorf("decode session: %w", err)
	}
	if sess.AccessToken == "" {
		return Session{}, fmt.Errorf("%w: refresh returned no access token", ErrInvalidToken)
	}
	return sess, nil
}
