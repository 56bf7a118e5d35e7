package session

import (
	"context"
	"fmt"

	"github.com/supabase-community/supabase-go"
)

// SupabaseAuth signs in with email and password against Supabase Auth. A
// successful sign-in also authorises the shared client's REST calls, so row
// level security applies to every repository built on it.
type SupabaseAuth struct {
	client *supabase.Client
}

func NewSupabaseAuth(client *supabase.Client) *SupabaseAuth {
	return &SupabaseAuth{client: client}
}

func (a *SupabaseAuth) SignIn(_ context.Context, email, password string) (User, error) {
	s, err := a.client.SignInWithEmailPassword(email, password)
	if err != nil {
		return User{}, fmt.Errorf("supabase sign-in: %w", err)
	}

	a.client.UpdateAuthSession(s)

	return User{
		ID:          s.User.ID,
		Email:       s.User.Email,
		AccessToken: s.AccessToken,
	}, nil
}

func (a *SupabaseAuth) SignOut(_ context.Context) error {
	if err := a.client.Auth.Logout(); err != nil {
		return fmt.Errorf("supabase sign-out: %w", err)
	}

	return nil
}
