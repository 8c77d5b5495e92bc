package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/clinicsite/internal/client/models"
	"github.com/dmitrijs2005/clinicsite/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for an email and password and authenticates against the CMS.
// An empty email logs in with the configured fallback identity.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email (empty for the site identity)", a.out)
	if err != nil {
		return err
	}

	var creds *models.Credentials
	if email != "" {
		password, err := getPassword(a.out)
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)
		creds = &models.Credentials{Email: email, Password: string(password)}
	}

	if err := a.authService.Login(ctx, creds); err != nil {
		fmt.Fprintf(a.out, "Login failed: %s\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Login successful")
	return nil
}

// Logout clears every cached credential.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.log.Warn(ctx, "logout incomplete", "error", err)
		fmt.Fprintf(a.out, "Logged out (some stores could not be cleared: %s)\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

// Status prints whether a valid credential is cached and, when the token is
// a JWT, who it belongs to.
func (a *App) Status(ctx context.Context) error {
	if !a.authService.IsAuthenticated(ctx) {
		fmt.Fprintln(a.out, "Not authenticated")
		return nil
	}

	fmt.Fprintln(a.out, "Authenticated")
	claims, err := a.authService.Claims(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "  token: opaque")
		return nil
	}
	if claims.Subject != "" {
		fmt.Fprintf(a.out, "  subject: %s\n", claims.Subject)
	}
	if claims.Role != "" {
		fmt.Fprintf(a.out, "  role:    %s\n", claims.Role)
	}
	if !claims.ExpiresAt.IsZero() {
		fmt.Fprintf(a.out, "  expires: %s\n", claims.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.authService.AccessToken(ctx) != ""
}
