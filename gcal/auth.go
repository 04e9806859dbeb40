package gcal

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

const (
	tokenFile       = "token.json"
	credentialsFile = "credentials.json"
)

// ConfigDir returns ~/.config/inkcal, creating it if needed.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configDir := filepath.Join(home, ".config", "inkcal")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", err
	}
	return configDir, nil
}

// GetToken returns the cached OAuth token from dir, running the browser
// flow on in/out when there is none.
func GetToken(config *oauth2.Config, dir string, in io.Reader, out io.Writer) (*oauth2.Token, error) {
	tokPath := filepath.Join(dir, tokenFile)

	tok, err := tokenFromFile(tokPath)
	if err != nil {
		tok, err = getTokenFromWeb(config, in, out)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokPath, tok); err != nil {
			fmt.Fprintf(out, "Unable to cache oauth token: %v\n", err)
		}
	}
	return tok, nil
}

func getTokenFromWeb(config *oauth2.Config, in io.Reader, out io.Writer) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(out, "Go to the following link in your browser:\n%v\n\n", authURL)
	fmt.Fprint(out, "Enter authorization code: ")

	var authCode string
	if _, err := fmt.Fscan(in, &authCode); err != nil {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}

	tok, err := config.Exchange(context.TODO(), authCode)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

func isServiceAccount(b []byte) bool {
	var v struct {
		Type string `json:"type"`
	}
	return json.Unmarshal(b, &v) == nil && v.Type == "service_account"
}

// GetClient returns an HTTP client authorised for read-only calendar
// access. Service account credentials are used as-is; OAuth client
// credentials go through the token flow.
func GetClient(ctx context.Context, dir string, in io.Reader, out io.Writer) (*http.Client, error) {
	credPath := filepath.Join(dir, credentialsFile)

	b, err := os.ReadFile(credPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w\nPlease create credentials.json in %s", err, dir)
	}

	if isServiceAccount(b) {
		creds, err := google.CredentialsFromJSON(ctx, b, calendar.CalendarReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse credentials: %w", err)
		}
		return oauth2.NewClient(ctx, creds.TokenSource), nil
	}

	config, err := google.ConfigFromJSON(b, calendar.CalendarReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	token, err := GetToken(config, dir, in, out)
	if err != nil {
		return nil, err
	}

	return config.Client(ctx, token), nil
}

// GetCalendarService returns a calendar client using the credentials in
// dir.
func GetCalendarService(ctx context.Context, dir string) (*calendar.Service, error) {
	client, err := GetClient(ctx, dir, os.Stdin, os.Stdout)
	if err != nil {
		return nil, err
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %w", err)
	}

	return srv, nil
}
