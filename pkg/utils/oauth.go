package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jakechorley/connect-care/internal/config"
)

const (
	AuthPort       = 3000
	authTimeout    = 5 * time.Minute
	callbackPath   = "/oauth/callback"
	tokenDirName   = ".connect-care/tokens"
	tokenFilePerms = 0600
	tokenDirPerms  = 0700
	tokenInfoURL   = "https://oauth2.googleapis.com/tokeninfo"
)

// ScopeSheets is the only Google scope needed: situation reports are written to a spreadsheet
const ScopeSheets = "https://www.googleapis.com/auth/spreadsheets"

var (
	sessionToken   *oauth2.Token
	sessionTokenMu sync.Mutex
)

func requiredScopes() []string {
	return []string{ScopeSheets}
}

// missingScopes lists required scopes absent from a space separated grant
func missingScopes(granted string) []string {
	have := strings.Fields(granted)
	var missing []string
	for _, s := range requiredScopes() {
		if !slices.Contains(have, s) {
			missing = append(missing, s)
		}
	}
	return missing
}

// GetOAuthConfig builds the OAuth2 config for the installed-app client,
// redirecting to the local callback server
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	raw, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth config: %w", err)
	}

	cfg, err := google.ConfigFromJSON(raw, requiredScopes()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}
	cfg.RedirectURL = fmt.Sprintf("http://localhost:%d%s", AuthPort, callbackPath)
	return cfg, nil
}

// GetTokenWithFlow returns a token carrying every required scope. It tries, in order,
// the token already used this session, the token saved for env, a refresh of that
// token, and finally a browser authorization. Only one caller resolves a token at a time.
func GetTokenWithFlow(ctx context.Context, oauthConfig *oauth2.Config, env string, logger *zap.Logger) (*oauth2.Token, error) {
	sessionTokenMu.Lock()
	defer sessionTokenMu.Unlock()

	if sessionToken != nil && sessionToken.Valid() {
		return sessionToken, nil
	}

	if token := storedToken(ctx, oauthConfig, env, logger); token != nil {
		sessionToken = token
		return token, nil
	}

	logger.Info("No usable token saved, starting browser authorization", zap.String("env", env))
	token, err := authorize(ctx, oauthConfig, logger)
	if err != nil {
		return nil, err
	}
	if err := SaveTokenToFile(env, token); err != nil {
		logger.Warn("Token not saved, authorization will be asked again next run", zap.Error(err))
	}
	sessionToken = token
	return token, nil
}

// storedToken loads the saved token for env, refreshing it if expired.
// It returns nil when there is nothing usable, deleting a saved token that lacks scopes.
func storedToken(ctx context.Context, oauthConfig *oauth2.Config, env string, logger *zap.Logger) *oauth2.Token {
	saved, err := LoadTokenFromFile(env)
	if err != nil {
		logger.Warn("Ignoring saved token", zap.Error(err))
		return nil
	}
	if saved == nil {
		return nil
	}

	token := saved
	if !token.Valid() {
		if token.RefreshToken == "" {
			return nil
		}
		token, err = oauthConfig.TokenSource(ctx, saved).Token()
		if err != nil {
			logger.Warn("Token refresh failed", zap.Error(err))
			return nil
		}
	}

	if err := checkScopes(ctx, token); err != nil {
		logger.Warn("Saved token rejected, deleting it", zap.Error(err))
		if err := DeleteTokenFile(env); err != nil {
			logger.Warn("Failed to delete token file", zap.Error(err))
		}
		return nil
	}

	if token.AccessToken != saved.AccessToken {
		logger.Info("Token refreshed")
		if err := SaveTokenToFile(env, token); err != nil {
			logger.Warn("Refreshed token not saved", zap.Error(err))
		}
	}
	return token
}

// authorize sends the user to Google's consent page and exchanges the returned code
func authorize(ctx context.Context, oauthConfig *oauth2.Config, logger *zap.Logger) (*oauth2.Token, error) {
	authURL := oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline)
	logger.Info("Open this URL in a browser to authorize Connect Care", zap.String("url", authURL))

	code, err := awaitAuthCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	if err := checkScopes(ctx, token); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}
	return token, nil
}

// checkScopes asks Google's tokeninfo endpoint which scopes the token carries
func checkScopes(ctx context.Context, token *oauth2.Token) error {
	endpoint := tokenInfoURL + "?" + url.Values{"access_token": {token.AccessToken}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call tokeninfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tokeninfo request failed with status %d: %s", resp.StatusCode, body)
	}

	var info struct {
		Scope string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if missing := missingScopes(info.Scope); len(missing) > 0 {
		return fmt.Errorf("token is missing required scopes %v, grant spreadsheet access when authorizing", missing)
	}
	return nil
}

type authResult struct {
	code string
	err  error
}

// awaitAuthCode serves the redirect URL on localhost until Google calls it back
func awaitAuthCode(ctx context.Context) (string, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", AuthPort))
	if err != nil {
		return "", fmt.Errorf("failed to listen for oauth callback: %w", err)
	}

	results := make(chan authResult, 1)
	report := func(r authResult) {
		select {
		case results <- r:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			report(authResult{err: errors.New("no authorization code received")})
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authorization successful</h1><p>You can close this window and return to Connect Care.</p></body></html>")
		report(authResult{code: code})
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			report(authResult{err: fmt.Errorf("callback server error: %w", err)})
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	select {
	case r := <-results:
		return r.code, r.err
	case <-timeout.C:
		return "", fmt.Errorf("authorization timeout after %v", authTimeout)
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// ClearToken forgets the token used this session
func ClearToken() {
	sessionTokenMu.Lock()
	defer sessionTokenMu.Unlock()
	sessionToken = nil
}

func tokenFilePath(env string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, tokenDirName, fmt.Sprintf("token-%s.json", env)), nil
}

// LoadTokenFromFile loads the token saved for env.
// A missing file is not an error: it returns nil, nil.
func LoadTokenFromFile(env string) (*oauth2.Token, error) {
	path, err := tokenFilePath(env)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}
	return &token, nil
}

// SaveTokenToFile writes the token for env, readable by the owner only
func SaveTokenToFile(env string, token *oauth2.Token) error {
	path, err := tokenFilePath(env)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), tokenDirPerms); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	if err := os.WriteFile(path, data, tokenFilePerms); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// DeleteTokenFile removes the token saved for env, if any
func DeleteTokenFile(env string) error {
	path, err := tokenFilePath(env)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete token file: %w", err)
	}
	return nil
}
