// Package update checks GitHub for a newer rosepine release.
//
//	checker := update.NewChecker(update.DefaultRepoOwner, update.DefaultRepoName)
//	info, err := checker.Check(ctx, version)
//	if err == nil && info != nil && info.UpdateAvailable {
//	    fmt.Println("new release:", info.LatestVersion, info.ReleaseURL)
//	}
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"rosepine/internal/debug"
	appErrors "rosepine/internal/errors"
)

// Default configuration values.
const (
	DefaultRepoOwner = "juliamertz"
	DefaultRepoName  = "rose-pine-build"
	DefaultBaseURL   = "https://api.github.com"
	DefaultTimeout   = 5 * time.Second
)

// Sentinels for errors.Is checks.
var (
	ErrNetworkFailure = appErrors.Sentinel(appErrors.CodeNetworkFailure)
	ErrRateLimited    = appErrors.Sentinel(appErrors.CodeRateLimited)
	ErrInvalidVersion = appErrors.Sentinel(appErrors.CodeInvalidVersion)
)

var logger = debug.Scope("update")

// ReleaseInfo is the subset of the GitHub release payload we read.
type ReleaseInfo struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	Body        string    `json:"body"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
	Prerelease  bool      `json:"prerelease"`
}

// UpdateInfo contains the result of a version check.
type UpdateInfo struct {
	CurrentVersion  Version
	LatestVersion   Version
	UpdateAvailable bool
	ReleaseURL      string
	ReleaseNotes    string
	PublishedAt     time.Time
	CheckedAt       time.Time
}

// Checker queries the releases of one GitHub repository.
type Checker struct {
	owner      string
	repo       string
	baseURL    string
	httpClient *http.Client
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithHTTPClient sets a custom HTTP client for the checker.
func WithHTTPClient(client *http.Client) CheckerOption {
	return func(c *Checker) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) CheckerOption {
	return func(c *Checker) {
		c.httpClient.Timeout = timeout
	}
}

// WithBaseURL points the checker at another API root, e.g. a test server.
func WithBaseURL(url string) CheckerOption {
	return func(c *Checker) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// NewChecker creates a version checker for owner/repo.
func NewChecker(owner, repo string, opts ...CheckerOption) *Checker {
	c := &Checker{
		owner:   owner,
		repo:    repo,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsDevBuild reports whether version is a placeholder from an unreleased build.
func IsDevBuild(version string) bool {
	switch strings.TrimSpace(version) {
	case "", "dev", "development":
		return true
	}
	return false
}

// Check compares currentVersion with the latest published release. It returns
// (nil, nil) for development builds.
func (c *Checker) Check(ctx context.Context, currentVersion string) (*UpdateInfo, error) {
	if IsDevBuild(currentVersion) {
		return nil, nil
	}

	current, err := ParseVersion(currentVersion)
	if err != nil {
		return nil, err
	}

	release, err := c.fetchLatestRelease(ctx)
	if err != nil {
		return nil, err
	}

	latest, err := ParseVersion(release.TagName)
	if err != nil {
		return nil, fmt.Errorf("parse latest version: %w", err)
	}
	logger.Logf("current %s, latest %s", current, latest)

	return &UpdateInfo{
		CurrentVersion:  current,
		LatestVersion:   latest,
		UpdateAvailable: current.LessThan(latest),
		ReleaseURL:      release.HTMLURL,
		ReleaseNotes:    release.Body,
		PublishedAt:     release.PublishedAt,
		CheckedAt:       time.Now(),
	}, nil
}

func (c *Checker) fetchLatestRelease(ctx context.Context) (*ReleaseInfo, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "rosepine-version-check")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeNetworkFailure, "fetch latest release: "+err.Error(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return nil, appErrors.New(appErrors.CodeRateLimited, "rate limited by GitHub API", nil)
	case resp.StatusCode != http.StatusOK:
		return nil, appErrors.New(appErrors.CodeNetworkFailure,
			fmt.Sprintf("fetch latest release: status %d", resp.StatusCode), nil)
	}

	var release ReleaseInfo
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, appErrors.New(appErrors.CodeNetworkFailure, "decode release: "+err.Error(), err)
	}
	return &release, nil
}
