// Package github queries the GitHub releases API and resolves downloadable
// assets for a repository.
package github

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/GitDevLane/py-updater/internal/version"
)

// releasePageSize bounds the release listing. Thirty releases cover any
// realistic gap between the installed and the newest version.
const releasePageSize = 30

// Release represents one published release.
type Release struct {
	TagName    string  `json:"tag_name"`
	Draft      bool    `json:"draft"`
	Prerelease bool    `json:"prerelease"`
	Assets     []Asset `json:"assets"`
}

// Asset is a named downloadable file attached to a release.
type Asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// FindAsset returns the asset with the exact given name, or nil.
func (r *Release) FindAsset(name string) *Asset {
	for i := range r.Assets {
		if r.Assets[i].Name == name {
			return &r.Assets[i]
		}
	}
	return nil
}

// AssetNames returns the names of all assets in the release.
func (r *Release) AssetNames() []string {
	names := make([]string, 0, len(r.Assets))
	for _, a := range r.Assets {
		names = append(names, a.Name)
	}
	return names
}

// AssetNotFoundError reports that the expected platform asset is absent
// from a release, listing what was actually published.
type AssetNotFoundError struct {
	Asset     string
	Available []string
}

func (e *AssetNotFoundError) Error() string {
	return fmt.Sprintf("asset %q not found in release assets: %s",
		e.Asset, strings.Join(e.Available, ", "))
}

// Client queries the releases API for one repository. The token is an
// explicit configuration value, never read from the environment here.
type Client struct {
	owner   string
	repo    string
	token   string // optional, for private repos and rate limits
	client  *http.Client
	baseURL string // injectable for tests
}

// NewClient creates a release client for owner/repo with the given
// per-request timeout.
func NewClient(owner, repo string, timeout time.Duration) *Client {
	return &Client{
		owner:   owner,
		repo:    repo,
		client:  &http.Client{Timeout: timeout},
		baseURL: "https://api.github.com",
	}
}

// WithToken sets an optional bearer token for authentication.
func (c *Client) WithToken(token string) *Client {
	c.token = token
	return c
}

// WithBaseURL overrides the API endpoint (for testing).
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// LatestRelease returns the newest eligible release by version-tag order,
// or nil when no release survives filtering. Drafts are always excluded;
// prereleases only when includePrereleases is set. Selection is by tag,
// not publish time, with first-listed winning a tie.
func (c *Client) LatestRelease(includePrereleases bool) (*Release, error) {
	releases, err := c.listReleases()
	if err != nil {
		return nil, err
	}

	var best *Release
	for i := range releases {
		r := &releases[i]
		if r.Draft {
			continue
		}
		if r.Prerelease && !includePrereleases {
			continue
		}
		if best == nil || version.Compare(r.TagName, best.TagName) > 0 {
			best = r
		}
	}
	return best, nil
}

// listReleases fetches one page of the release listing, most recent first.
func (c *Client) listReleases() ([]Release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d",
		c.baseURL, c.owner, c.repo, releasePageSize)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", "py-updater")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases for %s/%s: %w", c.owner, c.repo, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release listing for %s/%s returned status %d",
			c.owner, c.repo, resp.StatusCode)
	}

	var releases []Release
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("failed to decode release listing: %w", err)
	}
	return releases, nil
}
