package netlify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Team is one account the logged-in user can create sites under.
type Team struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	ID   string `json:"id"`
}

// Site is a deployed site summary for listings.
type Site struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Updated string `json:"updated"`
}

// maxListedSites caps the sites listing for display.
const maxListedSites = 10

type rawSite struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	SSLURL    string `json:"ssl_url"`
	UpdatedAt string `json:"updated_at"`
}

// Teams lists the user's teams via the CLI's JSON output.
func (c *Client) Teams(ctx context.Context) ([]Team, error) {
	res := c.Run(ctx, "teams:list", "--json")
	if strings.TrimSpace(res.Stdout) == "" {
		return nil, fmt.Errorf("failed to list teams: %s", firstLine(res.Stderr))
	}

	return parseTeams(res.Stdout)
}

func parseTeams(out string) ([]Team, error) {
	var teams []Team
	if err := json.Unmarshal([]byte(out), &teams); err != nil {
		return nil, fmt.Errorf("failed to parse teams listing: %w", err)
	}
	return teams, nil
}

// Sites lists up to maxListedSites of the user's sites, newest data first
// as the CLI reports them. URL preference: ssl_url, then url, then the
// default platform subdomain.
func (c *Client) Sites(ctx context.Context) ([]Site, error) {
	res := c.Run(ctx, "sites:list", "--json")
	if strings.TrimSpace(res.Stdout) == "" {
		return nil, fmt.Errorf("failed to list sites: %s", firstLine(res.Stderr))
	}

	return parseSites(res.Stdout)
}

func parseSites(out string) ([]Site, error) {
	var raw []rawSite
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse sites listing: %w", err)
	}

	if len(raw) > maxListedSites {
		raw = raw[:maxListedSites]
	}

	sites := make([]Site, 0, len(raw))
	for _, r := range raw {
		sites = append(sites, Site{
			Name:    r.Name,
			URL:     siteURL(r),
			Updated: truncateDate(r.UpdatedAt),
		})
	}
	return sites, nil
}

func siteURL(r rawSite) string {
	if r.SSLURL != "" {
		return r.SSLURL
	}
	if r.URL != "" {
		return r.URL
	}
	return fmt.Sprintf("https://%s.netlify.app", r.Name)
}

// truncateDate reduces an RFC 3339 timestamp to its date part.
func truncateDate(ts string) string {
	if len(ts) > 10 {
		return ts[:10]
	}
	return ts
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
