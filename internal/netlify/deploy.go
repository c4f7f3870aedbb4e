package netlify

import (
	"context"
	"regexp"
	"strings"
)

// DeployResult is the interpreted outcome of a deploy invocation.
type DeployResult struct {
	Success bool   `json:"success"`
	URL     string `json:"url,omitempty"`
	Stdout  string `json:"stdout"`
	Stderr  string `json:"stderr"`
}

var netlifyURLRe = regexp.MustCompile(`https://[^\s]+netlify[^\s]*`)

// Deploy runs a preview deploy, or the production deploy when prod is set.
//
// Success is an over-approximation on purpose: the CLI writes benign
// runtime warnings to stderr and sometimes exits nonzero while the deploy
// itself went through, so a deployed URL in the output counts as success
// regardless of the exit code. The phrase matching is a best-effort
// compatibility shim against the CLI's message text, not a guaranteed
// signal.
func (c *Client) Deploy(ctx context.Context, prod bool) DeployResult {
	args := []string{"deploy"}
	if prod {
		args = append(args, "--prod")
	}

	return interpretDeploy(c.Run(ctx, args...))
}

// interpretDeploy classifies raw deploy output. The CLI splits its output
// across both streams depending on version, e.g. "unsettled top-level
// await" warnings land on stderr while the deployed URL lands on stdout,
// so both are scanned and a URL wins over a nonzero exit code.
func interpretDeploy(res Result) DeployResult {
	url := ExtractURL(res.Stdout + "\n" + res.Stderr)

	return DeployResult{
		Success: res.Success || url != "",
		URL:     url,
		Stdout:  res.Stdout,
		Stderr:  res.Stderr,
	}
}

// ExtractURL scans deploy output line by line for the deployed site URL.
// Three heuristics, first match of each wins: a "website ... url" line, a
// "deploy ... url" line (fallback), and any https URL on the platform
// domain. No validation beyond the scheme prefix.
func ExtractURL(output string) string {
	var websiteURL, deployURL, domainURL string

	for _, line := range strings.Split(output, "\n") {
		lower := strings.ToLower(line)

		switch {
		case websiteURL == "" && strings.Contains(lower, "website") && strings.Contains(lower, "url"):
			if fields := strings.Fields(line); len(fields) > 0 {
				websiteURL = fields[len(fields)-1]
			}
		case deployURL == "" && strings.Contains(lower, "deploy") && strings.Contains(lower, "url"):
			if fields := strings.Fields(line); len(fields) > 0 {
				deployURL = fields[len(fields)-1]
			}
		case domainURL == "" && strings.Contains(line, "https://") && strings.Contains(line, "netlify"):
			if m := netlifyURLRe.FindString(line); m != "" {
				domainURL = m
			}
		}
	}

	if websiteURL != "" {
		return websiteURL
	}
	if deployURL != "" {
		return deployURL
	}
	return domainURL
}
