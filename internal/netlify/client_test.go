package netlify

import (
	"context"
	"testing"
)

func TestExtractURL(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{
			name:   "website url line",
			output: "Deploy is live!\nWebsite URL: https://my-site.netlify.app\n",
			want:   "https://my-site.netlify.app",
		},
		{
			name:   "draft url line",
			output: "Website Draft URL: https://5f0c--my-site.netlify.app",
			want:   "https://5f0c--my-site.netlify.app",
		},
		{
			name:   "deploy url fallback",
			output: "Build logs ready\nUnique Deploy URL: https://abc123--my-site.netlify.app\n",
			want:   "https://abc123--my-site.netlify.app",
		},
		{
			name:   "platform domain regex",
			output: "your site is at https://cool-site.netlify.app now",
			want:   "https://cool-site.netlify.app",
		},
		{
			name:   "website beats deploy url",
			output: "Deploy URL: https://deploy--x.netlify.app\nWebsite URL: https://x.netlify.app\n",
			want:   "https://x.netlify.app",
		},
		{
			name:   "first website match wins",
			output: "Website URL: https://first.netlify.app\nWebsite URL: https://second.netlify.app\n",
			want:   "https://first.netlify.app",
		},
		{
			name:   "no url",
			output: "Error: not logged in\n",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractURL(tt.output); got != tt.want {
				t.Errorf("ExtractURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInterpretDeployURLOverridesExitCode(t *testing.T) {
	// A nonzero exit with a benign stderr warning still counts as success
	// when the output carries a deployed URL.
	res := Result{
		Success: false,
		Stdout:  "Website URL: https://my-site.netlify.app\n",
		Stderr:  "warning: unsettled top-level await detected\n",
	}

	dr := interpretDeploy(res)
	if !dr.Success {
		t.Error("interpretDeploy().Success = false, want true (URL present)")
	}
	if dr.URL != "https://my-site.netlify.app" {
		t.Errorf("interpretDeploy().URL = %q", dr.URL)
	}
}

func TestInterpretDeployFailure(t *testing.T) {
	dr := interpretDeploy(Result{
		Success: false,
		Stderr:  "Error: no site linked\n",
	})
	if dr.Success {
		t.Error("interpretDeploy().Success = true, want false")
	}
	if dr.URL != "" {
		t.Errorf("interpretDeploy().URL = %q, want empty", dr.URL)
	}
}

func TestInterpretDeployExitCodeSuccess(t *testing.T) {
	dr := interpretDeploy(Result{Success: true, Stdout: "done\n"})
	if !dr.Success {
		t.Error("interpretDeploy().Success = false for clean exit")
	}
}

func TestParseTeams(t *testing.T) {
	teams, err := parseTeams(`[{"name":"Personal","slug":"personal","id":"t1"},{"name":"Work","slug":"work","id":"t2"}]`)
	if err != nil {
		t.Fatalf("parseTeams() error = %v", err)
	}
	if len(teams) != 2 || teams[0].Slug != "personal" || teams[1].Name != "Work" {
		t.Errorf("parseTeams() = %+v", teams)
	}
}

func TestParseTeamsMalformed(t *testing.T) {
	if _, err := parseTeams("Error: not logged in"); err == nil {
		t.Error("parseTeams() on non-JSON succeeded, want error")
	}
}

func TestParseSites(t *testing.T) {
	sites, err := parseSites(`[
		{"name":"alpha","ssl_url":"https://alpha.netlify.app","url":"http://alpha.netlify.app","updated_at":"2024-06-01T12:30:00.000Z"},
		{"name":"beta","url":"http://beta.netlify.app"},
		{"name":"gamma"}
	]`)
	if err != nil {
		t.Fatalf("parseSites() error = %v", err)
	}

	if sites[0].URL != "https://alpha.netlify.app" {
		t.Errorf("ssl_url not preferred: %q", sites[0].URL)
	}
	if sites[0].Updated != "2024-06-01" {
		t.Errorf("updated date not truncated: %q", sites[0].Updated)
	}
	if sites[1].URL != "http://beta.netlify.app" {
		t.Errorf("url fallback broken: %q", sites[1].URL)
	}
	if sites[2].URL != "https://gamma.netlify.app" {
		t.Errorf("default subdomain fallback broken: %q", sites[2].URL)
	}
}

func TestParseSitesCap(t *testing.T) {
	out := "["
	for i := 0; i < 15; i++ {
		if i > 0 {
			out += ","
		}
		out += `{"name":"s"}`
	}
	out += "]"

	sites, err := parseSites(out)
	if err != nil {
		t.Fatalf("parseSites() error = %v", err)
	}
	if len(sites) != maxListedSites {
		t.Errorf("parseSites() returned %d sites, want %d", len(sites), maxListedSites)
	}
}

func TestRunMissingBinary(t *testing.T) {
	c := &Client{dir: t.TempDir(), bin: "definitely-not-a-real-binary-xyz"}
	res := c.Run(context.Background(), "status")

	if res.Success {
		t.Error("Run() with missing binary reported success")
	}
	if res.Stderr == "" {
		t.Error("Run() with missing binary left Stderr empty")
	}
}

func TestRunCapturesOutput(t *testing.T) {
	// Any POSIX system has echo; exercise the capture path with it.
	c := &Client{dir: t.TempDir(), bin: "echo"}
	res := c.Run(context.Background(), "hello", "world")

	if !res.Success {
		t.Fatalf("Run() via echo failed: %+v", res)
	}
	if res.Stdout != "hello world\n" {
		t.Errorf("Run().Stdout = %q", res.Stdout)
	}
}
