// Package netlify wraps the Netlify CLI as an external process.
//
// The CLI is the only interface to the platform here. Its human-readable
// output is not a stable contract, so success detection layers phrase
// heuristics over exit codes; see deploy.go for the rationale.
package netlify

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/viper"
)

// Client runs Netlify CLI subcommands in a project directory.
type Client struct {
	dir   string
	bin   string
	debug bool
}

// Result carries the outcome of one CLI invocation. A process that could
// not start is reported through Stderr rather than a panic or a lost error.
type Result struct {
	Success bool   `json:"success"`
	Stdout  string `json:"stdout"`
	Stderr  string `json:"stderr"`
}

// ResolveBin returns the CLI binary to invoke, honoring the netlify.bin
// config override.
func ResolveBin() string {
	if bin := strings.TrimSpace(viper.GetString("netlify.bin")); bin != "" {
		return bin
	}
	return "netlify"
}

// NewClient creates a client bound to a project directory.
func NewClient(dir string, debug bool) *Client {
	return &Client{dir: dir, bin: ResolveBin(), debug: debug}
}

// Run executes a CLI subcommand, capturing stdout and stderr separately.
// The generic passthrough for arbitrary subcommands.
func (c *Client) Run(ctx context.Context, args ...string) Result {
	if _, err := exec.LookPath(c.bin); err != nil {
		return Result{Stderr: fmt.Sprintf("%s not found in PATH", c.bin)}
	}

	if c.debug {
		fmt.Fprintf(os.Stderr, "[netlify] %s %s\n", c.bin, strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, c.bin, args...)
	cmd.Dir = c.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return Result{
		Success: err == nil,
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
	}
}

// runInteractive executes a subcommand wired to the terminal. Used for
// flows where the CLI itself prompts (login, init). Blocks until the
// external process exits.
func (c *Client) runInteractive(ctx context.Context, args ...string) error {
	if _, err := exec.LookPath(c.bin); err != nil {
		return fmt.Errorf("%s not found in PATH", c.bin)
	}

	cmd := exec.CommandContext(ctx, c.bin, args...)
	cmd.Dir = c.dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s failed: %w", c.bin, strings.Join(args, " "), err)
	}
	return nil
}

// CheckCLI reports whether the Netlify CLI is installed and answers
// a version probe.
func (c *Client) CheckCLI(ctx context.Context) bool {
	return c.Run(ctx, "--version").Success
}

// Version returns the CLI version string, empty when unavailable.
func (c *Client) Version(ctx context.Context) string {
	res := c.Run(ctx, "--version")
	if !res.Success {
		return ""
	}
	return strings.TrimSpace(res.Stdout)
}

// LoggedIn checks the login state via the status subcommand. Textual
// match: the CLI prints "Logged in" variants when authenticated.
func (c *Client) LoggedIn(ctx context.Context) bool {
	res := c.Run(ctx, "status")
	return strings.Contains(strings.ToLower(res.Stdout), "logged in")
}

// Linked reports whether the project directory is linked to a site.
func (c *Client) Linked(ctx context.Context) bool {
	res := c.Run(ctx, "status")
	return strings.Contains(res.Stdout, "Current site")
}

// Status returns the raw status output.
func (c *Client) Status(ctx context.Context) Result {
	return c.Run(ctx, "status")
}

// Login runs the interactive login flow. The CLI opens a browser and
// blocks until the user completes or cancels authorization.
func (c *Client) Login(ctx context.Context) error {
	return c.runInteractive(ctx, "login")
}

// LoginCapture runs login with captured output for non-terminal callers.
// Success is the exit code or any of the CLI's login confirmation phrases.
func (c *Client) LoginCapture(ctx context.Context) (Result, bool) {
	res := c.Run(ctx, "login")
	all := res.Stdout + res.Stderr
	ok := res.Success ||
		strings.Contains(strings.ToLower(all), "logged in") ||
		strings.Contains(all, "Successfully")
	return res, ok
}

// CreateSite creates a new site, optionally named and placed in a team.
// The account slug avoids the CLI's interactive team prompt. Creation is
// confirmed by phrase match because the CLI exits nonzero on benign
// warnings.
func (c *Client) CreateSite(ctx context.Context, name, accountSlug string) (Result, bool) {
	args := []string{"sites:create"}
	if name != "" {
		args = append(args, "--name", name)
	}
	if accountSlug != "" {
		args = append(args, "--account-slug", accountSlug)
	}

	res := c.Run(ctx, args...)
	all := res.Stdout + res.Stderr
	created := strings.Contains(all, "Project Created") ||
		strings.Contains(all, "Site Created") ||
		strings.Contains(all, "Linked to")
	return res, created || res.Success
}

// UpdateSiteName renames the linked site (and thereby its subdomain).
func (c *Client) UpdateSiteName(ctx context.Context, name string) (Result, bool) {
	res := c.Run(ctx, "sites:update", "--name", name)
	ok := res.Success || strings.Contains(res.Stdout, "Site updated")
	return res, ok
}

// SetEnv sets one environment variable on the linked site.
func (c *Client) SetEnv(ctx context.Context, key, value string) bool {
	return c.Run(ctx, "env:set", key, value).Success
}
