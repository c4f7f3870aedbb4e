// Package generator renders the deployment configuration artifacts.
//
// Rendering is deliberately hand-built line by line: the output must stay
// byte-stable across invocations and human-diffable, which a marshaller
// does not guarantee. Parsing existing manifests goes through a real TOML
// decoder instead, see manifest.go.
package generator

import (
	"fmt"
	"strings"

	"deploykit/internal/analyzer"
)

// DefaultPythonVersion is pinned into generated manifests when a functions
// directory is configured.
const DefaultPythonVersion = "3.10"

// ManifestOptions are the knobs for netlify.toml rendering.
type ManifestOptions struct {
	PublishDir    string
	FunctionsDir  string
	BuildCommand  string
	PythonVersion string
}

// Manifest renders a netlify.toml. The publish key is always present;
// functions and command are emitted only when set. A functions directory
// additionally pins the Python runtime and rewrites /api/* to the platform
// function path with status 200 (a rewrite, not a redirect).
func Manifest(opts ManifestOptions) string {
	publish := opts.PublishDir
	if publish == "" {
		publish = "."
	}
	pyVersion := opts.PythonVersion
	if pyVersion == "" {
		pyVersion = DefaultPythonVersion
	}

	lines := []string{"[build]"}
	if opts.FunctionsDir != "" {
		lines = append(lines, fmt.Sprintf("  functions = %q", opts.FunctionsDir))
	}
	lines = append(lines, fmt.Sprintf("  publish = %q", publish))
	if opts.BuildCommand != "" {
		lines = append(lines, fmt.Sprintf("  command = %q", opts.BuildCommand))
	}

	if opts.FunctionsDir != "" {
		lines = append(lines,
			"",
			"[build.environment]",
			fmt.Sprintf("  PYTHON_VERSION = %q", pyVersion),
			"",
			"[[redirects]]",
			`  from = "/api/*"`,
			`  to = "/.netlify/functions/:splat"`,
			"  status = 200",
		)
	}

	return strings.Join(lines, "\n") + "\n"
}

// Gitignore returns the fixed ignore-file template. No parameters: the
// output is byte-identical on every call.
func Gitignore() string {
	return `# Environment files (contain secrets)
.env
.env.local
.env.production

# Netlify local state
.netlify/

# Python
__pycache__/
*.py[cod]
venv/
.venv/

# Node.js
node_modules/

# OS artifacts
.DS_Store
Thumbs.db

# Editors
.vscode/
.idea/
`
}

// EnvExample renders a .env.example for the given variables, in order.
// Known variables get a descriptive comment; unknown ones just the line.
func EnvExample(vars []string) string {
	lines := []string{
		"# Environment variable template",
		"# Copy this file to .env and fill in real values",
		"",
	}

	for _, v := range vars {
		if desc := analyzer.EnvVarDescription(v); desc != "" {
			lines = append(lines, desc)
		}
		lines = append(lines, fmt.Sprintf("%s=your_%s_here", v, strings.ToLower(v)))
		lines = append(lines, "")
	}

	lines = append(lines, "# Never commit the real .env file to git!")
	return strings.Join(lines, "\n") + "\n"
}

// Requirements maps detected credential variables to the Python packages
// the functions will need. Emits a placeholder comment when none apply so
// the file is never empty.
func Requirements(vars []string) string {
	has := make(map[string]bool, len(vars))
	for _, v := range vars {
		has[v] = true
	}

	var packages []string
	if has["OPENAI_API_KEY"] {
		packages = append(packages, "openai")
	}
	if has["GOOGLE_API_KEY"] {
		packages = append(packages, "google-generativeai")
	}
	if has["ANTHROPIC_API_KEY"] {
		packages = append(packages, "anthropic")
	}

	if len(packages) == 0 {
		packages = append(packages, "# Add the Python packages your functions need")
	}

	return strings.Join(packages, "\n") + "\n"
}
