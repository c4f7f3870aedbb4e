// Package analyzer classifies a scanned project and derives deployment metadata.
package analyzer

import (
	"strings"

	"deploykit/internal/scanner"
)

// ProjectType is the deployment shape inferred for a project.
type ProjectType string

const (
	// Static is the fallback type: plain HTML/CSS/JS published as-is.
	Static ProjectType = "static"
	// PythonFunctions marks projects with Python serverless functions.
	PythonFunctions ProjectType = "python-functions"
	// NodeProject marks projects with a package.json build step.
	NodeProject ProjectType = "node-project"
)

// DisplayName returns the human-readable label for a project type.
func (t ProjectType) DisplayName() string {
	switch t {
	case Static:
		return "Static site (HTML/CSS/JS)"
	case PythonFunctions:
		return "Python serverless functions"
	case NodeProject:
		return "Node.js project"
	default:
		return string(t)
	}
}

// Detected records which well-known artifacts the scan found.
type Detected struct {
	HTML         bool `json:"has_html" yaml:"has_html"`
	Python       bool `json:"has_python" yaml:"has_python"`
	Node         bool `json:"has_node" yaml:"has_node"`
	Manifest     bool `json:"has_netlify_config" yaml:"has_netlify_config"`
	EnvFile      bool `json:"has_env_file" yaml:"has_env_file"`
	EnvExample   bool `json:"has_env_example" yaml:"has_env_example"`
	Gitignore    bool `json:"has_gitignore" yaml:"has_gitignore"`
	Requirements bool `json:"has_requirements" yaml:"has_requirements"`
}

// Analysis is the result of classifying one scan. It is a value object:
// every analysis is recomputed from the file system, never patched in place.
type Analysis struct {
	Type            ProjectType `json:"type" yaml:"type"`
	TypeName        string      `json:"type_name" yaml:"type_name"`
	PublishDir      string      `json:"publish_dir" yaml:"publish_dir"`
	FunctionsDir    string      `json:"functions_dir,omitempty" yaml:"functions_dir,omitempty"`
	BuildCommand    string      `json:"build_command,omitempty" yaml:"build_command,omitempty"`
	Detected        Detected    `json:"detected" yaml:"detected"`
	PythonFiles     []string    `json:"python_files,omitempty" yaml:"python_files,omitempty"`
	RequiredEnvVars []string    `json:"env_vars_needed" yaml:"env_vars_needed"`
	Files           []string    `json:"files" yaml:"files"`
	FileCount       int         `json:"file_count" yaml:"file_count"`
	Path            string      `json:"path" yaml:"path"`
}

// DefaultBuildCommand is assigned to node projects.
const DefaultBuildCommand = "npm run build"

// rule is one step of the ordered classification pass. Rules run top to
// bottom and later rules may override earlier decisions, so precedence is
// the slice order below and nothing else.
type rule struct {
	name  string
	apply func(a *Analysis)
}

var rules = []rule{
	{
		name: "python-functions-dir",
		apply: func(a *Analysis) {
			for _, py := range a.PythonFiles {
				lower := strings.ToLower(py)
				if !strings.Contains(lower, "functions") && !strings.Contains(lower, "netlify") {
					continue
				}
				a.Type = PythonFunctions
				a.FunctionsDir = functionsDirFor(py)
				// First qualifying file wins.
				return
			}
		},
	},
	{
		name: "python-present",
		apply: func(a *Analysis) {
			// Python outside a functions directory still means the project
			// wants functions, it just needs the directory configured.
			if a.Type == Static && a.Detected.Python {
				a.Type = PythonFunctions
			}
		},
	},
	{
		name: "node-overrides",
		apply: func(a *Analysis) {
			if a.Detected.Node {
				a.Type = NodeProject
				a.BuildCommand = DefaultBuildCommand
			}
		},
	},
}

// Classify derives an Analysis from a scanned file list. It does not touch
// the file system; content-based env-var inference is layered on by Analyze.
func Classify(files []string) *Analysis {
	a := &Analysis{
		Type:       Static,
		PublishDir: ".",
		Files:      files,
		FileCount:  len(files),
	}

	for _, f := range files {
		lower := strings.ToLower(f)
		base := lower
		if i := strings.LastIndex(lower, "/"); i >= 0 {
			base = lower[i+1:]
		}

		if strings.HasSuffix(lower, ".html") {
			a.Detected.HTML = true
		}
		if strings.HasSuffix(lower, ".py") {
			a.Detected.Python = true
			a.PythonFiles = append(a.PythonFiles, f)
		}
		switch base {
		case "package.json":
			a.Detected.Node = true
		case "netlify.toml":
			a.Detected.Manifest = true
		case ".env":
			a.Detected.EnvFile = true
		case ".env.example":
			a.Detected.EnvExample = true
		case ".gitignore":
			a.Detected.Gitignore = true
		case "requirements.txt":
			a.Detected.Requirements = true
		}
	}

	for _, r := range rules {
		r.apply(a)
	}

	a.TypeName = a.Type.DisplayName()
	return a
}

// Analyze scans root and classifies it, including content-based
// environment-variable inference.
func Analyze(root string) (*Analysis, error) {
	files, err := scanner.Scan(root)
	if err != nil {
		return nil, err
	}

	a := Classify(files)
	a.Path = root
	a.RequiredEnvVars = InferEnvVars(root, files)
	return a, nil
}

// functionsDirFor returns the path prefix up to and including the first
// segment whose name contains "functions" (case-insensitive). Empty when
// no segment qualifies.
func functionsDirFor(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if strings.Contains(strings.ToLower(part), "functions") {
			return strings.Join(parts[:i+1], "/")
		}
	}
	return ""
}
