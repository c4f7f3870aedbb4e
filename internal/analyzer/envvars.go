package analyzer

import (
	"path/filepath"
	"strings"

	"deploykit/internal/scanner"
)

// EnvVarPattern ties an environment-variable name to the content keywords
// that suggest a project needs it.
type EnvVarPattern struct {
	Name     string
	Keywords []string
}

// EnvVarPatterns is the closed vocabulary of variables the inference pass
// can produce, in display order. Never extended from file content.
var EnvVarPatterns = []EnvVarPattern{
	{"OPENAI_API_KEY", []string{"openai", "gpt", "chatgpt"}},
	{"GOOGLE_API_KEY", []string{"google", "gemini", "generativeai"}},
	{"ANTHROPIC_API_KEY", []string{"anthropic", "claude"}},
	{"DATABASE_URL", []string{"database", "postgres", "mysql", "mongodb"}},
	{"SECRET_KEY", []string{"secret", "jwt", "session"}},
	{"API_KEY", []string{"api_key", "apikey"}},
}

// sourceExts are the file extensions whose content is scanned for keywords.
var sourceExts = map[string]bool{
	".py":  true,
	".js":  true,
	".ts":  true,
	".jsx": true,
	".tsx": true,
}

// EnvVarDescription returns the template comment for a known variable,
// or "" when the variable has no description.
func EnvVarDescription(name string) string {
	switch name {
	case "OPENAI_API_KEY":
		return "# OpenAI API key - https://platform.openai.com/api-keys"
	case "GOOGLE_API_KEY":
		return "# Google API key (Gemini) - https://aistudio.google.com/app/apikey"
	case "ANTHROPIC_API_KEY":
		return "# Anthropic API key - https://console.anthropic.com/"
	case "DATABASE_URL":
		return "# Database connection string"
	case "SECRET_KEY":
		return "# Application secret key"
	case "API_KEY":
		return "# Generic API key"
	default:
		return ""
	}
}

// InferEnvVars scans the content of source files under root for keyword
// matches against EnvVarPatterns. Reads are best-effort: unreadable or
// binary files contribute nothing. The result is duplicate-free and ordered
// by the pattern table, so output is stable across runs.
func InferEnvVars(root string, files []string) []string {
	found := make(map[string]bool)

	for _, f := range files {
		if !sourceExts[strings.ToLower(filepath.Ext(f))] {
			continue
		}
		content, ok := scanner.ReadLowercase(filepath.Join(root, filepath.FromSlash(f)))
		if !ok {
			continue
		}
		for _, p := range EnvVarPatterns {
			if found[p.Name] {
				continue
			}
			for _, kw := range p.Keywords {
				if strings.Contains(content, kw) {
					found[p.Name] = true
					break
				}
			}
		}
	}

	vars := make([]string, 0, len(found))
	for _, p := range EnvVarPatterns {
		if found[p.Name] {
			vars = append(vars, p.Name)
		}
	}
	return vars
}
