package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"deploykit/internal/ai"
	"deploykit/internal/analyzer"
	"deploykit/internal/generator"
	"deploykit/internal/history"
	"deploykit/internal/netlify"
	"deploykit/internal/scanner"
)

// ChatClient is the slice of the AI client the handlers need.
type ChatClient interface {
	Chat(ctx context.Context, message, projectContext string) (string, error)
	TestConnection(ctx context.Context) error
}

// Handlers holds the injected components behind the HTTP API. Store may
// be nil when the history database is unavailable; NewAIClient may be
// overridden in tests.
type Handlers struct {
	Debug       bool
	Store       *history.Store
	NewAIClient func(provider, apiKey string) (ChatClient, error)
}

func NewHandlers(debug bool, store *history.Store) *Handlers {
	return &Handlers{
		Debug: debug,
		Store: store,
		NewAIClient: func(provider, apiKey string) (ChatClient, error) {
			return ai.NewClient(provider, apiKey)
		},
	}
}

func (h *Handlers) client(path string) *netlify.Client {
	if path == "" {
		path = "."
	}
	return netlify.NewClient(path, h.Debug)
}

// All responses are 200 with a success flag, matching what the embedded
// UI expects; transport-level status codes are reserved for bad routes.
func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, format string, args ...any) {
	writeJSON(w, map[string]any{"success": false, "error": fmt.Sprintf(format, args...)})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, "invalid request body: %v", err)
		return false
	}
	return true
}

func (h *Handlers) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Path == "" {
		req.Path = "."
	}

	analysis, err := analyzer.Analyze(req.Path)
	if err != nil {
		writeError(w, "%v", err)
		return
	}

	writeJSON(w, map[string]any{
		"success":   true,
		"analysis":  analysis,
		"file_tree": analysis.Files,
	})
}

func (h *Handlers) handleReadFile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path     string `json:"path"`
		Filename string `json:"filename"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Path == "" || req.Filename == "" {
		writeError(w, "path and filename are required")
		return
	}

	// FindFile already returns the root-joined path.
	path, found := scanner.FindFile(req.Path, req.Filename)
	if !found {
		writeError(w, "file not found: %s", req.Filename)
		return
	}

	content, err := scanner.ReadTextFile(path)
	if err != nil {
		writeError(w, "%v", err)
		return
	}

	writeJSON(w, map[string]any{"success": true, "content": content})
}

type generateConfig struct {
	NetlifyToml  *bool    `json:"netlify_toml"`
	Gitignore    *bool    `json:"gitignore"`
	EnvExample   *bool    `json:"env_example"`
	Requirements *bool    `json:"requirements"`
	PublishDir   string   `json:"publish_dir"`
	FunctionsDir string   `json:"functions_dir"`
	BuildCommand string   `json:"build_command"`
	EnvVars      []string `json:"env_vars"`
}

func enabled(flag *bool) bool {
	return flag == nil || *flag
}

func (h *Handlers) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path   string         `json:"path"`
		Config generateConfig `json:"config"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeError(w, "path is required")
		return
	}
	if _, err := os.Stat(req.Path); err != nil {
		writeError(w, "path does not exist: %s", req.Path)
		return
	}

	cfg := req.Config
	type fileResult struct {
		File    string `json:"file"`
		Success bool   `json:"success"`
	}
	var results []fileResult

	write := func(name, content string) error {
		// The UI already confirmed the overwrite client-side.
		_, err := generator.WriteFile(req.Path, name, content, true, nil)
		if err == nil {
			results = append(results, fileResult{File: name, Success: true})
		}
		return err
	}

	if enabled(cfg.NetlifyToml) {
		publish := cfg.PublishDir
		if publish == "" {
			publish = "."
		}
		content := generator.Manifest(generator.ManifestOptions{
			PublishDir:   publish,
			FunctionsDir: cfg.FunctionsDir,
			BuildCommand: cfg.BuildCommand,
		})
		if err := write("netlify.toml", content); err != nil {
			writeError(w, "%v", err)
			return
		}
	}
	if enabled(cfg.Gitignore) {
		if err := write(".gitignore", generator.Gitignore()); err != nil {
			writeError(w, "%v", err)
			return
		}
	}
	if enabled(cfg.EnvExample) && len(cfg.EnvVars) > 0 {
		if err := write(".env.example", generator.EnvExample(cfg.EnvVars)); err != nil {
			writeError(w, "%v", err)
			return
		}
	}
	if enabled(cfg.Requirements) && cfg.FunctionsDir != "" {
		name := cfg.FunctionsDir + "/requirements.txt"
		if err := write(name, generator.Requirements(cfg.EnvVars)); err != nil {
			writeError(w, "%v", err)
			return
		}
	}

	writeJSON(w, map[string]any{"success": true, "results": results})
}

// handleBrowseFolder lists the subdirectories of a path so the UI can
// walk the filesystem. Defaults to the user's home directory; hidden
// directories are skipped.
func (h *Handlers) handleBrowseFolder(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			writeError(w, "%v", err)
			return
		}
		path = home
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		writeError(w, "%v", err)
		return
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		writeError(w, "cannot read directory: %v", err)
		return
	}

	dirs := []string{}
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			dirs = append(dirs, e.Name())
		}
	}

	writeJSON(w, map[string]any{
		"success": true,
		"path":    abs,
		"parent":  filepath.Dir(abs),
		"dirs":    dirs,
	})
}

func (h *Handlers) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.client(".").Teams(r.Context())
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "error": err.Error(), "teams": []netlify.Team{}})
		return
	}
	writeJSON(w, map[string]any{"success": true, "teams": teams})
}

func (h *Handlers) handleListSites(w http.ResponseWriter, r *http.Request) {
	sites, err := h.client(".").Sites(r.Context())
	if err != nil {
		writeJSON(w, map[string]any{"success": false, "error": err.Error(), "sites": []netlify.Site{}})
		return
	}
	writeJSON(w, map[string]any{"success": true, "sites": sites})
}

func (h *Handlers) handleCheckCLI(w http.ResponseWriter, r *http.Request) {
	c := h.client(".")
	installed := c.CheckCLI(r.Context())
	loggedIn := false
	if installed {
		loggedIn = c.LoggedIn(r.Context())
	}
	writeJSON(w, map[string]any{"cli_installed": installed, "logged_in": loggedIn})
}

func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	c := h.client(".")
	if c.LoggedIn(r.Context()) {
		writeJSON(w, map[string]any{"success": true, "message": "already logged in"})
		return
	}

	// Blocks until the user completes or cancels browser authorization.
	res, ok := c.LoginCapture(r.Context())
	writeJSON(w, map[string]any{
		"success": ok,
		"message": loginMessage(ok),
		"stdout":  res.Stdout,
		"stderr":  res.Stderr,
	})
}

func loginMessage(ok bool) string {
	if ok {
		return "login successful"
	}
	return "login failed or cancelled"
}

func (h *Handlers) handleInitSite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path        string `json:"path"`
		SiteName    string `json:"site_name"`
		AccountSlug string `json:"account_slug"`
	}
	if !decode(w, r, &req) {
		return
	}

	c := h.client(req.Path)
	if c.Linked(r.Context()) {
		writeJSON(w, map[string]any{"success": true, "message": "site already linked"})
		return
	}

	res, created := c.CreateSite(r.Context(), req.SiteName, req.AccountSlug)
	if !created {
		writeJSON(w, map[string]any{"success": false, "error": "failed to create site", "stderr": res.Stderr})
		return
	}
	writeJSON(w, map[string]any{
		"success": true,
		"message": "site created and linked",
		"stdout":  res.Stdout,
		"stderr":  res.Stderr,
	})
}

func (h *Handlers) handleUpdateDomain(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path    string `json:"path"`
		NewName string `json:"new_name"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.NewName == "" {
		writeError(w, "new site name is required")
		return
	}

	res, ok := h.client(req.Path).UpdateSiteName(r.Context(), req.NewName)
	if !ok {
		writeJSON(w, map[string]any{"success": false, "error": "failed to update site name", "stderr": res.Stderr})
		return
	}
	writeJSON(w, map[string]any{
		"success": true,
		"message": fmt.Sprintf("domain updated to %s.netlify.app", req.NewName),
		"stdout":  res.Stdout,
	})
}

func (h *Handlers) handleDeploy(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
		Type string `json:"type"`
	}
	if !decode(w, r, &req) {
		return
	}

	prod := req.Type != "" && req.Type != "preview"
	result := h.client(req.Path).Deploy(r.Context(), prod)

	if h.Store != nil {
		_ = h.Store.Record(r.Context(), history.Entry{
			DeployedAt: time.Now(),
			Path:       req.Path,
			Production: prod,
			Success:    result.Success,
			URL:        result.URL,
		})
	}

	writeJSON(w, result)
}

func (h *Handlers) handleRunCommand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path    string   `json:"path"`
		Command []string `json:"command"`
	}
	if !decode(w, r, &req) {
		return
	}
	if len(req.Command) == 0 {
		writeError(w, "no command specified")
		return
	}

	// Only deploy CLI subcommands pass through; a leading binary name
	// from older UI payloads is tolerated and stripped.
	args := req.Command
	if args[0] == "netlify" {
		args = args[1:]
	}
	if len(args) == 0 {
		writeError(w, "no command specified")
		return
	}

	writeJSON(w, h.client(req.Path).Run(r.Context(), args...))
}

func (h *Handlers) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message  string `json:"message"`
		Provider string `json:"provider"`
		APIKey   string `json:"api_key"`
		Context  string `json:"context"`
	}
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, "message is required")
		return
	}
	if req.APIKey == "" {
		writeError(w, "API key is required")
		return
	}
	if req.Provider == "" {
		req.Provider = ai.ProviderOpenAI
	}

	client, err := h.NewAIClient(req.Provider, req.APIKey)
	if err != nil {
		writeError(w, "%v", err)
		return
	}

	reply, err := client.Chat(r.Context(), req.Message, req.Context)
	if err != nil {
		writeError(w, "%v", err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "response": reply})
}

func (h *Handlers) handleTestConnection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Provider string `json:"provider"`
		APIKey   string `json:"api_key"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.APIKey == "" {
		writeError(w, "API key is required")
		return
	}
	if req.Provider == "" {
		req.Provider = ai.ProviderOpenAI
	}

	client, err := h.NewAIClient(req.Provider, req.APIKey)
	if err != nil {
		writeError(w, "%v", err)
		return
	}
	if err := client.TestConnection(r.Context()); err != nil {
		writeError(w, "%v", err)
		return
	}
	writeJSON(w, map[string]any{"success": true, "message": "connection ok"})
}

func (h *Handlers) handleHistory(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		writeJSON(w, map[string]any{"success": true, "history": []history.Entry{}})
		return
	}

	entries, err := h.Store.Recent(r.Context(), 20)
	if err != nil {
		writeError(w, "%v", err)
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, map[string]any{"success": true, "history": entries})
}
