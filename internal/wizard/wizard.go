// Package wizard drives the guided analyze-configure-deploy flow in the
// terminal.
package wizard

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"deploykit/internal/analyzer"
	"deploykit/internal/generator"
	"deploykit/internal/history"
	"deploykit/internal/netlify"
	"deploykit/internal/ui"
)

const totalSteps = 5

// Wizard walks a project from analysis to a live deploy.
type Wizard struct {
	dir     string
	styles  ui.Styles
	prompt  *Prompter
	netlify *netlify.Client
	store   *history.Store
	out     io.Writer
}

// Options configures a wizard run. Store may be nil when history
// recording is unavailable.
type Options struct {
	Dir    string
	Debug  bool
	Store  *history.Store
	Input  io.Reader
	Output io.Writer
}

func New(opts Options) *Wizard {
	in := opts.Input
	if in == nil {
		in = os.Stdin
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	return &Wizard{
		dir:     opts.Dir,
		styles:  ui.NewStyles(),
		prompt:  NewPrompter(in, out),
		netlify: netlify.NewClient(opts.Dir, opts.Debug),
		store:   opts.Store,
		out:     out,
	}
}

// Run executes the full flow. Aborts at the first unrecoverable failure.
func (w *Wizard) Run(ctx context.Context) error {
	fmt.Fprintln(w.out, w.styles.Banner.Render("deploykit guided deploy"))

	analysis, err := w.stepAnalyze()
	if err != nil {
		return err
	}
	if err := w.stepGenerate(analysis); err != nil {
		return err
	}
	if err := w.stepLogin(ctx); err != nil {
		return err
	}
	if err := w.stepSite(ctx); err != nil {
		return err
	}
	return w.stepDeploy(ctx, analysis)
}

func (w *Wizard) stepAnalyze() (*analyzer.Analysis, error) {
	w.styles.Stepf(1, totalSteps, "Analyze project")

	analysis, err := analyzer.Analyze(w.dir)
	if err != nil {
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	w.styles.Infof("Project type: %s", analysis.TypeName)
	w.styles.Infof("Publish directory: %s", analysis.PublishDir)
	if analysis.FunctionsDir != "" {
		w.styles.Infof("Functions directory: %s", analysis.FunctionsDir)
	}
	if analysis.BuildCommand != "" {
		w.styles.Infof("Build command: %s", analysis.BuildCommand)
	}
	w.styles.Infof("Files scanned: %d", analysis.FileCount)
	if len(analysis.RequiredEnvVars) > 0 {
		w.styles.Warnf("Environment variables referenced: %s", strings.Join(analysis.RequiredEnvVars, ", "))
	}

	// Detected settings are defaults, not decisions.
	publish, err := w.prompt.Line("Publish directory", analysis.PublishDir)
	if err != nil {
		return nil, err
	}
	analysis.PublishDir = publish

	if analysis.FunctionsDir != "" {
		functions, ferr := w.prompt.Line("Functions directory", analysis.FunctionsDir)
		if ferr != nil {
			return nil, ferr
		}
		analysis.FunctionsDir = functions
	}
	if analysis.BuildCommand != "" {
		build, berr := w.prompt.Line("Build command", analysis.BuildCommand)
		if berr != nil {
			return nil, berr
		}
		analysis.BuildCommand = build
	}

	return analysis, nil
}

func (w *Wizard) stepGenerate(analysis *analyzer.Analysis) error {
	w.styles.Stepf(2, totalSteps, "Generate configuration")

	confirm := func(name string) bool {
		ok, err := w.prompt.YesNo(fmt.Sprintf("%s already exists. Overwrite?", name), false)
		return err == nil && ok
	}

	files := map[string]string{
		"netlify.toml": generator.Manifest(generator.ManifestOptions{
			PublishDir:   analysis.PublishDir,
			FunctionsDir: analysis.FunctionsDir,
			BuildCommand: analysis.BuildCommand,
		}),
	}
	if !analysis.Detected.Gitignore {
		files[".gitignore"] = generator.Gitignore()
	}
	if len(analysis.RequiredEnvVars) > 0 && !analysis.Detected.EnvExample {
		files[".env.example"] = generator.EnvExample(analysis.RequiredEnvVars)
	}
	if analysis.FunctionsDir != "" && !analysis.Detected.Requirements {
		files[analysis.FunctionsDir+"/requirements.txt"] = generator.Requirements(analysis.RequiredEnvVars)
	}

	for _, name := range orderedNames(files) {
		status, err := generator.WriteFile(w.dir, name, files[name], false, confirm)
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		if status == generator.Written {
			w.styles.Successf("wrote %s", name)
		} else {
			w.styles.Infof("kept existing %s", name)
		}
	}
	return nil
}

// orderedNames keeps netlify.toml first and the rest alphabetical so the
// run reads the same every time.
func orderedNames(files map[string]string) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		if name != "netlify.toml" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{"netlify.toml"}, names...)
}

func (w *Wizard) stepLogin(ctx context.Context) error {
	w.styles.Stepf(3, totalSteps, "Netlify CLI")

	if !w.netlify.CheckCLI(ctx) {
		w.styles.Errorf("Netlify CLI not found")
		w.styles.Infof("Install it with: npm install -g netlify-cli")
		return fmt.Errorf("netlify CLI is not installed")
	}
	w.styles.Successf("Netlify CLI %s", w.netlify.Version(ctx))

	if w.netlify.LoggedIn(ctx) {
		w.styles.Successf("already logged in")
		return nil
	}

	ok, err := w.prompt.YesNo("Not logged in. Open browser to log in now?", true)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("login required to continue")
	}
	if err := w.netlify.Login(ctx); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	w.styles.Successf("logged in")
	return nil
}

func (w *Wizard) stepSite(ctx context.Context) error {
	w.styles.Stepf(4, totalSteps, "Site setup")

	if w.netlify.Linked(ctx) {
		w.styles.Successf("project already linked to a site")
		return nil
	}

	name, err := w.prompt.Line("Site name (blank for a random one)", "")
	if err != nil {
		return err
	}

	var accountSlug string
	if teams, terr := w.netlify.Teams(ctx); terr == nil && len(teams) > 1 {
		labels := make([]string, len(teams))
		for i, t := range teams {
			labels[i] = fmt.Sprintf("%s (%s)", t.Name, t.Slug)
		}
		idx, cerr := w.prompt.Choice("Which team should own the site?", labels)
		if cerr != nil {
			return cerr
		}
		accountSlug = teams[idx].Slug
	} else if terr == nil && len(teams) == 1 {
		accountSlug = teams[0].Slug
	}

	res, created := w.netlify.CreateSite(ctx, name, accountSlug)
	if !created {
		w.styles.Errorf("site creation failed")
		if msg := strings.TrimSpace(res.Stderr); msg != "" {
			w.styles.Infof("%s", msg)
		}
		return fmt.Errorf("failed to create site")
	}
	w.styles.Successf("site created and linked")
	return nil
}

func (w *Wizard) stepDeploy(ctx context.Context, analysis *analyzer.Analysis) error {
	w.styles.Stepf(5, totalSteps, "Deploy")

	if err := w.offerEnvVars(ctx, analysis.RequiredEnvVars); err != nil {
		return err
	}

	w.styles.Infof("running a draft preview deploy, this can take a minute...")
	if err := w.runDeploy(ctx, false); err != nil {
		return err
	}

	prod, err := w.prompt.YesNo("Preview looks good. Deploy to production?", false)
	if err != nil {
		return err
	}
	if !prod {
		w.styles.Infof("stopping at the preview. Run this again or use the deploy command when ready.")
		return nil
	}

	w.styles.Infof("deploying to production...")
	return w.runDeploy(ctx, true)
}

// offerEnvVars walks the inferred variables and sets the ones the user
// provides a value for. Blank input skips a variable.
func (w *Wizard) offerEnvVars(ctx context.Context, vars []string) error {
	if len(vars) == 0 {
		return nil
	}

	ok, err := w.prompt.YesNo("Set the referenced environment variables on the site now?", false)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	for _, v := range vars {
		value, verr := w.prompt.Line(fmt.Sprintf("Value for %s (blank to skip)", v), "")
		if verr != nil {
			return verr
		}
		if value == "" {
			continue
		}
		if w.netlify.SetEnv(ctx, v, value) {
			w.styles.Successf("set %s", v)
		} else {
			w.styles.Errorf("failed to set %s", v)
		}
	}
	return nil
}

func (w *Wizard) runDeploy(ctx context.Context, prod bool) error {
	result := w.netlify.Deploy(ctx, prod)

	if w.store != nil {
		_ = w.store.Record(ctx, history.Entry{
			DeployedAt: time.Now(),
			Path:       w.dir,
			Production: prod,
			Success:    result.Success,
			URL:        result.URL,
		})
	}

	if !result.Success {
		w.styles.Errorf("deploy failed")
		if msg := strings.TrimSpace(result.Stderr); msg != "" {
			w.styles.Infof("%s", msg)
		}
		return fmt.Errorf("deploy failed")
	}

	w.styles.Successf("deploy complete")
	if result.URL != "" {
		fmt.Fprintln(w.out, w.styles.URL.Render(result.URL))
	}
	return nil
}
