package analyzer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestClassifyEmpty(t *testing.T) {
	a := Classify(nil)

	if a.Type != Static {
		t.Errorf("Classify(nil).Type = %s, want static", a.Type)
	}
	if a.PublishDir != "." {
		t.Errorf("Classify(nil).PublishDir = %q, want \".\"", a.PublishDir)
	}
	if len(a.RequiredEnvVars) != 0 {
		t.Errorf("Classify(nil).RequiredEnvVars = %v, want empty", a.RequiredEnvVars)
	}
}

func TestClassifyStaticSite(t *testing.T) {
	a := Classify([]string{"index.html"})

	if a.Type != Static {
		t.Errorf("Type = %s, want static", a.Type)
	}
	if !a.Detected.HTML {
		t.Error("Detected.HTML = false, want true")
	}
}

func TestClassifyPythonFunctionsDir(t *testing.T) {
	a := Classify([]string{
		"netlify/functions/handler.py",
		"netlify/functions/requirements.txt",
	})

	if a.Type != PythonFunctions {
		t.Errorf("Type = %s, want python-functions", a.Type)
	}
	if a.FunctionsDir != "netlify/functions" {
		t.Errorf("FunctionsDir = %q, want netlify/functions", a.FunctionsDir)
	}
	if !a.Detected.Requirements {
		t.Error("Detected.Requirements = false, want true")
	}
}

func TestClassifyPythonFunctionsFirstMatchWins(t *testing.T) {
	a := Classify([]string{
		"api/functions/first.py",
		"other/functions/second.py",
	})

	if a.FunctionsDir != "api/functions" {
		t.Errorf("FunctionsDir = %q, want api/functions (first match wins)", a.FunctionsDir)
	}
}

func TestClassifyPythonWithoutFunctionsDir(t *testing.T) {
	a := Classify([]string{"scripts/tool.py"})

	if a.Type != PythonFunctions {
		t.Errorf("Type = %s, want python-functions", a.Type)
	}
	if a.FunctionsDir != "" {
		t.Errorf("FunctionsDir = %q, want unset", a.FunctionsDir)
	}
}

func TestClassifyNetlifySubstringWithoutFunctionsSegment(t *testing.T) {
	// "netlify" anywhere in a python path marks the project as functions,
	// but only a "functions" segment yields a directory.
	a := Classify([]string{"netlify/app.py"})

	if a.Type != PythonFunctions {
		t.Errorf("Type = %s, want python-functions", a.Type)
	}
	if a.FunctionsDir != "" {
		t.Errorf("FunctionsDir = %q, want unset", a.FunctionsDir)
	}
}

func TestClassifyNodeOverridesPython(t *testing.T) {
	a := Classify([]string{"package.json", "api/main.py"})

	if a.Type != NodeProject {
		t.Errorf("Type = %s, want node-project (node rule has final precedence)", a.Type)
	}
	if a.BuildCommand != DefaultBuildCommand {
		t.Errorf("BuildCommand = %q, want %q", a.BuildCommand, DefaultBuildCommand)
	}
	if !a.Detected.Python {
		t.Error("Detected.Python = false, want true (flags stay independent)")
	}
}

func TestClassifyNodeOverridesFunctionsDirProject(t *testing.T) {
	a := Classify([]string{"netlify/functions/handler.py", "package.json"})

	if a.Type != NodeProject {
		t.Errorf("Type = %s, want node-project", a.Type)
	}
	// The derived functions dir survives for the generator to use.
	if a.FunctionsDir != "netlify/functions" {
		t.Errorf("FunctionsDir = %q, want netlify/functions", a.FunctionsDir)
	}
}

func TestClassifyCaseInsensitive(t *testing.T) {
	a := Classify([]string{"Netlify/Functions/Handler.PY", "PACKAGE.JSON", "Index.HTML"})

	if !a.Detected.HTML || !a.Detected.Python || !a.Detected.Node {
		t.Errorf("detection flags = %+v, want all set", a.Detected)
	}
	if a.FunctionsDir != "Netlify/Functions" {
		t.Errorf("FunctionsDir = %q, want original-case prefix", a.FunctionsDir)
	}
}

func TestClassifyExistingConfigFlags(t *testing.T) {
	a := Classify([]string{
		"netlify.toml",
		".env",
		".env.example",
		".gitignore",
		"sub/requirements.txt",
	})

	d := a.Detected
	if !d.Manifest || !d.EnvFile || !d.EnvExample || !d.Gitignore || !d.Requirements {
		t.Errorf("Detected = %+v, want all config flags set", d)
	}
}

func TestInferEnvVars(t *testing.T) {
	dir := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("main.py", "import OpenAI\nclient = OpenAI()\n")
	write("db.js", "const url = process.env.DATABASE_URL // postgres\n")
	write("notes.md", "anthropic claude") // wrong extension, ignored
	write("extra.ts", "chatgpt helper")   // duplicate contribution

	vars := InferEnvVars(dir, []string{"main.py", "db.js", "notes.md", "extra.ts"})

	want := []string{"OPENAI_API_KEY", "DATABASE_URL"}
	if !reflect.DeepEqual(vars, want) {
		t.Errorf("InferEnvVars() = %v, want %v", vars, want)
	}
}

func TestInferEnvVarsSkipsUnreadable(t *testing.T) {
	dir := t.TempDir()
	// Listed but missing on disk: contributes nothing, no error.
	vars := InferEnvVars(dir, []string{"ghost.py"})
	if len(vars) != 0 {
		t.Errorf("InferEnvVars() = %v, want empty", vars)
	}
}

func TestAnalyze(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "netlify", "functions"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "netlify", "functions", "chat.py"), []byte("import anthropic\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, err := Analyze(dir)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if a.Type != PythonFunctions {
		t.Errorf("Type = %s, want python-functions", a.Type)
	}
	if a.FunctionsDir != "netlify/functions" {
		t.Errorf("FunctionsDir = %q", a.FunctionsDir)
	}
	if a.FileCount != 2 {
		t.Errorf("FileCount = %d, want 2", a.FileCount)
	}
	if len(a.RequiredEnvVars) != 1 || a.RequiredEnvVars[0] != "ANTHROPIC_API_KEY" {
		t.Errorf("RequiredEnvVars = %v, want [ANTHROPIC_API_KEY]", a.RequiredEnvVars)
	}
	if a.Path != dir {
		t.Errorf("Path = %q, want %q", a.Path, dir)
	}
}

func TestAnalyzeInvalidRoot(t *testing.T) {
	if _, err := Analyze(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Analyze() on missing root succeeded, want error")
	}
}
