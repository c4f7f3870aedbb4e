package generator

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// ManifestSettings are the build settings read back out of an existing
// netlify.toml. Used to prefill defaults in the wizard and web UI so a
// regenerated manifest starts from what the project already declares.
type ManifestSettings struct {
	PublishDir   string
	FunctionsDir string
	BuildCommand string
}

type manifestDoc struct {
	Build struct {
		Functions string `toml:"functions"`
		Publish   string `toml:"publish"`
		Command   string `toml:"command"`
	} `toml:"build"`
}

// ParseManifest decodes the [build] section of a netlify.toml. Unknown
// keys and sections are ignored; the platform parser is tolerant of
// formatting and so are we.
func ParseManifest(text string) (ManifestSettings, error) {
	var doc manifestDoc
	if err := toml.Unmarshal([]byte(text), &doc); err != nil {
		return ManifestSettings{}, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return ManifestSettings{
		PublishDir:   doc.Build.Publish,
		FunctionsDir: doc.Build.Functions,
		BuildCommand: doc.Build.Command,
	}, nil
}
