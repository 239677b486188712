package nodever

import (
	"regexp"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/saga95/amplify-doctor/internal/snapshot"
)

// nvmPragma matches the nvm invocation Amplify build specs use to select a
// Node version, e.g. "- nvm use 18" in a preBuild command list.
var nvmPragma = regexp.MustCompile(`\bnvm\s+(?:use|install)\s+(\S+)`)

// netlifyBuild is the slice of netlify.toml the version lookup needs.
type netlifyBuild struct {
	Build struct {
		Environment map[string]string `toml:"environment"`
	} `toml:"build"`
}

// CollectSources extracts every possible Node version origin from the
// snapshot. One Source per origin that exists, valued or not; origins whose
// file is absent are omitted entirely.
func CollectSources(snap *snapshot.Snapshot) []Source {
	var sources []Source

	if snap.AmplifyConfig != nil {
		raw, line := amplifyPragma(snap.AmplifyConfig.Raw)
		sources = append(sources, Source{
			Origin: OriginCIConfig,
			Raw:    raw,
			File:   snap.AmplifyConfig.Path,
			Line:   line,
		})
	}

	if snap.Nvmrc != nil {
		sources = append(sources, Source{
			Origin: OriginNvmrc,
			Raw:    *snap.Nvmrc,
			File:   ".nvmrc",
			Line:   1,
		})
	}

	if snap.NodeVersionFile != nil {
		sources = append(sources, Source{
			Origin: OriginNodeVersionFile,
			Raw:    *snap.NodeVersionFile,
			File:   ".node-version",
			Line:   1,
		})
	}

	if snap.Manifest != nil {
		sources = append(sources, Source{
			Origin: OriginManifest,
			Raw:    snap.Manifest.Engines.Node,
			File:   "package.json",
		})
	}

	if snap.NetlifyConfig != nil {
		sources = append(sources, Source{
			Origin: OriginNetlify,
			Raw:    netlifyNodeVersion(snap.NetlifyConfig.Raw),
			File:   snap.NetlifyConfig.Path,
		})
	}

	if snap.DockerfileFrom != nil {
		sources = append(sources, Source{
			Origin: OriginDockerfile,
			Raw:    dockerNodeTag(*snap.DockerfileFrom),
			File:   "Dockerfile",
		})
	}

	if snap.LocalNodeVersion != nil {
		sources = append(sources, Source{
			Origin: OriginLocal,
			Raw:    *snap.LocalNodeVersion,
		})
	}

	return sources
}

// amplifyPragma finds the first nvm use/install pragma in amplify.yml text,
// returning the version argument and its 1-based line number.
func amplifyPragma(raw string) (string, int) {
	for i, line := range strings.Split(raw, "\n") {
		if m := nvmPragma.FindStringSubmatch(line); m != nil {
			return m[1], i + 1
		}
	}
	return "", 0
}

// netlifyNodeVersion reads build.environment.NODE_VERSION from netlify.toml
// text. Unparsable TOML yields no value; the config check reports syntax
// separately.
func netlifyNodeVersion(raw string) string {
	var cfg netlifyBuild
	if err := toml.Unmarshal([]byte(raw), &cfg); err != nil {
		return ""
	}
	return cfg.Build.Environment["NODE_VERSION"]
}

// dockerNodeTag extracts the version tag from a node image reference like
// "node:18-alpine" or "public.ecr.aws/docker/library/node:20". Non-node
// images yield no value.
func dockerNodeTag(image string) string {
	name := image
	if idx := strings.LastIndex(image, ":"); idx >= 0 {
		name = image[:idx]
	}
	if name != "node" && !strings.HasSuffix(name, "/node") {
		return ""
	}
	if idx := strings.LastIndex(image, ":"); idx >= 0 {
		return image[idx+1:]
	}
	return ""
}
