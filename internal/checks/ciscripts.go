package checks

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/snapshot"
)

// npmRunRef matches "npm run <script>" invocations in build spec commands.
var npmRunRef = regexp.MustCompile(`\bnpm\s+run\s+([A-Za-z0-9:._-]+)`)

// CIScripts cross-references the npm scripts amplify.yml invokes against
// the scripts package.json actually declares. A dangling reference fails
// the build the moment the command list reaches it.
type CIScripts struct{}

// ID implements engine.Check.
func (CIScripts) ID() string { return "build.ci-script-refs" }

// Name implements engine.Check.
func (CIScripts) Name() string { return "CI script references" }

// Category implements engine.Check.
func (CIScripts) Category() engine.Category { return engine.CategoryBuild }

// Run implements engine.Check.
func (c CIScripts) Run(_ context.Context, snap *snapshot.Snapshot) []engine.Finding {
	if snap.AmplifyConfig == nil || snap.Manifest == nil {
		return nil
	}

	referenced := make(map[string]bool)
	for _, m := range npmRunRef.FindAllStringSubmatch(snap.AmplifyConfig.Raw, -1) {
		referenced[m[1]] = true
	}
	if len(referenced) == 0 {
		return nil
	}

	var missing []string
	for script := range referenced {
		if !snap.Manifest.HasScript(script) {
			missing = append(missing, script)
		}
	}
	sort.Strings(missing)

	f := engine.Finding{
		ID:       c.ID(),
		Category: c.Category(),
		Name:     c.Name(),
	}
	if len(missing) == 0 {
		f.Status = engine.StatusPass
		f.Message = fmt.Sprintf("all %d scripts referenced by %s exist", len(referenced), snap.AmplifyConfig.Path)
	} else {
		f.Status = engine.StatusFail
		f.Blocking = true
		f.Impact = engine.ImpactHigh
		f.Message = fmt.Sprintf("%s references scripts package.json does not declare: %s",
			snap.AmplifyConfig.Path, strings.Join(missing, ", "))
	}
	return []engine.Finding{f}
}
