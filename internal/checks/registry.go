package checks

import (
	"github.com/saga95/amplify-doctor/internal/engine"
	"github.com/saga95/amplify-doctor/internal/nodever"
)

// All returns the built-in check set in registration order. The order is
// the within-category tie break for report output, so it is part of the
// observable contract and changes deliberately or not at all.
func All(table *nodever.Table, scanDepth int) []engine.Check {
	return []engine.Check{
		BuildScript{},
		CIScripts{},
		BuildCache{},
		Lockfile{},
		AmplifyConfig{},
		nodever.NewCheck(table),
		TypeScript{},
		ESLint{},
		EnvIgnored{},
		SecretScan{Depth: scanDepth},
		GitSync{},
	}
}
