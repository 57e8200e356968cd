// Package workflow defines the workflow capability contract and the two
// concrete workflows: viewport screenshot capture and demo generation.
package workflow

import (
	"context"

	"flowcap/internal/manifest"
)

// Workflow is anything that can be executed to produce a Result. All
// configuration is supplied at construction; Execute takes no arguments
// beyond the context and never returns an error — failures are reported
// through the Result.
type Workflow interface {
	Execute(ctx context.Context) manifest.Result
}
