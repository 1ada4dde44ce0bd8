package projects

import (
	"fmt"

	"github.com/measurebook/measurebook/internal/platform/httpx"
)

// Domain errors. Each wraps an httpx sentinel so the boundary maps it to
// the right status code.
var (
	// ErrNotFound covers both an absent project and one owned by another
	// company; callers cannot distinguish the two.
	ErrNotFound = fmt.Errorf("project %w", httpx.ErrNotFound)

	// ErrQuotaExceeded rejects project creation beyond the plan limit.
	ErrQuotaExceeded = fmt.Errorf("%w: project limit reached, upgrade your plan to create more projects", httpx.ErrQuotaExceeded)
)
