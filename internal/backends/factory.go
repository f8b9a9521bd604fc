// Package backends selects the concrete adapter for an instance. Callers
// hold a Backend and get identical operation semantics regardless of
// which server family is behind it.
package backends

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"Alcove/internal/backends/blueprint"
	"Alcove/internal/backends/lemmyv3"
	"Alcove/internal/backends/lemmyv4"
	"Alcove/internal/backends/piefed"
	"Alcove/internal/schemas"
)

// Re-exported so callers depend on this package alone.
type (
	Backend = blueprint.Backend
	Family  = blueprint.Family
)

const (
	FamilyLemmyV3 = blueprint.FamilyLemmyV3
	FamilyLemmyV4 = blueprint.FamilyLemmyV4
	FamilyPieFed  = blueprint.FamilyPieFed
)

// Config describes the instance an adapter is built for. Software and
// Version come from an external site probe; the selector only maps them
// onto a family.
type Config struct {
	// Instance is the scheme+host URL of the remote instance.
	Instance string
	Software schemas.Software
	// Version is the server's reported version, used to split Lemmy
	// into its incompatible v3 and v4 API generations.
	Version string
	// Token is the opaque session token; empty for guest sessions.
	Token     string
	UserAgent string
	// HTTPClient may be nil, in which case http.DefaultClient is used.
	HTTPClient *http.Client
}

// New constructs the adapter for the config's family.
func New(cfg Config) (Backend, error) {
	family, err := FamilyFor(cfg.Software, cfg.Version)
	if err != nil {
		return nil, err
	}
	switch family {
	case FamilyLemmyV3:
		return lemmyv3.New(cfg.Instance, cfg.UserAgent, cfg.Token, cfg.HTTPClient)
	case FamilyLemmyV4:
		return lemmyv4.New(cfg.Instance, cfg.UserAgent, cfg.Token, cfg.HTTPClient)
	case FamilyPieFed:
		return piefed.New(cfg.Instance, cfg.UserAgent, cfg.Token, cfg.HTTPClient)
	default:
		return nil, fmt.Errorf("no adapter for family %q", family)
	}
}

// FamilyFor maps probed software and version onto an adapter family.
// Lemmy 1.x dropped the v3 API, so the version's major number decides the
// generation; an unparsable Lemmy version gets the older, wider-deployed
// API.
func FamilyFor(software schemas.Software, version string) (Family, error) {
	switch software {
	case schemas.SoftwareLemmy:
		if major(version) >= 1 {
			return FamilyLemmyV4, nil
		}
		return FamilyLemmyV3, nil
	case schemas.SoftwarePieFed:
		return FamilyPieFed, nil
	default:
		return "", fmt.Errorf("unknown server software %q", software)
	}
}

func major(version string) int {
	version = strings.TrimPrefix(version, "v")
	head, _, _ := strings.Cut(version, ".")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return n
}
