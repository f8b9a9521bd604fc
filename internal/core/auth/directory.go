package auth

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"Alcove/internal/schemas"
)

// Instance is one directory entry a user can pick during login.
type Instance struct {
	Host     string           `json:"host"`
	URL      string           `json:"url"`
	Name     string           `json:"name"`
	Software schemas.Software `json:"software"`
}

// ProbeFunc inspects an arbitrary URL and reports what runs there.
type ProbeFunc func(ctx context.Context, instanceURL string) (Instance, error)

// Directory serves the instance picker: a static list of known instances
// merged with whatever the user has probed by hand this session.
type Directory struct {
	probe ProbeFunc

	mu     sync.Mutex
	known  []Instance
	probed map[string]Instance
}

func NewDirectory(known []Instance, probe ProbeFunc) *Directory {
	return &Directory{
		probe:  probe,
		known:  known,
		probed: make(map[string]Instance),
	}
}

// Probe resolves an arbitrary URL the user typed and merges the result
// into the directory. A bare host is assumed to be https.
func (d *Directory) Probe(ctx context.Context, raw string) (Instance, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Instance{}, fmt.Errorf("instance URL is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return Instance{}, fmt.Errorf("invalid instance URL %q", raw)
	}

	inst, err := d.probe(ctx, parsed.Scheme+"://"+parsed.Host)
	if err != nil {
		return Instance{}, fmt.Errorf("probing %s: %w", parsed.Host, err)
	}
	if inst.Host == "" {
		inst.Host = parsed.Host
	}

	d.mu.Lock()
	d.probed[inst.Host] = inst
	d.mu.Unlock()
	return inst, nil
}

// Search returns the directory filtered by software and fuzzy-matched
// against query on host and name. An empty query returns everything for
// the software, known entries first. Probed entries override known ones
// with the same host.
func (d *Directory) Search(query string, software schemas.Software) []Instance {
	d.mu.Lock()
	merged := make([]Instance, 0, len(d.known)+len(d.probed))
	seen := make(map[string]bool, len(d.known)+len(d.probed))
	for _, inst := range d.known {
		if probed, ok := d.probed[inst.Host]; ok {
			inst = probed
		}
		merged = append(merged, inst)
		seen[inst.Host] = true
	}
	for _, inst := range d.probed {
		if !seen[inst.Host] {
			merged = append(merged, inst)
		}
	}
	d.mu.Unlock()

	filtered := merged[:0]
	for _, inst := range merged {
		if software != "" && inst.Software != software {
			continue
		}
		filtered = append(filtered, inst)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Host < filtered[j].Host
		})
		return filtered
	}

	type ranked struct {
		inst Instance
		rank int
	}
	matches := make([]ranked, 0, len(filtered))
	for _, inst := range filtered {
		hostRank := fuzzy.RankMatchNormalizedFold(query, inst.Host)
		nameRank := fuzzy.RankMatchNormalizedFold(query, inst.Name)
		best := hostRank
		if best < 0 || (nameRank >= 0 && nameRank < best) {
			best = nameRank
		}
		if best < 0 {
			continue
		}
		matches = append(matches, ranked{inst: inst, rank: best})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rank < matches[j].rank
	})

	out := make([]Instance, len(matches))
	for i, m := range matches {
		out[i] = m.inst
	}
	return out
}
