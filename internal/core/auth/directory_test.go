package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Alcove/internal/schemas"
)

func testKnownInstances() []Instance {
	return []Instance{
		{Host: "lemmy.world", URL: "https://lemmy.world", Name: "Lemmy World", Software: schemas.SoftwareLemmy},
		{Host: "lemmy.ml", URL: "https://lemmy.ml", Name: "Lemmy", Software: schemas.SoftwareLemmy},
		{Host: "piefed.social", URL: "https://piefed.social", Name: "PieFed Social", Software: schemas.SoftwarePieFed},
	}
}

func staticProbe(inst Instance, err error) ProbeFunc {
	return func(context.Context, string) (Instance, error) {
		return inst, err
	}
}

func TestSearchFiltersBySoftware(t *testing.T) {
	d := NewDirectory(testKnownInstances(), staticProbe(Instance{}, nil))

	lemmy := d.Search("", schemas.SoftwareLemmy)
	require.Len(t, lemmy, 2)
	for _, inst := range lemmy {
		assert.Equal(t, schemas.SoftwareLemmy, inst.Software)
	}

	piefed := d.Search("", schemas.SoftwarePieFed)
	require.Len(t, piefed, 1)
	assert.Equal(t, "piefed.social", piefed[0].Host)
}

func TestSearchFuzzyMatchesHostAndName(t *testing.T) {
	d := NewDirectory(testKnownInstances(), staticProbe(Instance{}, nil))

	byHost := d.Search("lmyworld", schemas.SoftwareLemmy)
	require.NotEmpty(t, byHost)
	assert.Equal(t, "lemmy.world", byHost[0].Host)

	byName := d.Search("piefd", schemas.SoftwarePieFed)
	require.NotEmpty(t, byName)
	assert.Equal(t, "piefed.social", byName[0].Host)

	assert.Empty(t, d.Search("zzzzzz", schemas.SoftwareLemmy))
}

func TestProbeMergesAndDeduplicates(t *testing.T) {
	probed := Instance{
		Host:     "forum.example",
		URL:      "https://forum.example",
		Name:     "Example Forum",
		Software: schemas.SoftwareLemmy,
	}

	var probedURL string
	d := NewDirectory(testKnownInstances(), func(_ context.Context, instanceURL string) (Instance, error) {
		probedURL = instanceURL
		return probed, nil
	})

	got, err := d.Probe(context.Background(), "forum.example")
	require.NoError(t, err)
	assert.Equal(t, "https://forum.example", probedURL)
	assert.Equal(t, probed, got)

	results := d.Search("", schemas.SoftwareLemmy)
	assert.Len(t, results, 3)

	// Probing the same host again does not duplicate the entry.
	_, err = d.Probe(context.Background(), "https://forum.example")
	require.NoError(t, err)
	assert.Len(t, d.Search("", schemas.SoftwareLemmy), 3)
}

func TestProbeOverridesKnownEntry(t *testing.T) {
	refreshed := Instance{
		Host:     "lemmy.world",
		URL:      "https://lemmy.world",
		Name:     "Lemmy World (refreshed)",
		Software: schemas.SoftwareLemmy,
	}
	d := NewDirectory(testKnownInstances(), staticProbe(refreshed, nil))

	_, err := d.Probe(context.Background(), "lemmy.world")
	require.NoError(t, err)

	results := d.Search("", schemas.SoftwareLemmy)
	require.Len(t, results, 2)
	var found bool
	for _, inst := range results {
		if inst.Host == "lemmy.world" {
			found = true
			assert.Equal(t, "Lemmy World (refreshed)", inst.Name)
		}
	}
	assert.True(t, found)
}

func TestProbeRejectsBadInput(t *testing.T) {
	d := NewDirectory(nil, staticProbe(Instance{}, nil))

	_, err := d.Probe(context.Background(), "  ")
	assert.Error(t, err)
}

func TestProbeFailurePropagates(t *testing.T) {
	probeErr := errors.New("connection refused")
	d := NewDirectory(nil, staticProbe(Instance{}, probeErr))

	_, err := d.Probe(context.Background(), "down.example")
	assert.ErrorIs(t, err, probeErr)

	// A failed probe adds nothing.
	assert.Empty(t, d.Search("", ""))
}
