package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curie-ml/curie/internal/config"
	"github.com/curie-ml/curie/internal/record"
)

func TestParseRecords(t *testing.T) {
	recs, err := parseRecords([]string{
		"image=scan.png,label=mask.png",
		"image=other.png",
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, record.Path("scan.png"), recs[0]["image"])
	assert.Equal(t, record.Path("mask.png"), recs[0]["label"])
	assert.Equal(t, record.Path("other.png"), recs[1]["image"])
}

func TestParseRecordsMalformed(t *testing.T) {
	for _, arg := range []string{"scan.png", "image=", "=scan.png"} {
		_, err := parseRecords([]string{arg})
		assert.Error(t, err, "arg %q", arg)
	}
}

func TestResolveReader(t *testing.T) {
	r, err := resolveReader("")
	require.NoError(t, err)
	assert.Nil(t, r)

	r, err = resolveReader("std")
	require.NoError(t, err)
	assert.NotNil(t, r)

	_, err = resolveReader("dicom")
	assert.Error(t, err)
}

func TestBuildChain(t *testing.T) {
	chain, err := buildChain(config.Pipeline{
		ImageKeys:  []string{"image"},
		LabelKeys:  []string{"label"},
		LabelValue: 1,
		Reader:     "std",
	})
	require.NoError(t, err)
	assert.NotNil(t, chain)

	_, err = buildChain(config.Pipeline{Reader: "nope", ImageKeys: []string{"image"}})
	assert.Error(t, err)

	_, err = buildChain(config.Pipeline{})
	assert.Error(t, err, "no keys configured")
}
