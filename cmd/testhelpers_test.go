package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// duplexDump is a JSON page dump with one duplex column on the anchor page
// and a continuation page.
const duplexDump = `{"pages": [
	{"grid": [
		["", "Sunrise"],
		["", "Estates"],
		["", "346/354"],
		["", "Stockton"],
		["", "Lots 81/82"],
		["", "1163"],
		["", "Garage, Patio"],
		["10-Jun", "Final Inspection"],
		["11-Jun", "Trim out"]
	]},
	{"grid": [
		["13-Jun", "Walk through"]
	]}
]}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
