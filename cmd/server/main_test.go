package main

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestMigrateCommand_RejectsUnknownDirection(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown direction", []string{"migrate", "sideways"}},
		{"too many args", []string{"migrate", "up", "down"}},
		{"serve takes no args", []string{"serve", "now"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newRootCmd()
			root.SetArgs(tt.args)
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)
			require.Error(t, root.Execute())
		})
	}
}
