package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goasterix/internal/asterix/cat048"
	"goasterix/internal/block"
)

func execute(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(in, &out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func plotBlock(t *testing.T) []byte {
	t.Helper()
	rec, err := cat048.EncodePlot(cat048.Plot{
		SAC: 1, SIC: 2,
		Time:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		RangeM:     25000,
		AzimuthDeg: 45,
	})
	require.NoError(t, err)
	b, err := block.Encode(48, rec)
	require.NoError(t, err)
	return b
}

func TestVersion(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "Subcommand", args: []string{"version"}},
		{name: "Flag", args: []string{"--version"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, nil, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, "goasterix")
		})
	}
}

func TestDecodeCommand(t *testing.T) {
	raw := plotBlock(t)
	file := filepath.Join(t.TempDir(), "capture.ast")
	require.NoError(t, os.WriteFile(file, raw, 0o644))

	tests := []struct {
		name    string
		args    []string
		input   string
		records int
		wantErr bool
	}{
		{name: "File argument", args: []string{"decode", file}, records: 1},
		{name: "Stdin", args: []string{"decode"}, input: string(raw), records: 1},
		{name: "Hex stdin", args: []string{"decode", "--hex"}, input: hex.EncodeToString(raw), records: 1},
		{name: "Other category", args: []string{"decode", "-c", "62", file}, records: 0},
		{name: "Archive", args: []string{"decode", "--output-dir", filepath.Join(t.TempDir(), "archive"), file}, records: 0},
		{name: "Missing file", args: []string{"decode", filepath.Join(t.TempDir(), "none")}, wantErr: true},
		{name: "Unsupported category", args: []string{"decode", "-c", "250", file}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, strings.NewReader(tt.input), tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.records, strings.Count(out, "\n"))
			if tt.records > 0 {
				assert.Contains(t, out, `"category":48`)
			}
		})
	}
}

func TestRoundTripCommand(t *testing.T) {
	out, err := execute(t, nil, "roundtrip", "--category", "48", "--targets", "5", "--seed", "3")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = execute(t, nil, "roundtrip", "--category", "1")
	assert.Error(t, err)
}

func TestDescribeCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains string
		wantErr  bool
	}{
		{name: "Category list", args: []string{"describe"}, contains: "062"},
		{name: "One category", args: []string{"describe", "21"}, contains: "I080"},
		{name: "Not a number", args: []string{"describe", "adsb"}, wantErr: true},
		{name: "Unknown category", args: []string{"describe", "99"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, nil, tt.args...)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, tt.contains)
		})
	}
}
