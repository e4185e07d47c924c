package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRun(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	schemaFile := writeFile(t, dir, "schema.yaml", `
type: object
properties:
  name: {type: string}
  level: {type: integer, optional: true, default: 3}
`)
	badSchema := writeFile(t, dir, "bad.json", `{"properties": {"name": {"minLength": "two"}}}`)
	valid := writeFile(t, dir, "valid.json", `{"name": "svc"}`)
	extra := writeFile(t, dir, "extra.json", `{"name": "svc", "owner": "me"}`)
	wrong := writeFile(t, dir, "wrong.yaml", "name: 5\n")
	embedded := writeFile(t, dir, "embedded.yaml", "$schema:\n  properties:\n    name: {type: string}\nname: x\n")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"missing input", nil, 1, "", `required flag(s) "input" not set`},
		{"short flags", []string{"-i", valid, "-s", schemaFile}, 0, "valid.json: valid", ""},
		{"valid", []string{"--input", valid, "--schema", schemaFile}, 0, "valid.json: valid", ""},
		{"print with default", []string{"--input", valid, "--schema", schemaFile, "--print"}, 0, "level: 3", ""},
		{"print without defaults", []string{"--input", valid, "--schema", schemaFile, "--print", "--no-defaults"}, 0, "name: svc", ""},
		{"type mismatch", []string{"--input", wrong, "--schema", schemaFile}, 1, "", "#/name: type:"},
		{"extra allowed", []string{"--input", extra, "--schema", schemaFile}, 0, "valid", ""},
		{"extra strict", []string{"--input", extra, "--schema", schemaFile, "--strict"}, 1, "", "#/owner: additionalProperties"},
		{"lint", []string{"--input", valid, "--schema", badSchema, "--lint"}, 1, "", "lint: #/properties/name"},
		{"embedded schema", []string{"--input", embedded, "--lint"}, 0, "valid", ""},
		{"missing file", []string{"--input", filepath.Join(dir, "nope.json")}, 1, "", "Error: cannot load input"},
		{"bad flag", []string{"--bogus"}, 1, "", "unknown flag: --bogus"},
		{"positional argument", []string{"--input", valid, "extra"}, 1, "", "unknown command"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var stdout, stderr bytes.Buffer
			code := run(tt.args, &stdout, &stderr)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout %q does not contain %q", stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr %q does not contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}
