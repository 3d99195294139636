package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// executeValidateCmd runs the validate command with the given config path
// and returns captured stdout and any error.
func executeValidateCmd(t *testing.T, configPath string) (string, error) {
	t.Helper()

	// capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	// execute via root command with validate subcommand
	rootCmd.SetArgs([]string{"validate", "-c", configPath})
	err := rootCmd.Execute()

	// restore stdout
	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)

	return buf.String(), err
}

func TestRunValidate_ValidDefinitions(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "stores.yaml")

	content := `
port: 8080
stores:
  - name: counter
    initial:
      count: 0
      is_updating: false
  - name: session
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	out, err := executeValidateCmd(t, configPath)
	if err != nil {
		t.Fatalf("validate error = %v", err)
	}

	if !strings.Contains(out, "Definitions are valid!") {
		t.Errorf("output = %q, want it to contain success message", out)
	}
	if !strings.Contains(out, "Stores: 2") {
		t.Errorf("output = %q, want store count", out)
	}
	if !strings.Contains(out, "counter (2 initial keys)") {
		t.Errorf("output = %q, want counter summary", out)
	}
}

func TestRunValidate_InvalidDefinitions(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "stores.yaml")

	content := `
stores:
  - name: counter
  - name: counter
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, err := executeValidateCmd(t, configPath)
	if err == nil {
		t.Fatal("validate error = nil, want error for duplicate store name")
	}
	if !strings.Contains(err.Error(), "duplicate store name") {
		t.Errorf("validate error = %q, want duplicate name message", err)
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	_, err := executeValidateCmd(t, filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("validate error = nil, want error for missing file")
	}
}
