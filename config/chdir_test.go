package config

import (
	"os"
	"testing"
)

// chdir is a go1.21-compatible stand-in for testing.T.Chdir (added in go1.24):
// it changes the working directory to dir and restores it when the test ends.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
