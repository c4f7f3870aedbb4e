package main

import (
	"os"
	"testing"

	"deploykit/cmd"
)

func TestHelpExecutes(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"deploykit", "--help"}
	if err := cmd.Execute(); err != nil {
		t.Errorf("Execute() with --help returned %v", err)
	}
}
