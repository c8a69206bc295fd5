package main

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	want := map[string]bool{"serve": false, "migrate": false}
	for _, sub := range cmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("expected %q subcommand", name)
		}
	}
}

func TestMigrateCmd_Children(t *testing.T) {
	cmd := NewMigrateCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	if got := strings.Join(names, ","); got != "down,up,version" {
		t.Fatalf("unexpected migrate subcommands %q", got)
	}
}

func TestMigrateCmd_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "unset")
	os.Unsetenv("JWT_SECRET")
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"migrate", "version"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected configuration error without JWT_SECRET")
	}
}
