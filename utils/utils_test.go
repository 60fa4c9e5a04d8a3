package utils

import (
	"os"
	"reflect"
	"testing"
)

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want map[string]string
	}{
		{
			"command with equals flags",
			[]string{"flowercoco", "convert", "--root=/data", "--combined"},
			map[string]string{"command": "convert", "root": "/data", "combined": "true"},
		},
		{
			"space separated values",
			[]string{"flowercoco", "annotate", "--root", "/data", "--debug"},
			map[string]string{"command": "annotate", "root": "/data", "debug": "true"},
		},
		{
			"no command",
			[]string{"flowercoco", "--root=/data"},
			map[string]string{"root": "/data"},
		},
	}

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.argv
			got := ParseArguments()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseArguments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseList(t *testing.T) {
	tests := []struct {
		value string
		want  []string
	}{
		{"apples,peaches,pears", []string{"apples", "peaches", "pears"}},
		{" apples , peaches ", []string{"apples", "peaches"}},
		{"apples", []string{"apples"}},
		{"", nil},
		{",,", nil},
	}

	for _, tt := range tests {
		if got := ParseList(tt.value); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseList(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
