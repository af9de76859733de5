package main

import (
	"testing"

	"github.com/nagyist/praeclarum-SwiftSharp/internal/ast"
)

func TestReadUIMode(t *testing.T) {
	tests := []struct {
		in   string
		want uiMode
		err  bool
	}{
		{"", uiModeAuto, false},
		{"auto", uiModeAuto, false},
		{"ON", uiModeOn, false},
		{" off ", uiModeOff, false},
		{"yes", "", true},
	}
	for _, tt := range tests {
		got, err := readUIMode(tt.in)
		if tt.err {
			if err == nil {
				t.Errorf("readUIMode(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("readUIMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestModuleNameFromSources(t *testing.T) {
	tests := []struct {
		sources []string
		want    string
	}{
		{nil, "Main"},
		{[]string{"."}, "Main"},
		{[]string{"src/App.swift"}, "App"},
		{[]string{"mylib"}, "mylib"},
		{[]string{"a/b/c", "ignored.swift"}, "c"},
	}
	for _, tt := range tests {
		if got := moduleNameFromSources(tt.sources); got != tt.want {
			t.Errorf("moduleNameFromSources(%v) = %q, want %q", tt.sources, got, tt.want)
		}
	}
}

func TestTypeString(t *testing.T) {
	expr := &ast.TypeExpr{
		Path: []string{"Dictionary"},
		Args: []ast.TypeExpr{
			{Path: []string{"String"}},
			{Path: []string{"Array"}, Args: []ast.TypeExpr{{Path: []string{"Foundation", "NSDate"}}}},
		},
	}
	if got := typeString(expr); got != "Dictionary<String, Array<Foundation.NSDate>>" {
		t.Fatalf("typeString = %q", got)
	}
}

func TestIdentityString(t *testing.T) {
	if got := identityString("Box", 1); got != "Box`1" {
		t.Fatalf("identityString = %q", got)
	}
	if got := identityString("Int", 0); got != "Int" {
		t.Fatalf("identityString = %q", got)
	}
}
