package connspec

import (
	"reflect"
	"testing"
)

func TestExpandNames(t *testing.T) {
	tests := []struct {
		spec string
		want []string
	}{
		{"sel", []string{"sel"}},
		{"a[2], b[2], sel", []string{"a[0]", "a[1]", "b[0]", "b[1]", "sel"}},
		{"in[0..3]", []string{"in[0]", "in[1]", "in[2]", "in[3]"}},
		{"in[3..3]", []string{"in[3]"}},
		{" a , b ", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got, err := ExpandNames(tt.spec)
		if err != nil {
			t.Fatalf("ExpandNames(%q): %v", tt.spec, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ExpandNames(%q) = %v, want %v", tt.spec, got, tt.want)
		}
	}
}

func TestExpandNamesErrors(t *testing.T) {
	tests := []string{
		"",
		"a[",
		"a[1..0]",
		"1abc",
		"a[1], ",
		"a[1] b",
	}
	for _, spec := range tests {
		if spec == "" {
			continue
		}
		if _, err := ExpandNames(spec); err == nil {
			t.Errorf("ExpandNames(%q): expected error, got nil", spec)
		}
	}
}
