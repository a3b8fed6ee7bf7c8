package render

import "testing"

func TestParseKeyPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    KeyPolicy
		wantErr bool
	}{
		{"", KeyPolicyPositional, false},
		{"positional", KeyPolicyPositional, false},
		{"strict", KeyPolicyStrict, false},
		{"remount", KeyPolicyRemount, false},
		{"Strict", 0, true},
		{"react", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseKeyPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKeyPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseKeyPolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if !tt.wantErr && tt.in != "" && got.String() != tt.in {
			t.Errorf("%v.String() = %q, want %q", got, got.String(), tt.in)
		}
	}
}
