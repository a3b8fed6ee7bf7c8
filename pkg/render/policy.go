package render

import "fmt"

// KeyPolicy selects how two multi-child lists are reconciled.
type KeyPolicy uint8

const (
	// KeyPolicyPositional diffs fully unkeyed lists pair by pair and keyed
	// lists by key. A list that mixes keyed and unkeyed children fails with
	// ErrMissingKey.
	KeyPolicyPositional KeyPolicy = iota

	// KeyPolicyStrict requires every child of both lists to be keyed.
	KeyPolicyStrict

	// KeyPolicyRemount always uses keyed reconciliation. Unkeyed children
	// never match, so they are removed and mounted afresh on every patch.
	KeyPolicyRemount
)

// String returns the string representation of the KeyPolicy.
func (p KeyPolicy) String() string {
	switch p {
	case KeyPolicyPositional:
		return "positional"
	case KeyPolicyStrict:
		return "strict"
	case KeyPolicyRemount:
		return "remount"
	default:
		return "unknown"
	}
}

// ParseKeyPolicy parses a policy name as returned by KeyPolicy.String.
func ParseKeyPolicy(s string) (KeyPolicy, error) {
	switch s {
	case "positional", "":
		return KeyPolicyPositional, nil
	case "strict":
		return KeyPolicyStrict, nil
	case "remount":
		return KeyPolicyRemount, nil
	default:
		return 0, fmt.Errorf("unknown key policy %q", s)
	}
}
