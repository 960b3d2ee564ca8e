package version

import "testing"

func TestString(t *testing.T) {
	commit := GitCommit
	defer func() { GitCommit = commit }()

	GitCommit = "unknown"
	if got, want := String(), "gobeam v"+Version; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	GitCommit = "abc123"
	if got, want := String(), "gobeam v"+Version+" (abc123)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
