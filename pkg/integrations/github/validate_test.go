package github

import "testing"

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		ref       string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"etiennebacher/jarl", "etiennebacher", "jarl", false},
		{" my-org/my.repo_1 ", "my-org", "my.repo_1", false},
		{"jarl", "", "", true},
		{"-bad/jarl", "", "", true},
		{"owner/", "", "", true},
		{"owner/re po", "", "", true},
	}

	for _, tt := range tests {
		owner, repo, err := ParseRepoRef(tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRepoRef(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if owner != tt.wantOwner || repo != tt.wantRepo {
			t.Errorf("ParseRepoRef(%q) = %q, %q", tt.ref, owner, repo)
		}
	}
}
