package obsidian

import (
	"testing"
)

func TestNewOpener_DerivesVaultName(t *testing.T) {
	tests := []struct {
		name          string
		vaultPath     string
		wantVaultName string
	}{
		{
			name:          "simple vault path",
			vaultPath:     "/Users/test/Journal",
			wantVaultName: "Journal",
		},
		{
			name:          "vault with spaces",
			vaultPath:     "/Users/test/My Journal",
			wantVaultName: "My Journal",
		},
		{
			name:          "trailing slash",
			vaultPath:     "/Users/test/notes/Journal/",
			wantVaultName: "Journal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := NewOpener(tt.vaultPath)
			if opener.vaultName != tt.wantVaultName {
				t.Errorf("vaultName = %q, want %q", opener.vaultName, tt.wantVaultName)
			}
		})
	}
}

func TestBuildURI(t *testing.T) {
	tests := []struct {
		name      string
		vaultPath string
		notePath  string
		wantURI   string
		wantErr   bool
	}{
		{
			name:      "vault-relative note",
			vaultPath: "/Users/test/Journal",
			notePath:  "2026/2026.02.09 - 2026.02.15.md",
			wantURI:   "obsidian://open?vault=Journal&file=2026%2F2026.02.09%20-%202026.02.15.md",
		},
		{
			name:      "absolute note inside vault",
			vaultPath: "/Users/test/My Vault",
			notePath:  "/Users/test/My Vault/notes/week.md",
			wantURI:   "obsidian://open?vault=My%20Vault&file=notes%2Fweek.md",
		},
		{
			name:      "note at vault root",
			vaultPath: "/Users/test/Journal",
			notePath:  "Inbox.md",
			wantURI:   "obsidian://open?vault=Journal&file=Inbox.md",
		},
		{
			name:      "absolute note outside vault",
			vaultPath: "/Users/test/Journal",
			notePath:  "/Users/test/Other/file.md",
			wantErr:   true,
		},
		{
			name:      "relative escape",
			vaultPath: "/Users/test/Journal",
			notePath:  "../Other/file.md",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opener := NewOpener(tt.vaultPath)
			gotURI, err := opener.BuildURI(tt.notePath)

			if (err != nil) != tt.wantErr {
				t.Errorf("BuildURI() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if gotURI != tt.wantURI {
				t.Errorf("BuildURI() = %q, want %q", gotURI, tt.wantURI)
			}
		})
	}
}
