package ports

// ObsidianOpener defines the interface for opening notes in Obsidian
type ObsidianOpener interface {
	// OpenNote opens a vault-relative (or absolute in-vault) note using the
	// obsidian:// URI scheme
	OpenNote(notePath string) error
}
