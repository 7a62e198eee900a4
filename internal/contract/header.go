package contract

import (
	"fmt"
	"path/filepath"
)

// LogAnalysisHeader prints a concise, one-line header for an analysis run.
func LogAnalysisHeader(cfg *Config) {
	repoName := filepath.Base(cfg.RepoPath)
	if repoName == "" || repoName == "." {
		repoName = "current"
	}

	scope := cfg.PathFilter
	if scope == "" {
		scope = "all files"
	}

	if cfg.UseEmojis {
		fmt.Printf("🔎 Repo: %s (Scope: %s)\n", repoName, scope)
		return
	}
	fmt.Printf("Repo: %s (Scope: %s)\n", repoName, scope)
}

// LogStage prints one pipeline stage banner.
func LogStage(cfg *Config, emoji, msg string) {
	if cfg.UseEmojis {
		fmt.Printf("%s %s\n", emoji, msg)
		return
	}
	fmt.Println(msg)
}
