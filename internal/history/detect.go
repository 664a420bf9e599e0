package history

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

var ErrNoProfile = errors.New("no browser profile found; set history_db in the config")

// DetectFirefoxPlaces returns places.sqlite of the default-release profile,
// falling back to any other profile that has one.
func DetectFirefoxPlaces() (string, error) {
	return findFirst(firefoxProfileRoots(), []string{
		"*.default-release/places.sqlite",
		"*.default*/places.sqlite",
		"*/places.sqlite",
	})
}

func DetectChromeHistory() (string, error) {
	return findFirst(chromeProfileRoots(), []string{
		"Default/History",
		"Profile */History",
	})
}

func findFirst(roots, patterns []string) (string, error) {
	for _, pattern := range patterns {
		for _, root := range roots {
			if root == "" {
				continue
			}

			matches, err := filepath.Glob(filepath.Join(root, pattern))
			if err != nil {
				continue
			}
			for _, m := range matches {
				if info, err := os.Stat(m); err == nil && !info.IsDir() {
					return m, nil
				}
			}
		}
	}

	return "", ErrNoProfile
}

func firefoxProfileRoots() []string {
	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "windows":
		return []string{filepath.Join(os.Getenv("APPDATA"), "Mozilla", "Firefox", "Profiles")}
	case "darwin":
		return []string{filepath.Join(home, "Library", "Application Support", "Firefox", "Profiles")}
	default:
		return []string{
			filepath.Join(home, ".mozilla", "firefox"),
			filepath.Join(home, "snap", "firefox", "common", ".mozilla", "firefox"),
			filepath.Join(home, ".var", "app", "org.mozilla.firefox", ".mozilla", "firefox"),
		}
	}
}

func chromeProfileRoots() []string {
	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		return []string{
			filepath.Join(local, "Google", "Chrome", "User Data"),
			filepath.Join(local, "Chromium", "User Data"),
		}
	case "darwin":
		return []string{
			filepath.Join(home, "Library", "Application Support", "Google", "Chrome"),
			filepath.Join(home, "Library", "Application Support", "Chromium"),
		}
	default:
		return []string{
			filepath.Join(home, ".config", "google-chrome"),
			filepath.Join(home, ".config", "chromium"),
		}
	}
}
