package gate

import "os"

// ArtifactSet is the pair of files a build must produce: the loader script and
// the binary payload it loads.
type ArtifactSet struct {
	Loader  string
	Payload string
}

func (set ArtifactSet) Paths() []string {
	return []string{set.Loader, set.Payload}
}

// Present reports whether every artifact exists. Content is never inspected.
func (set ArtifactSet) Present() bool {
	return len(set.Missing()) == 0
}

func (set ArtifactSet) Missing() []string {
	var missing []string
	for _, path := range set.Paths() {
		if !Exists(path) {
			missing = append(missing, path)
		}
	}
	return missing
}

// Exists reports whether path can be stat'ed. Any error, including a missing
// parent directory, counts as absent.
func Exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
