package ai

import "github.com/poiesic/toolshelf/core"

// CategoryNames returns the category vocabulary extractors may emit.
func CategoryNames() []string {
	names := make([]string, len(core.Categories))
	for i, c := range core.Categories {
		names[i] = string(c)
	}
	return names
}

// DateBucketNames returns the date bucket vocabulary extractors may emit.
func DateBucketNames() []string {
	names := make([]string, len(core.DateBuckets))
	for i, b := range core.DateBuckets {
		names[i] = string(b)
	}
	return names
}
