package main

import (
	"os"
	"path/filepath"
	"strings"
)

// Extension of the source files collected for checking.
const sourceExt = ".py"

// expandPaths resolves the paths to check into a list of source files.
// With no paths the current directory is walked recursively. Explicit
// paths may be matching files or directories; anything else is skipped
// silently, so globs that pull in READMEs and the like do not abort a
// run.
func expandPaths(paths []string) []string {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	files := []string{}
	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err != nil:
			debug("skipping %q: %s", path, err)
		case info.IsDir():
			files = append(files, collectSourceFiles(path)...)
		case strings.HasSuffix(path, sourceExt):
			files = append(files, path)
		default:
			debug("skipping %q: not a %s file", path, sourceExt)
		}
	}
	for _, file := range files {
		debug("checking file %s", file)
	}
	return files
}

func collectSourceFiles(root string) []string {
	files := []string{}
	_ = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			warning("invalid path %q: %s", path, err)
			return nil
		}
		if !info.IsDir() && strings.HasSuffix(path, sourceExt) {
			files = append(files, path)
		}
		return nil
	})
	return files
}
