// Package files groups the filesystem-facing sub-packages.
//
//   - filesystem: provider abstraction with OS, in-memory, embed.FS and afero backends
//   - scanner: path normalization, tree building and entry traversal
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/dirsnap/internal/files/filesystem"
//	    "github.com/vvka-141/dirsnap/internal/files/scanner"
//	)
//
//	sc := scanner.NewScannerWithFS(filesystem.NewOSFileSystem(), logger)
//	root, err := sc.Normalize("./project/")
//	tree, realRoot, err := sc.Tree(root)
//	entries, err := sc.Traverse(root, realRoot, dirsnap.Options{Recursive: true})
package files
