// Package scanner walks a directory and renders what it finds.
//
// The scanner package is responsible for:
//   - Normalizing a caller-supplied root path (separator convention, trailing separator)
//   - Building the nested tree that mirrors the directory hierarchy
//   - Producing the ordered entry list for a flat or recursive traversal,
//     rendered as bare names, root-relative paths or resolved absolute paths
//
// The scanner is designed to be filesystem-agnostic through the use of
// filesystem.FileSystemProvider interface, enabling both production use
// with the OS filesystem and testing with in-memory filesystems.
package scanner
