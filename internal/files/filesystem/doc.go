// Package filesystem provides the filesystem capability consumed by the
// snapshot engine.
//
// Key interfaces:
//   - FileSystemProvider: Reader plus Writer
//   - Directory: Represents a directory that can be walked in pre-order
//   - File: Represents an individual entry with metadata and content
//   - FileInfo: File metadata similar to os.FileInfo
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: Writable in-memory implementation for testing
//   - EmbedFileSystem: Read-only view over an embed.FS
//   - AferoFileSystem: Adapter over any afero.Fs
package filesystem
