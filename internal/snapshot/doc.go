// Package snapshot holds the directory snapshot aggregate.
//
// A Snapshot is taken once: the root is normalized, the tree is built and the
// traversal runs under an immutable set of options. Changing options produces
// a new Snapshot. The only mutation is DeleteEntry / DeleteByName, which
// removes a tracked file from disk and leaves a gap in the index space.
//
// CopyTo and EmptyDir are auxiliary operations sharing the same filesystem
// capability. None of the operations are safe for concurrent use.
package snapshot
