// Package locimg provides a CLI tool that makes a markdown notes collection
// readable offline. It scans a directory tree for markdown documents, finds
// references to remote images, downloads each referenced image into a local
// asset directory, and rewrites the document so the reference points at the
// local copy.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goldmark/, http/, fs/).
package locimg
