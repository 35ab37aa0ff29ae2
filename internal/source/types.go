package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileCP1252 indicates the content was transcoded from Windows-1252.
	FileCP1252
	// FileEmbedded indicates the text was extracted from a model container
	// by an external collaborator; LineMap maps physical lines back to the
	// container's own line numbers.
	FileEmbedded
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags

	// LineMap, when non-nil, holds the container line number for each
	// physical line (entry i is physical line i+1). Only set for
	// FileEmbedded files.
	LineMap []uint32
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
