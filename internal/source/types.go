package source

type (
	// FileID uniquely identifies a manifest file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a loaded file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single loaded manifest.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	Hash    [32]byte
	Flags   FileFlags
}
