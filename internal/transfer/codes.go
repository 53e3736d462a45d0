package transfer

// Status codes SHFileOperationW returns instead of Win32 errors.
// The portable transferer reports its failures with the same codes.
const (
	codeSameFile        uint32 = 0x71
	codeManySrc1Dest    uint32 = 0x72
	codeDiffDir         uint32 = 0x73
	codeRootDir         uint32 = 0x74
	codeOpCancelled     uint32 = 0x75
	codeDestSubtree     uint32 = 0x76
	codeAccessDeniedSrc uint32 = 0x78
	codePathTooDeep     uint32 = 0x79
	codeManyDest        uint32 = 0x7A
	codeInvalidFiles    uint32 = 0x7C
	codeDestSameTree    uint32 = 0x7D
	codeDirDestIsFile   uint32 = 0x7E
	codeFileDestIsDir   uint32 = 0x80
	codeNameTooLong     uint32 = 0x81
	codeDestIsCDROM     uint32 = 0x82
	codeDestIsDVD       uint32 = 0x83
	codeDestIsCDRecord  uint32 = 0x84
	codeFileTooLarge    uint32 = 0x85
	codeSrcIsCDROM      uint32 = 0x86
	codeSrcIsDVD        uint32 = 0x87
	codeSrcIsCDRecord   uint32 = 0x88
	codeErrorMax        uint32 = 0xB7
	codeErrorUnknown    uint32 = 0x402
	codeErrorOnDest     uint32 = 0x10000
)

var descriptions = map[uint32]string{
	codeSameFile:        "the source and destination files are the same file",
	codeManySrc1Dest:    "multiple sources were given but only one destination file path",
	codeDiffDir:         "rename target is in a different directory",
	codeRootDir:         "the source is a root directory, which cannot be moved or renamed",
	codeOpCancelled:     "the operation was canceled by the user",
	codeDestSubtree:     "the destination is a subtree of the source",
	codeAccessDeniedSrc: "security settings denied access to the source",
	codePathTooDeep:     "the source or destination path exceeded or would exceed MAX_PATH",
	codeManyDest:        "the operation involved multiple destination paths",
	codeInvalidFiles:    "the path in the source or destination or both was invalid",
	codeDestSameTree:    "the source and destination have the same parent folder",
	codeDirDestIsFile:   "the destination path is an existing file",
	codeFileDestIsDir:   "the destination path is an existing folder",
	codeNameTooLong:     "the name of the file exceeds MAX_PATH",
	codeDestIsCDROM:     "the destination is a read-only CD-ROM",
	codeDestIsDVD:       "the destination is a read-only DVD",
	codeDestIsCDRecord:  "the destination is a writable CD, possibly unformatted",
	codeFileTooLarge:    "the file exceeds the size limit of the destination",
	codeSrcIsCDROM:      "the source is a read-only CD-ROM",
	codeSrcIsDVD:        "the source is a read-only DVD",
	codeSrcIsCDRecord:   "the source is a writable CD, possibly unformatted",
	codeErrorMax:        "MAX_PATH was exceeded during the operation",
	codeErrorUnknown:    "an unknown error occurred",
	codeErrorOnDest:     "an unspecified error occurred on the destination",
}

// Describe returns a short description of a SHFileOperationW status code
func Describe(code uint32) string {
	if d, ok := descriptions[code]; ok {
		return d
	}
	return "unknown error"
}
