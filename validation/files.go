package validation

// File constraints enforced before an attachment is constructed; rejected
// files never enter a draft.
const (
	MaxFileSizeBytes = int64(5 * 1024 * 1024)
	MaxFileCount     = 5
)

var allowedFileTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"image/png",
	"image/jpeg",
	"image/jpg",
}

func ValidFileType(mimeType string) bool {
	for _, t := range allowedFileTypes {
		if mimeType == t {
			return true
		}
	}
	return false
}

func ValidFileSize(sizeBytes int64) bool {
	return sizeBytes <= MaxFileSizeBytes
}
