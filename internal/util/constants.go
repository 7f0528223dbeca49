package util

const ShortTimeStamp = "2006-01-02 15:04"

const (
	StorageLocal      = "local"
	StorageMinio      = "minio"
	StorageOSS        = "oss"
	StorageCloudinary = "cloudinary"
)

const (
	MimeImage       = "image/"
	MimePDF         = "application/pdf"
	MimePNG         = "image/png"
	MimeXLSX        = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MimeOctetStream = "application/octet-stream"
)

const (
	MB = int64(1 << 20)

	MaxImageSize = 5 * MB
)

var (
	AllowedSubmissionExtensions = []string{".pdf", ".jpg", ".jpeg", ".png"}
	AllowedImageExtensions      = []string{".png", ".jpg", ".jpeg", ".gif"}
)
