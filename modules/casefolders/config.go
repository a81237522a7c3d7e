package casefolders

// Config holds the limits of the file routes.
type Config struct {
	PreviewMaxBytes int64 `env:"PREVIEW_MAX_BYTES" envDefault:"26214400"` // 25 MiB
	UploadMaxBytes  int64 `env:"UPLOAD_MAX_BYTES" envDefault:"52428800"`  // 50 MiB, whole multipart body
	FileMaxBytes    int64 `env:"FILE_MAX_BYTES" envDefault:"26214400"`    // 25 MiB, single part
	ListLimit       int   `env:"FILES_LIST_LIMIT" envDefault:"50"`
}
