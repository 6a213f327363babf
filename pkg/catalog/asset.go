package catalog

// Asset is a single file uploaded to a template release.
type Asset struct {
	// Name is the file name as published, e.g. "1.19-forge-quilt.zip".
	Name string
	// ID identifies the asset on GitHub.
	ID int64
	// URL is the API endpoint returning the asset metadata, including the
	// actual download location.
	URL string
}
