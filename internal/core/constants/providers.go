package constants

const (
	VendorLocalAI = "localai"

	// Vendor display names
	VendorDisplayLocalAI = "LocalAI"

	VendorHomeLocalAI = "https://github.com/go-skynet/LocalAI"

	// Placeholder shown for an empty host URL
	PlaceholderHostLocalAI = "e.g., http://127.0.0.1:8080"
)
