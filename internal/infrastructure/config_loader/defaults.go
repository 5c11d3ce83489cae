package loader

const (
	// defaultConfPath is the fallback configuration directory when no overrides are provided.
	defaultConfPath = "configs"
	// defaultHTTPAddr is used when the server section omits a listen address.
	defaultHTTPAddr = "0.0.0.0:8000"
	// defaultEnvironment is used when APP_ENV is missing.
	defaultEnvironment = "development"
	// defaultStorageFolder is the logical folder all uploads land in.
	defaultStorageFolder = "Dev"
	// defaultChunkSizeBytes bounds memory per in-flight transfer; tuned for large media files.
	defaultChunkSizeBytes = 60_000_000
	// defaultPublicBaseURL prefixes public object URLs when config omits one.
	defaultPublicBaseURL = "https://storage.googleapis.com"
	// defaultReconcileInterval is the sweep cadence of the reconcile task.
	defaultReconcileInterval = "5m"
	// defaultReconcileGrace shields in-flight uploads from the sweeper.
	defaultReconcileGrace = "30m"
)
