package api

const (
	// Generic request/server errors
	CodeInvalidRequest = "E_INVALID_REQUEST" // bad or invalid request
	CodeRateLimited    = "E_RATE_LIMITED"    // rate limit exceeded
	CodeInternalError  = "E_INTERNAL_ERROR"  // internal server error

	// Walrus deployment validation errors (fail fast, never retried)
	CodeWalrusMissingPayload  = "E_WALRUS_MISSING_PAYLOAD"   // empty or absent file payload
	CodeWalrusMissingWallet   = "E_WALRUS_MISSING_WALLET"    // wallet address header absent
	CodeWalrusPayloadTooLarge = "E_WALRUS_PAYLOAD_TOO_LARGE" // payload exceeds the 50 MB limit

	// Walrus network errors (transient class retried with backoff first)
	CodeWalrusAllPublishersFailed = "E_WALRUS_ALL_PUBLISHERS_FAILED" // every write endpoint rejected or errored
	CodeWalrusDeploymentFailed    = "E_WALRUS_DEPLOYMENT_FAILED"     // deployment endpoint returned a non-503 error
	CodeWalrusMaxRetriesExceeded  = "E_WALRUS_MAX_RETRIES_EXCEEDED"  // 503 backoff loop exhausted its budget
	CodeWalrusNetworkUnavailable  = "E_WALRUS_NETWORK_UNAVAILABLE"   // transport-level failure after retries
	CodeWalrusNetworkTimeout      = "E_WALRUS_NETWORK_TIMEOUT"       // overall deployment deadline reached
	CodeWalrusBlobNotFound        = "E_WALRUS_BLOB_NOT_FOUND"        // blob absent after all propagation passes

	// Report errors
	CodeReportNotFound = "E_REPORT_NOT_FOUND" // the audit report row does not exist

	// External collaborators
	CodeIpfsPinFailed = "E_IPFS_PIN_FAILED" // the pinning service rejected the file
	CodeSuiRPCFailed  = "E_SUI_RPC_FAILED"  // the ledger system-state query failed
)
