package walrus

// maxDeployBytes is the payload ceiling on the paid path.
const maxDeployBytes = 50 << 20

// defaultStorageEpochs is used when the X-Storage-Epochs header is absent or
// unparseable.
const defaultStorageEpochs = 10

type DeployResponse struct {
	BlobID          string  `json:"blobId"`
	TransactionHash string  `json:"transactionHash"`
	Cost            float64 `json:"cost"`
	StorageEpochs   int     `json:"storageEpochs"`
	ExpirationEpoch uint64  `json:"expirationEpoch"`
	Status          string  `json:"status"`
}

type EstimateRequest struct {
	FileSizeBytes int64 `json:"fileSizeBytes" binding:"required"`
	StorageEpochs int   `json:"storageEpochs"`
}

type EstimateBreakdown struct {
	StorageCost float64 `json:"storageCost"`
	GasCost     float64 `json:"gasCost"`
	TotalCost   float64 `json:"totalCost"`
}

type EstimateEpochs struct {
	Storage    int    `json:"storage"`
	Current    uint64 `json:"current"`
	Expiration uint64 `json:"expiration"`
}

type EstimateResponse struct {
	EstimatedCost float64           `json:"estimatedCost"`
	Breakdown     EstimateBreakdown `json:"breakdown"`
	Epochs        EstimateEpochs    `json:"epochs"`
}

type DeploymentStatusResponse struct {
	Status       string `json:"status"`
	BlobID       string `json:"blobId"`
	Available    bool   `json:"available"`
	CurrentEpoch uint64 `json:"currentEpoch,omitempty"`
	Size         int64  `json:"size,omitempty"`
	ContentType  string `json:"contentType,omitempty"`
	Message      string `json:"message,omitempty"`
}

type NetworkStatusResponse struct {
	Status string `json:"status"`
}

type PinResponse struct {
	IpfsHash string `json:"ipfsHash"`
	URL      string `json:"url"`
}
