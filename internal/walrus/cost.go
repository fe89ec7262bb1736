package walrus

import (
	"github.com/shopspring/decimal"
)

// Walrus testnet pricing. Storage is billed per MiB per epoch, plus a flat
// gas component for the payment transaction. All SUI-denominated.
var (
	storageRatePerMiBEpoch = decimal.RequireFromString("0.01")
	gasCost                = decimal.RequireFromString("0.001")

	bytesPerMiB = decimal.NewFromInt(1 << 20)
	thousand    = decimal.NewFromInt(1000)
)

// DeploymentConfig is the recomputed-on-every-change pricing of one paid
// upload. Pure function of size and epoch count; nothing caches it.
type DeploymentConfig struct {
	GasPrice      decimal.Decimal `json:"gasPrice"`
	StorageEpochs int             `json:"storageEpochs"`
	EstimatedCost decimal.Decimal `json:"estimatedCost"`
}

// EstimateDeploymentCost returns the SUI cost of storing fileSizeBytes for
// storageEpochs epochs, rounded up to 3 decimal places so the quote never
// undershoots the actual network charge.
func EstimateDeploymentCost(fileSizeBytes int64, storageEpochs int) decimal.Decimal {
	return ceilMilli(storageCost(fileSizeBytes, storageEpochs).Add(gasCost))
}

// StorageCost is the storage component alone, same rounding.
func StorageCost(fileSizeBytes int64, storageEpochs int) decimal.Decimal {
	return ceilMilli(storageCost(fileSizeBytes, storageEpochs))
}

// GasCost is the flat transaction fee component.
func GasCost() decimal.Decimal {
	return gasCost
}

// NewDeploymentConfig bundles the estimate with its inputs.
func NewDeploymentConfig(fileSizeBytes int64, storageEpochs int) DeploymentConfig {
	return DeploymentConfig{
		GasPrice:      gasCost,
		StorageEpochs: storageEpochs,
		EstimatedCost: EstimateDeploymentCost(fileSizeBytes, storageEpochs),
	}
}

func storageCost(fileSizeBytes int64, storageEpochs int) decimal.Decimal {
	// 2^20 divides exactly within 20 decimal places.
	sizeMiB := decimal.NewFromInt(fileSizeBytes).DivRound(bytesPerMiB, 20)
	return sizeMiB.Mul(storageRatePerMiBEpoch).Mul(decimal.NewFromInt(int64(storageEpochs)))
}

// ceilMilli rounds up to the nearest thousandth.
func ceilMilli(d decimal.Decimal) decimal.Decimal {
	return d.Mul(thousand).Ceil().Div(thousand)
}
