package constvars

// Per-chain USDC network fee table. Fees are flat USDC amounts charged on top
// of the converted amount. Unknown chains fall back to DefaultNetworkFee so
// the conversion path never errors on an unsupported chain id.
var ChainNetworkFees = map[int]string{
	42161:    "0.25", // Arbitrum One
	421614:   "0.5",  // Arbitrum Sepolia
	8453:     "0.1",  // Base
	84532:    "0.5",  // Base Sepolia
	1:        "2.0",  // Ethereum mainnet
	11155111: "0.5",  // Sepolia
}

const DefaultNetworkFee = "0.5"

var ChainNames = map[int]string{
	42161:    "Arbitrum One",
	421614:   "Arbitrum Sepolia",
	8453:     "Base",
	84532:    "Base Sepolia",
	1:        "Ethereum",
	11155111: "Sepolia",
}

const DefaultChainName = "Unknown Network"

// MoneyScale is the fixed rounding scale for all monetary outputs.
const MoneyScale = 6
