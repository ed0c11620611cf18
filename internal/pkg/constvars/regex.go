package constvars

const (
	// RegexUpiVpa matches a UPI Virtual Payment Address, local@handle.
	RegexUpiVpa = `^[\w.\-]+@[\w.\-]+$`
	// RegexInrAmount matches a non-negative decimal with at most 2 fraction digits.
	RegexInrAmount = `^\d+(\.\d{1,2})?$`
	// RegexEthTxHash matches a 0x-prefixed 32-byte transaction hash.
	RegexEthTxHash = `^0x[0-9a-fA-F]{64}$`
	// RegexTransferID matches the generated payout transfer id policy.
	RegexTransferID = `^TXN_\d+_[A-Z0-9]{6}$`
)
