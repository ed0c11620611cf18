package constvars

const (
	UpiScheme          = "upi://"
	UpiPayPrefix       = "upi://pay?"
	UpiDefaultCurrency = "INR"
)

// UPI deep-link query keys per the NPCI linking specification.
const (
	UpiKeyPayeeAddress    = "pa"
	UpiKeyPayeeName       = "pn"
	UpiKeyAmount          = "am"
	UpiKeyCurrency        = "cu"
	UpiKeyMerchantCode    = "mc"
	UpiKeyTransactionRef  = "tr"
	UpiKeyTransactionNote = "tn"
	UpiKeyMinimumAmount   = "mam"
)

// QrType classifies a parsed UPI payload.
type QrType string

const (
	QrTypePersonal        QrType = "personal"
	QrTypeStaticMerchant  QrType = "static_merchant"
	QrTypeDynamicMerchant QrType = "dynamic_merchant"
)
