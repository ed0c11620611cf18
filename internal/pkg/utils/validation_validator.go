package utils

import (
	"regexp"

	"spendin-service/internal/pkg/constvars"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	vpaRegexp       = regexp.MustCompile(constvars.RegexUpiVpa)
	inrAmountRegexp = regexp.MustCompile(constvars.RegexInrAmount)
	ethTxRegexp     = regexp.MustCompile(constvars.RegexEthTxHash)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("vpa", validateVpa)
	validate.RegisterValidation("inr_amount", validateInrAmount)
	validate.RegisterValidation("eth_tx", validateEthTx)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateVpa(fl validator.FieldLevel) bool {
	return vpaRegexp.MatchString(fl.Field().String())
}

func validateInrAmount(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return inrAmountRegexp.MatchString(value) && value != "0" && value != "0.0" && value != "0.00"
}

func validateEthTx(fl validator.FieldLevel) bool {
	return ethTxRegexp.MatchString(fl.Field().String())
}
