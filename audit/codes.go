package audit

// Kind classifies a violation independently of the rule that found it.
type Kind int

const (
	KindMissingRequiredField Kind = iota
	KindInvalidReference
	KindExpiredReference
	KindSequenceViolation
	KindToleranceMismatch
	KindOrderingViolation
	KindMutualExclusionViolation
	// KindInvalidValue covers values outside their domain, such as negative
	// amounts or unknown enumeration members.
	KindInvalidValue
)

func (k Kind) String() string {
	switch k {
	case KindMissingRequiredField:
		return "MissingRequiredField"
	case KindInvalidReference:
		return "InvalidReference"
	case KindExpiredReference:
		return "ExpiredReference"
	case KindSequenceViolation:
		return "SequenceViolation"
	case KindToleranceMismatch:
		return "ToleranceMismatch"
	case KindOrderingViolation:
		return "OrderingViolation"
	case KindMutualExclusionViolation:
		return "MutualExclusionViolation"
	case KindInvalidValue:
		return "InvalidValue"
	default:
		return "Unknown"
	}
}

// MarshalText renders the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Severity tells whether an entry affects the validity of the file.
// Warnings never do.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// MarshalText renders the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Code is the stable identifier of a rule violation.
type Code string

const (
	// Table level.
	CodeNumberOfEntriesMissing  Code = "number-of-entries-missing"
	CodeNumberOfEntriesMismatch Code = "number-of-entries-mismatch"
	CodeTotalDebitMissing       Code = "total-debit-missing"
	CodeTotalDebitMismatch      Code = "total-debit-mismatch"
	CodeTotalCreditMissing      Code = "total-credit-missing"
	CodeTotalCreditMismatch     Code = "total-credit-mismatch"
	CodeHeaderPeriodMissing     Code = "header-period-missing"

	// Document identity.
	CodeReferenceMissing   Code = "payment-ref-missing"
	CodeReferenceDuplicate Code = "payment-ref-duplicate"
	CodeTypeMissing        Code = "payment-type-missing"
	CodeTypeUnknown        Code = "payment-type-unknown"

	// Document status.
	CodeStatusMissing               Code = "status-missing"
	CodeStatusUnknown               Code = "status-unknown"
	CodeStatusDateMissing           Code = "status-date-missing"
	CodeStatusDateBeforeTransaction Code = "status-date-before-transaction"
	CodeStatusReasonMissing         Code = "status-reason-missing"
	CodeStatusSourceMissing         Code = "status-source-missing"
	CodeStatusSourceIDMissing       Code = "status-source-id-missing"

	// CodeCustomerID is shared by a missing and an unresolved customer id.
	// The two conditions are told apart by Kind.
	CodeCustomerID Code = "customer-id"

	// Lines.
	CodeLinesMissing         Code = "lines-missing"
	CodeLineNumberInvalid    Code = "line-number-invalid"
	CodeLineNumberDuplicate  Code = "line-number-duplicate"
	CodeLineNumberGap        Code = "line-number-gap"
	CodeLineAmountMissing    Code = "line-amount-missing"
	CodeLineAmountExclusive  Code = "line-amount-exclusive"
	CodeLineAmountNegative   Code = "line-amount-negative"
	CodeSettlementNegative   Code = "settlement-amount-negative"
	CodeSourceDocumentAbsent Code = "source-document-missing"

	// Source document references.
	CodeOriginatingONMissing        Code = "originating-on-missing"
	CodeOriginatingONFormat         Code = "originating-on-format"
	CodeOriginatingONDuplicate      Code = "originating-on-duplicate"
	CodeInvoiceDateMissing          Code = "invoice-date-missing"
	CodeInvoiceDateAfterTransaction Code = "invoice-date-after-transaction"

	// Tax.
	CodeTaxMissing          Code = "tax-missing"
	CodeTaxTypeMissing      Code = "tax-type-missing"
	CodeTaxTypeUnknown      Code = "tax-type-unknown"
	CodeTaxRegionMissing    Code = "tax-region-missing"
	CodeTaxCodeMissing      Code = "tax-code-missing"
	CodeTaxRateMissing      Code = "tax-rate-missing"
	CodeTaxRateExclusive    Code = "tax-rate-exclusive"
	CodeTaxRateNegative     Code = "tax-rate-negative"
	CodeTaxAmountMismatch   Code = "tax-amount-mismatch"
	CodeTaxCodeUnknown      Code = "tax-code-unknown"
	CodeTaxRateNotInTable   Code = "tax-rate-not-in-table"
	CodeTaxEntryExpired     Code = "tax-entry-expired"
	CodeExemptionMissing    Code = "exemption-missing"
	CodeExemptionIncomplete Code = "exemption-incomplete"
	CodeExemptionWithRate   Code = "exemption-with-rate"

	// Totals.
	CodeTotalsMissing          Code = "totals-missing"
	CodeNetTotalMissing        Code = "net-total-missing"
	CodeTaxPayableMissing      Code = "tax-payable-missing"
	CodeGrossTotalMissing      Code = "gross-total-missing"
	CodeNetTotalMismatch       Code = "net-total-mismatch"
	CodeTaxPayableMismatch     Code = "tax-payable-mismatch"
	CodeGrossTotalMismatch     Code = "gross-total-mismatch"
	CodeGrossNotNetPlusTax     Code = "gross-not-net-plus-tax"
	CodeCurrencyCodeMissing    Code = "currency-code-missing"
	CodeExchangeRateInvalid    Code = "exchange-rate-invalid"
	CodeCurrencyAmountMissing  Code = "currency-amount-missing"
	CodeCurrencyAmountMismatch Code = "currency-amount-mismatch"

	// Dates.
	CodeTransactionDateMissing     Code = "transaction-date-missing"
	CodeTransactionDateOutOfPeriod Code = "transaction-date-out-of-period"
	CodeTransactionDateRegression  Code = "transaction-date-regression"
	CodeSystemEntryDateMissing     Code = "system-entry-date-missing"
	CodeSystemEntryDateOutOfPeriod Code = "system-entry-date-out-of-period"
	CodeSystemEntryDateRegression  Code = "system-entry-date-regression"

	// Payment methods.
	CodePaymentMethodMissing    Code = "payment-method-missing"
	CodePaymentMechanismInvalid Code = "payment-mechanism-invalid"
	CodePaymentAmountMissing    Code = "payment-amount-missing"
	CodePaymentAmountNegative   Code = "payment-amount-negative"
	CodePaymentDateMissing      Code = "payment-date-missing"
	CodePaymentSumMismatch      Code = "payment-sum-mismatch"

	// Withholding tax.
	CodeWithholdingAmountMissing Code = "withholding-amount-missing"
	CodeWithholdingExceedsGross  Code = "withholding-exceeds-gross"
	CodeWithholdingAboveHalf     Code = "withholding-above-half-gross"
)

// ruleInfo is the catalog entry of a code.
type ruleInfo struct {
	code     Code
	kind     Kind
	severity Severity
}

// catalog lists every code in rank order. Entries recorded on the same entity are
// sorted by this order, so the first entry of an entity does not depend on which
// rule happened to run first.
var catalog = []ruleInfo{
	{CodeNumberOfEntriesMissing, KindMissingRequiredField, SeverityError},
	{CodeNumberOfEntriesMismatch, KindToleranceMismatch, SeverityError},
	{CodeTotalDebitMissing, KindMissingRequiredField, SeverityError},
	{CodeTotalDebitMismatch, KindToleranceMismatch, SeverityError},
	{CodeTotalCreditMissing, KindMissingRequiredField, SeverityError},
	{CodeTotalCreditMismatch, KindToleranceMismatch, SeverityError},
	{CodeHeaderPeriodMissing, KindMissingRequiredField, SeverityError},

	{CodeReferenceMissing, KindMissingRequiredField, SeverityError},
	{CodeReferenceDuplicate, KindInvalidReference, SeverityError},
	{CodeTypeMissing, KindMissingRequiredField, SeverityError},
	{CodeTypeUnknown, KindInvalidValue, SeverityError},

	{CodeCustomerID, KindMissingRequiredField, SeverityError},

	{CodeStatusMissing, KindMissingRequiredField, SeverityError},
	{CodeStatusUnknown, KindInvalidValue, SeverityError},
	{CodeStatusDateMissing, KindMissingRequiredField, SeverityError},
	{CodeStatusDateBeforeTransaction, KindOrderingViolation, SeverityError},
	{CodeStatusReasonMissing, KindMissingRequiredField, SeverityError},
	{CodeStatusSourceMissing, KindMissingRequiredField, SeverityError},
	{CodeStatusSourceIDMissing, KindMissingRequiredField, SeverityError},

	{CodeLinesMissing, KindMissingRequiredField, SeverityError},
	{CodeLineNumberInvalid, KindInvalidValue, SeverityError},
	{CodeLineNumberDuplicate, KindSequenceViolation, SeverityError},
	{CodeLineNumberGap, KindSequenceViolation, SeverityError},
	{CodeLineAmountMissing, KindMissingRequiredField, SeverityError},
	{CodeLineAmountExclusive, KindMutualExclusionViolation, SeverityError},
	{CodeLineAmountNegative, KindInvalidValue, SeverityError},
	{CodeSettlementNegative, KindInvalidValue, SeverityError},
	{CodeSourceDocumentAbsent, KindMissingRequiredField, SeverityError},

	{CodeOriginatingONMissing, KindMissingRequiredField, SeverityError},
	{CodeOriginatingONFormat, KindInvalidValue, SeverityWarning},
	{CodeOriginatingONDuplicate, KindInvalidReference, SeverityWarning},
	{CodeInvoiceDateMissing, KindMissingRequiredField, SeverityError},
	{CodeInvoiceDateAfterTransaction, KindOrderingViolation, SeverityError},

	{CodeTaxMissing, KindMissingRequiredField, SeverityError},
	{CodeTaxTypeMissing, KindMissingRequiredField, SeverityError},
	{CodeTaxTypeUnknown, KindInvalidValue, SeverityError},
	{CodeTaxRegionMissing, KindMissingRequiredField, SeverityError},
	{CodeTaxCodeMissing, KindMissingRequiredField, SeverityError},
	{CodeTaxRateMissing, KindMissingRequiredField, SeverityError},
	{CodeTaxRateExclusive, KindMutualExclusionViolation, SeverityError},
	{CodeTaxRateNegative, KindInvalidValue, SeverityError},
	{CodeTaxAmountMismatch, KindToleranceMismatch, SeverityError},
	{CodeTaxCodeUnknown, KindInvalidReference, SeverityError},
	{CodeTaxRateNotInTable, KindInvalidReference, SeverityError},
	{CodeTaxEntryExpired, KindExpiredReference, SeverityError},
	{CodeExemptionMissing, KindMissingRequiredField, SeverityError},
	{CodeExemptionIncomplete, KindMutualExclusionViolation, SeverityError},
	{CodeExemptionWithRate, KindMutualExclusionViolation, SeverityError},

	{CodeTotalsMissing, KindMissingRequiredField, SeverityError},
	{CodeNetTotalMissing, KindMissingRequiredField, SeverityError},
	{CodeTaxPayableMissing, KindMissingRequiredField, SeverityError},
	{CodeGrossTotalMissing, KindMissingRequiredField, SeverityError},
	{CodeNetTotalMismatch, KindToleranceMismatch, SeverityError},
	{CodeTaxPayableMismatch, KindToleranceMismatch, SeverityError},
	{CodeGrossTotalMismatch, KindToleranceMismatch, SeverityError},
	{CodeGrossNotNetPlusTax, KindToleranceMismatch, SeverityError},
	{CodeCurrencyCodeMissing, KindMissingRequiredField, SeverityError},
	{CodeExchangeRateInvalid, KindInvalidValue, SeverityError},
	{CodeCurrencyAmountMissing, KindMissingRequiredField, SeverityError},
	{CodeCurrencyAmountMismatch, KindToleranceMismatch, SeverityError},

	{CodeTransactionDateMissing, KindMissingRequiredField, SeverityError},
	{CodeTransactionDateOutOfPeriod, KindOrderingViolation, SeverityError},
	{CodeTransactionDateRegression, KindOrderingViolation, SeverityError},
	{CodeSystemEntryDateMissing, KindMissingRequiredField, SeverityError},
	{CodeSystemEntryDateOutOfPeriod, KindOrderingViolation, SeverityError},
	{CodeSystemEntryDateRegression, KindOrderingViolation, SeverityError},

	{CodePaymentMethodMissing, KindMissingRequiredField, SeverityWarning},
	{CodePaymentMechanismInvalid, KindInvalidValue, SeverityError},
	{CodePaymentAmountMissing, KindMissingRequiredField, SeverityError},
	{CodePaymentAmountNegative, KindInvalidValue, SeverityError},
	{CodePaymentDateMissing, KindMissingRequiredField, SeverityError},
	{CodePaymentSumMismatch, KindToleranceMismatch, SeverityError},

	{CodeWithholdingAmountMissing, KindMissingRequiredField, SeverityError},
	{CodeWithholdingExceedsGross, KindToleranceMismatch, SeverityError},
	{CodeWithholdingAboveHalf, KindToleranceMismatch, SeverityWarning},
}

var (
	codeRank = make(map[Code]int, len(catalog))
	codeInfo = make(map[Code]ruleInfo, len(catalog))
)

func init() {
	for i, info := range catalog {
		codeRank[info.code] = i
		codeInfo[info.code] = info
	}
}

// Codes returns every known code in rank order.
func Codes() []Code {
	codes := make([]Code, len(catalog))
	for i, info := range catalog {
		codes[i] = info.code
	}
	return codes
}

// Rank returns the position of the code in the ordered catalog. Unknown codes
// sort last.
func (c Code) Rank() int {
	if r, ok := codeRank[c]; ok {
		return r
	}
	return len(catalog)
}

// Kind returns the default kind of the code.
func (c Code) Kind() Kind {
	return codeInfo[c].kind
}

// Severity returns the severity of the code.
func (c Code) Severity() Severity {
	return codeInfo[c].severity
}
