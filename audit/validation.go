package audit

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/robinvdvleuten/saft/ast"
	"github.com/shopspring/decimal"
)

// Validation Architecture
//
// A pass runs the rules below over every document in file order:
//
//	Validator.Process(ctx, file)
//	  ↓
//	validator.validateDocument(doc) → (bool, *DocumentDelta)
//	  ├─ validateIdentity()          // Reference, type, duplicate references
//	  ├─ validateStatus()            // Status code, date, reason and source
//	  ├─ validateCustomer()          // Customer id set and known
//	  ├─ validateLines()             // Amounts and line numbering
//	  ├─ validateSourceDocuments()   // Settled invoice references
//	  ├─ validateTax()               // Tax fields, exemption, tax table
//	  ├─ validateTotals()            // Declared totals against the lines
//	  ├─ validateDates()             // Reporting period and ordering
//	  ├─ validatePaymentMethods()    // Methods and their sum
//	  └─ validateWithholdingTax()    // Withheld amounts against gross
//	  ↓
//	State.Apply(delta)
//	  ↓
//	validator.validateTable(entries) // Entry count, debit and credit totals
//
// Rules read the running State but never mutate it. Every rule runs to completion
// and records what it finds in the Registry, so a document with several problems
// yields one entry per problem. Values derived by earlier rules (summed amounts,
// recomputed tax) are passed to later rules through docCheck.
//
// Each rule asserts the document capability it needs (ast.LinesHolder,
// ast.TotalsHolder, ...) and accepts documents that lack it.

// originatingONPattern matches "<type> <series>/<number>", e.g. "FT 2024A/15".
var originatingONPattern = regexp.MustCompile(`^[^\s/]+ [^\s/]+/[0-9]+$`)

// validator validates documents with read-only access to the pass state.
type validator struct {
	cfg      *Config
	index    *Index
	state    *State
	header   *ast.Header
	table    ast.Table
	registry *Registry
}

func newValidator(cfg *Config, index *Index, state *State, header *ast.Header, table ast.Table, registry *Registry) *validator {
	return &validator{
		cfg:      cfg,
		index:    index,
		state:    state,
		header:   header,
		table:    table,
		registry: registry,
	}
}

// docCheck is the working set of one document.
type docCheck struct {
	doc ast.Document

	credit decimal.Decimal
	debit  decimal.Decimal
	// net and tax are signed: credit lines add, debit lines subtract.
	net decimal.Decimal
	tax decimal.Decimal
}

// report records a violation of code with the code's default kind. The
// severity always comes from the catalog.
func (v *validator) report(doc ast.Document, entity ast.Node, code Code, format string, args ...any) {
	v.reportAs(code.Kind(), doc, entity, code, format, args...)
}

func (v *validator) reportAs(kind Kind, doc ast.Document, entity ast.Node, code Code, format string, args ...any) {
	v.registry.Report(&Entry{
		Entity:   entity,
		Document: doc,
		Code:     code,
		Kind:     kind,
		Severity: code.Severity(),
		Message:  fmt.Sprintf(format, args...),
	})
}

// validateDocument runs every document rule and returns whether none of them
// recorded an error, along with the document's contribution to the state.
func (v *validator) validateDocument(doc ast.Document) (bool, *DocumentDelta) {
	c := &docCheck{doc: doc}

	rules := []func(*docCheck) bool{
		v.validateIdentity,
		v.validateStatus,
		v.validateCustomer,
		v.validateLines,
		v.validateSourceDocuments,
		v.validateTax,
		v.validateTotals,
		v.validateDates,
		v.validatePaymentMethods,
		v.validateWithholdingTax,
	}

	valid := true
	for _, rule := range rules {
		if !rule(c) {
			valid = false
		}
	}

	delta := &DocumentDelta{
		Reference:       doc.Reference(),
		Credit:          c.credit,
		Debit:           c.debit,
		Net:             c.net.Abs(),
		Tax:             c.tax.Abs(),
		Gross:           c.net.Add(c.tax).Abs(),
		TransactionDate: doc.TransactionDay(),
		SystemEntryDate: doc.EntryDate(),
	}
	if holder, ok := doc.(ast.StatusHolder); ok {
		if status := holder.Status(); status != nil && status.PaymentStatus == ast.PaymentStatusAnnulled {
			delta.Annulled = true
		}
	}

	return valid, delta
}

func (v *validator) validateIdentity(c *docCheck) bool {
	doc := c.doc
	ok := true

	if ref := doc.Reference(); ref == "" {
		v.report(doc, doc, CodeReferenceMissing, "reference number is not set")
		ok = false
	} else if v.state.SeenReference(ref) {
		v.report(doc, doc, CodeReferenceDuplicate, "reference number %q is already used by an earlier document", ref)
		ok = false
	}

	switch {
	case doc.DocumentType() == "":
		v.report(doc, doc, CodeTypeMissing, "document type is not set")
		ok = false
	case !doc.KnownType():
		v.report(doc, doc, CodeTypeUnknown, "unknown document type %q", doc.DocumentType())
		ok = false
	}

	return ok
}

func (v *validator) validateStatus(c *docCheck) bool {
	holder, isHolder := c.doc.(ast.StatusHolder)
	if !isHolder {
		return true
	}

	doc := c.doc
	status := holder.Status()
	if status == nil {
		v.report(doc, doc, CodeStatusMissing, "document status is not set")
		return false
	}

	ok := true

	switch {
	case status.PaymentStatus == "":
		v.report(doc, status, CodeStatusMissing, "status code is not set")
		ok = false
	case !status.PaymentStatus.Valid():
		v.report(doc, status, CodeStatusUnknown, "unknown status code %q", status.PaymentStatus)
		ok = false
	}

	if status.PaymentStatusDate == nil {
		v.report(doc, status, CodeStatusDateMissing, "status date is not set")
		ok = false
	} else if tx := doc.TransactionDay(); tx != nil && status.PaymentStatusDate.BeforeDay(tx) {
		v.report(doc, status, CodeStatusDateBeforeTransaction,
			"status date %s is before the transaction date %s", status.PaymentStatusDate, tx)
		ok = false
	}

	if status.PaymentStatus == ast.PaymentStatusAnnulled && strings.TrimSpace(status.Reason) == "" {
		v.report(doc, status, CodeStatusReasonMissing, "an annulled document requires a reason")
		ok = false
	}

	switch {
	case status.SourcePayment == "":
		v.report(doc, status, CodeStatusSourceMissing, "source of the document is not set")
		ok = false
	case !status.SourcePayment.Valid():
		v.reportAs(KindInvalidValue, doc, status, CodeStatusSourceMissing, "unknown source of the document %q", status.SourcePayment)
		ok = false
	}

	if strings.TrimSpace(status.SourceID) == "" {
		v.report(doc, status, CodeStatusSourceIDMissing, "user that changed the status is not set")
		ok = false
	}

	return ok
}

func (v *validator) validateCustomer(c *docCheck) bool {
	doc := c.doc

	id := doc.CustomerRef()
	if id == "" {
		v.report(doc, doc, CodeCustomerID, "customer id is not set")
		return false
	}

	if _, found := v.index.Customer(id); !found {
		v.reportAs(KindInvalidReference, doc, doc, CodeCustomerID, "customer id %q does not exist in the master files", id)
		return false
	}

	return true
}

func (v *validator) validateLines(c *docCheck) bool {
	holder, isHolder := c.doc.(ast.LinesHolder)
	if !isHolder {
		return true
	}

	doc := c.doc
	lines := holder.Lines()
	if len(lines) == 0 {
		v.report(doc, doc, CodeLinesMissing, "document has no lines")
		return false
	}

	ok := true
	seen := make(map[int]struct{}, len(lines))
	prev := 0

	for _, line := range lines {
		if line == nil {
			continue
		}

		if n := line.LineNumber; n < 1 {
			v.report(doc, line, CodeLineNumberInvalid, "line number %d must be positive", n)
			ok = false
		} else {
			if _, dup := seen[n]; dup {
				v.report(doc, line, CodeLineNumberDuplicate, "line number %d is used more than once", n)
				ok = false
			} else if v.cfg.ContinuousLines && n != prev+1 {
				v.report(doc, line, CodeLineNumberGap, "line number %d does not follow %d", n, prev)
				ok = false
			}
			seen[n] = struct{}{}
			prev = n
		}

		credit, debit := line.CreditAmount, line.DebitAmount
		switch {
		case credit == nil && debit == nil:
			v.report(doc, line, CodeLineAmountMissing, "neither credit nor debit amount is set")
			ok = false
		case credit != nil && debit != nil:
			v.report(doc, line, CodeLineAmountExclusive, "both credit and debit amount are set")
			ok = false
		}

		if (credit != nil && credit.IsNegative()) || (debit != nil && debit.IsNegative()) {
			v.report(doc, line, CodeLineAmountNegative, "line amount must not be negative")
			ok = false
		}

		if line.SettlementAmount != nil && line.SettlementAmount.IsNegative() {
			v.report(doc, line, CodeSettlementNegative, "settlement amount %s must not be negative", line.SettlementAmount)
			ok = false
		}

		c.credit = c.credit.Add(valueOf(credit))
		c.debit = c.debit.Add(valueOf(debit))
		c.net = c.net.Add(valueOf(credit)).Sub(valueOf(debit))
	}

	return ok
}

func (v *validator) validateSourceDocuments(c *docCheck) bool {
	holder, isHolder := c.doc.(ast.LinesHolder)
	if !isHolder {
		return true
	}

	doc := c.doc
	tx := doc.TransactionDay()
	ok := true

	for _, line := range holder.Lines() {
		if line == nil {
			continue
		}

		if len(line.SourceDocumentID) == 0 {
			v.report(doc, line, CodeSourceDocumentAbsent, "line has no source document reference")
			ok = false
			continue
		}

		seen := make(map[string]struct{}, len(line.SourceDocumentID))
		for _, ref := range line.SourceDocumentID {
			if ref == nil {
				continue
			}

			if number := strings.TrimSpace(ref.OriginatingON); number == "" {
				v.report(doc, ref, CodeOriginatingONMissing, "originating document number is not set")
				ok = false
			} else {
				if !originatingONPattern.MatchString(number) {
					v.report(doc, ref, CodeOriginatingONFormat, "originating document number %q does not match \"TYPE SERIES/NUMBER\"", number)
				}
				if _, dup := seen[number]; dup {
					v.report(doc, ref, CodeOriginatingONDuplicate, "originating document %q is referenced more than once on this line", number)
				}
				seen[number] = struct{}{}
			}

			if ref.InvoiceDate == nil {
				v.report(doc, ref, CodeInvoiceDateMissing, "invoice date is not set")
				ok = false
			} else if tx != nil && ref.InvoiceDate.AfterDay(tx) {
				v.report(doc, ref, CodeInvoiceDateAfterTransaction,
					"invoice date %s is after the transaction date %s", ref.InvoiceDate, tx)
				ok = false
			}
		}
	}

	return ok
}

func (v *validator) validateTax(c *docCheck) bool {
	holder, isHolder := c.doc.(ast.LinesHolder)
	if !isHolder {
		return true
	}

	doc := c.doc
	ok := true

	for _, line := range holder.Lines() {
		if line == nil {
			continue
		}

		tax := line.Tax
		if tax == nil {
			v.report(doc, line, CodeTaxMissing, "line has no tax")
			ok = false
			continue
		}

		switch {
		case tax.TaxType == "":
			v.report(doc, tax, CodeTaxTypeMissing, "tax type is not set")
			ok = false
		case !tax.TaxType.Valid():
			v.report(doc, tax, CodeTaxTypeUnknown, "unknown tax type %q", tax.TaxType)
			ok = false
		}
		if tax.TaxCountryRegion == "" {
			v.report(doc, tax, CodeTaxRegionMissing, "tax country or region is not set")
			ok = false
		}
		if tax.TaxCode == "" {
			v.report(doc, tax, CodeTaxCodeMissing, "tax code is not set")
			ok = false
		}

		pct, amount := tax.TaxPercentage, tax.TaxAmount
		switch {
		case pct == nil && amount == nil:
			v.report(doc, tax, CodeTaxRateMissing, "neither tax percentage nor tax amount is set")
			ok = false
		case pct == nil && tax.TaxType.PercentageBased():
			v.report(doc, tax, CodeTaxRateMissing, "tax percentage is required for %s", tax.TaxType)
			ok = false
		case pct != nil && amount != nil && tax.TaxType == ast.TaxTypeIS:
			v.report(doc, tax, CodeTaxRateExclusive, "both tax percentage and tax amount are set")
			ok = false
		}
		if (pct != nil && pct.IsNegative()) || (amount != nil && amount.IsNegative()) {
			v.report(doc, tax, CodeTaxRateNegative, "tax rate must not be negative")
			ok = false
		}

		base := valueOf(line.CreditAmount).Sub(valueOf(line.DebitAmount))
		switch {
		case amount != nil:
			t := *amount
			if base.IsNegative() {
				t = t.Neg()
			}
			c.tax = c.tax.Add(t)

			if pct != nil && tax.TaxType.PercentageBased() {
				expected := lineTax(base.Abs(), *pct)
				if !AmountEqual(*amount, expected, v.cfg.Tolerance.Line) {
					v.report(doc, tax, CodeTaxAmountMismatch,
						"tax amount %s does not match %s%% of %s (%s)", amount, pct, base.Abs(), RoundCurrency(expected))
					ok = false
				}
			}
		case pct != nil:
			c.tax = c.tax.Add(lineTax(base, *pct))
		}

		if !v.validateExemption(c, line, pct, amount) {
			ok = false
		}

		if tax.TaxType.Valid() && tax.TaxCountryRegion != "" && tax.TaxCode != "" {
			entry, outcome := v.index.LookupTax(tax.TaxType, tax.TaxCountryRegion, tax.TaxCode, pct, doc.TransactionDay())
			switch outcome {
			case TaxUnknown:
				v.report(doc, tax, CodeTaxCodeUnknown, "tax %s/%s/%s does not exist in the tax table",
					tax.TaxType, tax.TaxCountryRegion, tax.TaxCode)
				ok = false
			case TaxRateMismatch:
				v.report(doc, tax, CodeTaxRateNotInTable, "tax percentage %s does not match the tax table (%s)",
					pct, entry.TaxPercentage)
				ok = false
			case TaxExpired:
				v.report(doc, tax, CodeTaxEntryExpired, "tax table entry %s/%s/%s expired on %s",
					tax.TaxType, tax.TaxCountryRegion, tax.TaxCode, entry.TaxExpirationDate)
				ok = false
			case TaxFound:
			}
		}
	}

	return ok
}

// validateExemption checks the exemption fields of a line. A zero rate requires
// both an exemption code and reason, and an exemption code implies a zero rate.
func (v *validator) validateExemption(c *docCheck, line *ast.Line, pct, amount *decimal.Decimal) bool {
	doc := c.doc
	code := strings.TrimSpace(line.TaxExemptionCode)
	reason := strings.TrimSpace(line.TaxExemptionReason)

	rateKnown := pct != nil || amount != nil
	zeroRate := (pct != nil && pct.IsZero()) || (pct == nil && amount != nil && amount.IsZero())

	ok := true

	switch {
	case (code == "") != (reason == ""):
		if code == "" {
			v.report(doc, line, CodeExemptionIncomplete, "exemption reason is set without an exemption code")
		} else {
			v.report(doc, line, CodeExemptionIncomplete, "exemption code %q is set without an exemption reason", code)
		}
		ok = false
	case zeroRate && code == "":
		v.report(doc, line, CodeExemptionMissing, "a zero tax rate requires an exemption code and reason")
		ok = false
	}

	if code != "" && rateKnown && !zeroRate {
		v.report(doc, line, CodeExemptionWithRate, "exemption code %q is used with a non-zero tax rate", code)
		ok = false
	}

	return ok
}

func (v *validator) validateTotals(c *docCheck) bool {
	holder, isHolder := c.doc.(ast.TotalsHolder)
	if !isHolder {
		return true
	}

	doc := c.doc
	totals := holder.Totals()
	if totals == nil {
		v.report(doc, doc, CodeTotalsMissing, "document totals are not set")
		return false
	}

	tolerance := v.cfg.Tolerance.TotalDoc
	ok := true

	fields := []struct {
		name     string
		declared *decimal.Decimal
		computed decimal.Decimal
		missing  Code
		mismatch Code
	}{
		{"net total", totals.NetTotal, RoundCurrency(c.net.Abs()), CodeNetTotalMissing, CodeNetTotalMismatch},
		{"tax payable", totals.TaxPayable, RoundCurrency(c.tax.Abs()), CodeTaxPayableMissing, CodeTaxPayableMismatch},
		{"gross total", totals.GrossTotal, RoundCurrency(c.net.Add(c.tax).Abs()), CodeGrossTotalMissing, CodeGrossTotalMismatch},
	}

	for _, f := range fields {
		if f.declared == nil {
			v.report(doc, totals, f.missing, "%s is not set", f.name)
			ok = false
			continue
		}
		if !AmountEqual(*f.declared, f.computed, tolerance) {
			v.report(doc, totals, f.mismatch, "%s %s does not match the lines (%s)", f.name, f.declared, f.computed)
			ok = false
		}
	}

	// Declared totals that each reconcile with the lines can still disagree
	// among themselves by up to twice the tolerance.
	if ok {
		sum := totals.NetTotal.Add(*totals.TaxPayable)
		if !AmountEqual(*totals.GrossTotal, sum, tolerance) {
			v.report(doc, totals, CodeGrossNotNetPlusTax,
				"gross total %s does not equal net total plus tax payable (%s)", totals.GrossTotal, sum)
			ok = false
		}
	}

	if totals.Currency != nil && !v.validateCurrency(c, totals) {
		ok = false
	}

	return ok
}

// validateCurrency checks that the converted amount equals gross / rate.
func (v *validator) validateCurrency(c *docCheck, totals *ast.DocumentTotals) bool {
	doc := c.doc
	cur := totals.Currency
	ok := true

	if strings.TrimSpace(cur.CurrencyCode) == "" {
		v.report(doc, cur, CodeCurrencyCodeMissing, "currency code is not set")
		ok = false
	}

	rate := cur.ExchangeRate
	validRate := rate != nil && rate.IsPositive()
	if !validRate {
		v.report(doc, cur, CodeExchangeRateInvalid, "exchange rate must be a positive number")
		ok = false
	}

	if cur.CurrencyAmount == nil {
		v.report(doc, cur, CodeCurrencyAmountMissing, "currency amount is not set")
		return false
	}

	if validRate && totals.GrossTotal != nil {
		expected := RoundCurrency(totals.GrossTotal.Div(*rate))
		if !AmountEqual(*cur.CurrencyAmount, expected, v.cfg.Tolerance.Currency) {
			v.report(doc, cur, CodeCurrencyAmountMismatch,
				"currency amount %s does not match gross total %s at rate %s (%s)",
				cur.CurrencyAmount, totals.GrossTotal, rate, expected)
			ok = false
		}
	}

	return ok
}

func (v *validator) validateDates(c *docCheck) bool {
	doc := c.doc
	tx, entry := doc.TransactionDay(), doc.EntryDate()
	ok := true

	if tx == nil {
		v.report(doc, doc, CodeTransactionDateMissing, "transaction date is not set")
		ok = false
	}
	if entry == nil {
		v.report(doc, doc, CodeSystemEntryDateMissing, "system entry date is not set")
		ok = false
	}

	if v.header == nil || v.header.StartDate == nil || v.header.EndDate == nil {
		v.report(nil, v.table, CodeHeaderPeriodMissing, "header does not declare the reporting period")
		ok = false
	} else {
		start, end := v.header.StartDate, v.header.EndDate
		if tx != nil && (tx.BeforeDay(start) || tx.AfterDay(end)) {
			v.report(doc, doc, CodeTransactionDateOutOfPeriod,
				"transaction date %s is outside the reporting period %s to %s", tx, start, end)
			ok = false
		}
		if entry != nil && (entry.BeforeDay(start) || entry.AfterDay(end)) {
			v.report(doc, doc, CodeSystemEntryDateOutOfPeriod,
				"system entry date %s is outside the reporting period %s to %s", entry, start, end)
			ok = false
		}
	}

	if last := v.state.LastTransactionDate; tx != nil && last != nil && tx.BeforeDay(last) {
		v.report(doc, doc, CodeTransactionDateRegression,
			"transaction date %s is before %s of the previous document", tx, last)
		ok = false
	}
	if last := v.state.LastSystemEntryDate; entry != nil && last != nil && entry.Time.Before(last.Time) {
		v.report(doc, doc, CodeSystemEntryDateRegression,
			"system entry date %s is before %s of the previous document", entry, last)
		ok = false
	}

	return ok
}

func (v *validator) validatePaymentMethods(c *docCheck) bool {
	holder, isHolder := c.doc.(ast.SettlementHolder)
	if !isHolder {
		return true
	}

	doc := c.doc
	methods := holder.Methods()
	if len(methods) == 0 {
		v.report(doc, doc, CodePaymentMethodMissing, "no payment method is declared")
		return true
	}

	ok := true
	sum := decimal.Zero
	var last *ast.PaymentMethod

	for _, m := range methods {
		if m == nil {
			continue
		}
		last = m

		switch {
		case m.PaymentMechanism == "":
			v.reportAs(KindMissingRequiredField, doc, m, CodePaymentMechanismInvalid, "payment mechanism is not set")
			ok = false
		case !m.PaymentMechanism.Valid():
			v.report(doc, m, CodePaymentMechanismInvalid, "unknown payment mechanism %q", m.PaymentMechanism)
			ok = false
		}

		if m.PaymentAmount == nil {
			v.report(doc, m, CodePaymentAmountMissing, "payment amount is not set")
			ok = false
		} else {
			if m.PaymentAmount.IsNegative() {
				v.report(doc, m, CodePaymentAmountNegative, "payment amount %s must not be negative", m.PaymentAmount)
				ok = false
			}
			sum = sum.Add(*m.PaymentAmount)
		}

		if m.PaymentDate == nil {
			v.report(doc, m, CodePaymentDateMissing, "payment date is not set")
			ok = false
		}
	}

	gross := declaredGross(doc)
	if last == nil || gross == nil {
		return ok
	}

	expected := gross.Sub(withholdingTotal(doc))
	if !AmountEqual(sum, expected, v.cfg.Tolerance.TotalDoc) {
		v.report(doc, last, CodePaymentSumMismatch,
			"payment amounts sum to %s, expected %s (gross total minus withholding tax)", sum, expected)
		ok = false
	}

	return ok
}

func (v *validator) validateWithholdingTax(c *docCheck) bool {
	holder, isHolder := c.doc.(ast.WithholdingHolder)
	if !isHolder {
		return true
	}

	doc := c.doc
	ok := true
	var last *ast.WithholdingTax

	for _, w := range holder.Withholdings() {
		if w == nil {
			continue
		}
		last = w

		if w.WithholdingTaxAmount == nil {
			v.report(doc, w, CodeWithholdingAmountMissing, "withholding tax amount is not set")
			ok = false
		}
	}

	gross := declaredGross(doc)
	if last == nil || gross == nil {
		return ok
	}

	total := withholdingTotal(doc)
	switch {
	case total.GreaterThan(*gross):
		v.report(doc, last, CodeWithholdingExceedsGross, "withholding tax %s exceeds the gross total %s", total, gross)
		ok = false
	case total.GreaterThan(gross.Div(two)):
		v.report(doc, last, CodeWithholdingAboveHalf, "withholding tax %s exceeds half of the gross total %s", total, gross)
	}

	return ok
}

// validateTable reconciles the table declarations with the folded state.
func (v *validator) validateTable(entries int) bool {
	table := v.table
	tolerance := v.cfg.Tolerance.Table
	ok := true

	if declared := table.DeclaredEntries(); declared == nil {
		v.report(nil, table, CodeNumberOfEntriesMissing, "number of entries is not set")
		ok = false
	} else if *declared != entries {
		v.report(nil, table, CodeNumberOfEntriesMismatch, "declared %d entries, found %d", *declared, entries)
		ok = false
	}

	totals := []struct {
		name     string
		declared *decimal.Decimal
		computed decimal.Decimal
		missing  Code
		mismatch Code
	}{
		{"total debit", v.state.DeclaredDebit, RoundCurrency(v.state.Debit), CodeTotalDebitMissing, CodeTotalDebitMismatch},
		{"total credit", v.state.DeclaredCredit, RoundCurrency(v.state.Credit), CodeTotalCreditMissing, CodeTotalCreditMismatch},
	}

	for _, t := range totals {
		if t.declared == nil {
			v.report(nil, table, t.missing, "%s is not set", t.name)
			ok = false
			continue
		}
		if !AmountEqual(*t.declared, t.computed, tolerance) {
			v.report(nil, table, t.mismatch, "%s %s does not match the documents (%s)", t.name, t.declared, t.computed)
			ok = false
		}
	}

	return ok
}

func declaredGross(doc ast.Document) *decimal.Decimal {
	holder, ok := doc.(ast.TotalsHolder)
	if !ok || holder.Totals() == nil {
		return nil
	}
	return holder.Totals().GrossTotal
}

func withholdingTotal(doc ast.Document) decimal.Decimal {
	total := decimal.Zero
	holder, ok := doc.(ast.WithholdingHolder)
	if !ok {
		return total
	}
	for _, w := range holder.Withholdings() {
		if w != nil {
			total = total.Add(valueOf(w.WithholdingTaxAmount))
		}
	}
	return total
}
