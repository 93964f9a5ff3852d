// Package nav turns a valuation into the final publish-or-reject decision.
// The policy is all-or-nothing: a NAV with any unresolved valuation, or
// without a valid shares-outstanding divisor, is never published as a number.
package nav

import "github.com/shopspring/decimal"

// ErrorResult is the sentinel persisted when the estimate cannot be trusted.
const ErrorResult = "ERROR"

// Outcome is the terminal result of a run.
type Outcome struct {
	// NAV is the estimated NAV per share. Meaningful only when Computable.
	NAV decimal.Decimal

	// Computable reports that shares outstanding was valid and a NAV could
	// be calculated, published or not.
	Computable bool

	// Published reports that the NAV passed the all-or-nothing policy and
	// may be consumed as a number.
	Published bool
}

// String renders the outcome as persisted: the NAV at 4-decimal precision,
// or the ERROR sentinel.
func (o Outcome) String() string {
	if !o.Published {
		return ErrorResult
	}
	return o.NAV.StringFixed(4)
}

// Compute decides whether the estimated NAV is trustworthy enough to
// publish. This is a pure function and the single place that decision is
// made:
//   - shares outstanding absent or <= 0: not even computable;
//   - any missing valuation: computable but rejected;
//   - otherwise: published.
func Compute(totalUSD, sharesOutstanding float64, missing []string) Outcome {
	if sharesOutstanding <= 0 {
		return Outcome{}
	}

	value := decimal.NewFromFloat(totalUSD).Div(decimal.NewFromFloat(sharesOutstanding))
	return Outcome{
		NAV:        value,
		Computable: true,
		Published:  len(missing) == 0,
	}
}
