package quotation

import "billbook/pkg/numerator"

const (
	// NumberPrefix for quotation numbers (QTE-YYYY-MM-NNNNN).
	NumberPrefix = "QTE"

	// NumeratorStrategy kept strict so quotation numbers stay unique
	// and ordered the same way invoice numbers are.
	NumeratorStrategy = numerator.StrategyStrict
)
