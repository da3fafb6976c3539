package bill

import "billbook/pkg/numerator"

const (
	// NumberPrefix for invoice numbers (SQE-YYYY-MM-NNNNN).
	NumberPrefix = "SQE"

	// NumeratorStrategy: strict keeps invoice numbers unique and
	// strictly increasing under concurrent creation. A failed create
	// may still burn a sequence value.
	NumeratorStrategy = numerator.StrategyStrict
)
