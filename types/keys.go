package types

const (
	// ModuleName is the codespace for all engine sentinel errors.
	ModuleName = "fasttransfer"

	// FeePrecisionMax is the upper bound accepted for any basis-point
	// parameter field.
	FeePrecisionMax = 1_000_000

	// BpsDenom is the denominator applied to every basis-point fraction
	// in the penalty curve and reward split.
	BpsDenom = 10_000
)
