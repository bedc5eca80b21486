package dice

import "sort"

// Roll evaluates an Expression using the given Source. The result keeps every
// counted die so attack and spell events can carry the full roll audit.
//
// Precondition: expr must come from Parse (Count >= 1, Sides >= 2); src must be non-nil.
// Postcondition: len(result.Dice) == expr.Count when KeepHighest == 0, or
//
//	len(result.Dice) == expr.KeepHighest when KeepHighest > 0.
//	result.Total() == sum(result.Dice) + result.Modifier.
func Roll(expr Expression, src Source) (RollResult, error) {
	rolled := make([]int, expr.Count)
	for i := range rolled {
		rolled[i] = src.Intn(expr.Sides) + 1
	}

	kept := rolled
	if expr.KeepHighest > 0 {
		sorted := make([]int, len(rolled))
		copy(sorted, rolled)
		sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
		kept = sorted[:expr.KeepHighest]
	}

	return RollResult{
		Expression: expr.Raw,
		Dice:       kept,
		Modifier:   expr.Modifier,
	}, nil
}

// RollCrit evaluates expr as a critical hit: the dice are rolled twice and the
// modifier is applied once. The first roll's dice precede the second's in the
// result, so the audit reads in draw order.
//
// Precondition: expr must come from Parse; src must be non-nil.
// Postcondition: len(result.Dice) is twice that of a Roll of the same
// expression; result.Modifier == expr.Modifier.
func RollCrit(expr Expression, src Source) (RollResult, error) {
	base, err := Roll(expr, src)
	if err != nil {
		return RollResult{}, err
	}
	extra, err := Roll(expr, src)
	if err != nil {
		return RollResult{}, err
	}
	return RollResult{
		Expression: expr.Raw,
		Dice:       append(base.Dice, extra.Dice...),
		Modifier:   expr.Modifier,
	}, nil
}

// RollExpr parses expr and rolls it using src in a single call.
//
// Precondition: expr must be a valid dice expression string; src must be non-nil.
// Postcondition: Returns a RollResult or a parse/roll error.
func RollExpr(expr string, src Source) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return Roll(e, src)
}

// MustParse parses expr and panics on error. Useful for fixed weapon and
// spell damage expressions.
//
// Precondition: expr must be a valid dice expression.
func MustParse(expr string) Expression {
	e, err := Parse(expr)
	if err != nil {
		panic("dice: MustParse failed for expression " + expr + ": " + err.Error())
	}
	return e
}
