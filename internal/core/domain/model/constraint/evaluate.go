package constraint

import "fmt"

// ViolationKind classifies a single constraint violation by its tier.
type ViolationKind int

const (
	// UnknownViolation represents an invalid or undefined violation kind.
	UnknownViolation ViolationKind = iota

	// ProhibitionMatched means the candidate matched a prohibition rule.
	// Any single occurrence rejects the pair.
	ProhibitionMatched

	// RequirementUnmet means the candidate failed a requirement rule.
	// Any single occurrence rejects the pair.
	RequirementUnmet

	// PreferenceMissed means the candidate failed a preference rule.
	// Never blocks; returned for the optimizer's scoring use.
	PreferenceMissed
)

// getViolationKindStrings returns the string representation of each kind.
func getViolationKindStrings() map[ViolationKind]string {
	return map[ViolationKind]string{
		UnknownViolation:   "Unknown",
		ProhibitionMatched: "ProhibitionMatched",
		RequirementUnmet:   "RequirementUnmet",
		PreferenceMissed:   "PreferenceMissed",
	}
}

// String returns the human-readable name of the violation kind.
func (k ViolationKind) String() string {
	if str, ok := getViolationKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// Violation describes a single failed rule: which tier it came from, which
// rule dimension failed, and a human-readable detail.
type Violation struct {
	Kind   ViolationKind
	Rule   string
	Detail string
}

// Evaluation is the result of testing a candidate pair against a trip's
// constraints. Satisfied is false exactly when Violations contains at least
// one ProhibitionMatched or RequirementUnmet entry; PreferenceMissed entries
// never affect it.
type Evaluation struct {
	Satisfied  bool
	Violations []Violation
}

// IsBlocked reports whether the evaluation contains a hard violation.
func (e Evaluation) IsBlocked() bool {
	return !e.Satisfied
}

// Evaluate tests a candidate driver and vehicle pair against the trip's
// constraints.
//
// All three tiers are always evaluated and every violation is returned; there
// is no early exit on the first failure, because the optimizer needs the full
// violation set for fallback search. Prohibitions outrank requirements outrank
// preferences only in the sense that a matched prohibition is a harder signal;
// any hard violation alone makes Satisfied false.
func Evaluate(tc TripConstraints, driver Driver, vehicle Vehicle) (Evaluation, error) {
	if err := driver.Validate(); err != nil {
		return Evaluation{}, err
	}
	if err := vehicle.Validate(); err != nil {
		return Evaluation{}, err
	}

	var violations []Violation

	if tc.Prohibitions != nil {
		violations = append(violations, evalProhibitions(*tc.Prohibitions, driver, vehicle)...)
	}
	if tc.Requirements != nil {
		violations = append(violations, evalPositiveTier(*tc.Requirements, driver, vehicle, RequirementUnmet)...)
	}
	if tc.Preferences != nil {
		violations = append(violations, evalPositiveTier(*tc.Preferences, driver, vehicle, PreferenceMissed)...)
	}

	satisfied := true
	for _, v := range violations {
		if v.Kind == ProhibitionMatched || v.Kind == RequirementUnmet {
			satisfied = false
			break
		}
	}

	return Evaluation{Satisfied: satisfied, Violations: violations}, nil
}

// evalProhibitions reports a violation for every prohibition rule the
// candidate matches: driver ID membership, driver gender equality, vehicle ID
// membership, or vehicle type equality.
func evalProhibitions(set ConstraintSet, driver Driver, vehicle Vehicle) []Violation {
	var violations []Violation

	if set.Driver != nil {
		if containsID(set.Driver.IDs, driver.ID) {
			violations = append(violations, Violation{
				Kind:   ProhibitionMatched,
				Rule:   "driver.ids",
				Detail: fmt.Sprintf("driver %s is prohibited", driver.ID),
			})
		}
		if set.Driver.Gender != "" && set.Driver.Gender == driver.Gender {
			violations = append(violations, Violation{
				Kind:   ProhibitionMatched,
				Rule:   "driver.gender",
				Detail: fmt.Sprintf("driver gender %s is prohibited", driver.Gender),
			})
		}
	}

	if set.Vehicle != nil {
		if containsID(set.Vehicle.IDs, vehicle.ID) {
			violations = append(violations, Violation{
				Kind:   ProhibitionMatched,
				Rule:   "vehicle.ids",
				Detail: fmt.Sprintf("vehicle %s is prohibited", vehicle.ID),
			})
		}
		if set.Vehicle.Type != "" && set.Vehicle.Type == vehicle.Type {
			violations = append(violations, Violation{
				Kind:   ProhibitionMatched,
				Rule:   "vehicle.type",
				Detail: fmt.Sprintf("vehicle type %s is prohibited", vehicle.Type),
			})
		}
	}

	return violations
}

// evalPositiveTier reports a violation of the given kind for every rule of a
// requirements-shaped tier the candidate fails: set-membership checks, gender
// and vehicle-type equality, and the attribute-ID subset check against the
// driver's held attributes.
func evalPositiveTier(set ConstraintSet, driver Driver, vehicle Vehicle, kind ViolationKind) []Violation {
	var violations []Violation

	if set.Driver != nil {
		if len(set.Driver.IDs) > 0 && !containsID(set.Driver.IDs, driver.ID) {
			violations = append(violations, Violation{
				Kind:   kind,
				Rule:   "driver.ids",
				Detail: fmt.Sprintf("driver %s is not among the matched drivers", driver.ID),
			})
		}
		if set.Driver.Gender != "" && set.Driver.Gender != driver.Gender {
			violations = append(violations, Violation{
				Kind:   kind,
				Rule:   "driver.gender",
				Detail: fmt.Sprintf("driver gender is %s, wanted %s", driver.Gender, set.Driver.Gender),
			})
		}
		for _, attributeID := range set.Driver.RequiredAttributeIDs {
			if !driver.HasAttribute(attributeID) {
				violations = append(violations, Violation{
					Kind:   kind,
					Rule:   "driver.requiredAttributes",
					Detail: fmt.Sprintf("driver does not hold attribute %s", attributeID),
				})
			}
		}
	}

	if set.Vehicle != nil {
		if len(set.Vehicle.IDs) > 0 && !containsID(set.Vehicle.IDs, vehicle.ID) {
			violations = append(violations, Violation{
				Kind:   kind,
				Rule:   "vehicle.ids",
				Detail: fmt.Sprintf("vehicle %s is not among the matched vehicles", vehicle.ID),
			})
		}
		if set.Vehicle.Type != "" && set.Vehicle.Type != vehicle.Type {
			violations = append(violations, Violation{
				Kind:   kind,
				Rule:   "vehicle.type",
				Detail: fmt.Sprintf("vehicle type is %s, wanted %s", vehicle.Type, set.Vehicle.Type),
			})
		}
	}

	return violations
}
