package mcmi

// applyCorrections runs the fixed-order cascade over every clinical
// scale: full/half disclosure, denial, debasement, defensiveness,
// inpatient. Each applicable step records its intermediate value and
// overwrites the running final, so the last applicable step wins. Every
// step clamps to [BRMin, BRMax].
//
// Denial and debasement conditions read the indicator scales' Base
// Rates, not their running finals, which keeps the cascade
// order-independent across scales.
func applyCorrections(results map[string]*ScaleResult, defs map[string]ScaleDefinition, rules CorrectionRules, xScore int, status InpatientStatus) {
	denialHigh := indicatorElevated(results, rules.Denial.Indicators, rules.Denial.Threshold)
	debaseHigh := false
	if r, ok := results[rules.Debasement.Indicator]; ok {
		debaseHigh = r.BaseRate >= rules.Debasement.Threshold
	}

	for id, def := range defs {
		res := results[id]
		final := res.BaseRate

		if def.HasTag(TagFullDisclosure) {
			v := clampBR(final + xScore)
			res.XCor, final = &v, v
		}
		if def.HasTag(TagHalfDisclosure) {
			v := clampBR(final + halfOf(xScore, rules.Rounding))
			res.HalfXCor, final = &v, v
		}
		if def.HasTag(TagDenial) {
			v := final
			if denialHigh {
				v = clampBR(final + rules.Denial.Offsets[id])
			}
			res.DAAdj, final = &v, v
		}
		if def.HasTag(TagDebasement) {
			v := final
			if debaseHigh {
				v = clampBR(final + rules.Debasement.Offsets[id])
			}
			res.DDAdj, final = &v, v
		}
		if def.HasTag(TagDefensiveness) {
			v := clampBR(final + rules.Defensiveness[id])
			res.DCAdj, final = &v, v
		}
		if def.HasTag(TagInpatient) {
			v := final
			if off, ok := rules.Inpatient[status]; ok {
				v = clampBR(final + off[id])
			}
			res.InpAdj, final = &v, v
		}

		res.Final = final
	}
}

func indicatorElevated(results map[string]*ScaleResult, ids []string, threshold int) bool {
	for _, id := range ids {
		if r, ok := results[id]; ok && r.BaseRate >= threshold {
			return true
		}
	}
	return false
}
