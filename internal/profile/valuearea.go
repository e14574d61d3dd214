package profile

// ValueArea holds the bounds of the contiguous bin range containing the
// target share of total volume, expanded outward from the POC.
type ValueArea struct {
	VAHIndex int
	VALIndex int
	VAVolume float64
}

// CalculateValueArea expands greedily from the POC bin until vaVolume reaches
// totalVolume*valueAreaPct or the profile extremes are hit.
//
// Each iteration compares the next bin below VAL against the next bin above
// VAH by total volume and advances whichever is larger. On exact equality
// both sides advance in the same iteration. This tie behavior is relied upon
// downstream and must be preserved exactly.
func CalculateValueArea(bins []Bin, pocIndex int, totalVolume, valueAreaPct float64) ValueArea {
	if len(bins) == 0 {
		return ValueArea{}
	}

	va := ValueArea{
		VAHIndex: pocIndex,
		VALIndex: pocIndex,
		VAVolume: bins[pocIndex].TotalVolume,
	}
	target := totalVolume * valueAreaPct

	for va.VAVolume < target {
		canGoDown := va.VALIndex > 0
		canGoUp := va.VAHIndex < len(bins)-1
		if !canGoDown && !canGoUp {
			break
		}

		switch {
		case canGoDown && canGoUp:
			below := bins[va.VALIndex-1].TotalVolume
			above := bins[va.VAHIndex+1].TotalVolume
			switch {
			case below > above:
				va.VALIndex--
				va.VAVolume += below
			case above > below:
				va.VAHIndex++
				va.VAVolume += above
			default:
				// Exact tie: take both neighbors in this iteration.
				va.VALIndex--
				va.VAHIndex++
				va.VAVolume += below + above
			}
		case canGoDown:
			va.VALIndex--
			va.VAVolume += bins[va.VALIndex].TotalVolume
		default:
			va.VAHIndex++
			va.VAVolume += bins[va.VAHIndex].TotalVolume
		}
	}

	return va
}
