package commands

import "github.com/coldcellar/bitguard/internal/bitguard/sidecar"

// tally counts terminal instruction records into a Summary. HIT
// records are individual candidates within an ambiguous set and are
// not terminal by themselves; only the records that stand alone per
// block (HIT!, NOHITS, BLENGTH?, CLENGTH?, TAMPER?) or close out a
// fanned-out set (HIT?) are counted.
func tally(records []sidecar.InstructionRecord, total int) Summary {
	s := Summary{Total: total}
	for _, rec := range records {
		switch rec.Kind {
		case sidecar.KindHitSure:
			s.OK++
		case sidecar.KindHitAmbi:
			s.Ambiguous++
		case sidecar.KindNoHits, sidecar.KindBLength, sidecar.KindCLength, sidecar.KindTamper:
			s.Failed++
		case sidecar.KindHit:
			// one of several candidates backing a HIT? summary; not terminal.
		}
	}
	return s
}
