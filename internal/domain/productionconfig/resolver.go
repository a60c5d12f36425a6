package productionconfig

import "time"

// Resolve picks the version that applies on asOf: the latest version whose
// effective date is on or before asOf (ties broken by newest CreatedAt). When
// every version is future-dated the earliest one is used. ok is false only
// when configs is empty.
//
// The repository answers the same question in SQL for single lookups; the
// config listing uses this form to flag the version in force today.
func Resolve(configs []Config, asOf time.Time) (Config, bool) {
	if len(configs) == 0 {
		return Config{}, false
	}

	day := truncateDay(asOf)
	var (
		best     Config
		found    bool
		earliest = configs[0]
	)
	for _, c := range configs {
		if before(c, earliest) {
			earliest = c
		}
		if truncateDay(c.EffectiveDate).After(day) {
			continue
		}
		if !found || after(c, best) {
			best = c
			found = true
		}
	}
	if found {
		return best, true
	}
	return earliest, true
}

func after(a, b Config) bool {
	ad, bd := truncateDay(a.EffectiveDate), truncateDay(b.EffectiveDate)
	if !ad.Equal(bd) {
		return ad.After(bd)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func before(a, b Config) bool {
	ad, bd := truncateDay(a.EffectiveDate), truncateDay(b.EffectiveDate)
	if !ad.Equal(bd) {
		return ad.Before(bd)
	}
	return a.CreatedAt.Before(b.CreatedAt)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
