package calendar

import "fmt"

// ValidateDayAssignment checks a batch of day numbers about to be added to a
// calendar that already holds `taken` days. In-batch duplicates and
// collisions with pre-existing days are distinct rejections because the API
// surfaces them as different messages.
func ValidateDayAssignment(batch []int, taken []int) error {
	if len(taken)+len(batch) > MaxDays {
		return fmt.Errorf("%w: calendar would exceed %d pictures", ErrValidation, MaxDays)
	}

	used := make(map[int]bool, len(taken))
	for _, d := range taken {
		used[d] = true
	}

	seen := make(map[int]bool, len(batch))
	for _, d := range batch {
		if d < 1 || d > MaxDays {
			return fmt.Errorf("%w: day %d out of range 1-%d", ErrValidation, d, MaxDays)
		}
		if seen[d] {
			return fmt.Errorf("%w: day %d appears twice in the request", ErrValidation, d)
		}
		if used[d] {
			return fmt.Errorf("%w: day %d already has a picture", ErrValidation, d)
		}
		seen[d] = true
	}
	return nil
}

// ValidatePublish requires exactly 24 pictures, not at least 24.
// Unpublishing carries no count precondition.
func ValidatePublish(pictureCount int) error {
	if pictureCount != MaxDays {
		return fmt.Errorf("%w: publishing requires exactly %d pictures, calendar has %d", ErrValidation, MaxDays, pictureCount)
	}
	return nil
}

// ValidateYearUnique guards the legacy year-keyed creation path only; the
// id-keyed path allows duplicate years (the duplicate operation relies on
// that).
func ValidateYearUnique(year int, existing bool) error {
	if existing {
		return fmt.Errorf("%w: a calendar already exists for year %d", ErrValidation, year)
	}
	return nil
}
