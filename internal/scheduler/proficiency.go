package scheduler

import "github.com/vocabloom/vocabloom/internal/entity"

// Classify maps a schedule state onto the coarse proficiency label shown
// to the learner. Driven purely by the repetition count; called after
// every Next to keep the item's label current.
func Classify(s entity.ScheduleState) entity.Proficiency {
	switch {
	case s.Repetitions == 0:
		return entity.ProficiencyNew
	case s.Repetitions < 3:
		return entity.ProficiencyLearning
	case s.Repetitions < 6:
		return entity.ProficiencyFamiliar
	default:
		return entity.ProficiencyMastered
	}
}
