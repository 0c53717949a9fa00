package domain

import "math"

// HasWorkDate reports whether the project already records work on dateISO.
func (p *Project) HasWorkDate(dateISO string) bool {
	for _, d := range p.WorkDates {
		if d == dateISO {
			return true
		}
	}
	return false
}

// AddWorkDate records dateISO once.
func (p *Project) AddWorkDate(dateISO string) {
	if !p.HasWorkDate(dateISO) {
		p.WorkDates = append(p.WorkDates, dateISO)
	}
}

// AllTasksDone reports whether a non-empty task list is fully completed.
func AllTasksDone(tasks []XpTask) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.Done {
			return false
		}
	}
	return true
}

// CompletionBonus is the XP awarded when a project's last task is done:
// 20% of the linked XP, but never less than 100.
func CompletionBonus(tasks []XpTask) int {
	sum := 0
	for _, t := range tasks {
		sum += t.XP
	}
	bonus := int(math.Floor(float64(sum) * ProjectBonusRatio))
	if bonus < ProjectBonusMinXP {
		return ProjectBonusMinXP
	}
	return bonus
}
