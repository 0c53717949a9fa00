package domain

type TaskStatus string

const (
	TaskBacklog  TaskStatus = "Backlog"
	TaskThisWeek TaskStatus = "This Week"
	TaskToday    TaskStatus = "Today"
	TaskDone     TaskStatus = "Done"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[TaskStatus]bool{
	TaskBacklog: true, TaskThisWeek: true, TaskToday: true, TaskDone: true,
}

type RepeatFrequency string

const (
	RepeatNone    RepeatFrequency = ""
	RepeatDaily   RepeatFrequency = "daily"
	RepeatWeekly  RepeatFrequency = "weekly"
	RepeatMonthly RepeatFrequency = "monthly"
)

// ValidRepeatFrequencies lists the accepted repeat values, including none.
var ValidRepeatFrequencies = map[RepeatFrequency]bool{
	RepeatNone: true, RepeatDaily: true, RepeatWeekly: true, RepeatMonthly: true,
}

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "Active"
	ProjectCompleted ProjectStatus = "Completed"
	ProjectOnHold    ProjectStatus = "On Hold"
)

type LedgerType string

const (
	LedgerEarn  LedgerType = "Earn"
	LedgerSpend LedgerType = "Spend"
)

type LedgerSource string

const (
	SourceXPPost LedgerSource = "xp_post"
	SourceManual LedgerSource = "manual"
)

type CheckInSource string

const (
	CheckInMini   CheckInSource = "mini"
	CheckInXP     CheckInSource = "xp"
	CheckInShield CheckInSource = "shield"
)

type EffectKind string

const (
	EffectStreak           EffectKind = "streak"
	EffectXP               EffectKind = "xp"
	EffectShield           EffectKind = "shield"
	EffectGeneral          EffectKind = "general"
	EffectProjectCompleted EffectKind = "project_completed"
)
