package domain

import "time"

const (
	// InitialShields is the shield count a new category starts with.
	InitialShields = 2
	// MonthlyShieldRefill is added to every category at each new month.
	MonthlyShieldRefill = 5
	// ShieldCostXP is the XP-equivalent price of one shield.
	ShieldCostXP = 50
	// ProjectBonusMinXP is the floor of the project completion bonus.
	ProjectBonusMinXP = 100
	// ProjectBonusRatio is the share of linked task XP paid as bonus.
	ProjectBonusRatio = 0.2
	// ShieldLookbackDays bounds how far back missed days are backfilled.
	ShieldLookbackDays = 7
)

const (
	NewCategoryIcon     = "Star"
	NewCategoryMiniTask = "Do one small thing for this category"
	ShieldNote          = "Saved by Streak Shield"
)

// IconTags is the closed set of icon tags a category may carry. Rendering
// them is left to the presentation layer.
var IconTags = []string{
	"Eye", "BookOpen", "Atom", "Briefcase", "TrendingUp",
	"FileText", "Heart", "Baby", "Languages", "Home",
	"Star", "Music", "Code", "PenTool", "Coffee", "Zap",
}

// ColorThemes is the closed set of category color themes.
var ColorThemes = []string{
	"blue", "purple", "indigo", "teal", "emerald", "slate",
	"rose", "orange", "pink", "cyan", "amber", "lime",
}

// DefaultMiniTasks maps each seed category to its mini-task suggestions.
var DefaultMiniTasks = map[string][]string{
	"Ophthalmology":     {"Read 1 page", "Write 3 bullets from oculoplastics/cataract"},
	"Research":          {"Write 1 sentence", "Fix 1 reference"},
	"Physics":           {"Review 1 formula", "Do 1 worked mini-step"},
	"Clinic & Business": {"Add 1 clinic idea (service/workflow)", "Review pricing", "Check tech setup"},
	"Finance":           {"Check balance/portfolio", "Write 1 next-step line"},
	"Admin":             {"Send 1 message/email", "File 1 document"},
	"Health":            {"2 min mobility", "10 squats", "Stretch"},
	"Family & Baby":     {"5 mins present (no phone)", "Write memory note"},
	"Languages":         {"5 min Lingoda", "Listen to Écoute", "Read 1 French page"},
	"Household & Home":  {"10-min reset", "Clean one surface", "Organize one drawer", "Start laundry"},
}

// SeedCategories is the category list a fresh install starts with.
var SeedCategories = []CategoryDef{
	{ID: "Ophthalmology", Name: "Ophthalmology", Icon: "Eye", ColorTheme: "blue", BackgroundImage: "/bg-science.png"},
	{ID: "Research", Name: "Research", Icon: "BookOpen", ColorTheme: "purple", BackgroundImage: "/bg-science.png"},
	{ID: "Physics", Name: "Physics", Icon: "Atom", ColorTheme: "indigo", BackgroundImage: "/bg-science.png"},
	{ID: "Clinic & Business", Name: "Clinic & Business", Icon: "Briefcase", ColorTheme: "teal", BackgroundImage: "/bg-office.png"},
	{ID: "Finance", Name: "Finance", Icon: "TrendingUp", ColorTheme: "emerald", BackgroundImage: "/bg-office.png"},
	{ID: "Admin", Name: "Admin", Icon: "FileText", ColorTheme: "slate", BackgroundImage: "/bg-office.png"},
	{ID: "Health", Name: "Health", Icon: "Heart", ColorTheme: "rose", BackgroundImage: "/bg-home.png"},
	{ID: "Family & Baby", Name: "Family & Baby", Icon: "Baby", ColorTheme: "orange", BackgroundImage: "/bg-home.png"},
	{ID: "Languages", Name: "Languages", Icon: "Languages", ColorTheme: "pink", BackgroundImage: "/bg-home.png"},
	{ID: "Household & Home", Name: "Household & Home", Icon: "Home", ColorTheme: "cyan", BackgroundImage: "/bg-home.png"},
}

// DefaultSettings returns a fresh copy of the initial settings.
func DefaultSettings() Settings {
	mini := make(map[string][]string, len(DefaultMiniTasks))
	for k, v := range DefaultMiniTasks {
		mini[k] = append([]string(nil), v...)
	}
	return Settings{
		XPToEuroRate:               1,
		SpendGateEnabled:           true,
		SpendGateThreshold:         5,
		DefaultMiniTasksByCategory: mini,
	}
}

// NewSeed builds the snapshot a first run starts from.
func NewSeed(now time.Time) Snapshot {
	shields := make(map[string]int, len(SeedCategories))
	for _, c := range SeedCategories {
		shields[c.ID] = InitialShields
	}
	return Snapshot{
		Categories:       append([]CategoryDef(nil), SeedCategories...),
		Streaks:          []StreakCheckIn{},
		Tasks:            []XpTask{},
		Projects:         []Project{},
		Ledger:           []RewardLedgerEntry{},
		Settings:         DefaultSettings(),
		Shields:          shields,
		LastShieldRefill: CurrentMonth(now),
		LastVisitDate:    Today(now),
	}
}

// ValidIcon reports whether tag is one of IconTags.
func ValidIcon(tag string) bool {
	for _, t := range IconTags {
		if t == tag {
			return true
		}
	}
	return false
}
