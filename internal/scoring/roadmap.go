package scoring

// RoadmapResource is one curated learning link for a topic.
type RoadmapResource struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	Link  string `json:"link"`
}

// RoadmapTopic is a single checkable unit of a roadmap phase.
type RoadmapTopic struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Hours       int               `json:"hours"`
	Weeks       int               `json:"weeks"`
	Description string            `json:"description"`
	Resources   []RoadmapResource `json:"resources"`
}

// RoadmapPhase groups topics under a named stage of the journey.
type RoadmapPhase struct {
	Phase  string         `json:"phase"`
	Topics []RoadmapTopic `json:"topics"`
}

// RoadmapField is one selectable career field.
type RoadmapField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var roadmapFields = []RoadmapField{
	{ID: "data-science", Name: "Data Science & Analytics", Icon: "📊"},
	{ID: "web-dev", Name: "Web Development", Icon: "💻"},
	{ID: "ai-ml", Name: "AI & Machine Learning", Icon: "🤖"},
	{ID: "mobile-dev", Name: "Mobile Development", Icon: "📱"},
	{ID: "devops", Name: "DevOps & Cloud", Icon: "☁️"},
	{ID: "cybersecurity", Name: "Cybersecurity", Icon: "🔒"},
}

var roadmaps = map[string][]RoadmapPhase{
	"data-science": {
		{
			Phase: "Foundation (1-2 months)",
			Topics: []RoadmapTopic{
				{
					ID:          "ds-1",
					Name:        "Python Basics",
					Hours:       40,
					Weeks:       2,
					Description: "Variables, loops, functions, OOP concepts",
					Resources: []RoadmapResource{
						{Type: "youtube", Title: "Python Full Course - FreeCodeCamp", Link: "https://youtube.com/watch?v=rfscVS0vtbw"},
					},
				},
				{
					ID:          "ds-2",
					Name:        "SQL & Databases",
					Hours:       30,
					Weeks:       2,
					Description: "Queries, joins, aggregations, database design",
					Resources: []RoadmapResource{
						{Type: "youtube", Title: "SQL Tutorial - Programming with Mosh", Link: "https://youtube.com/watch?v=7S_tz1z_5bA"},
					},
				},
			},
		},
		{
			Phase: "Core Skills (3-4 months)",
			Topics: []RoadmapTopic{
				{
					ID:          "ds-4",
					Name:        "Pandas & NumPy",
					Hours:       40,
					Weeks:       3,
					Description: "Data manipulation, cleaning, transformation",
					Resources: []RoadmapResource{
						{Type: "youtube", Title: "Pandas Tutorial - Corey Schafer", Link: "https://youtube.com/playlist?list=PL-osiE80TeTsWmV9i9c58mdDCSskIFdDS"},
					},
				},
			},
		},
	},
	"web-dev": {
		{
			Phase: "Frontend Basics (2-3 months)",
			Topics: []RoadmapTopic{
				{
					ID:          "web-1",
					Name:        "HTML & CSS",
					Hours:       40,
					Weeks:       3,
					Description: "Semantic HTML, Flexbox, Grid, responsive design",
					Resources: []RoadmapResource{
						{Type: "youtube", Title: "HTML & CSS Full Course", Link: "https://youtube.com/watch?v=G3e-cpL7ofc"},
					},
				},
			},
		},
	},
}

// RoadmapFields returns the selectable career fields in display order.
func RoadmapFields() []RoadmapField {
	out := make([]RoadmapField, len(roadmapFields))
	copy(out, roadmapFields)
	return out
}

// RoadmapByField looks up the phases for a field. Fields without curated
// content yet report false.
func RoadmapByField(fieldID string) ([]RoadmapPhase, bool) {
	phases, ok := roadmaps[fieldID]
	return phases, ok
}

// RoadmapProgressSummary aggregates per-topic completion for one field.
type RoadmapProgressSummary struct {
	TopicsTotal     int `json:"topics_total"`
	TopicsCompleted int `json:"topics_completed"`
	ProgressPercent int `json:"progress_percent"`
	HoursRemaining  int `json:"hours_remaining"`
	WeeksRemaining  int `json:"weeks_remaining"`
}

// SummarizeRoadmap computes completion and remaining effort for a field
// given the set of completed topic ids.
func SummarizeRoadmap(phases []RoadmapPhase, completed map[string]bool) RoadmapProgressSummary {
	summary := RoadmapProgressSummary{}
	for _, phase := range phases {
		for _, topic := range phase.Topics {
			summary.TopicsTotal++
			if completed[topic.ID] {
				summary.TopicsCompleted++
				continue
			}
			summary.HoursRemaining += topic.Hours
			summary.WeeksRemaining += topic.Weeks
		}
	}
	summary.ProgressPercent = Percentage(summary.TopicsCompleted, summary.TopicsTotal)
	return summary
}
