package models

// HabitTemplate is a predefined micro-habit offered during onboarding
type HabitTemplate struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Importance  int
}

// HabitTemplates returns the onboarding catalog in display order
func HabitTemplates() []HabitTemplate {
	return []HabitTemplate{
		{ID: "water", Name: "Drink Water", Description: "Drink one glass of water", Icon: "💧", Importance: 2},
		{ID: "read", Name: "Read", Description: "Read 1 page of a book", Icon: "📖", Importance: 2},
		{ID: "exercise", Name: "Exercise", Description: "Do 5 push-ups", Icon: "💪", Importance: 3},
		{ID: "meditate", Name: "Meditate", Description: "Meditate for 1 minute", Icon: "🧘", Importance: 2},
		{ID: "gratitude", Name: "Gratitude", Description: "Write 3 things you're grateful for", Icon: "🙏", Importance: 2},
		{ID: "stretch", Name: "Stretch", Description: "Do a 30-second stretch", Icon: "🤸", Importance: 1},
		{ID: "walk", Name: "Walk", Description: "Take a 5-minute walk", Icon: "🚶", Importance: 2},
		{ID: "learn", Name: "Learn", Description: "Learn one new thing", Icon: "🎓", Importance: 2},
		{ID: "tidy", Name: "Tidy Up", Description: "Tidy one small area", Icon: "🧹", Importance: 1},
		{ID: "connect", Name: "Connect", Description: "Message a friend or family member", Icon: "💬", Importance: 2},
	}
}

// TemplateByID finds a template in the onboarding catalog
func TemplateByID(id string) (HabitTemplate, bool) {
	for _, t := range HabitTemplates() {
		if t.ID == id {
			return t, true
		}
	}
	return HabitTemplate{}, false
}
