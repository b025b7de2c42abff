package client

import "github.com/crucial707/qa-forum/internal/models"

// labelRunes is how much content stands in for a missing title.
const labelRunes = 70

// QuestionLabel is the list label of q: its title, or the start of its content.
func QuestionLabel(q models.Question) string {
	if q.Title != nil && *q.Title != "" {
		return *q.Title
	}
	r := []rune(q.Content)
	if len(r) <= labelRunes {
		return q.Content
	}
	return string(r[:labelRunes]) + "..."
}

// QuestionHeading is the detail page heading of q.
func QuestionHeading(q models.Question) string {
	if q.Title != nil && *q.Title != "" {
		return *q.Title
	}
	return "No Title"
}
