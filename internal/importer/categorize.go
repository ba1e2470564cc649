package importer

import "strings"

// Keyword lists per category for auto-categorization. Scoring is a
// plain substring count, so broader categories simply carry longer
// lists. Evaluation order matters: ties resolve to the earlier list.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"coding", []string{
		"code", "coding", "programming", "javascript", "python", "java", "css", "html",
		"react", "node", "api", "database", "sql", "git", "algorithm", "function",
		"debug", "software", "developer", "frontend", "backend", "web", "app", "script",
		"framework", "library", "typescript", "angular", "vue", "nextjs", "express",
		"mongodb", "aws", "cloud", "devops", "docker", "kubernetes",
	}},
	{"design", []string{
		"design", "ui", "ux", "figma", "sketch", "photoshop", "illustrator", "color",
		"typography", "layout", "wireframe", "prototype", "visual", "graphic",
		"creative", "brand", "logo", "icon", "animation", "motion", "aesthetic",
		"user interface", "user experience",
	}},
	{"reading", []string{
		"read", "reading", "book", "article", "blog", "paper", "research", "study",
		"literature", "novel", "chapter", "author", "documentation", "docs", "journal",
		"magazine", "newsletter",
	}},
	{"course", []string{
		"course", "class", "lecture", "tutorial", "lesson", "module", "udemy",
		"coursera", "youtube", "video", "workshop", "bootcamp", "certification",
		"training", "webinar", "seminar", "education", "learning path", "curriculum",
	}},
	{"project", []string{
		"project", "build", "create", "develop", "implement", "launch", "deploy",
		"portfolio", "app", "website", "feature", "milestone", "sprint", "hackathon",
		"side project", "personal project", "work project",
	}},
}

// AutoCategorize scores text against each keyword list and returns the
// category with the most hits. Ties keep the first-seen maximum; zero
// hits everywhere returns "other".
func AutoCategorize(text string) string {
	if text == "" {
		return "other"
	}

	lower := strings.ToLower(text)
	best := "other"
	maxScore := 0
	for _, ck := range categoryKeywords {
		score := 0
		for _, kw := range ck.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > maxScore {
			maxScore = score
			best = ck.category
		}
	}
	return best
}
