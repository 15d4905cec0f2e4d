package resume

// Sample 返回模板画廊与缩略图使用的示例简历。
func Sample() Data {
	return Data{
		PersonalInfo: PersonalInfo{
			FullName:      "Alex Johnson",
			Title:         "Senior Software Engineer",
			Email:         "alex.johnson@email.com",
			Phone:         "+1 (415) 555-0123",
			Location:      "San Francisco, CA",
			Website:       "alexjohnson.dev",
			LinkedIn:      "linkedin.com/in/alexjohnson",
			PhotoPosition: PhotoCenter,
		},
		Summary: "Results-driven software engineer with 6+ years of experience building scalable web applications and leading cross-functional teams. Passionate about clean architecture, developer tooling, and mentoring junior engineers.",
		Experience: []Experience{
			{
				ID:          "1",
				Company:     "Google",
				Position:    "Senior Software Engineer",
				StartDate:   "Jan 2022",
				EndDate:     "Present",
				Description: "Architected microservices platform serving 10M+ daily active users\nReduced API latency by 40% through Redis caching and query optimization\nMentored team of 6 junior engineers",
			},
			{
				ID:          "2",
				Company:     "Stripe",
				Position:    "Software Engineer II",
				StartDate:   "Jul 2020",
				EndDate:     "Dec 2021",
				Description: "Built payment dashboard processing $2B+ annually\nReduced bundle size by 35% through code splitting",
			},
		},
		Education: []Education{
			{
				ID:        "1",
				School:    "Massachusetts Institute of Technology",
				Degree:    "B.S.",
				Field:     "Computer Science",
				StartDate: "Sep 2016",
				EndDate:   "May 2020",
			},
		},
		Projects: []Project{
			{
				ID:          "1",
				Name:        "AI Resume Optimizer",
				Role:        "Creator & Maintainer",
				URL:         "github.com/alex/resume-ai",
				StartDate:   "Mar 2023",
				EndDate:     "Present",
				Description: "Open-source tool with 2,000+ GitHub stars\nBuilt with Next.js and PostgreSQL",
			},
		},
		Extracurricular: []Extracurricular{},
		Skills:          []string{"Go", "TypeScript", "PostgreSQL", "Redis", "Docker", "Kubernetes", "System Design"},
		Languages:       []string{"English (Native)", "Spanish (Professional)"},
		Certifications: []Certification{
			{Name: "AWS Solutions Architect Professional", Plain: true},
			{Name: "Certified Kubernetes Administrator", Issuer: "CNCF", Date: "2023"},
		},
	}
}
