// Package project holds the editable state of a project page: the form, the
// theme, the ordered content blocks, and the rules that validate them.
package project

// Form is the flat record of scalar fields collected for a project page.
// JSON tags are the interchange keys.
type Form struct {
	Name        string `json:"projectName"`
	Subtitle    string `json:"projectSubtitle"`
	Description string `json:"projectDescription"`
	Author      string `json:"authorName"`
	JobTitle    string `json:"jobTitle"`
	Institution string `json:"alumniOf"`

	ProblemSolved    string `json:"problemSolved"`
	Role             string `json:"myRole"`
	TechnologiesDesc string `json:"technologiesUsedDesc"`
	Challenges       string `json:"challengesSolutions"`
	Learnings        string `json:"learnings"`
	Future           string `json:"futureEnhancements"`

	LiveDemoURL  string `json:"liveDemoUrl"`
	RepoURL      string `json:"githubRepoUrl"`
	CanonicalURL string `json:"projectUrl"`
	LinkedInURL  string `json:"linkedinUrl"`

	OGImageURL      string `json:"ogImageUrl"`
	TwitterImageURL string `json:"twitterImageUrl"`
	FaviconURL      string `json:"faviconUrl"`
	LogoURL         string `json:"logoUrl"`

	// Comma separated; split only at render time.
	Features string `json:"keyFeatures"`
	Tags     string `json:"technologiesTags"`
}

// DefaultForm returns the values a fresh session starts with.
func DefaultForm() Form {
	return Form{
		Name:        "My Awesome Project",
		Subtitle:    "A brief and exciting tagline for your project.",
		Description: "This project is designed to showcase how you can build dynamic and interactive web applications using modern technologies. It aims to solve a common problem by providing an intuitive solution.",
		Author:      "Your Name Here",
		JobTitle:    "Your Job Title",
		Institution: "Your University/Institution",

		ProblemSolved:    "This project addresses the challenge of [describe the problem], providing a streamlined approach to [describe the solution].",
		Role:             "As the lead developer, I was responsible for [mention your key responsibilities, e.g., frontend development, backend integration, database design].",
		TechnologiesDesc: "The application was built using [Frontend Tech] for the user interface, [Backend Tech] for server-side logic, and [Database Tech] for data persistence.",
		Challenges:       "One significant challenge was [describe a challenge], which was overcome by [explain your solution].",
		Learnings:        "Through this project, I gained valuable insights into [mention key learnings, e.g., real-time data handling, API design, scalable architecture].",
		Future:           "Future plans include adding [new feature 1], improving [aspect 2], and exploring [technology 3].",

		LiveDemoURL:  "https://example.com/your-project-demo",
		RepoURL:      "https://github.com/your-username/your-project",
		CanonicalURL: "https://your-username.github.io/your-project-name/index.html",
		LinkedInURL:  "https://www.linkedin.com/in/your-linkedin-profile",

		OGImageURL:      "https://placehold.co/1200x630/E0E7FF/4338CA?text=Project+OG+Image",
		TwitterImageURL: "https://placehold.co/1200x675/E0E7FF/4338CA?text=Project+Twitter+Image",
		FaviconURL:      "https://placehold.co/32x32/E0E7FF/4338CA?text=Fav",
		LogoURL:         "https://placehold.co/40x40/E0E7FF/4338CA?text=Logo",

		Features: "Feature A, Feature B, Feature C, Responsive design, User authentication",
		Tags:     "React, Tailwind CSS, JavaScript, Node.js, Express, MongoDB",
	}
}

// fields maps interchange keys to the backing string.
func (f *Form) fields() map[string]*string {
	return map[string]*string{
		"projectName":          &f.Name,
		"projectSubtitle":      &f.Subtitle,
		"projectDescription":   &f.Description,
		"authorName":           &f.Author,
		"jobTitle":             &f.JobTitle,
		"alumniOf":             &f.Institution,
		"problemSolved":        &f.ProblemSolved,
		"myRole":               &f.Role,
		"technologiesUsedDesc": &f.TechnologiesDesc,
		"challengesSolutions":  &f.Challenges,
		"learnings":            &f.Learnings,
		"futureEnhancements":   &f.Future,
		"liveDemoUrl":          &f.LiveDemoURL,
		"githubRepoUrl":        &f.RepoURL,
		"projectUrl":           &f.CanonicalURL,
		"linkedinUrl":          &f.LinkedInURL,
		"ogImageUrl":           &f.OGImageURL,
		"twitterImageUrl":      &f.TwitterImageURL,
		"faviconUrl":           &f.FaviconURL,
		"logoUrl":              &f.LogoURL,
		"keyFeatures":          &f.Features,
		"technologiesTags":     &f.Tags,
	}
}
