package resumes

// SampleData is the draft a new resume starts from when no content is supplied.
func SampleData() Data {
	return Data{
		FullName: "Alex Johnson",
		Title:    "Full Stack Developer",
		Email:    "alex@example.com",
		Phone:    "+1 (555) 123-4567",
		Location: "San Francisco, CA",
		Summary:  "Passionate developer with 5+ years of experience building scalable web applications. Specialized in React, Node.js, and cloud technologies.",
		Experience: []Experience{{
			Company:     "Tech Innovations Inc",
			CompanyURL:  "https://techinnovations.com",
			Position:    "Senior Developer",
			Duration:    "2022 - Present",
			Description: "Led development of microservices architecture, improved performance by 40%",
		}},
		Education: []Education{{
			School: "University of Technology",
			Degree: "B.S. Computer Science",
			Year:   "2020",
		}},
		Certifications: []Certification{{
			Name:           "AWS Certified Solutions Architect",
			Issuer:         "Amazon Web Services",
			Date:           "Jan 2024",
			CertificateURL: "https://example.com/certificate",
		}},
		Skills:         []string{"React", "TypeScript", "Node.js", "Next.js", "PostgreSQL", "AWS", "Docker", "GraphQL"},
		CustomSections: []CustomSection{},
	}
}
