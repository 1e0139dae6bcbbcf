package roadmap

// Default builds the generic roadmap used whenever generation cannot produce
// a usable record. Every call returns fresh slices, so callers may keep or
// modify the result without affecting later calls.
//
// GeneratedAt is left for Stamp to set.
func Default(company, role string) (rm Roadmap) {
	rm = Roadmap{
		Company: company,
		Role:    role,
		Rounds: []Round{
			{Type: "Technical Screening", Topics: []string{"Data Structures", "Algorithms", "Problem Solving"}},
			{Type: "Coding Round", Topics: []string{"System Design", "Object-Oriented Programming"}},
			{Type: "System Design", Topics: []string{"Microservices", "Scalability", "Database Design"}},
			{Type: "Behavioral", Topics: []string{"Teamwork", "Communication", "Experience"}},
		},
		Difficulty:       "Medium",
		RecommendedOrder: []string{"Data Structures", "Algorithms", "System Design", "Behavioral"},
		Evidence: Evidence{
			KeySkills:  []string{"General Programming", "Problem Solving"},
			TopicCount: 4,
		},
		Version: SchemaVersion,
		Note:    DefaultNote,
	}
	return rm
}
