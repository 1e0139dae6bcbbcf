package llm

import "fmt"

// roadmapExample is the worked example embedded in the prompt as a format guide.
const roadmapExample = `{
  "company": "Google",
  "role": "SDE1",
  "rounds": [
    {"type": "Technical Screening", "topics": ["Data Structures", "Algorithms", "Problem Solving"]},
    {"type": "Coding Round", "topics": ["System Design", "Object-Oriented Programming", "API Design"]},
    {"type": "System Design", "topics": ["Microservices", "Scalability", "Database Design"]},
    {"type": "Behavioral", "topics": ["Teamwork", "Communication", "Leadership"]}
  ],
  "difficulty": "Hard",
  "recommended_order": ["Data Structures", "Algorithms", "System Design", "Behavioral"],
  "evidence": {
    "key_skills": ["Python", "AWS", "Docker"],
    "topic_count": 4
  }
}`

// BuildRoadmapPrompt creates the roadmap generation prompt.
func BuildRoadmapPrompt(company, role, jobDescription, companyInfo string) (prompt string) {
	prompt = fmt.Sprintf(`Create a comprehensive interview preparation roadmap based on the job description and company information.

COMPANY: %s
ROLE: %s

JOB DESCRIPTION:
%s

COMPANY INTERVIEW INFO:
%s

Please provide a structured roadmap in JSON format with these exact fields:
- company: Company name
- role: Job role
- rounds: List of 3-5 interview rounds, each with "type" and "topics" (list of 3-5 topics per round)
- difficulty: Overall difficulty (Easy, Medium, Hard, Very Hard)
- recommended_order: Suggested study order of main topics
- evidence: Object with "key_skills" (from JD) and "topic_count"

Return ONLY valid JSON without any additional text, comments, or explanations.

Example format:
%s`, company, role, jobDescription, companyInfo, roadmapExample)

	return prompt
}
