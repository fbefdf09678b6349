package project

// Project is one of the fixed set of codes that time, articles and findings
// are filed against.
type Project struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Defaults returns the four projects every service is seeded with.
func Defaults() []Project {
	return []Project{
		{Code: "ALPHA", Name: "Project Alpha", Description: "Internal CRM modernization platform"},
		{Code: "NEXUS", Name: "Project Nexus", Description: "API gateway and microservices migration"},
		{Code: "ORBIT", Name: "Project Orbit", Description: "Customer-facing mobile app redesign"},
		{Code: "VAULT", Name: "Project Vault", Description: "Data warehouse and analytics pipeline"},
	}
}
