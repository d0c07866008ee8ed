package engine

// Opportunity is a sales or partnership opening identified at the target
// company, with the departments it touches and the people relevant to it.
type Opportunity struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Departments    []string        `json:"relevant_departments"`
	ContactPoints  []ContactPoint  `json:"contact_points"`
	DecisionMakers []DecisionMaker `json:"decision_makers"`
}

// ContactPoint is a person worth approaching about an opportunity.
// LinkedInURL is empty when no profile was found.
type ContactPoint struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Department  string `json:"department"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Relevance   string `json:"relevance"`
}

// DecisionMaker is a likely buyer or approver for an opportunity.
type DecisionMaker struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	Rationale string `json:"rationale"`
}

// CseContact is a LinkedIn profile surfaced by the custom search engine.
// Fields mirror the raw search result; no enrichment is performed.
type CseContact struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}
