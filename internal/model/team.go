package model

// Team represents a hackathon team stored in the teams collection. Deleting
// a team does not touch its members' team_id references.
type Team struct {
	Name               string   `json:"name"`
	Members            []string `json:"members"`
	ProjectName        string   `json:"project_name,omitempty"`
	ProjectDescription string   `json:"project_description,omitempty"`
	TechStack          []string `json:"tech_stack"`
}

// ApplyDefaults fills zero-valued sequence fields
func (t *Team) ApplyDefaults() {
	if t.Members == nil {
		t.Members = []string{}
	}
	if t.TechStack == nil {
		t.TechStack = []string{}
	}
}

// Document converts the team to the map form stored in the document store
func (t *Team) Document() map[string]any {
	return toDocument(t)
}

// TeamFromDocument rebuilds a team record from its stored map form
func TeamFromDocument(doc map[string]any) (*Team, error) {
	var t Team
	if err := fromDocument(doc, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
