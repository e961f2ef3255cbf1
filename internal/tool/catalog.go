// Package tool defines the static catalog of invocable actions this server
// advertises to clients.
package tool

// Property describes one named parameter of a tool.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// Parameters is the JSON-Schema-like input contract of a tool.
type Parameters struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Descriptor describes one invocable action. Descriptors are defined at
// process start and identical across all sessions.
type Descriptor struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Parameters  Parameters `json:"parameters"`
}

var catalog = []Descriptor{
	{
		Name:        "query",
		Description: "Query VAEBZ product information using natural language",
		Parameters: Parameters{
			Type: "object",
			Properties: map[string]Property{
				"query": {
					Type:        "string",
					Description: "The query about VAEBZ products or services",
				},
			},
			Required: []string{"query"},
		},
	},
	{
		Name:        "embedding",
		Description: "Get embeddings for a given text",
		Parameters: Parameters{
			Type: "object",
			Properties: map[string]Property{
				"text": {
					Type:        "string",
					Description: "The text to embed",
				},
			},
			Required: []string{"text"},
		},
	},
}

// Catalog returns the static tool catalog. The slice is shared and read-only;
// callers must not mutate it.
func Catalog() []Descriptor {
	return catalog
}
