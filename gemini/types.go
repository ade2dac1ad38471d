package gemini

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

// Schema is the OpenAPI subset Gemini accepts as a response schema.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *APIError `json:"error,omitempty"`
}

func (r *generateResponse) text() (string, bool) {
	if len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", false
	}
	return r.Candidates[0].Content.Parts[0].Text, true
}

func stringSchema() *Schema { return &Schema{Type: "STRING"} }

// objectSchema builds an object schema where every listed key is a
// required string unless overridden.
func objectSchema(keys []string, override map[string]*Schema) *Schema {
	s := &Schema{Type: "OBJECT", Properties: map[string]*Schema{}, Required: keys}
	for _, k := range keys {
		if o, ok := override[k]; ok {
			s.Properties[k] = o
			continue
		}
		s.Properties[k] = stringSchema()
	}
	return s
}
