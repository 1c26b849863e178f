package api

// Schema names a JSON Schema a response body must satisfy.
type Schema struct {
	// Name identifies the schema in the compile cache. Kebab-case.
	Name string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

var materialIDDef = map[string]any{
	"type": []any{"string", "integer"},
}

var uploadSchema = &Schema{
	Name: "material-upload",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"material_id"},
		"properties": map[string]any{
			"material_id": materialIDDef,
			"topics":      map[string]any{"type": []any{"array", "null"}},
		},
	},
}

var summarySchema = &Schema{
	Name: "material-summary",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"summary"},
		"properties": map[string]any{
			"summary": map[string]any{"type": "string"},
		},
	},
}

var flashcardListSchema = &Schema{
	Name: "flashcard-list",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"question", "answer"},
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"answer":   map[string]any{"type": "string"},
			},
		},
	},
}

var quizListSchema = &Schema{
	Name: "quiz-list",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":     "object",
			"required": []any{"question", "options", "correct_index"},
			"properties": map[string]any{
				"question": map[string]any{"type": "string"},
				"options": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
				"correct_index": map[string]any{"type": "integer", "minimum": 0},
			},
		},
	},
}

var quizResultSchema = &Schema{
	Name: "quiz-result",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"accuracy"},
		"properties": map[string]any{
			"accuracy": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
		},
	},
}

var askSchema = &Schema{
	Name: "chat-answer",
	Definition: map[string]any{
		"type":     "object",
		"required": []any{"answer"},
		"properties": map[string]any{
			"answer": map[string]any{"type": "string"},
		},
	},
}
