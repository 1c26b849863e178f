package api

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse_Upload(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantID  MaterialID
		topics  int
		wantErr bool
	}{
		{"string id", `{"material_id":"abc","topics":[{"t":1},{"t":2}]}`, "abc", 2, false},
		{"numeric id", `{"material_id":42}`, "42", 0, false},
		{"null topics", `{"material_id":"m","topics":null}`, "m", 0, false},
		{"missing id", `{"topics":[]}`, "", 0, true},
		{"object id", `{"material_id":{}}`, "", 0, true},
		{"not json", `<html>`, "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Material
			err := validateResponse(uploadSchema, json.RawMessage(tt.raw), &m)
			if tt.wantErr {
				var invalid *ErrInvalidResponse
				if !errors.As(err, &invalid) {
					t.Fatalf("expected ErrInvalidResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", m.ID, tt.wantID)
			}
			if len(m.Topics) != tt.topics {
				t.Errorf("topics = %d, want %d", len(m.Topics), tt.topics)
			}
		})
	}
}

func TestValidateResponse_QuizResultRange(t *testing.T) {
	var r QuizResult
	if err := validateResponse(quizResultSchema, json.RawMessage(`{"accuracy":0.75}`), &r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Accuracy != 0.75 {
		t.Fatalf("accuracy = %v, want 0.75", r.Accuracy)
	}

	err := validateResponse(quizResultSchema, json.RawMessage(`{"accuracy":1.5}`), &r)
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse for accuracy > 1, got %v", err)
	}
}

func TestValidateResponse_FlashcardListShape(t *testing.T) {
	var cards []Flashcard
	err := validateResponse(flashcardListSchema, json.RawMessage(`[{"question":"Q1","answer":"A1"}]`), &cards)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 || cards[0].Answer != "A1" {
		t.Fatalf("unexpected cards: %+v", cards)
	}

	err = validateResponse(flashcardListSchema, json.RawMessage(`{"question":"Q1"}`), &cards)
	if err == nil {
		t.Fatal("expected error for object where array is required")
	}
}

func TestSchemaCache(t *testing.T) {
	s1, err := getCompiledSchema(askSchema)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	s2, err := getCompiledSchema(askSchema)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if s1 != s2 {
		t.Fatal("expected cached schema to be reused")
	}
}

func TestMaterialIDUnmarshal(t *testing.T) {
	var id MaterialID
	if err := json.Unmarshal([]byte(`7`), &id); err != nil || id != "7" {
		t.Fatalf("numeric: id=%q err=%v", id, err)
	}
	if err := json.Unmarshal([]byte(`"x-9"`), &id); err != nil || id != "x-9" {
		t.Fatalf("string: id=%q err=%v", id, err)
	}
	if err := json.Unmarshal([]byte(`true`), &id); err == nil {
		t.Fatal("expected error for boolean id")
	}
}
