package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// MaterialID identifies an uploaded material. Backends may send it as a JSON
// string or number; it is always held as a string.
type MaterialID string

func (id *MaterialID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = MaterialID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("material_id must be a string or number: %w", err)
	}
	*id = MaterialID(n.String())
	return nil
}

func (id MaterialID) String() string { return string(id) }

// Material is the result of an upload.
type Material struct {
	ID MaterialID `json:"material_id"`

	// Topics is the backend's decomposition of the material. Only the
	// count is used by the client, so entries are kept opaque.
	Topics []json.RawMessage `json:"topics,omitempty"`
}

// Flashcard is a question/answer pair.
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizQuestion is a multiple-choice question.
type QuizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// QuizAnswer pairs a question's correct index with the selected option.
type QuizAnswer struct {
	CorrectIndex int `json:"correct_index"`
	Selected     int `json:"selected"`
}

// SubmitQuizRequest is the body of POST /api/quiz/submit.
type SubmitQuizRequest struct {
	UserID  string       `json:"user_id"`
	Answers []QuizAnswer `json:"answers"`
}

// QuizResult is the grading response.
type QuizResult struct {
	// Accuracy is the fraction of correct answers in [0, 1].
	Accuracy float64 `json:"accuracy"`
}

// AskRequest is the body of POST /api/chat/ask.
type AskRequest struct {
	UserID     string     `json:"user_id"`
	MaterialID MaterialID `json:"material_id"`
	Question   string     `json:"question"`
}

// AskResponse carries the backend's answer.
type AskResponse struct {
	Answer string `json:"answer"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

// UploadInput describes a file to upload.
type UploadInput struct {
	UserID   string
	FileName string
	Content  []byte
}

// GenerateInput selects what flashcards or quiz questions to generate.
type GenerateInput struct {
	UserID     string
	MaterialID MaterialID
	TopicIndex int
}

func (in GenerateInput) fields() map[string]string {
	return map[string]string{
		"user_id":     in.UserID,
		"material_id": string(in.MaterialID),
		"topic_index": strconv.Itoa(in.TopicIndex),
	}
}
