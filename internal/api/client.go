package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
)

// Client is the typed study backend API.
type Client struct {
	transport Transport
}

// NewClient creates a Client that sends every call through t.
func NewClient(t Transport) *Client {
	return &Client{transport: t}
}

// UploadMaterial sends a file for processing and returns the new material.
func (c *Client) UploadMaterial(ctx context.Context, in UploadInput) (*Material, error) {
	body, contentType, err := multipartBody(map[string]string{"user_id": in.UserID}, &filePart{
		field: "file",
		name:  in.FileName,
		data:  in.Content,
	})
	if err != nil {
		return nil, err
	}

	var m Material
	err = c.do(ctx, &Call{
		Action:      "upload",
		Method:      http.MethodPost,
		Path:        "/api/material/upload",
		ContentType: contentType,
		Body:        body,
	}, uploadSchema, &m)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Summary fetches the summary text for a material.
func (c *Client) Summary(ctx context.Context, id MaterialID) (string, error) {
	var out summaryResponse
	err := c.do(ctx, &Call{
		Action:     "summary",
		Method:     http.MethodGet,
		Path:       "/api/material/" + url.PathEscape(string(id)) + "/summary",
		Idempotent: true,
	}, summarySchema, &out)
	if err != nil {
		return "", err
	}
	return out.Summary, nil
}

// GenerateFlashcards asks the backend to generate flashcards. The response
// body is discarded.
func (c *Client) GenerateFlashcards(ctx context.Context, in GenerateInput) error {
	return c.generate(ctx, "flashcards-generate", "/api/flashcards/generate", in)
}

// ListFlashcards returns all flashcards for a material/user pair.
func (c *Client) ListFlashcards(ctx context.Context, id MaterialID, userID string) ([]Flashcard, error) {
	var out []Flashcard
	err := c.do(ctx, &Call{
		Action:     "flashcards-list",
		Method:     http.MethodGet,
		Path:       "/api/flashcards",
		Query:      url.Values{"material_id": {string(id)}, "user_id": {userID}},
		Idempotent: true,
	}, flashcardListSchema, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateQuiz asks the backend to generate quiz questions. The response
// body is discarded.
func (c *Client) GenerateQuiz(ctx context.Context, in GenerateInput) error {
	return c.generate(ctx, "quiz-generate", "/api/quiz/generate", in)
}

// ListQuiz returns all quiz questions for a material/user pair.
func (c *Client) ListQuiz(ctx context.Context, id MaterialID, userID string) ([]QuizQuestion, error) {
	var out []QuizQuestion
	err := c.do(ctx, &Call{
		Action:     "quiz-list",
		Method:     http.MethodGet,
		Path:       "/api/quiz",
		Query:      url.Values{"material_id": {string(id)}, "user_id": {userID}},
		Idempotent: true,
	}, quizListSchema, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitQuiz sends answers for grading.
func (c *Client) SubmitQuiz(ctx context.Context, req SubmitQuizRequest) (*QuizResult, error) {
	if req.Answers == nil {
		req.Answers = []QuizAnswer{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode quiz submission: %w", err)
	}

	var out QuizResult
	err = c.do(ctx, &Call{
		Action:      "quiz-submit",
		Method:      http.MethodPost,
		Path:        "/api/quiz/submit",
		ContentType: "application/json",
		Body:        body,
	}, quizResultSchema, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Ask sends a free-form question about a material.
func (c *Client) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode question: %w", err)
	}

	var out AskResponse
	err = c.do(ctx, &Call{
		Action:      "ask",
		Method:      http.MethodPost,
		Path:        "/api/chat/ask",
		ContentType: "application/json",
		Body:        body,
	}, askSchema, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) generate(ctx context.Context, action, path string, in GenerateInput) error {
	body, contentType, err := multipartBody(in.fields(), nil)
	if err != nil {
		return err
	}
	_, err = c.transport.Do(ctx, &Call{
		Action:      action,
		Method:      http.MethodPost,
		Path:        path,
		ContentType: contentType,
		Body:        body,
	})
	return err
}

// do sends call and decodes the validated reply into out.
func (c *Client) do(ctx context.Context, call *Call, schema *Schema, out any) error {
	reply, err := c.transport.Do(ctx, call)
	if err != nil {
		return err
	}
	return validateResponse(schema, reply.Body, out)
}

type filePart struct {
	field string
	name  string
	data  []byte
}

// multipartBody encodes fields (in key order) and an optional file part.
func multipartBody(fields map[string]string, file *filePart) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}

	if file != nil {
		fw, err := w.CreateFormFile(file.field, file.name)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := fw.Write(file.data); err != nil {
			return nil, "", fmt.Errorf("write file part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
