// Package devserver is a canned in-memory study backend for local
// development and integration tests. It speaks the same HTTP contract as the
// real backend but derives summaries, flashcards, quizzes and answers from
// the uploaded text with simple string rules.
package devserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/vectortutor/internal/logger"
)

// maxUploadBytes bounds an uploaded file.
const maxUploadBytes = 10 << 20

type flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type quizQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

type material struct {
	id       int
	userID   string
	fileName string
	topics   []Topic

	// keyed by user id
	flashcards map[string][]flashcard
	quiz       map[string][]quizQuestion
}

// Server holds uploaded materials in memory.
type Server struct {
	log *logger.Logger

	mu        sync.Mutex
	nextID    int
	materials map[string]*material
}

// New creates an empty Server.
func New(log *logger.Logger) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		log:       log.With("component", "devserver"),
		nextID:    1,
		materials: make(map[string]*material),
	}
}

// Router returns the gin engine serving the backend API.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api")
	{
		api.POST("/material/upload", s.upload)
		api.GET("/material/:id/summary", s.summary)

		api.POST("/flashcards/generate", s.generateFlashcards)
		api.GET("/flashcards", s.listFlashcards)

		api.POST("/quiz/generate", s.generateQuiz)
		api.GET("/quiz", s.listQuiz)
		api.POST("/quiz/submit", s.submitQuiz)

		api.POST("/chat/ask", s.ask)
	}
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("dev backend listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		if id := c.GetHeader("X-Request-ID"); id != "" {
			c.Header("X-Request-ID", id)
		}
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"request_id", c.GetHeader("X-Request-ID"),
			"latency_ms", time.Since(start).Milliseconds(),
		)
	}
}

func (s *Server) upload(c *gin.Context) {
	userID := c.PostForm("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}

	topics := splitTopics(string(data))

	s.mu.Lock()
	m := &material{
		id:         s.nextID,
		userID:     userID,
		fileName:   fh.Filename,
		topics:     topics,
		flashcards: make(map[string][]flashcard),
		quiz:       make(map[string][]quizQuestion),
	}
	s.materials[strconv.Itoa(m.id)] = m
	s.nextID++
	s.mu.Unlock()

	s.log.Info("material stored",
		"material_id", m.id,
		"file", m.fileName,
		"topics", len(topics),
		"user_id", m.userID,
	)
	if topics == nil {
		topics = []Topic{}
	}
	c.JSON(http.StatusOK, gin.H{"material_id": m.id, "topics": topics})
}

func (s *Server) summary(c *gin.Context) {
	m, ok := s.lookup(c, c.Param("id"))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summarize(m.topics)})
}

type generateForm struct {
	UserID     string `form:"user_id" binding:"required"`
	MaterialID string `form:"material_id" binding:"required"`
	TopicIndex int    `form:"topic_index"`
}

// bindGenerate parses a generate request and resolves its topic.
func (s *Server) bindGenerate(c *gin.Context) (*material, generateForm, bool) {
	var form generateForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return nil, form, false
	}
	m, ok := s.lookup(c, form.MaterialID)
	if !ok {
		return nil, form, false
	}
	if form.TopicIndex < 0 || form.TopicIndex >= len(m.topics) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("topic_index %d out of range", form.TopicIndex)})
		return nil, form, false
	}
	return m, form, true
}

func (s *Server) generateFlashcards(c *gin.Context) {
	m, form, ok := s.bindGenerate(c)
	if !ok {
		return
	}

	var cards []flashcard
	for _, sent := range sentences(m.topics[form.TopicIndex].Text) {
		prompt, answer, ok := cloze(sent)
		if !ok {
			continue
		}
		cards = append(cards, flashcard{Question: prompt, Answer: answer})
	}

	s.mu.Lock()
	m.flashcards[form.UserID] = append(m.flashcards[form.UserID], cards...)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"generated": len(cards)})
}

func (s *Server) listFlashcards(c *gin.Context) {
	m, ok := s.lookup(c, c.Query("material_id"))
	if !ok {
		return
	}
	s.mu.Lock()
	cards := append([]flashcard{}, m.flashcards[c.Query("user_id")]...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, cards)
}

func (s *Server) generateQuiz(c *gin.Context) {
	m, form, ok := s.bindGenerate(c)
	if !ok {
		return
	}

	var answers []string
	var prompts []string
	for _, sent := range sentences(m.topics[form.TopicIndex].Text) {
		prompt, answer, ok := cloze(sent)
		if !ok {
			continue
		}
		prompts = append(prompts, prompt)
		answers = append(answers, answer)
	}

	var questions []quizQuestion
	for i, prompt := range prompts {
		questions = append(questions, buildQuestion(prompt, i, answers))
	}

	s.mu.Lock()
	m.quiz[form.UserID] = append(m.quiz[form.UserID], questions...)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"generated": len(questions)})
}

// buildQuestion uses the other answers of the topic as distractors and
// rotates the correct option so it is not always first.
func buildQuestion(prompt string, i int, answers []string) quizQuestion {
	options := []string{answers[i]}
	for j := 1; j < len(answers) && len(options) < 4; j++ {
		d := answers[(i+j)%len(answers)]
		if d != answers[i] {
			options = append(options, d)
		}
	}
	if len(options) == 1 {
		options = append(options, "none of these")
	}

	correct := i % len(options)
	options[0], options[correct] = options[correct], options[0]
	return quizQuestion{Question: prompt, Options: options, CorrectIndex: correct}
}

func (s *Server) listQuiz(c *gin.Context) {
	m, ok := s.lookup(c, c.Query("material_id"))
	if !ok {
		return
	}
	s.mu.Lock()
	quiz := append([]quizQuestion{}, m.quiz[c.Query("user_id")]...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, quiz)
}

type submitRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Answers []struct {
		CorrectIndex int `json:"correct_index"`
		Selected     int `json:"selected"`
	} `json:"answers"`
}

func (s *Server) submitQuiz(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	accuracy := 0.0
	if len(req.Answers) > 0 {
		correct := 0
		for _, a := range req.Answers {
			if a.Selected == a.CorrectIndex {
				correct++
			}
		}
		accuracy = float64(correct) / float64(len(req.Answers))
	}
	c.JSON(http.StatusOK, gin.H{"accuracy": accuracy})
}

type askRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	MaterialID any    `json:"material_id" binding:"required"`
	Question   string `json:"question" binding:"required"`
}

func (s *Server) ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	m, ok := s.lookup(c, fmt.Sprint(req.MaterialID))
	if !ok {
		return
	}

	texts := make([]string, len(m.topics))
	for i, t := range m.topics {
		texts[i] = t.Text
	}
	answer := "I could not find anything about that in the material."
	if best, found := bestSentence(strings.Join(texts, " "), req.Question); found {
		answer = best
	}
	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// lookup resolves a material id or writes a 404.
func (s *Server) lookup(c *gin.Context, id string) (*material, bool) {
	s.mu.Lock()
	m, ok := s.materials[id]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "material not found"})
		return nil, false
	}
	return m, true
}
