package services

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/vis-hal-git/Ai-interviewer/internal/models"
	"github.com/vis-hal-git/Ai-interviewer/internal/repositories"
)

// stubCompletion answers every call through fn and records the requests.
type stubCompletion struct {
	mu       sync.Mutex
	fn       func(call int, req CompletionRequest) (string, error)
	requests []CompletionRequest
}

func (s *stubCompletion) Complete(_ context.Context, req CompletionRequest) (string, error) {
	s.mu.Lock()
	call := len(s.requests)
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	return s.fn(call, req)
}

func (s *stubCompletion) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func replyWith(text string) *stubCompletion {
	return &stubCompletion{fn: func(int, CompletionRequest) (string, error) { return text, nil }}
}

func failWith(err error) *stubCompletion {
	return &stubCompletion{fn: func(int, CompletionRequest) (string, error) { return "", err }}
}

type memProfileRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.Profile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{rows: make(map[uuid.UUID]models.Profile)}
}

func (m *memProfileRepo) ReplaceForUser(_ context.Context, profile *models.Profile) ([]models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var superseded []models.Profile
	for id, p := range m.rows {
		if p.UserID == profile.UserID {
			superseded = append(superseded, p)
			delete(m.rows, id)
		}
	}
	m.rows[profile.ID] = *profile
	return superseded, nil
}

func (m *memProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.rows[id]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", id, repositories.ErrRecordNotFound)
	}
	return &p, nil
}

func (m *memProfileRepo) FindByUser(_ context.Context, userID string) ([]models.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Profile
	for _, p := range m.rows {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (m *memProfileRepo) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rows[id]; !ok {
		return fmt.Errorf("profile %s: %w", id, repositories.ErrRecordNotFound)
	}
	delete(m.rows, id)
	return nil
}

type memInterviewRepo struct {
	mu   sync.Mutex
	rows map[string]*models.InterviewSession
}

func newMemInterviewRepo() *memInterviewRepo {
	return &memInterviewRepo{rows: make(map[string]*models.InterviewSession)}
}

func cloneSession(s *models.InterviewSession) *models.InterviewSession {
	cp := *s
	cp.Questions = append(datatypes.JSONSlice[models.Question]{}, s.Questions...)
	cp.Responses = append(datatypes.JSONSlice[models.Response]{}, s.Responses...)
	cp.ConversationHistory = append(datatypes.JSONSlice[models.ConversationEntry]{}, s.ConversationHistory...)
	return &cp
}

func (m *memInterviewRepo) Create(_ context.Context, session *models.InterviewSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[session.SessionID] = cloneSession(session)
	return nil
}

func (m *memInterviewRepo) FindBySessionID(_ context.Context, sessionID string) (*models.InterviewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.rows[sessionID]
	if !ok {
		return nil, fmt.Errorf("interview session %s: %w", sessionID, repositories.ErrRecordNotFound)
	}
	return cloneSession(s), nil
}

func (m *memInterviewRepo) FindByUser(_ context.Context, userID string) ([]models.InterviewSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.InterviewSession
	for _, s := range m.rows {
		if s.UserID == userID {
			out = append(out, *cloneSession(s))
		}
	}
	return out, nil
}

func (m *memInterviewRepo) UpdateStatus(_ context.Context, sessionID string, data *repositories.StatusUpdateData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.rows[sessionID]
	if !ok {
		return fmt.Errorf("interview session %s: %w", sessionID, repositories.ErrRecordNotFound)
	}
	s.Status = data.Status
	s.UpdatedAt = data.UpdatedAt
	if data.StartTime != nil {
		t := *data.StartTime
		s.StartTime = &t
	}
	if data.EndTime != nil {
		t := *data.EndTime
		s.EndTime = &t
	}
	if data.DurationSeconds != nil {
		d := *data.DurationSeconds
		s.DurationSeconds = &d
	}
	return nil
}

func (m *memInterviewRepo) AppendResponse(_ context.Context, sessionID string, response models.Response) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.rows[sessionID]
	if !ok {
		return fmt.Errorf("interview session %s: %w", sessionID, repositories.ErrRecordNotFound)
	}
	s.Responses = append(s.Responses, response)
	s.UpdatedAt = response.Timestamp
	return nil
}

func (m *memInterviewRepo) AppendConversation(_ context.Context, sessionID string, entry models.ConversationEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.rows[sessionID]
	if !ok {
		return fmt.Errorf("interview session %s: %w", sessionID, repositories.ErrRecordNotFound)
	}
	s.ConversationHistory = append(s.ConversationHistory, entry)
	s.UpdatedAt = entry.Timestamp
	return nil
}

// fakeClock advances only when told to.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// writePDF writes a single-page PDF showing text, with one Link annotation
// per uri. Object offsets are computed so the xref table is exact.
func writePDF(t *testing.T, dir, name, text string, uris ...string) string {
	t.Helper()

	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)

	firstAnnot := 6
	var annotRefs []string
	for i := range uris {
		annotRefs = append(annotRefs, fmt.Sprintf("%d 0 R", firstAnnot+i))
	}
	page := "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R"
	if len(annotRefs) > 0 {
		page += " /Annots [" + strings.Join(annotRefs, " ") + "]"
	}
	page += " >>"

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		page,
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content),
	}
	for _, uri := range uris {
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Annot /Subtype /Link /Rect [72 700 200 715] /A << /S /URI /URI (%s) >> >>", uri))
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xrefAt := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xrefAt)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

// writeDocx writes a minimal .docx whose body has one paragraph per entry.
func writeDocx(t *testing.T, dir, name string, paragraphs ...string) string {
	t.Helper()

	var body strings.Builder
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		fmt.Fprintf(&body, `<w:p><w:r><w:t xml:space="preserve">%s</w:t></w:r></w:p>`, p)
	}
	body.WriteString(`</w:body></w:document>`)

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(body.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	return path
}

// resumeText is comfortably above the quality floor.
const resumeText = `Jane Doe
Senior Backend Engineer
Email: jane.doe@example.com | Phone: +1 415 555 0100 | linkedin.com/in/janedoe | github.com/janedoe
Experience: Built payment services in Go and PostgreSQL at Acme Corp for five years.`
