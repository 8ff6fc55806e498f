// Package chat is the client-only conversation store. Conversations
// live in process memory for a single run; nothing here is persisted.
package chat

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const maxTitleLength = 30

var ErrConversationNotFound = errors.New("conversation not found")

type Message struct {
	ID        string
	Content   string
	Role      Role
	Timestamp time.Time
}

type Conversation struct {
	ID        string
	Title     string
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store keeps conversations newest-first.
type Store struct {
	mu            sync.Mutex
	conversations []*Conversation
	activeID      string
}

func NewStore() *Store {
	return &Store{}
}

// Create prepends a new conversation and makes it active.
func (s *Store) Create(title string) *Conversation {
	now := time.Now()
	conv := &Conversation{
		ID:        uuid.NewString(),
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.conversations = append([]*Conversation{conv}, s.conversations...)
	s.activeID = conv.ID
	s.mu.Unlock()

	snapshot := *conv
	return &snapshot
}

func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.find(id) == nil {
		return ErrConversationNotFound
	}
	s.activeID = id
	return nil
}

func (s *Store) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Append adds a message and touches the conversation. The first user
// message retitles a conversation still carrying the placeholder title.
func (s *Store) Append(conversationID string, role Role, content string) (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.find(conversationID)
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	msg := Message{
		ID:        uuid.NewString(),
		Content:   content,
		Role:      role,
		Timestamp: time.Now(),
	}
	conv.Messages = append(conv.Messages, msg)
	conv.UpdatedAt = msg.Timestamp

	if role == RoleUser && len(conv.Messages) == 1 {
		conv.Title = deriveTitle(content)
	}

	return &msg, nil
}

// Conversations returns a newest-first copy.
func (s *Store) Conversations() []Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Conversation, len(s.conversations))
	for i, conv := range s.conversations {
		out[i] = *conv
		out[i].Messages = append([]Message(nil), conv.Messages...)
	}
	return out
}

func (s *Store) Get(id string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conv := s.find(id)
	if conv == nil {
		return nil, ErrConversationNotFound
	}
	snapshot := *conv
	snapshot.Messages = append([]Message(nil), conv.Messages...)
	return &snapshot, nil
}

func (s *Store) find(id string) *Conversation {
	for _, conv := range s.conversations {
		if conv.ID == id {
			return conv
		}
	}
	return nil
}

func deriveTitle(content string) string {
	if len(content) <= maxTitleLength {
		return content
	}
	return content[:maxTitleLength] + "..."
}
