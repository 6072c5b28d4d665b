package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Contact represents an employer or a maid reachable over one or more channels
type Contact struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string         `gorm:"type:text;not null" json:"name"`
	Phone     *string        `gorm:"type:varchar(50);index" json:"phone"`
	Email     *string        `gorm:"type:varchar(255);index" json:"email"`
	Type      ContactType    `gorm:"type:varchar(20);not null" json:"type"`
	Language  Language       `gorm:"type:varchar(5);not null" json:"language"`
	Location  *string        `gorm:"type:text" json:"location"`
	Notes     *string        `gorm:"type:text" json:"notes"`
	Metadata  datatypes.JSON `json:"metadata"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Contact) TableName() string {
	return "contacts"
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Language == "" {
		c.Language = LanguageEnglish
	}
	return nil
}

// Conversation is a thread with one contact on one channel
type Conversation struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ContactID     string    `gorm:"type:varchar(36);not null;index" json:"contactId"`
	Contact       *Contact  `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE;" json:"contact,omitempty"`
	Channel       Channel   `gorm:"type:varchar(20);not null" json:"channel"`
	Subject       *string   `gorm:"type:text" json:"subject"`
	LastMessageAt time.Time `gorm:"not null;index" json:"lastMessageAt"`
	UnreadCount   int       `gorm:"not null;default:0" json:"unreadCount"`
	Status        string    `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Conversation) TableName() string {
	return "conversations"
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.LastMessageAt.IsZero() {
		c.LastMessageAt = time.Now()
	}
	if c.Status == "" {
		c.Status = "active"
	}
	return nil
}

// Message is a single inbound or outbound message. Enrichment fields are only
// written when the message is created.
type Message struct {
	ID                string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ConversationID    string         `gorm:"type:varchar(36);not null;index" json:"conversationId"`
	Conversation      *Conversation  `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE;" json:"-"`
	ContactID         string         `gorm:"type:varchar(36);not null;index" json:"contactId"`
	Contact           *Contact       `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE;" json:"-"`
	Direction         Direction      `gorm:"type:varchar(10);not null" json:"direction"`
	Channel           Channel        `gorm:"type:varchar(20);not null" json:"channel"`
	Content           string         `gorm:"type:text;not null" json:"content"`
	Language          *Language      `gorm:"type:varchar(5)" json:"language"`
	TranslatedContent *string        `gorm:"type:text" json:"translatedContent"`
	Status            MessageStatus  `gorm:"type:varchar(20);not null" json:"status"`
	Sentiment         *Sentiment     `gorm:"type:varchar(20)" json:"sentiment"`
	Intent            *string        `gorm:"type:text" json:"intent"`
	Metadata          datatypes.JSON `json:"metadata"`
	IsVoice           bool           `gorm:"not null" json:"isVoice"`
	VoiceURL          *string        `gorm:"type:text" json:"voiceUrl"`
	Transcription     *string        `gorm:"type:text" json:"transcription"`
	CreatedAt         time.Time      `gorm:"autoCreateTime;index" json:"createdAt"`
	ReadAt            *time.Time     `json:"readAt"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = StatusPending
	}
	return nil
}

// Template is reusable message content. Deleting a template only clears IsActive.
type Template struct {
	ID         string                      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name       string                      `gorm:"type:text;not null" json:"name"`
	Category   string                      `gorm:"type:varchar(100);not null" json:"category"`
	Channel    Channel                     `gorm:"type:varchar(20);not null" json:"channel"`
	Content    datatypes.JSON              `gorm:"not null" json:"content"`
	Variables  datatypes.JSONSlice[string] `json:"variables"`
	Language   Language                    `gorm:"type:varchar(5);not null" json:"language"`
	IsActive   bool                        `gorm:"not null;index" json:"isActive"`
	UsageCount int                         `gorm:"not null;default:0" json:"usageCount"`
	CreatedAt  time.Time                   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time                   `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Template) TableName() string {
	return "templates"
}

func (t *Template) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Language == "" {
		t.Language = LanguageEnglish
	}
	return nil
}

// Workflow describes an automation the operators track from the console
type Workflow struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string         `gorm:"type:text;not null" json:"name"`
	Description *string        `gorm:"type:text" json:"description"`
	Trigger     string         `gorm:"type:text;not null" json:"trigger"`
	Conditions  datatypes.JSON `json:"conditions"`
	Actions     datatypes.JSON `gorm:"not null" json:"actions"`
	IsActive    bool           `gorm:"not null;index" json:"isActive"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Workflow) TableName() string {
	return "workflows"
}

func (w *Workflow) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

type WorkflowInstance struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	WorkflowID  string         `gorm:"type:varchar(36);not null;index" json:"workflowId"`
	Workflow    *Workflow      `gorm:"foreignKey:WorkflowID;constraint:OnDelete:CASCADE;" json:"-"`
	ContactID   *string        `gorm:"type:varchar(36);index" json:"contactId"`
	Contact     *Contact       `gorm:"foreignKey:ContactID;constraint:OnDelete:SET NULL;" json:"-"`
	Status      WorkflowStatus `gorm:"type:varchar(20);not null" json:"status"`
	CurrentStep int            `gorm:"not null;default:0" json:"currentStep"`
	Data        datatypes.JSON `json:"data"`
	StartedAt   time.Time      `gorm:"autoCreateTime" json:"startedAt"`
	CompletedAt *time.Time     `json:"completedAt"`
	Error       *string        `gorm:"type:text" json:"error"`
}

func (WorkflowInstance) TableName() string {
	return "workflow_instances"
}

func (w *WorkflowInstance) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.Status == "" {
		w.Status = WorkflowActive
	}
	return nil
}

// Notification is an operator-facing alert shown in the console
type Notification struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Type      string         `gorm:"type:varchar(50);not null" json:"type"`
	Title     string         `gorm:"type:text;not null" json:"title"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	UserID    *string        `gorm:"type:varchar(36);index" json:"userId"`
	IsRead    bool           `gorm:"not null" json:"isRead"`
	Metadata  datatypes.JSON `json:"metadata"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// All lists every model for auto-migration, parents before children.
func All() []interface{} {
	return []interface{}{
		&Contact{},
		&Conversation{},
		&Message{},
		&Template{},
		&Workflow{},
		&WorkflowInstance{},
		&Notification{},
	}
}
