package models

import (
	"gorm.io/datatypes"
)

// Request shapes accepted on create and update. Validation runs through gin's
// binding tags; ids and timestamps are never accepted from clients.

type NewContact struct {
	Name     string         `json:"name" binding:"required"`
	Phone    *string        `json:"phone"`
	Email    *string        `json:"email" binding:"omitempty,email"`
	Type     ContactType    `json:"type" binding:"required,oneof=employer maid"`
	Language Language       `json:"language" binding:"omitempty,oneof=en hi kn ne"`
	Location *string        `json:"location"`
	Notes    *string        `json:"notes"`
	Metadata datatypes.JSON `json:"metadata"`
}

func (n NewContact) Contact() Contact {
	return Contact{
		Name:     n.Name,
		Phone:    n.Phone,
		Email:    n.Email,
		Type:     n.Type,
		Language: n.Language,
		Location: n.Location,
		Notes:    n.Notes,
		Metadata: n.Metadata,
	}
}

type ContactPatch struct {
	Name     *string        `json:"name" binding:"omitempty,min=1"`
	Phone    *string        `json:"phone"`
	Email    *string        `json:"email" binding:"omitempty,email"`
	Type     *ContactType   `json:"type" binding:"omitempty,oneof=employer maid"`
	Language *Language      `json:"language" binding:"omitempty,oneof=en hi kn ne"`
	Location *string        `json:"location"`
	Notes    *string        `json:"notes"`
	Metadata datatypes.JSON `json:"metadata"`
}

// Updates returns only the columns present in the patch.
func (p ContactPatch) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Phone != nil {
		updates["phone"] = *p.Phone
	}
	if p.Email != nil {
		updates["email"] = *p.Email
	}
	if p.Type != nil {
		updates["type"] = *p.Type
	}
	if p.Language != nil {
		updates["language"] = *p.Language
	}
	if p.Location != nil {
		updates["location"] = *p.Location
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}
	if len(p.Metadata) > 0 {
		updates["metadata"] = p.Metadata
	}
	return updates
}

type NewConversation struct {
	ContactID   string  `json:"contactId" binding:"required"`
	Channel     Channel `json:"channel" binding:"required,oneof=whatsapp email"`
	Subject     *string `json:"subject"`
	UnreadCount int     `json:"unreadCount" binding:"min=0"`
	Status      string  `json:"status"`
}

func (n NewConversation) Conversation() Conversation {
	return Conversation{
		ContactID:   n.ContactID,
		Channel:     n.Channel,
		Subject:     n.Subject,
		UnreadCount: n.UnreadCount,
		Status:      n.Status,
	}
}

type ConversationPatch struct {
	Subject     *string `json:"subject"`
	Status      *string `json:"status" binding:"omitempty,min=1"`
	UnreadCount *int    `json:"unreadCount" binding:"omitempty,min=0"`
}

func (p ConversationPatch) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Subject != nil {
		updates["subject"] = *p.Subject
	}
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.UnreadCount != nil {
		updates["unread_count"] = *p.UnreadCount
	}
	return updates
}

type NewMessage struct {
	ConversationID    string         `json:"conversationId" binding:"required"`
	ContactID         string         `json:"contactId" binding:"required"`
	Direction         Direction      `json:"direction" binding:"required,oneof=inbound outbound"`
	Channel           Channel        `json:"channel" binding:"required,oneof=whatsapp email"`
	Content           string         `json:"content" binding:"required"`
	Language          *Language      `json:"language" binding:"omitempty,oneof=en hi kn ne"`
	TranslatedContent *string        `json:"translatedContent"`
	Status            MessageStatus  `json:"status" binding:"omitempty,oneof=pending sent delivered read failed"`
	Sentiment         *Sentiment     `json:"sentiment" binding:"omitempty,oneof=positive neutral negative urgent"`
	Intent            *string        `json:"intent"`
	Metadata          datatypes.JSON `json:"metadata"`
	IsVoice           bool           `json:"isVoice"`
	VoiceURL          *string        `json:"voiceUrl"`
	Transcription     *string        `json:"transcription"`
}

func (n NewMessage) Message() Message {
	return Message{
		ConversationID:    n.ConversationID,
		ContactID:         n.ContactID,
		Direction:         n.Direction,
		Channel:           n.Channel,
		Content:           n.Content,
		Language:          n.Language,
		TranslatedContent: n.TranslatedContent,
		Status:            n.Status,
		Sentiment:         n.Sentiment,
		Intent:            n.Intent,
		Metadata:          n.Metadata,
		IsVoice:           n.IsVoice,
		VoiceURL:          n.VoiceURL,
		Transcription:     n.Transcription,
	}
}

type NewTemplate struct {
	Name      string                      `json:"name" binding:"required"`
	Category  string                      `json:"category" binding:"required"`
	Channel   Channel                     `json:"channel" binding:"required,oneof=whatsapp email"`
	Content   datatypes.JSON              `json:"content" binding:"required"`
	Variables datatypes.JSONSlice[string] `json:"variables"`
	Language  Language                    `json:"language" binding:"omitempty,oneof=en hi kn ne"`
	IsActive  *bool                       `json:"isActive"`
}

func (n NewTemplate) Template() Template {
	active := true
	if n.IsActive != nil {
		active = *n.IsActive
	}
	return Template{
		Name:      n.Name,
		Category:  n.Category,
		Channel:   n.Channel,
		Content:   n.Content,
		Variables: n.Variables,
		Language:  n.Language,
		IsActive:  active,
	}
}

type TemplatePatch struct {
	Name      *string                     `json:"name" binding:"omitempty,min=1"`
	Category  *string                     `json:"category" binding:"omitempty,min=1"`
	Channel   *Channel                    `json:"channel" binding:"omitempty,oneof=whatsapp email"`
	Content   datatypes.JSON              `json:"content"`
	Variables datatypes.JSONSlice[string] `json:"variables"`
	Language  *Language                   `json:"language" binding:"omitempty,oneof=en hi kn ne"`
	IsActive  *bool                       `json:"isActive"`
}

// Updates returns only the columns present in the patch. Usage counts are
// never patched directly.
func (p TemplatePatch) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Category != nil {
		updates["category"] = *p.Category
	}
	if p.Channel != nil {
		updates["channel"] = *p.Channel
	}
	if len(p.Content) > 0 {
		updates["content"] = p.Content
	}
	if p.Variables != nil {
		updates["variables"] = p.Variables
	}
	if p.Language != nil {
		updates["language"] = *p.Language
	}
	if p.IsActive != nil {
		updates["is_active"] = *p.IsActive
	}
	return updates
}

type NewWorkflow struct {
	Name        string         `json:"name" binding:"required"`
	Description *string        `json:"description"`
	Trigger     string         `json:"trigger" binding:"required"`
	Conditions  datatypes.JSON `json:"conditions"`
	Actions     datatypes.JSON `json:"actions" binding:"required"`
	IsActive    *bool          `json:"isActive"`
}

func (n NewWorkflow) Workflow() Workflow {
	active := true
	if n.IsActive != nil {
		active = *n.IsActive
	}
	return Workflow{
		Name:        n.Name,
		Description: n.Description,
		Trigger:     n.Trigger,
		Conditions:  n.Conditions,
		Actions:     n.Actions,
		IsActive:    active,
	}
}

type NewNotification struct {
	Type     string         `json:"type" binding:"required"`
	Title    string         `json:"title" binding:"required"`
	Message  string         `json:"message" binding:"required"`
	UserID   *string        `json:"userId"`
	Metadata datatypes.JSON `json:"metadata"`
}

func (n NewNotification) Notification() Notification {
	return Notification{
		Type:     n.Type,
		Title:    n.Title,
		Message:  n.Message,
		UserID:   n.UserID,
		Metadata: n.Metadata,
	}
}

type NewWorkflowInstance struct {
	ContactID   *string        `json:"contactId"`
	Status      WorkflowStatus `json:"status" binding:"omitempty,oneof=active paused completed failed"`
	CurrentStep int            `json:"currentStep" binding:"min=0"`
	Data        datatypes.JSON `json:"data"`
}

func (n NewWorkflowInstance) Instance(workflowID string) WorkflowInstance {
	return WorkflowInstance{
		WorkflowID:  workflowID,
		ContactID:   n.ContactID,
		Status:      n.Status,
		CurrentStep: n.CurrentStep,
		Data:        n.Data,
	}
}
