package database

import (
	"context"
	"fmt"
	"time"

	"gharpey-console/internal/models"
)

// AvgResponseTimePlaceholder is reported until response times are tracked.
const AvgResponseTimePlaceholder = "2.5h"

type Stats struct {
	TotalMessages   int64  `json:"totalMessages"`
	TotalContacts   int64  `json:"totalContacts"`
	ResponseRate    int    `json:"responseRate"`
	AvgResponseTime string `json:"avgResponseTime"`
}

// Stats counts messages and contacts. ResponseRate is the share of outbound
// messages in percent, rounded, and 0 when there are no messages.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	var total, contacts, outbound int64

	if err := s.conn(ctx).Model(&models.Message{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	if err := s.conn(ctx).Model(&models.Contact{}).Count(&contacts).Error; err != nil {
		return nil, fmt.Errorf("count contacts: %w", err)
	}
	if err := s.conn(ctx).Model(&models.Message{}).Where("direction = ?", models.DirectionOutbound).Count(&outbound).Error; err != nil {
		return nil, fmt.Errorf("count outbound messages: %w", err)
	}

	return &Stats{
		TotalMessages:   total,
		TotalContacts:   contacts,
		ResponseRate:    percent(outbound, total),
		AvgResponseTime: AvgResponseTimePlaceholder,
	}, nil
}

type DailyVolume struct {
	Date  string `json:"date"`
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type ChannelShare struct {
	Channel    models.Channel `json:"channel"`
	Count      int64          `json:"count"`
	Percentage int            `json:"percentage"`
}

type LanguageShare struct {
	Language   models.Language `json:"language"`
	Count      int64           `json:"count"`
	Percentage int             `json:"percentage"`
}

type ContactActivity struct {
	ContactID    string             `json:"contactId"`
	Name         string             `json:"name"`
	Type         models.ContactType `json:"type"`
	MessageCount int64              `json:"messageCount"`
}

type ResponseMetrics struct {
	AvgResponseTime string `json:"avgResponseTime"`
	ResponseRate    int    `json:"responseRate"`
}

type Analytics struct {
	MessageVolume        []DailyVolume     `json:"messageVolume"`
	ChannelDistribution  []ChannelShare    `json:"channelDistribution"`
	LanguageDistribution []LanguageShare   `json:"languageDistribution"`
	ResponseMetrics      ResponseMetrics   `json:"responseMetrics"`
	TopContacts          []ContactActivity `json:"topContacts"`
}

const (
	volumeDays     = 7
	topContactsMax = 5
)

// Analytics aggregates the dashboard charts: message volume over the seven
// days ending at now, channel and detected-language shares, and the most
// active contacts.
func (s *Store) Analytics(ctx context.Context, now time.Time) (*Analytics, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}

	volume, err := s.messageVolume(ctx, now)
	if err != nil {
		return nil, err
	}

	var channelRows []struct {
		Channel models.Channel
		Count   int64
	}
	err = s.conn(ctx).Model(&models.Message{}).
		Select("channel, COUNT(*) AS count").
		Group("channel").
		Order("count DESC").
		Scan(&channelRows).Error
	if err != nil {
		return nil, fmt.Errorf("channel distribution: %w", err)
	}
	channels := make([]ChannelShare, 0, len(channelRows))
	for _, row := range channelRows {
		channels = append(channels, ChannelShare{
			Channel:    row.Channel,
			Count:      row.Count,
			Percentage: percent(row.Count, stats.TotalMessages),
		})
	}

	var languageRows []struct {
		Language models.Language
		Count    int64
	}
	err = s.conn(ctx).Model(&models.Message{}).
		Select("language, COUNT(*) AS count").
		Where("language IS NOT NULL").
		Group("language").
		Order("count DESC").
		Scan(&languageRows).Error
	if err != nil {
		return nil, fmt.Errorf("language distribution: %w", err)
	}
	var detected int64
	for _, row := range languageRows {
		detected += row.Count
	}
	languages := make([]LanguageShare, 0, len(languageRows))
	for _, row := range languageRows {
		languages = append(languages, LanguageShare{
			Language:   row.Language,
			Count:      row.Count,
			Percentage: percent(row.Count, detected),
		})
	}

	top := []ContactActivity{}
	err = s.conn(ctx).Table("messages").
		Select("contacts.id AS contact_id, contacts.name AS name, contacts.type AS type, COUNT(messages.id) AS message_count").
		Joins("JOIN contacts ON contacts.id = messages.contact_id").
		Group("contacts.id, contacts.name, contacts.type").
		Order("message_count DESC").
		Limit(topContactsMax).
		Scan(&top).Error
	if err != nil {
		return nil, fmt.Errorf("top contacts: %w", err)
	}

	return &Analytics{
		MessageVolume:        volume,
		ChannelDistribution:  channels,
		LanguageDistribution: languages,
		ResponseMetrics: ResponseMetrics{
			AvgResponseTime: stats.AvgResponseTime,
			ResponseRate:    stats.ResponseRate,
		},
		TopContacts: top,
	}, nil
}

// messageVolume buckets messages by calendar day in now's location. Bucketing
// happens here rather than in SQL because date functions differ per driver.
func (s *Store) messageVolume(ctx context.Context, now time.Time) ([]DailyVolume, error) {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	start := today.AddDate(0, 0, -(volumeDays - 1))

	var stamps []time.Time
	err := s.conn(ctx).Model(&models.Message{}).
		Where("created_at >= ?", start).
		Pluck("created_at", &stamps).Error
	if err != nil {
		return nil, fmt.Errorf("message volume: %w", err)
	}

	volume := make([]DailyVolume, volumeDays)
	index := make(map[string]int, volumeDays)
	for i := range volume {
		day := start.AddDate(0, 0, i)
		key := day.Format("2006-01-02")
		volume[i] = DailyVolume{Date: key, Day: day.Weekday().String()[:3]}
		index[key] = i
	}
	for _, ts := range stamps {
		if i, ok := index[ts.In(loc).Format("2006-01-02")]; ok {
			volume[i].Count++
		}
	}
	return volume, nil
}
