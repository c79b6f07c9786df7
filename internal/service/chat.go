package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"sismo/internal/domain"
	"sismo/internal/providers/chat"
)

const (
	chatContextEvents  = 10
	chatContextReports = 10
)

// ChatService answers user questions through the configured assistant,
// grounding every reply in the current earthquakes, reports, and campaigns.
type ChatService struct {
	assistant chat.Assistant
	events    domain.EarthquakeRepository
	reports   domain.ReportRepository
	campaigns domain.CampaignRepository
	maxTurns  int
	logger    zerolog.Logger
}

// NewChatService creates a ChatService. maxTurns bounds the trailing
// conversation history forwarded to the model.
func NewChatService(assistant chat.Assistant, events domain.EarthquakeRepository, reports domain.ReportRepository, campaigns domain.CampaignRepository, maxTurns int, logger zerolog.Logger) *ChatService {
	if maxTurns <= 0 {
		maxTurns = 20
	}
	return &ChatService{
		assistant: assistant,
		events:    events,
		reports:   reports,
		campaigns: campaigns,
		maxTurns:  maxTurns,
		logger:    logger,
	}
}

// Reply builds the system context from store data and forwards the message
// plus bounded history to the assistant. Upstream failures are user-visible.
func (s *ChatService) Reply(ctx context.Context, message string, history []chat.Turn) (string, error) {
	system, err := s.buildSystemPrompt(ctx)
	if err != nil {
		return "", err
	}
	if len(history) > s.maxTurns {
		history = history[len(history)-s.maxTurns:]
	}
	reply, err := s.assistant.Reply(ctx, chat.Request{
		System:  system,
		History: history,
		Message: message,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("chat: assistant call failed")
		return "", fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return reply, nil
}

type chatContext struct {
	Earthquakes       []chatEarthquake `json:"earthquakes"`
	EmergencyReports  []chatReport     `json:"emergencyReports"`
	DonationCampaigns []chatCampaign   `json:"donationCampaigns"`
}

type chatEarthquake struct {
	Magnitude string `json:"magnitude"`
	Location  string `json:"location"`
	Time      string `json:"time"`
	Depth     string `json:"depth"`
}

type chatReport struct {
	Type      string `json:"type"`
	Severity  string `json:"severity"`
	Location  string `json:"location"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
}

type chatCampaign struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	CurrentAmount string `json:"currentAmount"`
	TargetAmount  string `json:"targetAmount"`
	Status        string `json:"status"`
}

func (s *ChatService) buildSystemPrompt(ctx context.Context) (string, error) {
	events, err := s.events.Recent(ctx, chatContextEvents)
	if err != nil {
		return "", fmt.Errorf("chat context events: %w", err)
	}
	reports, err := s.reports.List(ctx, chatContextReports)
	if err != nil {
		return "", fmt.Errorf("chat context reports: %w", err)
	}
	active := domain.CampaignActive
	campaigns, err := s.campaigns.List(ctx, &active)
	if err != nil {
		return "", fmt.Errorf("chat context campaigns: %w", err)
	}

	data := chatContext{
		Earthquakes:       make([]chatEarthquake, 0, len(events)),
		EmergencyReports:  make([]chatReport, 0, len(reports)),
		DonationCampaigns: make([]chatCampaign, 0, len(campaigns)),
	}
	for _, e := range events {
		location := e.Place
		if location == "" {
			location = e.Location
		}
		data.Earthquakes = append(data.Earthquakes, chatEarthquake{
			Magnitude: e.Magnitude,
			Location:  location,
			Time:      e.Time.Format("2006-01-02 15:04 MST"),
			Depth:     e.Depth,
		})
	}
	for _, r := range reports {
		data.EmergencyReports = append(data.EmergencyReports, chatReport{
			Type:      string(r.Type),
			Severity:  string(r.Severity),
			Location:  r.Location,
			Status:    string(r.Status),
			CreatedAt: r.CreatedAt.Format("2006-01-02 15:04 MST"),
		})
	}
	for _, c := range campaigns {
		data.DonationCampaigns = append(data.DonationCampaigns, chatCampaign{
			Title:         c.Title,
			Description:   c.Description,
			CurrentAmount: c.CurrentAmount,
			TargetAmount:  c.TargetAmount,
			Status:        string(c.Status),
		})
	}

	contextJSON, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode chat context: %w", err)
	}

	return fmt.Sprintf(`Eres un asistente inteligente para SismoTracker, un sistema de seguimiento de sismos y ayuda humanitaria en Sudamérica.

Tu función es ayudar a los usuarios a:
1. Consultar información sobre sismos recientes en su área
2. Obtener detalles sobre reportes de emergencias activos
3. Conocer las campañas de donación disponibles
4. Proporcionar orientación sobre qué hacer en caso de sismo

Datos actuales del sistema:
%s

Responde de manera clara, concisa y útil en español. Si el usuario pregunta sobre sismos cercanos a una ubicación específica, usa la información de los sismos recientes. Si pregunta sobre cómo ayudar, menciona las campañas de donación activas.`, contextJSON), nil
}
