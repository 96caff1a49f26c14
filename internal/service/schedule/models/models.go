package models

import (
	"errors"
	"time"

	"salonik/internal/domain"
	"salonik/pkg/types"
)

var (
	// ErrInvalidRuleType возвращается при некорректном типе правила
	ErrInvalidRuleType = errors.New("invalid rule type")

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format")
)

// Request модели

// CreateRuleRequest запрос на создание правила расписания
type CreateRuleRequest struct {
	UserID       int64   `json:"userId"`
	RuleType     string  `json:"ruleType"`               // weekly | specific_date
	Weekday      *int    `json:"weekday,omitempty"`      // 0 = воскресенье ... 6 = суббота
	SpecificDate *string `json:"specificDate,omitempty"` // "2025-10-15"
	StartTime    string  `json:"startTime"`              // "09:00"
	EndTime      string  `json:"endTime"`                // "18:00"
	Active       *bool   `json:"active,omitempty"`       // по умолчанию true
}

// UpdateRuleRequest запрос на обновление правила расписания
type UpdateRuleRequest struct {
	UserID       int64   `json:"userId"`
	RuleType     string  `json:"ruleType"`
	Weekday      *int    `json:"weekday,omitempty"`
	SpecificDate *string `json:"specificDate,omitempty"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Active       bool    `json:"active"`
}

// ToDomainRule конвертирует запрос создания в domain модель
func (r *CreateRuleRequest) ToDomainRule() (*domain.OperatingRule, error) {
	rule, err := buildRule(r.RuleType, r.Weekday, r.SpecificDate, r.StartTime, r.EndTime)
	if err != nil {
		return nil, err
	}

	rule.Active = true
	if r.Active != nil {
		rule.Active = *r.Active
	}

	return rule, nil
}

// ToDomainRule конвертирует запрос обновления в domain модель
func (r *UpdateRuleRequest) ToDomainRule(id int64) (*domain.OperatingRule, error) {
	rule, err := buildRule(r.RuleType, r.Weekday, r.SpecificDate, r.StartTime, r.EndTime)
	if err != nil {
		return nil, err
	}

	rule.ID = id
	rule.Active = r.Active

	return rule, nil
}

func buildRule(ruleType string, weekday *int, specificDate *string, startTime, endTime string) (*domain.OperatingRule, error) {
	rt := domain.RuleType(ruleType)
	if rt != domain.RuleWeekly && rt != domain.RuleSpecificDate {
		return nil, ErrInvalidRuleType
	}

	start, err := types.NewTimeStringFromString(startTime)
	if err != nil {
		return nil, err
	}

	end, err := types.NewTimeStringFromString(endTime)
	if err != nil {
		return nil, err
	}

	rule := &domain.OperatingRule{
		RuleType:  rt,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
	}

	if specificDate != nil {
		date, err := time.Parse(domain.DateFormat, *specificDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		rule.SpecificDate = &date
	}

	return rule, nil
}

// Response модели

// RuleResponse ответ с данными правила расписания
type RuleResponse struct {
	ID           int64   `json:"id"`
	RuleType     string  `json:"ruleType"`
	Weekday      *int    `json:"weekday,omitempty"`
	SpecificDate *string `json:"specificDate,omitempty"`
	StartTime    string  `json:"startTime"`
	EndTime      string  `json:"endTime"`
	Active       bool    `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RuleListResponse ответ со списком правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(rule *domain.OperatingRule) *RuleResponse {
	if rule == nil {
		return nil
	}

	resp := &RuleResponse{
		ID:        rule.ID,
		RuleType:  string(rule.RuleType),
		Weekday:   rule.Weekday,
		StartTime: rule.StartTime.String(),
		EndTime:   rule.EndTime.String(),
		Active:    rule.Active,
		CreatedAt: rule.CreatedAt,
		UpdatedAt: rule.UpdatedAt,
	}

	if rule.SpecificDate != nil {
		dateStr := rule.SpecificDate.Format(domain.DateFormat)
		resp.SpecificDate = &dateStr
	}

	return resp
}

// FromDomainRuleList конвертирует список domain моделей в DTO
func FromDomainRuleList(rules []*domain.OperatingRule) *RuleListResponse {
	if rules == nil {
		return &RuleListResponse{Rules: []RuleResponse{}}
	}

	resp := &RuleListResponse{
		Rules: make([]RuleResponse, len(rules)),
	}

	for i, rule := range rules {
		if ruleResp := FromDomainRule(rule); ruleResp != nil {
			resp.Rules[i] = *ruleResp
		}
	}

	return resp
}
