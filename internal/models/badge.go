package models

import "github.com/julianstephens/microhabit/internal/constants"

// Requirement describes the rule a badge is earned by.
// Only the parameter matching Type is meaningful.
type Requirement struct {
	Type       constants.RequirementType `json:"type"`
	Count      int                       `json:"count,omitempty"`
	Days       int                       `json:"days,omitempty"`
	Percentage float64                   `json:"percentage,omitempty"`
	Level      int                       `json:"level,omitempty"`
}

// BadgeDefinition is a single entry of the badge catalog
type BadgeDefinition struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Requirement Requirement `json:"requirement"`
}
