package domain

import "time"

type Campaign struct {
	ID            string    `json:"id"`
	ExternalID    string    `json:"external_id"`
	IntegrationID string    `json:"integration_id"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	Objective     string    `json:"objective"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type AdSet struct {
	ID            string    `json:"id"`
	ExternalID    string    `json:"external_id"`
	IntegrationID string    `json:"integration_id"`
	CampaignID    string    `json:"campaign_id"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	UpdatedAt     time.Time `json:"updated_at"`
}
